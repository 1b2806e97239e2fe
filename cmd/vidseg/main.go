package main

import "vidseg/internal/cli"

func main() {
	cli.Execute()
}
