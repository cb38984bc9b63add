package main

import "crosswind/internal/cli"

func main() {
	cli.Execute()
}
