package main

import "ptype-e2e/internal/cli"

func main() {
	cli.Execute()
}
