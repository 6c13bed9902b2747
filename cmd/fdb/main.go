package main

import "fdb/internal/cli"

func main() {
	cli.Execute()
}
