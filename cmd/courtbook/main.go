package main

import (
	"courtbook/internal/cli"
)

func main() {
	cli.Execute()
}
