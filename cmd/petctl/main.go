package main

import (
	"os"

	"pet-catalog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
