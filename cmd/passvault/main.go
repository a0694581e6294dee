package main

import (
	"os"

	"passvault/cmd/passvault/commands"
)

func main() {
	os.Exit(commands.Execute())
}
