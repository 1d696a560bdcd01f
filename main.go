package main

import (
	"os"

	"pulse/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
