package main

import (
	"os"

	cli "github.com/viant/mbrewrite/cmd/mbrewrite"
)

func main() {
	cli.RunWithCommands(os.Args[1:])
}
