package mbrewrite

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Run parses flags and executes the selected command.
func Run(args []string) error {
	// .env is optional
	_ = godotenv.Load()

	opts := &Options{}
	setOptions(opts)
	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs(args)
	return err
}

// RunWithCommands runs the CLI and exits the process on failure.
func RunWithCommands(args []string) {
	err := Run(args)
	if err == nil {
		return
	}
	var flagsErr *flags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(stdout, flagsErr.Message)
		os.Exit(0)
	}
	log.Fatalf("%v", err)
}
