package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	a := newApp(os.Stdin, os.Stdout)
	if err := execute(a, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(1)
	}
}

// execute runs one command line. The database and logger are released even
// when the command fails, since cobra skips PersistentPostRunE then.
func execute(a *app, args []string) error {
	cmd := newRootCommand(a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return errors.Join(err, a.close())
}
