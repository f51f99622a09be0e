package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/cwmars/mkdbupgrade/internal/cli"
	"github.com/cwmars/mkdbupgrade/pkg/mkdbupgrade"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(mkdbupgrade.ExitPanic)
		}
	}()

	if os.Getenv("MKDBUPGRADE_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(mkdbupgrade.ExitCodeForError(err))
	}
}
