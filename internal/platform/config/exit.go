package config

import (
	"fmt"
	"os"
)

// Exitf reports a fatal startup error on stderr and exits with code 1.
// The server entry points use it for everything that should stop boot,
// from a bad env value to a database that will not open.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
