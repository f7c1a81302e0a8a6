// Package promptpass acquires the main passphrase from the operator.
// It is the CLI-facing implementation of the interface boundary the
// core vault packages never cross themselves: every other package in
// this module takes the passphrase as a plain string parameter and has
// no opinion about where it came from.
package promptpass

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// EnvVar is the environment variable consulted when allowEnv is true.
// Off by default: a passphrase passed through the environment is
// visible to anything that can read /proc for the process, which a
// terminal prompt or piped stdin is not.
const EnvVar = "PASSVAULT_MAIN"

// Prompt reads the main passphrase. When stdin is a terminal it prints
// label and reads with echo disabled; otherwise it reads a single line
// from stdin (the non-interactive / piped-input path). If allowEnv is
// true and EnvVar is set, that value is used in preference to reading
// anything at all.
func Prompt(label string, allowEnv bool) (string, error) {
	if allowEnv {
		if v, ok := os.LookupEnv(EnvVar); ok {
			return v, nil
		}
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, label)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	return readLine(os.Stdin)
}

func readLine(r io.Reader) (string, error) {
	reader := bufio.NewReader(r)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line, nil
}
