// Package status compares the latest upstream frida release with the
// version reported by the locally installed frida tools.
package status

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"unicode/utf8"
)

// VersionQuery reports the installed frida version.
type VersionQuery interface {
	InstalledVersion(ctx context.Context) (string, error)
}

// ExternalCommandError is returned when the version command cannot run,
// exits non-zero, or prints something that is not a version string.
type ExternalCommandError struct {
	Command  string
	ExitCode int // -1 when the process never ran or was killed
	Stderr   string
	Err      error
}

func (e *ExternalCommandError) Error() string {
	msg := fmt.Sprintf("version command %q failed: %v", e.Command, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExternalCommandError) Unwrap() error {
	return e.Err
}

// CommandQuery runs Name with Args and reads the version from stdout.
type CommandQuery struct {
	Name string
	Args []string
}

// DefaultQuery runs "frida --version".
func DefaultQuery() CommandQuery {
	return CommandQuery{Name: "frida", Args: []string{"--version"}}
}

// NewCommandQuery builds a query from a program and its arguments.
func NewCommandQuery(argv []string) (CommandQuery, error) {
	if len(argv) == 0 || argv[0] == "" {
		return CommandQuery{}, fmt.Errorf("version command is empty")
	}
	return CommandQuery{Name: argv[0], Args: append([]string(nil), argv[1:]...)}, nil
}

func (q CommandQuery) String() string {
	return strings.TrimSpace(q.Name + " " + strings.Join(q.Args, " "))
}

// InstalledVersion executes the command. Stdout, trimmed of surrounding
// whitespace, is the version.
func (q CommandQuery) InstalledVersion(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, q.Name, q.Args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		cmdErr := &ExternalCommandError{
			Command:  q.String(),
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return "", cmdErr
	}

	if !utf8.Valid(out) {
		return "", &ExternalCommandError{Command: q.String(), Err: errors.New("output is not valid UTF-8")}
	}

	version := strings.TrimSpace(string(out))
	if version == "" {
		return "", &ExternalCommandError{Command: q.String(), Err: errors.New("empty output")}
	}

	return version, nil
}
