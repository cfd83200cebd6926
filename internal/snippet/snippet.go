// Package snippet runs external code formatters over standalone source
// snippets. A formatter is a narrow text-in, text-out collaborator: it either
// changes the snippet, reports that no change was needed, or reports that the
// snippet could not be parsed.
package snippet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	// ErrUnchanged reports that the formatter produced identical output.
	ErrUnchanged = errors.New("snippet: no change needed")
	// ErrUnparsable reports that the formatter rejected the snippet.
	ErrUnparsable = errors.New("snippet: could not parse")
)

// Formatter formats a standalone source snippet.
type Formatter interface {
	Format(ctx context.Context, src string) (string, error)
}

// Func adapts a plain function to the Formatter interface.
type Func func(ctx context.Context, src string) (string, error)

func (f Func) Format(ctx context.Context, src string) (string, error) {
	return f(ctx, src)
}

// Command formats snippets by piping them through an external program that
// reads source on stdin and writes the formatted result to stdout.
type Command struct {
	Path string
	Args []string
}

// NewCommand creates a stdin-piped formatter command.
func NewCommand(path string, args ...string) *Command {
	return &Command{Path: path, Args: args}
}

// NewBlack creates the conventional black invocation for a code snippet.
// lineLength <= 0 uses black's default.
func NewBlack(path string, lineLength int, extraArgs ...string) *Command {
	if path == "" {
		path = "black"
	}
	args := []string{"--quiet"}
	if lineLength > 0 {
		args = append(args, "--line-length", strconv.Itoa(lineLength))
	}
	args = append(args, extraArgs...)
	args = append(args, "-")
	return NewCommand(path, args...)
}

// NewIsort creates the conventional isort invocation for whole-file input.
func NewIsort(path string, extraArgs ...string) *Command {
	if path == "" {
		path = "isort"
	}
	args := append([]string{"--quiet"}, extraArgs...)
	args = append(args, "-")
	return NewCommand(path, args...)
}

// Format runs the command with src on stdin. A non-zero exit maps to
// ErrUnparsable; byte-identical output maps to ErrUnchanged. Both carry the
// original snippet back so callers can fall through to verbatim passthrough.
func (c *Command) Format(ctx context.Context, src string) (string, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Stdin = strings.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return src, fmt.Errorf("%w: %s exited %d: %s",
				ErrUnparsable, c.Path, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return src, fmt.Errorf("running %s: %w", c.Path, err)
	}

	out := stdout.String()
	if out == src {
		return src, ErrUnchanged
	}
	return out, nil
}

// FileCommand formats snippets through a program that requires a file-shaped
// input rather than stdin. Each call acquires a scoped temporary workspace
// that is released on every exit path.
type FileCommand struct {
	Path string
	Args []string
	// Ext is the file extension the program expects, ".py" by default.
	Ext string
}

// Format writes src into a temp workspace, runs the program with the file
// path appended to Args, and reads the rewritten file back.
func (c *FileCommand) Format(ctx context.Context, src string) (string, error) {
	dir, err := os.MkdirTemp("", "pydocfmt-*")
	if err != nil {
		return src, fmt.Errorf("creating snippet workspace: %w", err)
	}
	defer os.RemoveAll(dir)

	ext := c.Ext
	if ext == "" {
		ext = ".py"
	}
	path := filepath.Join(dir, "snippet"+ext)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return src, fmt.Errorf("writing snippet workspace: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.Path, append(append([]string{}, c.Args...), path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return src, fmt.Errorf("%w: %s exited %d: %s",
				ErrUnparsable, c.Path, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return src, fmt.Errorf("running %s: %w", c.Path, err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		return src, fmt.Errorf("reading snippet workspace: %w", err)
	}
	if string(out) == src {
		return src, ErrUnchanged
	}
	return string(out), nil
}
