// fstree converts structured documents into directory trees and back.
//
// Encoding reads a JSON, YAML, CUE or CBOR document and writes it as a tree
// where every scalar is a file and every record, map or sequence is a
// directory. Decoding reads such a tree, optionally typed and validated by a
// CUE schema, and prints it as a document.
//
// Trees live on the local filesystem, or in an S3-compatible bucket when the
// location is written as s3://BUCKET/PATH. S3 access is configured through
// FSTREE_S3_ENDPOINT, FSTREE_S3_ACCESS_KEY and FSTREE_S3_SECRET_KEY; set
// FSTREE_S3_INSECURE to talk plain HTTP.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/jmgilman/go/fstree/errors"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

// command is one fstree subcommand.
type command interface {
	addFlags(flagSet *pflag.FlagSet)
	run(ctx context.Context, a *app, logger *slog.Logger, args []string) error
}

// app carries the process environment so tests can substitute it.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

func main() {
	a := &app{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := a.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.printUsage()
		return exitUsage
	}

	var cmd command
	switch args[0] {
	case "encode":
		cmd = &encodeCmd{}
	case "decode":
		cmd = &decodeCmd{}
	case "help", "-h", "--help":
		a.printUsage()
		return exitOK
	default:
		fmt.Fprintf(a.stderr, "error: unknown command %q\n\n", args[0])
		a.printUsage()
		return exitUsage
	}

	var common commonFlags
	flagSet := pflag.NewFlagSet("fstree "+args[0], pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	common.addFlags(flagSet)
	cmd.addFlags(flagSet)

	if err := flagSet.Parse(args[1:]); err != nil {
		if stderrors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(a.stderr, "error: %v\n", err)
		return exitUsage
	}

	logger, err := common.logger(a.stderr)
	if err != nil {
		return a.fail(err, "text")
	}

	if err := cmd.run(ctx, a, logger, flagSet.Args()); err != nil {
		return a.fail(err, common.errorFormat)
	}
	return exitOK
}

// fail reports err on stderr and returns the exit code for it.
func (a *app) fail(err error, format string) int {
	code := exitFailure
	var usage usageError
	if stderrors.As(err, &usage) {
		code = exitUsage
	}

	if format == "json" {
		data, merr := json.Marshal(errors.ToJSON(err))
		if merr == nil {
			fmt.Fprintln(a.stderr, string(data))
			return code
		}
	}

	fmt.Fprintf(a.stderr, "error: %v\n", err)
	if path := errors.PathOf(err); path != "" {
		fmt.Fprintf(a.stderr, "  at: %s\n", path)
	}
	return code
}

func (a *app) printUsage() {
	fmt.Fprint(a.stderr, `fstree converts documents into directory trees and back.

Usage:
  fstree encode [flags] --out DIR
  fstree decode [flags] DIR

Examples:
  # Write a JSON document as a tree
  fstree encode --in service.json --out ./service

  # Read it back, typed and validated by a CUE definition
  fstree decode --schema schema.cue --definition '#Service' ./service

  # Store a YAML document in a bucket
  fstree encode --format yaml --in - --out s3://configs/service < service.yaml

Run 'fstree COMMAND --help' for the flags of a command.
`)
}

// commonFlags are accepted by every command.
type commonFlags struct {
	logLevel    string
	errorFormat string
}

func (c *commonFlags) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.StringVar(&c.errorFormat, "error-format", "text", "error output: text or json")
}

// logger validates the common flags and builds a text logger on w.
func (c *commonFlags) logger(w io.Writer) (*slog.Logger, error) {
	switch c.errorFormat {
	case "text", "json":
	default:
		return nil, usagef("invalid --error-format %q: want text or json", c.errorFormat)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.logLevel))); err != nil {
		return nil, usagef("invalid --log-level %q: %v", c.logLevel, err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
