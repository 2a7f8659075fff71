package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tqbf/sfvcheck/pkg/config"
)

const appVersion = "0.1.0"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print version",
	}
}

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	os.Exit(exitCode(os.Stderr, err))
}

const usageText = `sfv [-d directory] [-q] [-s] manifest
sfv -c [-d directory] [-q] [-s] manifest file ...`

// newApp builds the CLI. Exit codes are left to the caller of Run so the
// app can be driven from tests.
func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:                   "sfv",
		Usage:                  "verify or create .sfv checksum manifests",
		UsageText:              usageText,
		Version:                appVersion,
		UseShortOptionHandling: true,
		HideHelpCommand:        true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		ExitErrHandler:         func(*cli.Context, error) {},
		Before: func(c *cli.Context) error {
			configureLogging(c.App.ErrWriter, c.Bool("verbose"))
			return nil
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "create",
				Aliases: []string{"c"},
				Usage:   "create the manifest from the listed files",
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "directory holding the files (default: the manifest's directory)",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "do not print a line per file",
			},
			&cli.BoolFlag{
				Name:    "summary",
				Aliases: []string{"s"},
				Usage:   "print totals when done",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "JSON output",
			},
			&cli.StringFlag{
				Name:  "read-errors",
				Usage: "unreadable files: abort, missing or bad",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "skip file names matching pattern in create mode (repeatable)",
			},
			&cli.StringFlag{
				Name:    "config",
				EnvVars: []string{config.EnvVar},
				Usage:   "YAML config file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Action: runAction,
	}
}

func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: level,
		}),
	))
}

func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		if msg := ec.Error(); msg != "" {
			fmt.Fprintln(w, msg)
		}
		return ec.ExitCode()
	}
	fmt.Fprintf(w, "error: %v\n", err)
	return 1
}
