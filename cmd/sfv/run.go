package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/tqbf/sfvcheck/pkg/config"
	"github.com/tqbf/sfvcheck/pkg/paths"
	"github.com/tqbf/sfvcheck/pkg/sfv"
)

type runOptions struct {
	create     bool
	quiet      bool
	summary    bool
	json       bool
	dir        string
	readErrors sfv.ReadErrorPolicy
	exclude    []string
}

func loadOptions(c *cli.Context) (*runOptions, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	opts := &runOptions{
		create:  c.Bool("create"),
		quiet:   cfg.Quiet,
		summary: cfg.Summary,
		json:    cfg.JSON,
		dir:     c.String("dir"),
		exclude: append(append([]string(nil), cfg.Exclude...), c.StringSlice("exclude")...),
	}
	if c.IsSet("quiet") {
		opts.quiet = c.Bool("quiet")
	}
	if c.IsSet("summary") {
		opts.summary = c.Bool("summary")
	}
	if c.IsSet("json") {
		opts.json = c.Bool("json")
	}

	opts.readErrors = cfg.ReadErrorPolicy()
	if c.IsSet("read-errors") {
		p, err := sfv.ParseReadErrorPolicy(c.String("read-errors"))
		if err != nil {
			return nil, err
		}
		opts.readErrors = p
	}
	return opts, nil
}

func runAction(c *cli.Context) error {
	opts, err := loadOptions(c)
	if err != nil {
		return err
	}

	args := c.Args().Slice()
	if (!opts.create && len(args) != 1) ||
		(opts.create && len(args) < 2) {
		return usageError(c)
	}

	manifest := args[0]
	if opts.dir == "" {
		opts.dir = paths.ManifestDir(manifest)
	}
	slog.Debug("run",
		"manifest", manifest,
		"dir", opts.dir,
		"create", opts.create,
		"read_errors", opts.readErrors,
	)

	w := c.App.Writer
	t := &tally{}
	rep := newReporter(w, t, opts.create, opts.quiet || opts.json)

	var list *sfv.List
	if opts.create {
		list, err = create(manifest, args[1:], opts, rep)
	} else {
		list, err = verify(manifest, opts, rep)
	}
	if err != nil {
		return err
	}
	defer list.Close()

	if opts.json {
		if err := printJSON(w, manifest, opts.create, list, t); err != nil {
			return err
		}
	} else if opts.summary {
		printSummary(w, manifest, opts.create, list, t)
	}

	if code := t.exitCode(); code != 0 {
		return cli.Exit("", code)
	}
	return nil
}

func usageError(c *cli.Context) error {
	if err := cli.ShowAppHelp(c); err != nil {
		return err
	}
	return cli.Exit("", 1)
}

func verify(
	manifest string,
	opts *runOptions,
	rep sfv.Reporter,
) (*sfv.List, error) {
	list, err := sfv.Open(manifest)
	if err != nil {
		return nil, err
	}
	err = list.Verify(
		opts.dir, rep, sfv.WithReadErrors(opts.readErrors),
	)
	if err != nil {
		list.Close()
		return nil, fmt.Errorf("verify: %w", err)
	}
	return list, nil
}

func create(
	manifest string,
	names []string,
	opts *runOptions,
	rep sfv.Reporter,
) (*sfv.List, error) {
	kept, dropped := paths.NewExcludeMatcher(opts.exclude).Filter(names)
	for _, n := range dropped {
		slog.Debug("excluded", "name", n)
	}

	list := sfv.New()
	for _, n := range kept {
		if paths.SameFile(filepath.Join(opts.dir, n), manifest) {
			slog.Warn("not listing the manifest in itself", "name", n)
			continue
		}
		if err := paths.ValidateName(n); err != nil {
			slog.Warn("name cannot match a file in the directory",
				"name", n, "err", err,
			)
		}
		list.Add(n)
	}

	err := list.Update(
		opts.dir, rep, sfv.WithReadErrors(opts.readErrors),
	)
	if err != nil {
		list.Close()
		return nil, fmt.Errorf("update: %w", err)
	}
	if err := list.Save(manifest); err != nil {
		list.Close()
		return nil, err
	}
	return list, nil
}

func checkedBytes(list *sfv.List) uint64 {
	var n uint64
	for _, e := range list.Entries() {
		n += uint64(e.Size)
	}
	return n
}

func printSummary(
	w io.Writer,
	manifest string,
	create bool,
	list *sfv.List,
	t *tally,
) {
	verb := "tested"
	if create {
		verb = "added"
	}
	fmt.Fprintf(w,
		"%s: %d files %s, %d missing, %d bad (%s read).\n",
		manifest, t.total, verb, t.missing, t.bad,
		humanize.Bytes(checkedBytes(list)),
	)
}
