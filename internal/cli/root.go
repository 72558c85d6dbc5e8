// SPDX-License-Identifier: Apache-2.0

// Package cli implements the wikters report commands. Every command
// consumes the core the same way: pages from a dump source, heading trees
// from the splitter, patterns from the classifiers; printing and counting
// happen here, never in the core.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wiktersproj/wikters/internal/config"
	"github.com/wiktersproj/wikters/internal/dump"
)

// options are the settings shared by all scan commands, seeded from the
// config file and overridable per invocation by flags.
type options struct {
	reader        string
	languages     []string
	limit         int
	progressEvery int
	logLevel      string
}

// NewRootCommand builds the wikters command tree. cfg provides the flag
// defaults.
func NewRootCommand(cfg *config.Config) *cobra.Command {
	opts := &options{
		reader:        cfg.Reader,
		languages:     cfg.Languages,
		limit:         cfg.Limit,
		progressEvery: cfg.ProgressEvery,
		logLevel:      cfg.LogLevel,
	}

	root := &cobra.Command{
		Use:   "wikters [command] [dump file or URL]",
		Short: "Structural analysis of Wiktionary export dumps",
		Long: "wikters reads a MediaWiki export dump (file, URL or stdin; .bz2 is\n" +
			"decompressed transparently) and reports on the heading structure of\n" +
			"its entries: how etymologies, pronunciations and parts of speech\n" +
			"nest within each language section.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(opts.logLevel)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.reader, "reader", opts.reader, "dump parsing strategy: xml, lines or strict")
	pf.StringSliceVar(&opts.languages, "language", opts.languages, "language section(s) to analyze")
	pf.IntVar(&opts.limit, "limit", opts.limit, "stop after this many pages (0 = no limit)")
	pf.IntVar(&opts.progressEvery, "progress-every", opts.progressEvery, "log progress every N pages (0 = never)")
	pf.StringVar(&opts.logLevel, "log-level", opts.logLevel, "log level: debug, info, warn or error")

	root.AddCommand(
		newPatternsCommand(opts),
		newHomographsCommand(opts),
		newSkipsCommand(opts),
		newTreeCommand(opts),
		newTemplatesCommand(opts),
		newHeadingsCommand(opts),
		newServeCommand(),
	)
	return root
}

func setupLogging(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// openSource opens the dump named by the first positional argument, or
// stdin when there is none, and wraps it in the configured source
// strategy.
func openSource(opts *options, args []string) (dump.Source, io.Closer, error) {
	var (
		r      io.Reader
		closer io.Closer
	)
	if len(args) > 0 {
		rc, err := dump.Open(args[0])
		if err != nil {
			return nil, nil, err
		}
		r, closer = rc, rc
	} else {
		r, closer = os.Stdin, io.NopCloser(nil)
	}

	src, err := dump.NewSource(dump.Strategy(opts.reader), r)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return src, closer, nil
}

// primaryLanguage is the first configured language, the one single-section
// reports analyze.
func (o *options) primaryLanguage() string {
	if len(o.languages) == 0 {
		return "English"
	}
	return o.languages[0]
}
