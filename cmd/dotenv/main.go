// FILE: lixenwraith/dotenv/cmd/dotenv/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lixenwraith/dotenv"
	"github.com/lixenwraith/dotenv/adaptor/sqlstore"
	"github.com/spf13/cobra"
)

type options struct {
	strict   bool
	settings string
	format   string
	sqlite   string
	verbose  bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "dotenv",
		Short:         "Validate and print .env files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&opts.strict, "strict", false, "fail on the first problem instead of skipping lines")
	root.PersistentFlags().StringVar(&opts.settings, "settings", "", "setting file (toml, yaml, json or hcl) with the key scheme")
	root.PersistentFlags().StringVar(&opts.sqlite, "sqlite", "", "mirror accepted pairs into this SQLite database")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log skipped and accepted lines to stderr")

	checkCmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Parse files and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := run(cmd, opts, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d keys\n", len(values))
			return nil
		},
	}

	printCmd := &cobra.Command{
		Use:   "print [files...]",
		Short: "Parse files and print accepted values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := run(cmd, opts, args); err != nil {
				return err
			}
			return nil
		},
	}
	printCmd.Flags().StringVarP(&opts.format, "format", "f", "env", "output format: env, toml or json")

	root.AddCommand(checkCmd, printCmd)
	return root
}

// run builds a session from the flags, loads args and writes output for print.
func run(cmd *cobra.Command, opts *options, files []string) (map[string]any, error) {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	b := dotenv.NewBuilder().WithLogger(logger)
	if opts.settings != "" {
		b.WithSettingFile(opts.settings)
	}
	if cmd.Flags().Changed("strict") {
		b.WithStrict(opts.strict)
	}
	if opts.sqlite != "" {
		store, err := sqlstore.Open(opts.sqlite)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		b.WithAdaptor("sqlite", store)
	}
	if len(files) == 0 {
		files = []string{dotenv.DefaultPath}
	}
	b.WithFiles(files...)

	env, err := b.Build()
	if err != nil {
		return nil, err
	}
	values := env.Loaded()

	if cmd.Name() == "print" {
		if err := write(cmd.OutOrStdout(), env, opts.format); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func write(w io.Writer, env *dotenv.DotEnv, format string) error {
	switch format {
	case "env":
		return env.WriteEnv(w)
	case "toml":
		return env.Dump(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(env.Loaded())
	}
	return fmt.Errorf("unknown format %q", format)
}
