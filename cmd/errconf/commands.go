/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"dirpx.dev/errconf/adapter"
	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/builder"
	"dirpx.dev/errconf/remote"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type rootOptions struct {
	file     string
	logLevel string
	stderr   io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	o := &rootOptions{stderr: stderr}

	cmd := &cobra.Command{
		Use:   "errconf",
		Short: "Inspect a remote error configuration",
		Long: `errconf builds the resolved error configuration from a JSON entry list
and lets you query it the same way a client would.

The file holds a JSON array of entries (or {"data": [...]}), each with a
category "name", code "items" and optional recovery text.`,
		SilenceUsage: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	cmd.PersistentFlags().StringVarP(&o.file, "file", "f", "", "path to the JSON entry list (required)")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	_ = cmd.MarkPersistentFlagRequired("file")

	cmd.AddCommand(newLookupCmd(o), newExplainCmd(o), newDumpCmd(o))
	return cmd
}

func newLookupCmd(o *rootOptions) *cobra.Command {
	var resolve bool
	cmd := &cobra.Command{
		Use:   "lookup MAJOR [MINOR]",
		Short: "Print the category stored for a key",
		Long: `lookup prints the category stored for the exact key. With --resolve it
falls back to the major-level key when the specific key is missing, the
way clients are expected to query the configuration.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			major, minor, err := parseKeyArgs(args)
			if err != nil {
				return err
			}

			var (
				k     = apis.KeyOf(major, minor)
				r     apis.Rule
				found bool
			)
			if resolve {
				k, r, found = apis.Resolve(cfg, major, minor)
			} else {
				r, found = cfg.Rule(k)
			}
			if !found {
				return fmt.Errorf("key %s: not found", apis.KeyOf(major, minor))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, r.Category)
			return nil
		},
	}
	cmd.Flags().BoolVar(&resolve, "resolve", false, "fall back to the major-level key")
	return cmd
}

func newExplainCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "explain MAJOR [MINOR]",
		Short: "Explain which entry wrote a key",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			major, minor, err := parseKeyArgs(args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cfg.Explain(apis.KeyOf(major, minor)))
			return nil
		},
	}
}

func newDumpCmd(o *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the whole resolved table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := o.load()
			if err != nil {
				return err
			}
			snap := adapter.Snapshot(cfg)
			out := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(snap); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format (json, yaml)")
	return cmd
}

func (o *rootOptions) load() (*builder.Configuration, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(o.stderr, &slog.HandlerOptions{Level: level}))

	data, err := os.ReadFile(o.file)
	if err != nil {
		return nil, err
	}
	cfg, err := remote.Build(data, remote.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.file, err)
	}
	return cfg, nil
}

var errBadKey = errors.New("codes must be integers")

func parseKeyArgs(args []string) (int, *int, error) {
	major, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("major %q: %w", args[0], errBadKey)
	}
	if len(args) < 2 {
		return major, nil, nil
	}
	minor, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, nil, fmt.Errorf("minor %q: %w", args[1], errBadKey)
	}
	return major, &minor, nil
}
