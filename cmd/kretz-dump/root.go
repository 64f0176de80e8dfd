package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/kretzfile"
)

type dumpFlags struct {
	output  string
	layout  bool
	stats   bool
	charset string
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &dumpFlags{}

	cmd := &cobra.Command{
		Use:   "kretz-dump <file.vol>...",
		Short: "Dump kretzfile headers and volume statistics",
		Long: `Dump the metadata of one or more kretzfiles.

Examples:
  # Show metadata as a table
  kretz-dump scan.vol

  # Show metadata and intensity statistics as YAML
  kretz-dump --output yaml --stats scan.vol

  # Show the fixed header layout next to the raw bytes
  kretz-dump --layout scan.vol`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.OutOrStdout(), args, flags)
		},
		Version: kretzfile.Version,
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "table", "Output format (table|yaml|json)")
	cmd.Flags().BoolVar(&flags.layout, "layout", false, "Print the header field layout with raw bytes")
	cmd.Flags().BoolVar(&flags.stats, "stats", false, "Compute voxel intensity statistics")
	cmd.Flags().StringVar(&flags.charset, "charset", "", "Character set of text fields (default utf-8)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log loader debug records to stderr")

	return cmd
}

func runDump(w io.Writer, paths []string, flags *dumpFlags) error {
	format, err := parseFormat(flags.output)
	if err != nil {
		return err
	}

	var opts []kretzfile.Option
	if flags.charset != "" {
		opts = append(opts, kretzfile.WithCharset(flags.charset))
	}
	if flags.verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, kretzfile.WithLogger(logger))
	}

	for i, path := range paths {
		if i > 0 && format == formatTable {
			fmt.Fprintln(w)
		}

		if flags.layout {
			if err := printLayout(w, path); err != nil {
				return err
			}
		}

		file, err := kretzfile.Open(path, opts...)
		if err != nil {
			return err
		}

		report := newReport(file, flags.stats)
		if err := printReport(w, format, report); err != nil {
			return err
		}
	}

	return nil
}
