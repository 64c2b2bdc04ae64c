package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/avcopan/autostore/internal/store"
)

// InfoOptions holds flags for the info command.
type InfoOptions struct {
	*RootOptions
	Database string
}

// NewInfoCommand creates the info command.
func NewInfoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InfoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show database record counts",
		Long: `Show record counts for an autostore database.

Example:
  autostore info --db ./chem.db
  autostore info --db ./chem.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runInfo(opts *InfoOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, "failed to open database", err.Error())
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	counts, err := st.Count(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, "counting records", err.Error())
		return WrapExitError(ExitCommandError, "counting records", err)
	}

	if opts.Format == "json" {
		return formatter.Success(counts)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "geometries:   %d\n", counts.Geometries)
	fmt.Fprintf(cmd.OutOrStdout(), "calculations: %d\n", counts.Calculations)
	fmt.Fprintf(cmd.OutOrStdout(), "energies:     %d\n", counts.Energies)
	fmt.Fprintf(cmd.OutOrStdout(), "ingests:      %d\n", counts.Ingests)
	return nil
}
