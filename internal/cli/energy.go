package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/avcopan/autostore/internal/chem"
	"github.com/avcopan/autostore/internal/qcio"
	"github.com/avcopan/autostore/internal/store"
)

// EnergyOptions holds flags for the energy command.
type EnergyOptions struct {
	*RootOptions
	Database string
	Program  string
	HashName string
}

// EnergyResult is the payload reported by a successful energy lookup.
type EnergyResult struct {
	Energy          float64 `json:"energy"`
	HashName        string  `json:"hash_name"`
	GeometryHash    string  `json:"geometry_hash"`
	CalculationHash string  `json:"calculation_hash"`
}

// NewEnergyCommand creates the energy command.
func NewEnergyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnergyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "energy <input-file>",
		Short: "Look up a stored energy by content hash",
		Long: `Look up the stored energy for a calculation described by a QCIO
program input document (JSON or YAML).

The lookup is purely content-addressed: the document is hashed the same
way ingest hashed it, and the energy is resolved through the calculation
hash table. With --hash minimal, provenance details like program version
and keywords are ignored; with --hash full they must match exactly.

Exit code 1 means no matching energy is stored.

Example:
  autostore energy --db ./chem.db --program crest water_gfn2.json
  autostore energy --db ./chem.db --program psi4 --hash full input.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnergy(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Program, "program", "", "program the calculation ran with (required)")
	cmd.Flags().StringVar(&opts.HashName, "hash", chem.HashMinimal,
		fmt.Sprintf("hash variant to match on %v", chem.HashNames()))
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func runEnergy(opts *EnergyOptions, file string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	in, err := qcio.LoadProgramInput(file)
	if err != nil {
		_ = formatter.Error(ErrCodeBadDocument, fmt.Sprintf("reading %s", file), err.Error())
		return WrapExitError(ExitCommandError, fmt.Sprintf("reading %s", file), err)
	}
	g, c, err := qcio.InputToRecords(in, opts.Program)
	if err != nil {
		_ = formatter.Error(ErrCodeConversion, fmt.Sprintf("converting %s", file), err.Error())
		return WrapExitError(ExitCommandError, fmt.Sprintf("converting %s", file), err)
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

	energy, found, err := st.Energy(ctx, g, c, opts.HashName)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, "energy lookup failed", err.Error())
		return WrapExitError(ExitCommandError, "energy lookup failed", err)
	}
	if !found {
		_ = formatter.Error(ErrCodeNotFound, "no stored energy matches", nil)
		return NewExitError(ExitFailure, "no stored energy matches")
	}

	geometryHash := chem.MustGeometryHash(g)
	calcHash, err := chem.CalculationHash(c, geometryHash, opts.HashName)
	if err != nil {
		return WrapExitError(ExitCommandError, "hashing calculation", err)
	}
	slog.Debug("energy resolved",
		"hash_name", opts.HashName,
		"calculation_hash", calcHash)

	if opts.Format == "json" {
		return formatter.Success(EnergyResult{
			Energy:          energy,
			HashName:        opts.HashName,
			GeometryHash:    geometryHash,
			CalculationHash: calcHash,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%.12f\n", energy)
	return nil
}
