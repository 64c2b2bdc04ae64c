package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avcopan/autostore/internal/chem"
	"github.com/avcopan/autostore/internal/qcio"
)

// HashOptions holds flags for the hash command.
type HashOptions struct {
	*RootOptions
	Program string
}

// HashResult lists every content hash derived from a document.
type HashResult struct {
	GeometryHash      string            `json:"geometry_hash"`
	CalculationHashes map[string]string `json:"calculation_hashes"`
}

// NewHashCommand creates the hash command.
func NewHashCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HashOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hash <input-file>",
		Short: "Print content hashes for a document",
		Long: `Print the geometry hash and every named calculation hash for a QCIO
program input document, without touching any database.

Useful for checking whether two documents would deduplicate to the same
records before ingesting them.

Example:
  autostore hash --program crest water_gfn2.json
  autostore hash --program psi4 input.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Program, "program", "", "program the calculation runs with (required)")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func runHash(opts *HashOptions, file string, cmd *cobra.Command) error {
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

	geometryHash, err := chem.GeometryHash(g)
	if err != nil {
		return WrapExitError(ExitCommandError, "hashing geometry", err)
	}
	calcHashes := make(map[string]string, len(chem.HashNames()))
	for _, name := range chem.HashNames() {
		value, err := chem.CalculationHash(c, geometryHash, name)
		if err != nil {
			return WrapExitError(ExitCommandError, "hashing calculation", err)
		}
		calcHashes[name] = value
	}

	if opts.Format == "json" {
		return formatter.Success(HashResult{
			GeometryHash:      geometryHash,
			CalculationHashes: calcHashes,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "geometry  %s\n", geometryHash)
	for _, name := range chem.HashNames() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", name, calcHashes[name])
	}
	return nil
}
