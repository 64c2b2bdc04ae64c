package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/avcopan/autostore/internal/qcio"
	"github.com/avcopan/autostore/internal/store"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	Database     string
	SkipValidate bool
}

// IngestRecord is the per-document payload reported by ingest.
type IngestRecord struct {
	File          string  `json:"file"`
	IngestID      string  `json:"ingest_id"`
	GeometryID    int64   `json:"geometry_id"`
	CalculationID int64   `json:"calculation_id"`
	EnergyID      int64   `json:"energy_id"`
	Energy        float64 `json:"energy"`
	Deduplicated  bool    `json:"deduplicated"`
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest <results-file>...",
		Short: "Store completed calculation results",
		Long: `Store one or more QCIO results documents (JSON or YAML).

Each document's geometry, calculation and energy are written through the
content-addressed pipeline: records that already exist are reused, so
ingesting the same file twice is a no-op apart from the ingest log entry.

Example:
  autostore ingest --db ./chem.db water_hf.json
  autostore ingest --db ./chem.db runs/*.yaml --verbose`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().BoolVar(&opts.SkipValidate, "skip-validate", false,
		"skip schema validation of input documents")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runIngest(opts *IngestOptions, files []string, cmd *cobra.Command) error {
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

	records := make([]IngestRecord, 0, len(files))
	for _, file := range files {
		rec, code, err := ingestFile(ctx, st, file, opts.SkipValidate)
		if err != nil {
			exitCode := ExitCommandError
			if code == ErrCodeConversion {
				exitCode = ExitFailure
			}
			_ = formatter.Error(code, fmt.Sprintf("ingesting %s", file), err.Error())
			return WrapExitError(exitCode, fmt.Sprintf("ingesting %s", file), err)
		}
		slog.Info("ingested results",
			"file", file,
			"geometry_id", rec.GeometryID,
			"calculation_id", rec.CalculationID,
			"energy_id", rec.EnergyID)
		records = append(records, rec)
	}

	if opts.Format == "json" {
		return formatter.Success(records)
	}
	for _, rec := range records {
		outcome := "stored"
		if rec.Deduplicated {
			outcome = "duplicate"
		}
		fmt.Fprintf(cmd.OutOrStdout(),
			"%s: geometry=%d calculation=%d energy=%d (%.12f hartree) %s\n",
			rec.File, rec.GeometryID, rec.CalculationID, rec.EnergyID, rec.Energy, outcome)
	}
	return nil
}

// ingestFile runs a single document through load, convert, and store.
// The returned code classifies any failure for the output formatter:
// bad documents and unmappable fields are the caller's problem, write
// errors are the database's.
func ingestFile(ctx context.Context, st *store.Store, file string, skipValidate bool) (IngestRecord, string, error) {
	load := qcio.LoadResults
	if skipValidate {
		load = qcio.LoadResultsUnchecked
	}
	res, err := load(file)
	if err != nil {
		return IngestRecord{}, ErrCodeBadDocument, err
	}
	g, c, energy, err := qcio.ToRecords(res)
	if err != nil {
		return IngestRecord{}, ErrCodeConversion, err
	}
	ingestID, err := st.RecordIngest(ctx, file, c.Program)
	if err != nil {
		return IngestRecord{}, ErrCodeWriteFailed, err
	}
	ids, err := st.AddResult(ctx, g, c, energy, ingestID)
	if err != nil {
		return IngestRecord{}, ErrCodeWriteFailed, err
	}
	return IngestRecord{
		File:          file,
		IngestID:      ingestID,
		GeometryID:    ids.GeometryID,
		CalculationID: ids.CalculationID,
		EnergyID:      ids.EnergyID,
		Energy:        energy,
		Deduplicated:  !ids.GeometryInserted && !ids.CalculationInserted && !ids.EnergyInserted,
	}, "", nil
}

// configureLogging sets the process-wide slog handler level.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
