package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avcopan/autostore/internal/chem"
)

// AddGeometry inserts a geometry, deduplicated by content hash.
// The hash is computed here, before the row is written; callers never
// supply it. Returns the row id and whether a new row was inserted.
//
// Inserting the same canonical content twice returns the same id both
// times, with inserted=false on the second call.
func (s *Store) AddGeometry(ctx context.Context, g chem.Geometry) (id int64, inserted bool, err error) {
	hash, err := chem.GeometryHash(g)
	if err != nil {
		return 0, false, fmt.Errorf("add geometry: %w", err)
	}

	symbolsJSON, err := marshalSymbols(g.Symbols)
	if err != nil {
		return 0, false, fmt.Errorf("add geometry: %w", err)
	}
	coordsJSON, err := marshalCoordinates(g.Coordinates)
	if err != nil {
		return 0, false, fmt.Errorf("add geometry: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("add geometry: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Try to insert; a hash conflict means the content is already stored.
	result, err := tx.ExecContext(ctx, `
		INSERT INTO geometry (hash, symbols, coordinates, charge, spin)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, hash, symbolsJSON, coordsJSON, g.Charge, g.Spin)
	if err != nil {
		return 0, false, fmt.Errorf("add geometry: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("add geometry: rows affected: %w", err)
	}

	if rowsAffected > 0 {
		id, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("add geometry: last insert id: %w", err)
		}
		inserted = true
	} else {
		// Conflict - the row already exists, fetch the existing id.
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM geometry WHERE hash = ?`, hash).Scan(&id)
		if err != nil {
			return 0, false, fmt.Errorf("add geometry: select existing: %w", err)
		}
		inserted = false
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("add geometry: commit: %w", err)
	}

	return id, inserted, nil
}

// AddCalculation inserts a calculation referencing the given geometry
// row, deduplicated by its named content hashes. Every registered hash
// is computed over the calculation's fields plus the geometry's hash
// (never its row id) and recorded in the calculation_hash registry.
//
// If any named hash already exists, the existing calculation's id is
// returned and nothing is inserted. A uniqueness violation raised by a
// concurrent insert of the same content resolves the same way: the
// transaction is retried from the lookup step.
func (s *Store) AddCalculation(ctx context.Context, c chem.Calculation, geometryID int64) (id int64, inserted bool, err error) {
	if err := c.Validate(); err != nil {
		return 0, false, fmt.Errorf("add calculation: %w", err)
	}

	// One retry: a UNIQUE violation on the hash value means a
	// concurrent writer stored the same content after our lookup, so
	// the correct outcome is "the row already exists".
	for attempt := 0; attempt < 2; attempt++ {
		id, inserted, err = s.addCalculationOnce(ctx, c, geometryID)
		if err != nil && isUniqueViolation(err) {
			continue
		}
		return id, inserted, err
	}
	return 0, false, fmt.Errorf("add calculation: %w", err)
}

func (s *Store) addCalculationOnce(ctx context.Context, c chem.Calculation, geometryID int64) (int64, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: begin tx: %w", err)
	}
	defer tx.Rollback()

	// The calculation hash incorporates the geometry's content hash,
	// so the digest is reproducible independent of storage-assigned ids.
	var geometryHash string
	err = tx.QueryRowContext(ctx,
		`SELECT hash FROM geometry WHERE id = ?`, geometryID).Scan(&geometryHash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("add calculation: geometry %d not found", geometryID)
	}
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: load geometry hash: %w", err)
	}

	hashes := make(map[string]string, len(chem.HashNames()))
	for _, name := range chem.HashNames() {
		hashes[name], err = chem.CalculationHash(c, geometryHash, name)
		if err != nil {
			return 0, false, fmt.Errorf("add calculation: %w", err)
		}
	}

	// Registry lookup: does a calculation with this content exist?
	var existingID int64
	err = tx.QueryRowContext(ctx,
		`SELECT calculation_id FROM calculation_hash WHERE value = ?`,
		hashes[chem.HashMinimal]).Scan(&existingID)
	if err == nil {
		if err := tx.Commit(); err != nil {
			return 0, false, fmt.Errorf("add calculation: commit (existing): %w", err)
		}
		return existingID, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("add calculation: registry lookup: %w", err)
	}

	keywordsJSON, err := marshalStringMap(c.Keywords)
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: %w", err)
	}
	cmdlineJSON, err := marshalStrings(c.CmdlineArgs)
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: %w", err)
	}
	filesJSON, err := marshalStringMap(c.Files)
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: %w", err)
	}
	extrasJSON, err := marshalStringMap(c.Extras)
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO calculation
		(geometry_id, program, method, basis, calctype, program_version,
		 input, keywords, cmdline_args, files,
		 scratch_dir, wall_time, hostname, hostcpus, hostmem, extras)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		geometryID, c.Program, c.Method, c.Basis, c.Calctype, c.ProgramVersion,
		c.Input, keywordsJSON, cmdlineJSON, filesJSON,
		c.ScratchDir, c.WallTime, c.Hostname, c.HostCPUs, c.HostMem, extrasJSON,
	)
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: insert: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("add calculation: last insert id: %w", err)
	}

	// Populate the hash registry. A UNIQUE violation here surfaces to
	// AddCalculation, which rolls back and retries the lookup.
	for _, name := range chem.HashNames() {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO calculation_hash (calculation_id, name, value)
			VALUES (?, ?, ?)
		`, id, name, hashes[name])
		if err != nil {
			return 0, false, fmt.Errorf("add calculation: insert hash %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("add calculation: commit: %w", err)
	}

	return id, true, nil
}

// AddEnergy records a scalar energy for a calculation. The geometry
// reference is derived from the calculation row, so the relationship
// invariant holds by construction. ingestID may be empty.
//
// Recording the same (calculation, geometry) pair twice is idempotent:
// the existing row's id is returned with inserted=false.
func (s *Store) AddEnergy(ctx context.Context, calculationID int64, value float64, ingestID string) (id int64, inserted bool, err error) {
	return s.addEnergy(ctx, calculationID, 0, value, ingestID)
}

// AddEnergyChecked is AddEnergy with an explicit geometry reference.
// The reference must equal the calculation's geometry reference; a
// disagreement fails with *ConsistencyError and nothing is committed.
func (s *Store) AddEnergyChecked(ctx context.Context, calculationID, geometryID int64, value float64, ingestID string) (id int64, inserted bool, err error) {
	if geometryID == 0 {
		return 0, false, fmt.Errorf("add energy: explicit geometry id required")
	}
	return s.addEnergy(ctx, calculationID, geometryID, value, ingestID)
}

// addEnergy implements the insert. geometryID == 0 means "derive from
// the calculation"; a non-zero value is validated against it.
func (s *Store) addEnergy(ctx context.Context, calculationID, geometryID int64, value float64, ingestID string) (int64, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("add energy: begin tx: %w", err)
	}
	defer tx.Rollback()

	var wantGeometryID int64
	err = tx.QueryRowContext(ctx,
		`SELECT geometry_id FROM calculation WHERE id = ?`, calculationID).Scan(&wantGeometryID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("add energy: calculation %d not found", calculationID)
	}
	if err != nil {
		return 0, false, fmt.Errorf("add energy: load calculation: %w", err)
	}

	if geometryID == 0 {
		geometryID = wantGeometryID
	} else if geometryID != wantGeometryID {
		return 0, false, &ConsistencyError{
			CalculationID:  calculationID,
			GeometryID:     geometryID,
			WantGeometryID: wantGeometryID,
		}
	}

	var ingest sql.NullString
	if ingestID != "" {
		ingest = sql.NullString{String: ingestID, Valid: true}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO energy (calculation_id, geometry_id, value, ingest_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(calculation_id, geometry_id) DO NOTHING
	`, calculationID, geometryID, value, ingest)
	if err != nil {
		return 0, false, fmt.Errorf("add energy: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("add energy: rows affected: %w", err)
	}

	var id int64
	var inserted bool
	if rowsAffected > 0 {
		id, err = result.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("add energy: last insert id: %w", err)
		}
		inserted = true
	} else {
		err = tx.QueryRowContext(ctx, `
			SELECT id FROM energy
			WHERE calculation_id = ? AND geometry_id = ?
		`, calculationID, geometryID).Scan(&id)
		if err != nil {
			return 0, false, fmt.Errorf("add energy: select existing: %w", err)
		}
		inserted = false
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("add energy: commit: %w", err)
	}

	return id, inserted, nil
}

// ResultIDs summarizes an AddResult call: the (possibly pre-existing)
// row identities for each record.
type ResultIDs struct {
	GeometryID          int64 `json:"geometry_id"`
	GeometryInserted    bool  `json:"geometry_inserted"`
	CalculationID       int64 `json:"calculation_id"`
	CalculationInserted bool  `json:"calculation_inserted"`
	EnergyID            int64 `json:"energy_id"`
	EnergyInserted      bool  `json:"energy_inserted"`
}

// AddResult stores a complete calculation result: geometry,
// calculation, and energy, each via the insert-or-fetch protocol.
// Every step is idempotent, so re-ingesting the same result is safe.
func (s *Store) AddResult(ctx context.Context, g chem.Geometry, c chem.Calculation, value float64, ingestID string) (ResultIDs, error) {
	var ids ResultIDs
	var err error

	ids.GeometryID, ids.GeometryInserted, err = s.AddGeometry(ctx, g)
	if err != nil {
		return ResultIDs{}, fmt.Errorf("add result: %w", err)
	}

	ids.CalculationID, ids.CalculationInserted, err = s.AddCalculation(ctx, c, ids.GeometryID)
	if err != nil {
		return ResultIDs{}, fmt.Errorf("add result: %w", err)
	}

	ids.EnergyID, ids.EnergyInserted, err = s.AddEnergy(ctx, ids.CalculationID, value, ingestID)
	if err != nil {
		return ResultIDs{}, fmt.Errorf("add result: %w", err)
	}

	return ids, nil
}

// RecordIngest creates a provenance row for an ingestion run and
// returns its id. Uses UUIDv7 so ids sort by creation order.
func (s *Store) RecordIngest(ctx context.Context, source, program string) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingest (id, source, program)
		VALUES (?, ?, ?)
	`, id, source, program)
	if err != nil {
		return "", fmt.Errorf("record ingest: %w", err)
	}

	return id, nil
}
