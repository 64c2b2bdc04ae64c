package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avcopan/autostore/internal/chem"
)

// GeometryByHash returns the geometry row with the given content hash.
// The second return value is false if no such row exists.
func (s *Store) GeometryByHash(ctx context.Context, hash string) (GeometryRow, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, symbols, coordinates, charge, spin
		FROM geometry
		WHERE hash = ?
	`, hash)
	return scanGeometry(row)
}

// GeometryByID returns the geometry row with the given id.
func (s *Store) GeometryByID(ctx context.Context, id int64) (GeometryRow, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, symbols, coordinates, charge, spin
		FROM geometry
		WHERE id = ?
	`, id)
	return scanGeometry(row)
}

// LookupGeometry canonicalizes a geometry, hashes it, and returns the
// stored row for that content, if any. This is the content-addressed
// lookup path: identical canonical content always resolves to the
// same row.
func (s *Store) LookupGeometry(ctx context.Context, g chem.Geometry) (GeometryRow, bool, error) {
	hash, err := chem.GeometryHash(g)
	if err != nil {
		return GeometryRow{}, false, fmt.Errorf("lookup geometry: %w", err)
	}
	return s.GeometryByHash(ctx, hash)
}

// CalculationByHash returns the calculation row carrying the given
// named digest in its hash registry.
func (s *Store) CalculationByHash(ctx context.Context, value string) (CalculationRow, bool, error) {
	var calculationID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT calculation_id FROM calculation_hash WHERE value = ?`,
		value).Scan(&calculationID)
	if errors.Is(err, sql.ErrNoRows) {
		return CalculationRow{}, false, nil
	}
	if err != nil {
		return CalculationRow{}, false, fmt.Errorf("calculation by hash: %w", err)
	}
	return s.CalculationByID(ctx, calculationID)
}

// CalculationByID returns the calculation row with the given id,
// including its named digests.
func (s *Store) CalculationByID(ctx context.Context, id int64) (CalculationRow, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, geometry_id, program, method, basis, calctype,
		       program_version, input, keywords, cmdline_args, files,
		       scratch_dir, wall_time, hostname, hostcpus, hostmem, extras
		FROM calculation
		WHERE id = ?
	`, id)

	calc, ok, err := scanCalculation(row)
	if err != nil || !ok {
		return CalculationRow{}, ok, err
	}

	calc.Hashes, err = s.calculationHashes(ctx, calc.ID)
	if err != nil {
		return CalculationRow{}, false, err
	}
	return calc, true, nil
}

// CalculationsForGeometry returns every calculation referencing the
// given geometry row, ordered by id for deterministic results.
func (s *Store) CalculationsForGeometry(ctx context.Context, geometryID int64) ([]CalculationRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, geometry_id, program, method, basis, calctype,
		       program_version, input, keywords, cmdline_args, files,
		       scratch_dir, wall_time, hostname, hostcpus, hostmem, extras
		FROM calculation
		WHERE geometry_id = ?
		ORDER BY id ASC
	`, geometryID)
	if err != nil {
		return nil, fmt.Errorf("calculations for geometry: %w", err)
	}
	defer rows.Close()

	// Return empty slice instead of nil
	calcs := []CalculationRow{}
	for rows.Next() {
		calc, _, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	for i := range calcs {
		calcs[i].Hashes, err = s.calculationHashes(ctx, calcs[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return calcs, nil
}

// EnergyForCalculation returns the energy recorded for a calculation,
// if any.
func (s *Store) EnergyForCalculation(ctx context.Context, calculationID int64) (EnergyRow, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, calculation_id, geometry_id, value, ingest_id
		FROM energy
		WHERE calculation_id = ?
	`, calculationID)
	return scanEnergy(row)
}

// Energy resolves a stored energy value from a query geometry and
// calculation: canonicalize the geometry, digest it, digest the
// calculation under the named hash, and follow the registry to the
// energy row. The second return value is false when no matching
// result is stored.
func (s *Store) Energy(ctx context.Context, g chem.Geometry, c chem.Calculation, hashName string) (float64, bool, error) {
	geometryHash, err := chem.GeometryHash(g)
	if err != nil {
		return 0, false, fmt.Errorf("energy lookup: %w", err)
	}

	value, err := chem.CalculationHash(c, geometryHash, hashName)
	if err != nil {
		return 0, false, fmt.Errorf("energy lookup: %w", err)
	}

	var energy float64
	err = s.db.QueryRowContext(ctx, `
		SELECT e.value
		FROM calculation_hash ch
		JOIN energy e ON e.calculation_id = ch.calculation_id
		WHERE ch.value = ?
	`, value).Scan(&energy)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("energy lookup: %w", err)
	}

	return energy, true, nil
}

// calculationHashes loads the named digests for a calculation from
// the hash registry.
func (s *Store) calculationHashes(ctx context.Context, calculationID int64) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, value FROM calculation_hash
		WHERE calculation_id = ?
		ORDER BY name ASC
	`, calculationID)
	if err != nil {
		return nil, fmt.Errorf("calculation hashes: %w", err)
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan calculation hash: %w", err)
		}
		hashes[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculation hashes: %w", err)
	}
	return hashes, nil
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanGeometry(row scanner) (GeometryRow, bool, error) {
	var g GeometryRow
	var symbolsJSON, coordsJSON string

	err := row.Scan(&g.ID, &g.Hash, &symbolsJSON, &coordsJSON,
		&g.Geometry.Charge, &g.Geometry.Spin)
	if errors.Is(err, sql.ErrNoRows) {
		return GeometryRow{}, false, nil
	}
	if err != nil {
		return GeometryRow{}, false, fmt.Errorf("scan geometry: %w", err)
	}

	g.Geometry.Symbols, err = unmarshalSymbols(symbolsJSON)
	if err != nil {
		return GeometryRow{}, false, fmt.Errorf("scan geometry: %w", err)
	}
	g.Geometry.Coordinates, err = unmarshalCoordinates(coordsJSON)
	if err != nil {
		return GeometryRow{}, false, fmt.Errorf("scan geometry: %w", err)
	}

	return g, true, nil
}

func scanCalculation(row scanner) (CalculationRow, bool, error) {
	var c CalculationRow
	var keywordsJSON, cmdlineJSON, filesJSON, extrasJSON string

	err := row.Scan(&c.ID, &c.GeometryID,
		&c.Calculation.Program, &c.Calculation.Method, &c.Calculation.Basis,
		&c.Calculation.Calctype, &c.Calculation.ProgramVersion,
		&c.Calculation.Input, &keywordsJSON, &cmdlineJSON, &filesJSON,
		&c.Calculation.ScratchDir, &c.Calculation.WallTime,
		&c.Calculation.Hostname, &c.Calculation.HostCPUs,
		&c.Calculation.HostMem, &extrasJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return CalculationRow{}, false, nil
	}
	if err != nil {
		return CalculationRow{}, false, fmt.Errorf("scan calculation: %w", err)
	}

	c.Calculation.Keywords, err = unmarshalStringMap(keywordsJSON)
	if err != nil {
		return CalculationRow{}, false, fmt.Errorf("scan calculation: %w", err)
	}
	c.Calculation.CmdlineArgs, err = unmarshalStrings(cmdlineJSON)
	if err != nil {
		return CalculationRow{}, false, fmt.Errorf("scan calculation: %w", err)
	}
	c.Calculation.Files, err = unmarshalStringMap(filesJSON)
	if err != nil {
		return CalculationRow{}, false, fmt.Errorf("scan calculation: %w", err)
	}
	c.Calculation.Extras, err = unmarshalStringMap(extrasJSON)
	if err != nil {
		return CalculationRow{}, false, fmt.Errorf("scan calculation: %w", err)
	}

	return c, true, nil
}

func scanEnergy(row scanner) (EnergyRow, bool, error) {
	var e EnergyRow
	var ingest sql.NullString

	err := row.Scan(&e.ID, &e.CalculationID, &e.GeometryID, &e.Value, &ingest)
	if errors.Is(err, sql.ErrNoRows) {
		return EnergyRow{}, false, nil
	}
	if err != nil {
		return EnergyRow{}, false, fmt.Errorf("scan energy: %w", err)
	}

	if ingest.Valid {
		e.IngestID = ingest.String
	}
	return e, true, nil
}
