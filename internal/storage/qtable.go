package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// QTableMeta is the agent state stored next to the Q-values so that training
// can resume where it stopped.
type QTableMeta struct {
	Epsilon  float64
	Episodes int
}

// ErrNoQTable is returned by LoadQTable when nothing was saved under a name.
var ErrNoQTable = errors.New("storage: no q-table saved under that name")

// SaveQTable replaces the table stored under name.
func (s *Store) SaveQTable(name string, table map[string][]float64, meta QTableMeta) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin q-table save: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck
		}
	}()

	if _, err = tx.Exec("DELETE FROM qvalues WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot clear q-values: %w", err)
	}
	if _, err = tx.Exec(
		`INSERT INTO qtables (name, epsilon, episodes, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   epsilon = excluded.epsilon,
		   episodes = excluded.episodes,
		   updated_at = excluded.updated_at`,
		name, meta.Epsilon, meta.Episodes,
	); err != nil {
		return fmt.Errorf("storage: cannot save q-table: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO qvalues (name, state, q_values) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare q-value insert: %w", err)
	}
	defer stmt.Close()

	for state, values := range table {
		encoded, jerr := json.Marshal(values)
		if jerr != nil {
			err = fmt.Errorf("storage: cannot encode q-values for %q: %w", state, jerr)
			return err
		}
		if _, err = stmt.Exec(name, state, string(encoded)); err != nil {
			return fmt.Errorf("storage: cannot save q-values for %q: %w", state, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit q-table: %w", err)
	}
	return nil
}

// LoadQTable returns the table stored under name, or ErrNoQTable.
func (s *Store) LoadQTable(name string) (map[string][]float64, QTableMeta, error) {
	var meta QTableMeta
	err := s.db.QueryRow(
		"SELECT epsilon, episodes FROM qtables WHERE name = ?",
		name,
	).Scan(&meta.Epsilon, &meta.Episodes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, meta, ErrNoQTable
	}
	if err != nil {
		return nil, meta, fmt.Errorf("storage: cannot query q-table: %w", err)
	}

	rows, err := s.db.Query("SELECT state, q_values FROM qvalues WHERE name = ?", name)
	if err != nil {
		return nil, meta, fmt.Errorf("storage: cannot query q-values: %w", err)
	}
	defer rows.Close()

	table := make(map[string][]float64)
	for rows.Next() {
		var state, encoded string
		if err := rows.Scan(&state, &encoded); err != nil {
			return nil, meta, fmt.Errorf("storage: cannot scan q-value row: %w", err)
		}
		var values []float64
		if err := json.Unmarshal([]byte(encoded), &values); err != nil {
			return nil, meta, fmt.Errorf("storage: corrupt q-values for %q: %w", state, err)
		}
		table[state] = values
	}

	if err := rows.Err(); err != nil {
		return nil, meta, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return table, meta, nil
}
