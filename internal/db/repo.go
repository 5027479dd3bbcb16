package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"healbot/pkg"
)

// Repository is the Postgres-backed session store. It holds the two record
// kinds the application persists: patient records (one jsonb document per
// user) and transcripts (append-only message rows). The caller owns the
// *sql.DB lifecycle. Read-modify-write across requests is not coordinated
// here; profile writes are last-writer-wins.
type Repository struct {
	DB *sql.DB
}

// NewRepository constructs a Repository from an existing sql.DB.
func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// GetPatientRecord loads the record for a user. Absence is (nil, nil).
func (r *Repository) GetPatientRecord(ctx context.Context, userID string) (*pkg.PatientRecord, error) {
	var raw []byte
	err := r.DB.QueryRowContext(ctx,
		`SELECT record FROM patient_records WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec pkg.PatientRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode patient record: %w", err)
	}
	return &rec, nil
}

// PutPatientRecord stores or replaces the record for a user.
func (r *Repository) PutPatientRecord(ctx context.Context, userID string, rec *pkg.PatientRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode patient record: %w", err)
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO patient_records (user_id, record, updated_at)
         VALUES ($1, $2, NOW())
         ON CONFLICT (user_id)
         DO UPDATE SET record = EXCLUDED.record, updated_at = NOW()`,
		userID, raw,
	)
	return err
}

// GetTranscript returns all turns for a user in insertion order.
func (r *Repository) GetTranscript(ctx context.Context, userID string) ([]pkg.Turn, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT role, content, created_at
         FROM messages
         WHERE user_id = $1
         ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transcript []pkg.Turn
	for rows.Next() {
		var t pkg.Turn
		if err := rows.Scan(&t.Role, &t.Content, &t.CreatedAt); err != nil {
			return nil, err
		}
		transcript = append(transcript, t)
	}
	return transcript, rows.Err()
}

// AppendTurns stores the given turns in order within one transaction, so
// a patient/assistant pair stays contiguous in the sequence.
func (r *Repository) AppendTurns(ctx context.Context, userID string, turns []pkg.Turn) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range turns {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (user_id, role, content, created_at)
             VALUES ($1, $2, $3, $4)`,
			userID, t.Role, t.Content, t.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ClearTranscript removes all turns for a user. The patient record is not
// touched; records are replaced by upload, never by clearing history.
func (r *Repository) ClearTranscript(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM messages WHERE user_id = $1`, userID)
	return err
}
