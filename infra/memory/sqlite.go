// Package memory provides the SQLite-backed notification memory store.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	corememory "github.com/fleetyard/fleetagent/core/memory"
)

// SQLiteStore persists SentRecords in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and ensures schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS actions_sent (
        fingerprint TEXT PRIMARY KEY,
        vehicle TEXT,
        kind TEXT,
        status TEXT,
        reason TEXT,
        mot_expiry TEXT,
        recipient TEXT,
        sent_at INTEGER
    );`
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Lookup returns the record for the fingerprint, if any.
func (s *SQLiteStore) Lookup(ctx context.Context, fingerprint string) (corememory.SentRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT fingerprint, vehicle, kind, status, reason, mot_expiry, recipient, sent_at
         FROM actions_sent WHERE fingerprint = ?`, fingerprint)
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return corememory.SentRecord{}, false, nil
	}
	if err != nil {
		return corememory.SentRecord{}, false, err
	}
	return rec, true, nil
}

// Upsert inserts or replaces the record for its fingerprint. The single
// statement keeps the write atomic with respect to process crashes.
func (s *SQLiteStore) Upsert(ctx context.Context, rec corememory.SentRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO actions_sent (fingerprint, vehicle, kind, status, reason, mot_expiry, recipient, sent_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(fingerprint) DO UPDATE SET
            vehicle = excluded.vehicle,
            kind = excluded.kind,
            status = excluded.status,
            reason = excluded.reason,
            mot_expiry = excluded.mot_expiry,
            recipient = excluded.recipient,
            sent_at = excluded.sent_at`,
		rec.Fingerprint, rec.Vehicle, rec.Kind, rec.Status, rec.Reason,
		rec.MOTExpiry, rec.Recipient, rec.SentAt.Unix())
	return err
}

// List returns all records, most recent first.
func (s *SQLiteStore) List(ctx context.Context) ([]corememory.SentRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fingerprint, vehicle, kind, status, reason, mot_expiry, recipient, sent_at
         FROM actions_sent ORDER BY sent_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var res []corememory.SentRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Clear deletes every record.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM actions_sent`)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(r rowScanner) (corememory.SentRecord, error) {
	var rec corememory.SentRecord
	var sentAt int64
	err := r.Scan(&rec.Fingerprint, &rec.Vehicle, &rec.Kind, &rec.Status,
		&rec.Reason, &rec.MOTExpiry, &rec.Recipient, &sentAt)
	if err != nil {
		return corememory.SentRecord{}, err
	}
	rec.SentAt = time.Unix(sentAt, 0).UTC()
	return rec, nil
}
