// Package ledger persists the outcome of every batch upload item in a
// libsql database, so partial batch failures can be attributed to specific
// files after the fact.
package ledger

import (
	"context"
	"database/sql"
	"time"

	"github.com/code-sleuth/vektara-go/pkg/db"
	"github.com/code-sleuth/vektara-go/pkg/util"
	"github.com/code-sleuth/vektara-go/pkg/vektara"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Ledger records upload outcomes. It implements vektara.UploadRecorder.
type Ledger struct {
	db     *db.DB
	logger zerolog.Logger
}

func New(database *db.DB) *Ledger {
	return &Ledger{
		db:     database,
		logger: util.NewLogger(zerolog.ErrorLevel),
	}
}

// Migrate creates the uploads table if it does not exist.
func (l *Ledger) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS uploads (
			id TEXT PRIMARY KEY,
			corpus_id INTEGER NOT NULL,
			path TEXT NOT NULL,
			doc_id TEXT NOT NULL,
			ok INTEGER NOT NULL,
			detail TEXT,
			uploaded_at TEXT NOT NULL
		)
	`
	_, err := l.db.ExecContext(ctx, query)
	if err != nil {
		l.logger.Error().Err(err).Msg("Failed to migrate uploads table")
	}
	return err
}

// RecordUpload inserts one batch item outcome.
func (l *Ledger) RecordUpload(ctx context.Context, rec vektara.UploadRecord) error {
	query := `
		INSERT INTO uploads (id, corpus_id, path, doc_id, ok, detail, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	ok := 0
	if rec.OK {
		ok = 1
	}
	_, err := l.db.ExecContext(ctx, query, uuid.New().String(), rec.CorpusID, rec.Path,
		rec.DocID, ok, rec.Detail, rec.At.Format(time.RFC3339))
	if err != nil {
		l.logger.Error().Err(err).Str("path", rec.Path).Msg("Failed to record upload")
	}
	return err
}

// ListByCorpus returns the recorded outcomes for a corpus, newest first.
func (l *Ledger) ListByCorpus(ctx context.Context, corpusID int) ([]vektara.UploadRecord, error) {
	query := `
		SELECT corpus_id, path, doc_id, ok, detail, uploaded_at
		FROM uploads WHERE corpus_id = ? ORDER BY uploaded_at DESC
	`
	rows, err := l.db.QueryContext(ctx, query, corpusID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []vektara.UploadRecord
	for rows.Next() {
		var (
			rec        vektara.UploadRecord
			ok         int
			detail     sql.NullString
			uploadedAt string
		)
		if err := rows.Scan(&rec.CorpusID, &rec.Path, &rec.DocID, &ok, &detail, &uploadedAt); err != nil {
			l.logger.Error().Err(err).Msg("Failed to scan upload record")
			return nil, err
		}
		rec.OK = ok == 1
		rec.Detail = detail.String
		if at, err := time.Parse(time.RFC3339, uploadedAt); err == nil {
			rec.At = at
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
