package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. The profile is stored as JSONB so
// the scoring engine's shape can evolve without migrations.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, rec Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    name,
    profile,
    source_key,
    source_file_name,
    mime_type,
    size_bytes,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	profile, err := json.Marshal(rec.Profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	var sourceKey sql.NullString
	if rec.SourceKey != "" {
		sourceKey = sql.NullString{String: rec.SourceKey, Valid: true}
	}
	var sourceFileName sql.NullString
	if rec.SourceFileName != "" {
		sourceFileName = sql.NullString{String: rec.SourceFileName, Valid: true}
	}
	var mimeType sql.NullString
	if rec.MimeType != "" {
		mimeType = sql.NullString{String: rec.MimeType, Valid: true}
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		rec.Name,
		profile,
		sourceKey,
		sourceFileName,
		mimeType,
		rec.SizeBytes,
		rec.CreatedAt,
	)
	return err
}

// GetByID fetches a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userId, resumeID string) (Resume, error) {
	const query = `
SELECT id, user_id, name, profile, source_key, source_file_name, mime_type, size_bytes, created_at
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	rec, err := scanResume(r.DB.QueryRowContext(ctx, query, userId, resumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return rec, nil
}

// ListByUser lists resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userId string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, name, profile, source_key, source_file_name, mime_type, size_bytes, created_at
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Resume
	for rows.Next() {
		rec, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var rec Resume
	var profile []byte
	var sourceKey sql.NullString
	var sourceFileName sql.NullString
	var mimeType sql.NullString
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Name,
		&profile,
		&sourceKey,
		&sourceFileName,
		&mimeType,
		&rec.SizeBytes,
		&rec.CreatedAt,
	); err != nil {
		return Resume{}, err
	}
	if sourceKey.Valid {
		rec.SourceKey = sourceKey.String
	}
	if sourceFileName.Valid {
		rec.SourceFileName = sourceFileName.String
	}
	if mimeType.Valid {
		rec.MimeType = mimeType.String
	}
	if len(profile) > 0 {
		if err := json.Unmarshal(profile, &rec.Profile); err != nil {
			return Resume{}, fmt.Errorf("unmarshal profile: %w", err)
		}
	}
	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
