package records

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists records in a single append-only table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, strings.TrimSpace(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initRecordSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func initRecordSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS records (
			id BIGSERIAL PRIMARY KEY,
			group_id TEXT NOT NULL,
			speaker_name TEXT NOT NULL,
			speaker_category TEXT NOT NULL,
			speaker_role_label TEXT NOT NULL,
			message_content TEXT NOT NULL,
			record_kind TEXT NOT NULL,
			task_description TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_group_created ON records (group_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_records_group_kind ON records (group_id, record_kind);`,
		`CREATE INDEX IF NOT EXISTS idx_records_group_category ON records (group_id, speaker_category);`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init record schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, rec Record) (int64, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO records (
			group_id, speaker_name, speaker_category, speaker_role_label,
			message_content, record_kind, task_description, priority, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		rec.GroupID,
		rec.SpeakerName,
		string(rec.SpeakerCategory),
		rec.SpeakerRoleLabel,
		rec.MessageContent,
		string(rec.Kind),
		rec.TaskDescription,
		string(rec.Priority),
		rec.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Query(ctx context.Context, groupID string, kind KindFilter, spk SpeakerFilter) ([]Record, error) {
	query := `SELECT id, group_id, speaker_name, speaker_category, speaker_role_label,
	                 message_content, record_kind, task_description, priority, created_at
	            FROM records WHERE group_id=$1`
	args := []any{groupID}

	if kind != FilterKindAll && kind != "" {
		args = append(args, string(kind))
		query += fmt.Sprintf(" AND record_kind=$%d", len(args))
	}
	if spk != FilterSpeakerAll && spk != "" {
		args = append(args, string(spk))
		query += fmt.Sprintf(" AND speaker_category=$%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, 16)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate record rows: %w", err)
	}
	return out, nil
}

func scanRecord(row pgx.Row) (Record, error) {
	var (
		rec      Record
		category string
		kind     string
		priority string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.GroupID,
		&rec.SpeakerName,
		&category,
		&rec.SpeakerRoleLabel,
		&rec.MessageContent,
		&kind,
		&rec.TaskDescription,
		&priority,
		&rec.CreatedAt,
	); err != nil {
		return Record{}, err
	}
	rec.SpeakerCategory = Category(category)
	rec.Kind = Kind(kind)
	rec.Priority = Priority(priority)
	return rec, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
