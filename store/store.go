package store

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store persists completed checks and community scam reports. It is
// optional: the service runs without a database and simply skips
// persistence and report-count signals.
type Store struct {
	Pool *pgxpool.Pool
}

func Connect(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 10
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() { s.Pool.Close() }

// Migrate brings the schema up to date using the embedded goose migrations.
func (s *Store) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(s.Pool)
	defer db.Close()
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Report is one persisted check result or user-submitted scam report.
type Report struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"` // website|phone|job|deal
	Target    string          `json:"target"`
	Score     int             `json:"score"`
	Verdict   string          `json:"verdict"`
	Evidence  json.RawMessage `json:"evidence,omitempty"`
	Comment   string          `json:"comment,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (s *Store) SaveReport(ctx context.Context, r Report) (string, error) {
	evidence := r.Evidence
	if len(evidence) == 0 {
		evidence = json.RawMessage(`[]`)
	}
	var id string
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO reports (kind, target, score, verdict, evidence, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, r.Kind, r.Target, r.Score, r.Verdict, evidence, r.Comment).Scan(&id)
	return id, err
}

func (s *Store) RecentReports(ctx context.Context, limit int) ([]Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.Pool.Query(ctx, `
		SELECT id, kind, target, score, verdict, evidence, COALESCE(comment, ''), created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.ID, &r.Kind, &r.Target, &r.Score, &r.Verdict, &r.Evidence, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountPhoneReports counts community reports filed against a normalized
// phone number. Feeds the phone checker's community-report signal.
func (s *Store) CountPhoneReports(ctx context.Context, number string) (int, error) {
	var count int
	err := s.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reports WHERE kind = 'phone' AND target = $1
	`, number).Scan(&count)
	return count, err
}
