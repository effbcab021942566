package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNotFound = errors.New("export not found")

// Export is a persisted building export.
type Export struct {
	ID         string    `json:"id"`
	BuildingID string    `json:"buildingId"`
	Payload    []byte    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// Init применяет встроенные миграции по порядку имён файлов.
func (r *Repository) Init(ctx context.Context) error {
	if err := r.runMigrations(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Save stores a new export for the building and returns it.
func (r *Repository) Save(ctx context.Context, buildingID string, payload []byte) (*Export, error) {
	if buildingID == "" {
		return nil, fmt.Errorf("building id is required")
	}

	e := &Export{
		ID:         uuid.NewString(),
		BuildingID: buildingID,
		Payload:    payload,
		CreatedAt:  r.now().UTC(),
	}

	_, err := r.db.ExecContext(ctx, `
        INSERT INTO exports (id, building_id, payload, created_at)
        VALUES (?, ?, ?, ?)
    `, e.ID, e.BuildingID, string(e.Payload), e.CreatedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("insert export: %w", err)
	}
	return e, nil
}

// Latest возвращает самую свежую выгрузку здания.
func (r *Repository) Latest(ctx context.Context, buildingID string) (*Export, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, building_id, payload, created_at
        FROM exports
        WHERE building_id = ?
        ORDER BY created_at DESC, rowid DESC
        LIMIT 1
    `, buildingID)

	e, err := scanExport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns every export of the building, newest first.
func (r *Repository) List(ctx context.Context, buildingID string) ([]*Export, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, building_id, payload, created_at
        FROM exports
        WHERE building_id = ?
        ORDER BY created_at DESC, rowid DESC
    `, buildingID)
	if err != nil {
		return nil, fmt.Errorf("query exports: %w", err)
	}
	defer rows.Close()

	var out []*Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(s scanner) (*Export, error) {
	var (
		e       Export
		payload string
		created int64
	)
	if err := s.Scan(&e.ID, &e.BuildingID, &payload, &created); err != nil {
		return nil, err
	}
	e.Payload = []byte(payload)
	e.CreatedAt = time.Unix(0, created).UTC()
	return &e, nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context) error {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		data, err := migrations.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
