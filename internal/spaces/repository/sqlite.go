package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venue-market/internal/common/storage"
	"venue-market/internal/wizard"
)

// ============================================================
// SQLite Draft Store
// ============================================================

//go:embed migrations/*.sql
var migrations embed.FS

// DraftVersion is stamped on every saved draft. Drafts written with another
// version are treated as absent.
const DraftVersion = 1

type DraftStore struct {
	db *sql.DB
}

func New(db *sql.DB) *DraftStore {
	return &DraftStore{db: db}
}

// Init applies the embedded migrations.
func (s *DraftStore) Init(ctx context.Context) error {
	return storage.Migrate(ctx, s.db, migrations, "migrations")
}

// Load returns the raw draft body, or (nil, nil) when there is no draft of
// the current version.
func (s *DraftStore) Load(ctx context.Context, flow, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT version, body FROM drafts
        WHERE flow = ? AND draft_key = ?
    `, flow, key)

	var (
		version int
		body    string
	)
	if err := row.Scan(&version, &body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if version != DraftVersion {
		return nil, nil
	}
	return []byte(body), nil
}

func (s *DraftStore) Save(ctx context.Context, flow, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO drafts (flow, draft_key, version, body, updated_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (flow, draft_key) DO UPDATE
        SET version = excluded.version, body = excluded.body, updated_at = excluded.updated_at
    `, flow, key, DraftVersion, string(body), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (s *DraftStore) Clear(ctx context.Context, flow, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE flow = ? AND draft_key = ?`, flow, key)
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// Scoped binds the store to one draft so it can back a wizard.
func (s *DraftStore) Scoped(flow, key string) wizard.Repository {
	return &scopedDraft{store: s, flow: flow, key: key}
}

type scopedDraft struct {
	store *DraftStore
	flow  string
	key   string
}

func (d *scopedDraft) Load(ctx context.Context) (wizard.Document, error) {
	body, err := d.store.Load(ctx, d.flow, d.key)
	if err != nil || body == nil {
		return nil, err
	}
	return wizard.DecodeDocument(body)
}

func (d *scopedDraft) Save(ctx context.Context, doc wizard.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return d.store.Save(ctx, d.flow, d.key, body)
}

func (d *scopedDraft) Clear(ctx context.Context) error {
	return d.store.Clear(ctx, d.flow, d.key)
}
