package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"venue-market/internal/auth/models"
	"venue-market/internal/common/storage"

	"github.com/google/uuid"
)

// ============================================================
// SQLite Repository
// ============================================================

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNotFound = errors.New("user not found")

const (
	AdminID    = "11111111-1111-1111-1111-111111111111"
	AdminPhone = "+10000000000"
)

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init runs the migrations and makes sure the admin account exists.
func (r *Repository) Init(ctx context.Context) error {
	if err := storage.Migrate(ctx, r.db, migrations, "migrations"); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return r.ensureAdmin(ctx)
}

const userColumns = `id, phone, name, email, role, created_at`

func (r *Repository) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE phone = ?
    `, phone)
	return scanUser(row)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT `+userColumns+`
        FROM users
        WHERE id = ?
    `, id)
	return scanUser(row)
}

// Create registers a host with only a phone number.
func (r *Repository) Create(ctx context.Context, phone string) (*models.User, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, phone, role)
        VALUES (?, ?, ?)
    `, id, phone, models.RoleHost)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetOrCreate returns the user owning phone, registering one on first login.
func (r *Repository) GetOrCreate(ctx context.Context, phone string) (*models.User, bool, error) {
	u, err := r.GetByPhone(ctx, phone)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}
	u, err = r.Create(ctx, phone)
	return u, err == nil, err
}

func (r *Repository) UpdateProfile(ctx context.Context, id, name, email string) (*models.User, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE users SET name = ?, email = ?
        WHERE id = ?
    `, name, email, id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Phone, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ============================================================
// Seeding
// ============================================================

func (r *Repository) ensureAdmin(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, phone, name, email, role)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT (id) DO NOTHING
    `, AdminID, AdminPhone, "Admin User", "admin@example.com", models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
