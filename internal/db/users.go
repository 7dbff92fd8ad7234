package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lawrenceli7/spark-bytes/internal/model"
)

const userColumns = `id, name, email, password_hash, is_admin, can_post_events, created_at, updated_at`

func (db *Postgres) CreateUser(ctx context.Context, id, name, email, passwordHash string) (*model.User, error) {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + userColumns
	return db.scanUser(db.Pool.QueryRow(ctx, query, id, name, email, passwordHash))
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return db.scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return db.scanUser(db.Pool.QueryRow(ctx, query, userID))
}

func (db *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.PasswordHash,
			&u.IsAdmin,
			&u.CanPostEvents,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, rows.Err()
}

// UpdateUserField writes a single profile column. The field name is validated
// upstream against a closed enum; anything else is rejected here as well so
// this can never become dynamic SQL.
func (db *Postgres) UpdateUserField(ctx context.Context, userID, field, value string) error {
	var query string
	switch field {
	case "name":
		query = `UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2`
	case "email":
		query = `UPDATE users SET email = $1, updated_at = NOW() WHERE id = $2`
	case "password":
		query = `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`
	default:
		return fmt.Errorf("unknown user field: %s", field)
	}

	tag, err := db.Pool.Exec(ctx, query, value, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (db *Postgres) UpdateUserPermissions(ctx context.Context, userID string, isAdmin, canPostEvents bool) error {
	query := `
		UPDATE users
		SET is_admin = $1, can_post_events = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := db.Pool.Exec(ctx, query, isAdmin, canPostEvents, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (db *Postgres) scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CanPostEvents,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
