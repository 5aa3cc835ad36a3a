// Package identity provides IdentityStore adapters over PostgreSQL and an
// in-memory map.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fanbase/gatehouse/core"
	"github.com/fanbase/gatehouse/ports"
)

const uniqueViolation = "23505"

// PostgresStore implements IdentityStore over PostgreSQL. The pool is owned
// by the caller. The addresses.address and users.address_id / users.username
// columns carry unique constraints; create conflicts surface as
// ports.ErrConflict so the resolver can fall back to a re-read.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed identity store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindAddress looks up an address row by its normalized wallet value.
func (s *PostgresStore) FindAddress(ctx context.Context, wallet string) (*core.Address, error) {
	var addr core.Address

	err := s.pool.QueryRow(ctx, `
		SELECT id, address, status, created_at
		FROM addresses
		WHERE address = $1
	`, wallet).Scan(&addr.ID, &addr.Address, &addr.Status, &addr.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return &addr, nil
}

// CreateAddress inserts a new address row.
func (s *PostgresStore) CreateAddress(ctx context.Context, addr *core.Address) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO addresses (id, address, status, created_at)
		VALUES ($1, $2, $3, $4)
	`, addr.ID, addr.Address, addr.Status, addr.CreatedAt)
	if isUniqueViolation(err) {
		return ports.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert address: %w", err)
	}

	return nil
}

// FindUserByAddress looks up the user row tied to an address id.
func (s *PostgresStore) FindUserByAddress(ctx context.Context, addressID string) (*core.User, error) {
	var user core.User

	err := s.pool.QueryRow(ctx, `
		SELECT id, address_id, role_id, username, display_name, created_at
		FROM users
		WHERE address_id = $1
	`, addressID).Scan(&user.ID, &user.AddressID, &user.Role, &user.Username, &user.DisplayName, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new user row.
func (s *PostgresStore) CreateUser(ctx context.Context, user *core.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, address_id, role_id, username, display_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.AddressID, user.Role, user.Username, user.DisplayName, user.CreatedAt)
	if isUniqueViolation(err) {
		return ports.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Roles loads the role reference table.
func (s *PostgresStore) Roles(ctx context.Context) (map[string]core.Role, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM roles`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	roles := make(map[string]core.Role)
	for rows.Next() {
		var id core.Role
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roles: %w", err)
	}

	return roles, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ ports.IdentityStore = (*PostgresStore)(nil)
