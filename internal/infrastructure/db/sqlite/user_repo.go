package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"school-portal/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

type userRow struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

func (r *UserRepo) scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Username,
		&ur.PasswordHash,
		&ur.Role,
		&ur.CreatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:           ur.ID,
		Username:     ur.Username,
		PasswordHash: ur.PasswordHash,
		Role:         ur.Role,
	}
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}

	const q = `
SELECT id, username, password_hash, role, created_at
FROM users
WHERE username = ?
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT id, username, password_hash, role, created_at
FROM users
WHERE id = ?
LIMIT 1;
`
	ur, err := r.scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

// Create inserts first and lets the UNIQUE constraint on username decide
// conflicts, so concurrent registrations of the same name cannot both win.
func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return domain.User{}, domain.ErrMissingField("username")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Role == "" {
		return domain.User{}, domain.ErrMissingField("role")
	}

	const q = `
INSERT INTO users (username, password_hash, role)
VALUES (?, ?, ?);
`
	res, err := r.db.ExecContext(ctx, q, u.Username, u.PasswordHash, u.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrUsernameTaken()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	u.ID = id
	return u, nil
}
