package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gigboard/internal/database"
	"gigboard/internal/domain/user"

	"github.com/google/uuid"
)

type UserRepository struct {
	db database.DB

	stmtCreate         *sql.Stmt
	stmtGetByID        *sql.Stmt
	stmtGetByEmail     *sql.Stmt
	stmtExistsByEmail  *sql.Stmt
	stmtUpdateDetails  *sql.Stmt
	stmtUpdatePassword *sql.Stmt
}

const userColumns = `id, name, email, password_hash, role, created_at, updated_at`

func NewUserRepository(db database.DB) (*UserRepository, error) {
	r := &UserRepository{db: db}
	sqldb := db.SQLDB()

	prepare := func(query string) (*sql.Stmt, error) {
		return sqldb.PrepareContext(context.Background(), query)
	}

	var err error
	if r.stmtCreate, err = prepare(
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
	); err != nil {
		_ = r.Close()
		return nil, err
	}
	if r.stmtGetByID, err = prepare(
		`SELECT ` + userColumns + ` FROM users WHERE id = $1`,
	); err != nil {
		_ = r.Close()
		return nil, err
	}
	if r.stmtGetByEmail, err = prepare(
		`SELECT ` + userColumns + ` FROM users WHERE email = $1`,
	); err != nil {
		_ = r.Close()
		return nil, err
	}
	if r.stmtExistsByEmail, err = prepare(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
	); err != nil {
		_ = r.Close()
		return nil, err
	}
	if r.stmtUpdateDetails, err = prepare(
		`UPDATE users SET name = $2, email = $3, updated_at = now() WHERE id = $1 RETURNING `+userColumns,
	); err != nil {
		_ = r.Close()
		return nil, err
	}
	if r.stmtUpdatePassword, err = prepare(
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
	); err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

func (r *UserRepository) Close() error {
	var firstErr error
	closeStmt := func(s *sql.Stmt) {
		if s == nil {
			return
		}
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	closeStmt(r.stmtCreate)
	closeStmt(r.stmtGetByID)
	closeStmt(r.stmtGetByEmail)
	closeStmt(r.stmtExistsByEmail)
	closeStmt(r.stmtUpdateDetails)
	closeStmt(r.stmtUpdatePassword)

	return firstErr
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.stmtCreate.ExecContext(ctx, u.ID, u.Name, u.Email, u.PasswordHash, u.Role)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return scanUser(r.stmtGetByID.QueryRowContext(ctx, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.stmtGetByEmail.QueryRowContext(ctx, email))
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.stmtExistsByEmail.QueryRowContext(ctx, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) EmailTakenByOther(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	var taken bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
		email, id,
	)
	if err := row.Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *UserRepository) UpdateDetails(ctx context.Context, id uuid.UUID, name, email string) (user.User, error) {
	return scanUser(r.stmtUpdateDetails.QueryRowContext(ctx, id, name, email))
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	res, err := r.stmtUpdatePassword.ExecContext(ctx, id, hash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ListIDsByRole(ctx context.Context, role string) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM users WHERE role = $1`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type userRow interface {
	Scan(dest ...any) error
}

func scanUser(row userRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
