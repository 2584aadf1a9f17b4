package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/techcare/core/pkg/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	role := u.Role
	if role == "" {
		role = models.RoleCustomer
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO users (email, phone, password_hash, name, user_type) VALUES (?, ?, ?, ?, ?)`,
		u.Email, u.Phone, u.PasswordHash, u.Name, string(role))
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, email, phone, password_hash, name, user_type FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetByIdentifier looks a user up by email or phone, whichever matches.
func (r *SQLiteRepo) GetByIdentifier(ctx context.Context, emailOrPhone string) (*models.User, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, email, phone, password_hash, name, user_type FROM users WHERE email = ? OR phone = ?`,
		emailOrPhone, emailOrPhone)
	return scanUser(row)
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, id int64, name, email, phone string) (bool, error) {
	res, err := r.conn.Exec(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ? WHERE id = ?`, name, email, phone, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *SQLiteRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) (bool, error) {
	res, err := r.conn.Exec(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var role string
	if err := row.Scan(&u.ID, &u.Email, &u.Phone, &u.PasswordHash, &u.Name, &role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	u.Role = models.ParseRole(role)
	return &u, nil
}
