package postgres

import (
	"database/sql"
	"fmt"

	"github.com/frahmantamala/allowance-management/internal/auth"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetCredentialsByEmail(email string) (*auth.Credentials, error) {
	var (
		creds auth.Credentials
		role  string
	)

	query := `SELECT id, full_name, email, role, password_hash, verified FROM users WHERE email = ?`
	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&creds.User.ID, &creds.User.FullName, &creds.User.Email, &role, &creds.PasswordHash, &creds.Verified); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	creds.User.Role = auth.Role(role)
	return &creds, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var (
		user auth.User
		role string
	)

	query := `SELECT id, full_name, email, role FROM users WHERE id = ? AND verified = true`
	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&user.ID, &user.FullName, &user.Email, &role); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}

	user.Role = auth.Role(role)
	return &user, nil
}
