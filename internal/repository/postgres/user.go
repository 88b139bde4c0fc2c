package postgres

import (
	"database/sql"

	"finire/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// EnsureUser mirrors an externally-authenticated user locally, keeping the
// email current so reminder dispatch can resolve it.
func (r *UserRepo) EnsureUser(userID, email string) error {
	query := `
		INSERT INTO users (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id)
		DO UPDATE SET email = $2
	`
	_, err := r.db.Exec(query, userID, email)
	return err
}

// ListUsers returns all known users with their email addresses.
func (r *UserRepo) ListUsers() ([]domain.User, error) {
	query := `SELECT id, email, created_at FROM users`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
