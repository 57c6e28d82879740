package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"filehub/internal/domain/user"
	"filehub/internal/infrastructure/database"
)

const userColumns = `id, email, username, password, role, auth_provider, google_id, created_at, updated_at`

type userRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *user.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.AuthProvider == "" {
		u.AuthProvider = user.AuthProviderLocal
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt

	_, err := r.db.Exec(
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Username, u.Password, u.Role, u.AuthProvider, nullString(u.GoogleID), u.CreatedAt, u.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return user.ErrUserAlreadyExists
	}
	return err
}

func (r *userRepository) GetByID(id string) (*user.User, error) {
	return r.getBy("id", id)
}

func (r *userRepository) GetByEmail(email string) (*user.User, error) {
	return r.getBy("email", email)
}

func (r *userRepository) GetByUsername(username string) (*user.User, error) {
	return r.getBy("username", username)
}

func (r *userRepository) GetByGoogleID(googleID string) (*user.User, error) {
	return r.getBy("google_id", googleID)
}

// getBy loads one user by a fixed column name; column is never user input
func (r *userRepository) getBy(column, value string) (*user.User, error) {
	u := &user.User{}
	var googleID sql.NullString
	err := r.db.QueryRow(
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value,
	).Scan(&u.ID, &u.Email, &u.Username, &u.Password, &u.Role, &u.AuthProvider, &googleID, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.GoogleID = googleID.String
	return u, nil
}

func (r *userRepository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	result, err := r.db.Exec(
		`UPDATE users SET email = ?, username = ?, password = ?, role = ?, auth_provider = ?, google_id = ?, updated_at = ? 
		 WHERE id = ?`,
		u.Email, u.Username, u.Password, u.Role, u.AuthProvider, nullString(u.GoogleID), u.UpdatedAt, u.ID,
	)
	if isUniqueViolation(err) {
		return user.ErrUserAlreadyExists
	}
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
