package database

import (
	"database/sql"
	"time"

	"github.com/ubada123/SchoolSoftware/app/models"

	"golang.org/x/crypto/bcrypt"
)

// hashPassword hashes a password using bcrypt.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

const userColumns = `id, username, email, password, first_name, last_name, role, status, last_login, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.FirstName, &user.LastName, &user.Role, &user.Status,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByUsername looks a user up regardless of status; the caller decides
// whether a non-active account may log in.
func GetUserByUsername(db *sql.DB, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.QueryRow(query, username))
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.QueryRow(query, userID))
}

func GetAllUsers(db *sql.DB) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CreateUser hashes the plaintext password before storing.
func CreateUser(db *sql.DB, user *models.User) error {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, email, password, first_name, last_name, role, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, created_at, updated_at`
	return db.QueryRow(query,
		user.Username, user.Email, hashed, user.FirstName,
		user.LastName, user.Role, user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

// UpdateUser changes profile fields and role/status; the password is managed
// separately through UpdateUserPassword.
func UpdateUser(db *sql.DB, user *models.User) error {
	query := `UPDATE users SET email = $1, first_name = $2, last_name = $3, role = $4, status = $5, updated_at = NOW()
			  WHERE id = $6`
	_, err := db.Exec(query, user.Email, user.FirstName, user.LastName, user.Role, user.Status, user.ID)
	return err
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

func DeleteUser(db *sql.DB, userID string) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := db.Exec(query, userID)
	return err
}

// UpdateLastLogin is a best-effort side effect of login; callers ignore the
// returned error so a failed timestamp write never fails the login itself.
func UpdateLastLogin(db *sql.DB, userID string) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`
	_, err := db.Exec(query, userID)
	return err
}

func CreateSession(db *sql.DB, sessionID string, userID string, expiresAt time.Time) error {
	query := `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := db.Exec(query, sessionID, userID, expiresAt, time.Now())
	return err
}

func GetSessionByID(db *sql.DB, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1 AND expires_at > NOW()`
	err := db.QueryRow(query, sessionID).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteSession(db *sql.DB, sessionID string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := db.Exec(query, sessionID)
	return err
}

func DeleteExpiredSessions(db *sql.DB) error {
	query := `DELETE FROM sessions WHERE expires_at <= NOW()`
	_, err := db.Exec(query)
	return err
}
