package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"todo-app/internal/logger"
	"todo-app/internal/repository/db"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateUser creates a new user row. The password hash must already be
// computed by the caller.
func (p *PostgresDB) CreateUser(name, email, passwordHash string) (*db.User, error) {
	userID := uuid.New().String()
	var createdAt, updatedAt time.Time

	query := `
	INSERT INTO users (id, name, email, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at
	`

	err := p.conn.QueryRow(query, userID, name, email, passwordHash).Scan(&userID, &createdAt, &updatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "users_email_key") {
			return nil, db.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"email": email, "user_id": userID}).Info("Created new user")

	return &db.User{
		ID:           userID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// GetUserByEmail retrieves a user by email address
func (p *PostgresDB) GetUserByEmail(email string) (*db.User, error) {
	var user db.User
	query := `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = $1`

	err := p.conn.QueryRow(query, email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}
