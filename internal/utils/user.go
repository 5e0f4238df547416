package utils

import (
	"context"
	"fmt"

	"github.com/Detroit4455/socbuddy-sub001/internal/database"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
)

// FindUserByEmailWithPassword retrouve un utilisateur et son hash de mot de passe
func FindUserByEmailWithPassword(ctx context.Context, email string) (*model.UserProfile, string, error) {
	var user model.UserProfile
	var hash string

	err := database.DB.QueryRow(ctx,
		`SELECT id, username, email, join_date, created_at, updated_at, password_hash
		 FROM users WHERE email=$1 AND deleted_at IS NULL`,
		email,
	).Scan(&user.ID, &user.Username, &user.Email, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt, &hash)
	if err != nil {
		return nil, "", err
	}

	return &user, hash, nil
}

// CreateUser insère un nouvel utilisateur
func CreateUser(ctx context.Context, username, email, passwordHash string) (*model.UserProfile, error) {
	var user model.UserProfile
	user.Username = username
	user.Email = email

	err := database.DB.QueryRow(ctx,
		`INSERT INTO users(username, email, password_hash, join_date, created_at, updated_at)
		 VALUES($1, $2, $3, NOW(), NOW(), NOW())
		 RETURNING id, join_date, created_at, updated_at`,
		username, email, passwordHash,
	).Scan(&user.ID, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return &user, nil
}

// UsernamesByIDs résout les usernames d'un ensemble d'utilisateurs en une requête
func UsernamesByIDs(ctx context.Context, userIDs []string) (map[string]string, error) {
	usernames := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return usernames, nil
	}

	rows, err := database.DB.Query(ctx,
		`SELECT id, username FROM users WHERE id = ANY($1) AND deleted_at IS NULL`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id, username string
		if err := rows.Scan(&id, &username); err != nil {
			return nil, err
		}
		usernames[id] = username
	}
	return usernames, rows.Err()
}
