package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
	"github.com/Detroit4455/socbuddy-sub001/internal/database"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
	"github.com/jackc/pgx/v5"
)

// Context keys
type contextKey string

const (
	userContextKey  = contextKey("user")
	tokenContextKey = contextKey("token")
)

// AuthMiddleware valide le token de session et injecte l'utilisateur dans le contexte
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.ErrorSimple(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.LogDebug("rejected token on %s %s: %v", r.Method, r.URL.Path, err)
			utils.ErrorSimple(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		ctx = context.WithValue(ctx, tokenContextKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateTokenAndGetUser valide le token et retourne l'utilisateur associé
func validateTokenAndGetUser(ctx context.Context, token string) (*model.UserProfile, error) {
	var user model.UserProfile

	err := database.DB.QueryRow(ctx, `
		SELECT u.id, u.username, u.email, u.join_date, u.created_at, u.updated_at
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1
			AND s.is_active = true
			AND s.expires_at > NOW()
			AND u.deleted_at IS NULL
			AND s.deleted_at IS NULL`,
		token,
	).Scan(&user.ID, &user.Username, &user.Email, &user.JoinDate, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &user, nil
}

// GetUserFromContext récupère l'utilisateur depuis le contexte de la requête
func GetUserFromContext(r *http.Request) (model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return model.UserProfile{}, fmt.Errorf("user not found in context")
	}
	return user, nil
}

// GetTokenFromContext récupère le token depuis le contexte de la requête
func GetTokenFromContext(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in context")
	}
	return token, nil
}

// RequireAuth est un helper pour récupérer l'utilisateur authentifié dans un handler
func RequireAuth(r *http.Request) (model.UserProfile, error) {
	user, err := GetUserFromContext(r)
	if err != nil {
		return model.UserProfile{}, apperr.Unauthenticated("authentication required")
	}
	return user, nil
}
