package handler

import (
	"context"
	"net/http"

	"github.com/Detroit4455/socbuddy-sub001/internal/middleware"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/Detroit4455/socbuddy-sub001/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	user, hashedPassword, err := utils.FindUserByEmailWithPassword(ctx, req.Email)
	if err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		utils.ErrorSimple(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	token, err := middleware.GetTokenFromContext(r)
	if err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "missing token")
		return
	}

	ctx := context.Background()
	if err := utils.InvalidateSession(ctx, token); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, map[string]bool{"success": true})
}

func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.ErrorSimple(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password", err)
		return
	}

	var user *model.UserProfile
	user, err = utils.CreateUser(ctx, req.Username, req.Email, string(hashed))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create user", err)
		return
	}

	// Auto-login après inscription
	ip, userAgent := utils.ExtractIPAndUserAgent(r)
	token, err := utils.CreateSession(ctx, user.ID, ip, userAgent)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not create session", err)
		return
	}

	utils.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
