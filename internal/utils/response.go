package utils

import (
	"encoding/json"
	"net/http"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

// Error répond avec un message et log la cause
func Error(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		LogError("[%d] %s: %v", status, msg, err)
	} else {
		LogError("[%d] %s", status, msg)
	}
	JSON(w, status, APIResponse{Success: false, Error: msg})
}

// ErrorSimple répond avec un message sans cause sous-jacente
func ErrorSimple(w http.ResponseWriter, status int, msg string) {
	Error(w, status, msg, nil)
}

func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, APIResponse{Success: true, Message: msg})
}

// ErrorFrom mappe la taxonomie d'erreurs métier vers les statuts HTTP.
// 400 validation, 401 non authentifié, 403 non autorisé, 404 absent, 409 conflit.
func ErrorFrom(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.KindUnauthorized:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	}
	Error(w, status, err.Error(), nil)
}
