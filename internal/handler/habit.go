package handler

import (
	"context"
	"net/http"

	"github.com/Detroit4455/socbuddy-sub001/internal/middleware"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/Detroit4455/socbuddy-sub001/internal/services"
	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
	"github.com/gorilla/mux"
)

// CreateHabit crée un habit pour l'utilisateur connecté
func CreateHabit(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	var req model.CreateHabitRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := context.Background()
	habit, err := services.CreateHabit(ctx, user.ID, req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, habit)
}

// GetHabits liste les habits de l'utilisateur connecté
func GetHabits(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	ctx := context.Background()
	habits, err := services.ListHabits(ctx, user.ID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, habits)
}

// GetHabitById récupère un habit avec son log et ses sessions marathon
func GetHabitById(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	habit, err := services.GetHabit(ctx, vars["id"], user.ID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, habit)
}

// UpdateHabit met à jour les champs modifiables d'un habit
func UpdateHabit(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	var req model.UpdateHabitRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	habit, err := services.UpdateHabit(ctx, vars["id"], user.ID, req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, habit)
}

// DeleteHabit soft delete un habit, ses sessions marathon partent avec
func DeleteHabit(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	if err := services.DeleteHabit(ctx, vars["id"], user.ID); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Message(w, "habit deleted successfully")
}

// TrackHabit enregistre (ou corrige) le log d'un jour et recalcule les streaks
func TrackHabit(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	var req model.TrackHabitRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	habit, err := services.TrackHabit(ctx, vars["id"], user.ID, req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, habit)
}

// RecomputeStreaks force le recalcul depuis le log complet
func RecomputeStreaks(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	habit, err := services.RecomputeStreaks(ctx, vars["id"], user.ID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, habit)
}
