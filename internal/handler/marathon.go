package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Detroit4455/socbuddy-sub001/internal/marathon"
	"github.com/Detroit4455/socbuddy-sub001/internal/middleware"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/Detroit4455/socbuddy-sub001/internal/services"
	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
	"github.com/gorilla/mux"
)

// CreateMarathon démarre une session marathon sur un habit du caller
func CreateMarathon(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	var req model.CreateMarathonRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	session, err := services.CreateMarathon(ctx, vars["id"], user.ID, req)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, session)
}

// GetMarathons liste les sessions où l'utilisateur est propriétaire ou invité
func GetMarathons(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	ctx := context.Background()
	sessions, err := services.ListMarathons(ctx, user.ID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, sessions)
}

// AddParticipants invite de nouveaux utilisateurs dans une session existante.
// ?resubmit=true ré-invite aussi les participants déjà rejetés.
func AddParticipants(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	var req model.AddParticipantsRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resubmit := r.URL.Query().Get("resubmit") == "true"

	vars := mux.Vars(r)
	ctx := context.Background()

	result, err := services.AddParticipants(ctx, vars["marathonId"], user.ID, req, resubmit)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, result)
}

// RespondInvitation accepte ou rejette sa propre invitation
func RespondInvitation(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	var req model.RespondInvitationRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorSimple(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	result, err := services.RespondToInvitation(ctx, vars["marathonId"], user.ID, req.Status)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, result)
}

// LeaveMarathon quitte une session acceptée
func LeaveMarathon(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	if err := services.LeaveSession(ctx, vars["marathonId"], user.ID); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Message(w, "left marathon successfully")
}

// DeleteMarathon supprime une session, propriétaire uniquement
func DeleteMarathon(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	if err := services.DeleteMarathon(ctx, vars["marathonId"], user.ID); err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Message(w, "marathon deleted successfully")
}

// GetMarathonProgress progression agrégée de tous les participants
func GetMarathonProgress(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	progress, err := services.GetProgress(ctx, vars["id"], vars["marathonId"], user.ID)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, progress)
}

// GetMarathonLeaderboard podium trié par jours complétés, ?limit=n (défaut 3)
func GetMarathonLeaderboard(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireAuth(r)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	n := marathon.DefaultTopN
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			n = limit
		}
	}

	vars := mux.Vars(r)
	ctx := context.Background()

	board, err := services.GetLeaderboard(ctx, vars["id"], vars["marathonId"], user.ID, n)
	if err != nil {
		utils.ErrorFrom(w, err)
		return
	}

	utils.Success(w, board)
}
