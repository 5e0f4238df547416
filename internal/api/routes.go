package api

import (
	"net/http"

	"github.com/Detroit4455/socbuddy-sub001/internal/handler"
	"github.com/Detroit4455/socbuddy-sub001/internal/middleware"
	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
	"github.com/fatih/color"
	"github.com/gorilla/mux"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)
	authenticatedRoutes.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/signup", handler.Signup).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/auth/logout", handler.Logout).Methods(http.MethodPost)

	// Habits
	authenticatedRoutes.HandleFunc("/habits", handler.GetHabits).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/habits", handler.CreateHabit).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/habits/{id}", handler.GetHabitById).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/habits/{id}", handler.UpdateHabit).Methods(http.MethodPut, http.MethodPatch)
	authenticatedRoutes.HandleFunc("/habits/{id}", handler.DeleteHabit).Methods(http.MethodDelete)
	authenticatedRoutes.HandleFunc("/habits/{id}/track", handler.TrackHabit).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/habits/{id}/streak/recompute", handler.RecomputeStreaks).Methods(http.MethodPost)

	// Marathons
	authenticatedRoutes.HandleFunc("/marathons", handler.GetMarathons).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/habits/{id}/marathons", handler.CreateMarathon).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/marathons/{marathonId}/participants", handler.AddParticipants).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/marathons/{marathonId}/respond", handler.RespondInvitation).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/marathons/{marathonId}/leave", handler.LeaveMarathon).Methods(http.MethodPost)
	authenticatedRoutes.HandleFunc("/marathons/{marathonId}", handler.DeleteMarathon).Methods(http.MethodDelete)

	// Marathon progress
	authenticatedRoutes.HandleFunc("/habits/{id}/marathons/{marathonId}/progress", handler.GetMarathonProgress).Methods(http.MethodGet)
	authenticatedRoutes.HandleFunc("/habits/{id}/marathons/{marathonId}/leaderboard", handler.GetMarathonLeaderboard).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.LogError("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
