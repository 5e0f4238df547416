package handler

import (
	"net/http"

	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "SocBuddy Habits API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "POST", "path": "/auth/login", "description": "Connexion utilisateur"},
				{"method": "POST", "path": "/auth/logout", "description": "Déconnexion utilisateur"},
				{"method": "POST", "path": "/auth/signup", "description": "Inscription utilisateur"},
			},
			"habits": []map[string]string{
				{"method": "GET", "path": "/habits", "description": "Récupérer les habits de l'utilisateur"},
				{"method": "GET", "path": "/habits/{id}", "description": "Récupérer un habit avec log et marathons"},
				{"method": "POST", "path": "/habits", "description": "Créer un habit"},
				{"method": "PUT", "path": "/habits/{id}", "description": "Mettre à jour un habit"},
				{"method": "DELETE", "path": "/habits/{id}", "description": "Supprimer un habit (soft delete)"},
				{"method": "POST", "path": "/habits/{id}/track", "description": "Enregistrer le log d'un jour"},
				{"method": "POST", "path": "/habits/{id}/streak/recompute", "description": "Recalculer les streaks depuis le log"},
			},
			"marathons": []map[string]string{
				{"method": "GET", "path": "/marathons", "description": "Sessions où l'utilisateur est propriétaire ou invité"},
				{"method": "POST", "path": "/habits/{id}/marathons", "description": "Démarrer une session marathon"},
				{"method": "POST", "path": "/marathons/{marathonId}/participants", "description": "Ajouter des participants (param: resubmit)"},
				{"method": "POST", "path": "/marathons/{marathonId}/respond", "description": "Accepter ou rejeter son invitation"},
				{"method": "POST", "path": "/marathons/{marathonId}/leave", "description": "Quitter une session acceptée"},
				{"method": "DELETE", "path": "/marathons/{marathonId}", "description": "Supprimer une session (propriétaire)"},
				{"method": "GET", "path": "/habits/{id}/marathons/{marathonId}/progress", "description": "Progression agrégée des participants"},
				{"method": "GET", "path": "/habits/{id}/marathons/{marathonId}/leaderboard", "description": "Podium du marathon (param: limit)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour SocBuddy - Suivi d'habitudes et marathons de groupe",
			"contact":     "support@socbuddy.app",
		},
	}

	utils.Success(w, routes)
}
