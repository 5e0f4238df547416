package marathon

import (
	"sort"

	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
)

// DefaultTopN taille du podium par défaut
const DefaultTopN = 3

// Rank ordre du leaderboard : volume brut d'abord (jours complétés desc),
// taux de complétion desc en départage. Ne modifie pas la slice d'entrée.
func Rank(participants []model.ParticipantProgress) []model.ParticipantProgress {
	ranked := make([]model.ParticipantProgress, len(participants))
	copy(ranked, participants)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].CompletedDays != ranked[j].CompletedDays {
			return ranked[i].CompletedDays > ranked[j].CompletedDays
		}
		return ranked[i].CompletionRate > ranked[j].CompletionRate
	})
	return ranked
}

// SortByRate ordre de la vue progression générale : régularité d'abord
// (taux desc), username asc en départage
func SortByRate(participants []model.ParticipantProgress) []model.ParticipantProgress {
	sorted := make([]model.ParticipantProgress, len(participants))
	copy(sorted, participants)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CompletionRate != sorted[j].CompletionRate {
			return sorted[i].CompletionRate > sorted[j].CompletionRate
		}
		return sorted[i].Username < sorted[j].Username
	})
	return sorted
}

// TopN classe puis tronque aux n premiers (podium)
func TopN(participants []model.ParticipantProgress, n int) []model.ParticipantProgress {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := Rank(participants)
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
