package marathon

import (
	"testing"

	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/stretchr/testify/assert"
)

func progress(username string, completed, rate int) model.ParticipantProgress {
	return model.ParticipantProgress{
		UserID:         username,
		Username:       username,
		CompletedDays:  completed,
		CompletionRate: rate,
	}
}

func TestRankByCompletedDays(t *testing.T) {
	participants := []model.ParticipantProgress{
		progress("alice", 5, 50),
		progress("bob", 12, 40),
		progress("carol", 8, 100),
	}

	ranked := Rank(participants)
	assert.Equal(t, "bob", ranked[0].Username)
	assert.Equal(t, "carol", ranked[1].Username)
	assert.Equal(t, "alice", ranked[2].Username)

	// L'entrée n'est pas modifiée
	assert.Equal(t, "alice", participants[0].Username)
}

func TestRankVolumeBeatsRate(t *testing.T) {
	// Plus de jours complétés gagne, quel que soit le taux
	participants := []model.ParticipantProgress{
		progress("steady", 3, 100),
		progress("bulk", 10, 30),
	}

	ranked := Rank(participants)
	assert.Equal(t, "bulk", ranked[0].Username)
}

func TestRankTieBreakByRate(t *testing.T) {
	participants := []model.ParticipantProgress{
		progress("alice", 5, 50),
		progress("bob", 5, 80),
	}

	ranked := Rank(participants)
	assert.Equal(t, "bob", ranked[0].Username)
}

func TestSortByRate(t *testing.T) {
	participants := []model.ParticipantProgress{
		progress("zoe", 10, 70),
		progress("anna", 2, 70),
		progress("bob", 20, 55),
	}

	sorted := SortByRate(participants)
	// Taux d'abord, username en départage
	assert.Equal(t, "anna", sorted[0].Username)
	assert.Equal(t, "zoe", sorted[1].Username)
	assert.Equal(t, "bob", sorted[2].Username)
}

func TestTopN(t *testing.T) {
	participants := []model.ParticipantProgress{
		progress("a", 1, 10),
		progress("b", 4, 10),
		progress("c", 3, 10),
		progress("d", 2, 10),
	}

	top := TopN(participants, 0) // défaut = 3
	assert.Len(t, top, 3)
	assert.Equal(t, "b", top[0].Username)

	assert.Len(t, TopN(participants, 2), 2)
	assert.Len(t, TopN(participants, 10), 4)
}
