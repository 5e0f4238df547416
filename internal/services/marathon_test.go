package services

import (
	"context"
	"testing"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Les gardes d'entrée rejettent avant tout accès à la base : elles se
// testent sans pool connecté.

func TestCreateMarathonEmptyInviteeList(t *testing.T) {
	ctx := context.Background()

	_, err := CreateMarathon(ctx, "habit-1", "owner-1", model.CreateMarathonRequest{GroupName: "matin"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = CreateMarathon(ctx, "habit-1", "owner-1", model.CreateMarathonRequest{UserIDs: []string{}})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAddParticipantsEmptyBatch(t *testing.T) {
	_, err := AddParticipants(context.Background(), "marathon-1", "owner-1", model.AddParticipantsRequest{}, false)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRespondToInvitationInvalidStatus(t *testing.T) {
	ctx := context.Background()

	for _, status := range []string{"", "maybe", "pending", "ACCEPTED"} {
		_, err := RespondToInvitation(ctx, "marathon-1", "user-1", status)
		require.Error(t, err, "status %q", status)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), "status %q", status)
	}
}

func TestRecordResubmit(t *testing.T) {
	result := &model.AddParticipantsResult{}

	recordResubmit(result, "alice", true)
	assert.Equal(t, []string{"alice"}, result.Added)
	assert.Empty(t, result.Duplicates)

	// L'invitation rejetée avait changé entre-temps : pas remise à pending,
	// donc rapportée en doublon et jamais en ajoutée
	recordResubmit(result, "bob", false)
	assert.Equal(t, []string{"alice"}, result.Added)
	assert.Equal(t, []string{"bob"}, result.Duplicates)
}
