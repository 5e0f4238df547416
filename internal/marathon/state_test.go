package marathon

import (
	"testing"

	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/stretchr/testify/assert"
)

func inv(userID, status, startDate string) model.MarathonInvitation {
	return model.MarathonInvitation{ToUserID: userID, Status: status, StartDate: startDate}
}

func TestClassifyInvitees(t *testing.T) {
	existing := []model.MarathonInvitation{
		inv("alice", model.InvitationPending, ""),
		inv("bob", model.InvitationAccepted, "2024-01-02"),
		inv("carol", model.InvitationRejected, ""),
	}

	buckets := ClassifyInvitees(existing, "owner", []string{"alice", "bob", "carol", "dave"})
	assert.Equal(t, []string{"dave"}, buckets.Fresh)
	assert.Equal(t, []string{"alice", "bob"}, buckets.Duplicates)
	assert.Equal(t, []string{"carol"}, buckets.PreviouslyRejected)
}

func TestClassifyInviteesSkipsOwnerAndDupes(t *testing.T) {
	buckets := ClassifyInvitees(nil, "owner", []string{"owner", "dave", "dave", ""})
	assert.Equal(t, []string{"dave"}, buckets.Fresh)
	assert.Empty(t, buckets.Duplicates)
	assert.Empty(t, buckets.PreviouslyRejected)
}

func TestFindInvitation(t *testing.T) {
	invitations := []model.MarathonInvitation{
		inv("alice", model.InvitationPending, ""),
		inv("bob", model.InvitationAccepted, "2024-01-02"),
	}

	found, ok := FindInvitation(invitations, "bob")
	assert.True(t, ok)
	assert.Equal(t, model.InvitationAccepted, found.Status)

	_, ok = FindInvitation(invitations, "mallory")
	assert.False(t, ok)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(model.InvitationPending, model.InvitationAccepted))
	assert.True(t, CanTransition(model.InvitationPending, model.InvitationRejected))
	// Quitter = auto-rejet d'une invitation acceptée
	assert.True(t, CanTransition(model.InvitationAccepted, model.InvitationRejected))

	assert.False(t, CanTransition(model.InvitationAccepted, model.InvitationAccepted))
	assert.False(t, CanTransition(model.InvitationRejected, model.InvitationAccepted))
	assert.False(t, CanTransition(model.InvitationRejected, model.InvitationPending))
}

func TestEarliestStartDate(t *testing.T) {
	invitations := []model.MarathonInvitation{
		inv("alice", model.InvitationAccepted, "2024-01-05"),
		inv("bob", model.InvitationAccepted, "2024-01-02"),
		inv("carol", model.InvitationPending, ""),
		inv("dave", model.InvitationRejected, "2024-01-01"),
	}

	// Seules les invitations acceptées comptent pour l'horloge partagée
	assert.Equal(t, "2024-01-02", EarliestStartDate(invitations))
	assert.Equal(t, "", EarliestStartDate(nil))
}

func TestAcceptedInvitations(t *testing.T) {
	invitations := []model.MarathonInvitation{
		inv("alice", model.InvitationAccepted, "2024-01-05"),
		inv("carol", model.InvitationPending, ""),
		inv("bob", model.InvitationAccepted, "2024-01-02"),
	}

	accepted := AcceptedInvitations(invitations)
	assert.Len(t, accepted, 2)
	assert.Equal(t, "alice", accepted[0].ToUserID)
	assert.Equal(t, "bob", accepted[1].ToUserID)
}
