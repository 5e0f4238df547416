package marathon

import (
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
)

// InviteeBuckets classement d'un batch d'invités par sort à leur réserver
type InviteeBuckets struct {
	Fresh              []string // jamais invités : nouvelle invitation pending
	Duplicates         []string // invitation pending/accepted existante : refusé
	PreviouslyRejected []string // invitation rejected existante : ré-invitable explicitement seulement
}

// ClassifyInvitees trie les candidats face aux invitations existantes.
// Le batch est dédupliqué et le propriétaire n'apparaît jamais comme invité.
func ClassifyInvitees(existing []model.MarathonInvitation, ownerID string, candidates []string) InviteeBuckets {
	byUser := make(map[string]string, len(existing))
	for _, inv := range existing {
		byUser[inv.ToUserID] = inv.Status
	}

	var buckets InviteeBuckets
	seen := make(map[string]bool, len(candidates))
	for _, id := range candidates {
		if id == "" || id == ownerID || seen[id] {
			continue
		}
		seen[id] = true

		switch byUser[id] {
		case model.InvitationPending, model.InvitationAccepted:
			buckets.Duplicates = append(buckets.Duplicates, id)
		case model.InvitationRejected:
			buckets.PreviouslyRejected = append(buckets.PreviouslyRejected, id)
		default:
			buckets.Fresh = append(buckets.Fresh, id)
		}
	}
	return buckets
}

// FindInvitation retrouve l'invitation d'un utilisateur dans une session
func FindInvitation(invitations []model.MarathonInvitation, userID string) (model.MarathonInvitation, bool) {
	for _, inv := range invitations {
		if inv.ToUserID == userID {
			return inv, true
		}
	}
	return model.MarathonInvitation{}, false
}

// CanTransition transitions légales du cycle de vie d'une invitation :
// pending -> accepted, pending -> rejected, accepted -> rejected (leave)
func CanTransition(from, to string) bool {
	switch from {
	case model.InvitationPending:
		return to == model.InvitationAccepted || to == model.InvitationRejected
	case model.InvitationAccepted:
		return to == model.InvitationRejected
	default:
		return false
	}
}

// AcceptedInvitations sous-ensemble accepté, dans l'ordre d'origine
func AcceptedInvitations(invitations []model.MarathonInvitation) []model.MarathonInvitation {
	accepted := make([]model.MarathonInvitation, 0, len(invitations))
	for _, inv := range invitations {
		if inv.Status == model.InvitationAccepted {
			accepted = append(accepted, inv)
		}
	}
	return accepted
}

// EarliestStartDate plus ancienne date de départ parmi les invitations
// acceptées : l'horloge partagée du marathon, vue par le propriétaire
func EarliestStartDate(invitations []model.MarathonInvitation) string {
	earliest := ""
	for _, inv := range invitations {
		if inv.Status != model.InvitationAccepted || inv.StartDate == "" {
			continue
		}
		if earliest == "" || inv.StartDate < earliest {
			earliest = inv.StartDate
		}
	}
	return earliest
}
