package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
	"github.com/Detroit4455/socbuddy-sub001/internal/database"
	"github.com/Detroit4455/socbuddy-sub001/internal/marathon"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/Detroit4455/socbuddy-sub001/internal/scanner"
	"github.com/Detroit4455/socbuddy-sub001/internal/streak"
	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateMarathon démarre une session de groupe sur un habit du caller.
// Le nom de l'habit est figé dans la session : c'est la clé de liaison
// entre les habits indépendants des participants.
func CreateMarathon(ctx context.Context, habitID, callerID string, req model.CreateMarathonRequest) (*model.MarathonSession, error) {
	if len(req.UserIDs) == 0 {
		return nil, apperr.Validation("invitee list cannot be empty")
	}

	habit, err := loadHabit(ctx, habitID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Validation("habit not found")
		}
		return nil, err
	}
	if habit.UserID != callerID {
		return nil, apperr.Validation("caller does not own the habit")
	}

	buckets := marathon.ClassifyInvitees(nil, callerID, req.UserIDs)
	if len(buckets.Fresh) == 0 {
		return nil, apperr.Validation("invitee list cannot be empty")
	}
	if err := requireKnownUsers(ctx, buckets.Fresh); err != nil {
		return nil, err
	}

	marathonID := uuid.NewString()

	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	session := &model.MarathonSession{
		ID:          marathonID,
		HabitID:     habitID,
		GroupName:   req.GroupName,
		InitiatedBy: callerID,
		HabitName:   habit.Name,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO marathon_sessions(id, habit_id, group_name, initiated_by, habit_name, created_at)
		VALUES($1, $2, $3, $4, $5, NOW())
		RETURNING created_at`,
		marathonID, habitID, req.GroupName, callerID, habit.Name,
	).Scan(&session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("could not create marathon session: %w", err)
	}

	for _, userID := range buckets.Fresh {
		inv := model.MarathonInvitation{MarathonID: marathonID, ToUserID: userID, Status: model.InvitationPending}
		err = tx.QueryRow(ctx, `
			INSERT INTO marathon_invitations(marathon_id, to_user_id, status, created_at, updated_at)
			VALUES($1, $2, 'pending', NOW(), NOW())
			RETURNING id, created_at, updated_at`,
			marathonID, userID,
		).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not create invitation: %w", err)
		}
		session.Invitations = append(session.Invitations, inv)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// AddParticipants ajoute des invités à une session existante. Le batch est
// classé plutôt que tout-ou-rien : ajoutés / doublons / déjà rejetés sont
// rapportés séparément. Les rejetés ne sont ré-invités que si le caller le
// demande explicitement (resubmitRejected).
func AddParticipants(ctx context.Context, marathonID, callerID string, req model.AddParticipantsRequest, resubmitRejected bool) (*model.AddParticipantsResult, error) {
	if len(req.UserIDs) == 0 {
		return nil, apperr.Validation("invitee list cannot be empty")
	}

	session, err := loadSession(ctx, marathonID)
	if err != nil {
		return nil, err
	}
	if session.InitiatedBy != callerID {
		return nil, apperr.Unauthorized("only the marathon owner can add participants")
	}

	existing, err := loadInvitations(ctx, marathonID)
	if err != nil {
		return nil, err
	}

	buckets := marathon.ClassifyInvitees(existing, session.InitiatedBy, req.UserIDs)

	result := &model.AddParticipantsResult{
		Duplicates:         buckets.Duplicates,
		PreviouslyRejected: buckets.PreviouslyRejected,
	}

	resubmitted := []string{}
	if resubmitRejected {
		resubmitted = buckets.PreviouslyRejected
		result.PreviouslyRejected = nil
	}

	if len(buckets.Fresh) == 0 && len(resubmitted) == 0 {
		return nil, apperr.Validation("no new invitees (duplicates: %s; previously rejected: %s)",
			joinOrNone(buckets.Duplicates), joinOrNone(buckets.PreviouslyRejected))
	}

	if err := requireKnownUsers(ctx, buckets.Fresh); err != nil {
		return nil, err
	}

	for _, userID := range buckets.Fresh {
		_, err := database.DB.Exec(ctx, `
			INSERT INTO marathon_invitations(marathon_id, to_user_id, status, created_at, updated_at)
			VALUES($1, $2, 'pending', NOW(), NOW())`,
			marathonID, userID,
		)
		if err != nil {
			return nil, fmt.Errorf("could not create invitation: %w", err)
		}
		result.Added = append(result.Added, userID)
	}

	// Ré-invitation explicite : remise à zéro de l'enregistrement rejeté.
	// La garde sur le statut peut ne toucher aucune ligne si l'invitation a
	// changé entre-temps ; dans ce cas elle n'est pas rapportée comme ajoutée.
	for _, userID := range resubmitted {
		res, err := database.DB.Exec(ctx, `
			UPDATE marathon_invitations
			SET status='pending', start_date=NULL, updated_at=NOW()
			WHERE marathon_id=$1 AND to_user_id=$2 AND status='rejected'`,
			marathonID, userID,
		)
		if err != nil {
			return nil, fmt.Errorf("could not reset invitation: %w", err)
		}
		recordResubmit(result, userID, res.RowsAffected() > 0)
	}

	return result, nil
}

// recordResubmit classe le résultat d'une ré-invitation : ajoutée si la ligne
// rejetée a bien été remise à pending, doublon si elle avait déjà changé
func recordResubmit(result *model.AddParticipantsResult, userID string, reset bool) {
	if reset {
		result.Added = append(result.Added, userID)
		return
	}
	result.Duplicates = append(result.Duplicates, userID)
}

// RespondToInvitation accepte ou rejette sa propre invitation.
// L'acceptation fige la startDate au jour courant (une seule fois, garde sur
// le statut pending) et auto-provisionne un habit du même nom si l'invité
// n'en a pas (comparaison exacte). L'échec du provisionnement n'annule
// jamais l'acceptation.
func RespondToInvitation(ctx context.Context, marathonID, callerID, response string) (*model.RespondInvitationResult, error) {
	if response != model.InvitationAccepted && response != model.InvitationRejected {
		return nil, apperr.Validation("status must be %q or %q", model.InvitationAccepted, model.InvitationRejected)
	}

	session, err := loadSession(ctx, marathonID)
	if err != nil {
		return nil, err
	}

	inv, err := loadInvitation(ctx, marathonID, callerID)
	if err != nil {
		return nil, err
	}

	if inv.Status != model.InvitationPending {
		if inv.Status == response {
			// Déjà répondu pareil : no-op, la startDate n'est pas re-posée
			return &model.RespondInvitationResult{Invitation: *inv}, nil
		}
		return nil, apperr.Conflict("invitation already %s", inv.Status)
	}
	if !marathon.CanTransition(inv.Status, response) {
		return nil, apperr.Conflict("cannot move invitation from %s to %s", inv.Status, response)
	}

	today := streak.Today()

	if response == model.InvitationAccepted {
		// Garde sur le statut : un second accept concurrent ne re-pose pas la date
		_, err = database.DB.Exec(ctx, `
			UPDATE marathon_invitations
			SET status='accepted', start_date=$3, updated_at=NOW()
			WHERE marathon_id=$1 AND to_user_id=$2 AND status='pending'`,
			marathonID, callerID, today,
		)
	} else {
		_, err = database.DB.Exec(ctx, `
			UPDATE marathon_invitations
			SET status='rejected', updated_at=NOW()
			WHERE marathon_id=$1 AND to_user_id=$2 AND status='pending'`,
			marathonID, callerID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("could not update invitation: %w", err)
	}

	updated, err := loadInvitation(ctx, marathonID, callerID)
	if err != nil {
		return nil, err
	}
	result := &model.RespondInvitationResult{Invitation: *updated}

	if response == model.InvitationAccepted {
		existing, err := findHabitByExactName(ctx, callerID, session.HabitName)
		if err != nil {
			utils.LogError("auto-provision lookup failed for marathon %s: %v", marathonID, err)
			return result, nil
		}
		if existing != nil {
			result.HabitID = existing.ID
			return result, nil
		}

		frequency := model.FrequencyDaily
		if ownerHabit, err := loadHabit(ctx, session.HabitID); err == nil {
			frequency = ownerHabit.Frequency
		}

		created, err := provisionHabit(ctx, callerID, session.HabitName, frequency)
		if err != nil {
			// L'acceptation reste acquise même sans habit d'accueil
			utils.LogError("could not auto-provision habit for marathon %s: %v", marathonID, err)
			return result, nil
		}
		result.HabitCreated = true
		result.HabitID = created.ID
	}

	return result, nil
}

// LeaveSession quitter = auto-rejet d'une invitation acceptée,
// l'historique est conservé
func LeaveSession(ctx context.Context, marathonID, callerID string) error {
	if _, err := loadSession(ctx, marathonID); err != nil {
		return err
	}

	res, err := database.DB.Exec(ctx, `
		UPDATE marathon_invitations
		SET status='rejected', updated_at=NOW()
		WHERE marathon_id=$1 AND to_user_id=$2 AND status='accepted'`,
		marathonID, callerID,
	)
	if err != nil {
		return fmt.Errorf("could not leave marathon: %w", err)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("no accepted invitation for this user")
	}
	return nil
}

// DeleteMarathon seul le propriétaire supprime ; les invitations suivent
// par cascade
func DeleteMarathon(ctx context.Context, marathonID, callerID string) error {
	session, err := loadSession(ctx, marathonID)
	if err != nil {
		return err
	}
	if session.InitiatedBy != callerID {
		return apperr.Unauthorized("only the marathon owner can delete it")
	}

	_, err = database.DB.Exec(ctx, `DELETE FROM marathon_sessions WHERE id=$1`, marathonID)
	if err != nil {
		return fmt.Errorf("could not delete marathon: %w", err)
	}
	return nil
}

// GetProgress agrège la progression de tous les participants (vue générale,
// triée par taux de complétion puis username)
func GetProgress(ctx context.Context, habitID, marathonID, callerID string) (*model.MarathonProgress, error) {
	habit, session, invitations, err := loadProgressContext(ctx, habitID, marathonID)
	if err != nil {
		return nil, err
	}

	participants, startDate, err := aggregateProgress(ctx, habit, session, invitations, callerID)
	if err != nil {
		return nil, err
	}

	return &model.MarathonProgress{
		MarathonID:   session.ID,
		GroupName:    session.GroupName,
		HabitName:    session.HabitName,
		StartDate:    startDate,
		Participants: marathon.SortByRate(participants),
	}, nil
}

// GetLeaderboard podium du marathon : volume brut d'abord, tronqué à n
func GetLeaderboard(ctx context.Context, habitID, marathonID, callerID string, n int) (*model.MarathonProgress, error) {
	habit, session, invitations, err := loadProgressContext(ctx, habitID, marathonID)
	if err != nil {
		return nil, err
	}

	participants, startDate, err := aggregateProgress(ctx, habit, session, invitations, callerID)
	if err != nil {
		return nil, err
	}

	return &model.MarathonProgress{
		MarathonID:   session.ID,
		GroupName:    session.GroupName,
		HabitName:    session.HabitName,
		StartDate:    startDate,
		Participants: marathon.TopN(participants, n),
	}, nil
}

// ListMarathons sessions où l'utilisateur est propriétaire ou invité
func ListMarathons(ctx context.Context, userID string) ([]model.MarathonSession, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT DISTINCT s.id, s.habit_id, s.group_name, s.initiated_by, s.habit_name, s.created_at
		FROM marathon_sessions s
		LEFT JOIN marathon_invitations i ON s.id = i.marathon_id
		WHERE s.initiated_by = $1 OR i.to_user_id = $1
		ORDER BY s.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.MarathonSession
	for rows.Next() {
		session, err := scanner.ScanMarathonSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].Invitations, err = loadInvitations(ctx, sessions[i].ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

// aggregateProgress cœur de l'agrégation multi-participants :
// autorisation, résolution de la date de départ effective, fenêtrage du log
// de chaque participant depuis sa propre date, calcul fait/total/taux.
func aggregateProgress(ctx context.Context, habit *model.Habit, session *model.MarathonSession, invitations []model.MarathonInvitation, callerID string) ([]model.ParticipantProgress, string, error) {
	isOwner := session.InitiatedBy == callerID

	var callerInv model.MarathonInvitation
	if !isOwner {
		inv, ok := marathon.FindInvitation(invitations, callerID)
		if !ok || inv.Status != model.InvitationAccepted {
			return nil, "", apperr.NotFound("marathon not found")
		}
		callerInv = inv
	}

	accepted := marathon.AcceptedInvitations(invitations)
	if isOwner && len(accepted) == 0 {
		return nil, "", apperr.Validation("marathon not started yet")
	}

	earliest := marathon.EarliestStartDate(invitations)

	// Le propriétaire voit l'horloge partagée, un participant sa propre fenêtre
	startDate := earliest
	if !isOwner {
		startDate = callerInv.StartDate
	}

	ids := make([]string, 0, len(accepted)+1)
	ids = append(ids, session.InitiatedBy)
	startByUser := map[string]string{session.InitiatedBy: earliest}
	for _, inv := range accepted {
		ids = append(ids, inv.ToUserID)
		startByUser[inv.ToUserID] = inv.StartDate
	}

	usernames, err := utils.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, "", err
	}

	participants := make([]model.ParticipantProgress, 0, len(ids))
	for _, userID := range ids {
		p := model.ParticipantProgress{UserID: userID, Username: usernames[userID]}

		theirHabit, err := participantHabit(ctx, habit, session, userID)
		if err != nil {
			return nil, "", err
		}
		// Un participant sans habit correspondant compte 0/0/0 au lieu de
		// faire échouer tout l'appel
		if theirHabit != nil {
			entries, err := loadHabitLogs(ctx, theirHabit.ID)
			if err != nil {
				return nil, "", err
			}
			window := streak.FilterFrom(entries, startByUser[userID])
			p.CompletedDays, p.TotalDays, p.CompletionRate = streak.Progress(window)
		}

		participants = append(participants, p)
	}

	return participants, startDate, nil
}

// participantHabit résout l'habit d'un participant : le propriétaire garde
// l'habit porteur, les autres sont reliés par nom (insensible à la casse)
func participantHabit(ctx context.Context, habit *model.Habit, session *model.MarathonSession, userID string) (*model.Habit, error) {
	if userID == session.InitiatedBy {
		return habit, nil
	}
	return findHabitByFoldedName(ctx, userID, session.HabitName)
}

func loadProgressContext(ctx context.Context, habitID, marathonID string) (*model.Habit, *model.MarathonSession, []model.MarathonInvitation, error) {
	habit, err := loadHabit(ctx, habitID)
	if err != nil {
		return nil, nil, nil, err
	}

	session, err := loadSession(ctx, marathonID)
	if err != nil {
		return nil, nil, nil, err
	}
	if session.HabitID != habitID {
		return nil, nil, nil, apperr.NotFound("marathon not found")
	}

	invitations, err := loadInvitations(ctx, marathonID)
	if err != nil {
		return nil, nil, nil, err
	}
	return habit, session, invitations, nil
}

func loadSession(ctx context.Context, marathonID string) (*model.MarathonSession, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT id, habit_id, group_name, initiated_by, habit_name, created_at
		FROM marathon_sessions
		WHERE id=$1`,
		marathonID,
	)

	session, err := scanner.ScanMarathonSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("marathon not found")
		}
		return nil, err
	}
	return session, nil
}

func loadSessionsForHabit(ctx context.Context, habitID string) ([]model.MarathonSession, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, habit_id, group_name, initiated_by, habit_name, created_at
		FROM marathon_sessions
		WHERE habit_id=$1
		ORDER BY created_at ASC`,
		habitID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.MarathonSession
	for rows.Next() {
		session, err := scanner.ScanMarathonSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].Invitations, err = loadInvitations(ctx, sessions[i].ID); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func loadInvitations(ctx context.Context, marathonID string) ([]model.MarathonInvitation, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, marathon_id, to_user_id, status, start_date, created_at, updated_at
		FROM marathon_invitations
		WHERE marathon_id=$1
		ORDER BY created_at ASC`,
		marathonID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []model.MarathonInvitation
	for rows.Next() {
		inv, err := scanner.ScanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, *inv)
	}
	return invitations, rows.Err()
}

func loadInvitation(ctx context.Context, marathonID, userID string) (*model.MarathonInvitation, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT id, marathon_id, to_user_id, status, start_date, created_at, updated_at
		FROM marathon_invitations
		WHERE marathon_id=$1 AND to_user_id=$2`,
		marathonID, userID,
	)

	inv, err := scanner.ScanInvitation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("invitation not found")
		}
		return nil, err
	}
	return inv, nil
}

// requireKnownUsers refuse les ids d'invités inconnus
func requireKnownUsers(ctx context.Context, userIDs []string) error {
	if len(userIDs) == 0 {
		return nil
	}
	usernames, err := utils.UsernamesByIDs(ctx, userIDs)
	if err != nil {
		return err
	}

	var unknown []string
	for _, id := range userIDs {
		if _, ok := usernames[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return apperr.Validation("unknown users: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return "none"
	}
	return strings.Join(ids, ", ")
}
