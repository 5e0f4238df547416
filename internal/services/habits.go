package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
	"github.com/Detroit4455/socbuddy-sub001/internal/database"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/Detroit4455/socbuddy-sub001/internal/scanner"
	"github.com/Detroit4455/socbuddy-sub001/internal/streak"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

const habitColumns = `id, user_id, name, description, frequency,
	current_streak, longest_streak, tags, created_at, updated_at, deleted_at`

// CreateHabit crée un habit pour son propriétaire. Le nom est unique par
// utilisateur (comparaison exacte), sinon 409.
func CreateHabit(ctx context.Context, ownerID string, req model.CreateHabitRequest) (*model.Habit, error) {
	if req.Name == "" {
		return nil, apperr.Validation("habit name is required")
	}
	frequency := req.Frequency
	if frequency == "" {
		frequency = model.FrequencyDaily
	}
	if !model.ValidFrequency(frequency) {
		return nil, apperr.Validation("invalid frequency %q", req.Frequency)
	}

	existing, err := findHabitByExactName(ctx, ownerID, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("habit %q already exists", req.Name)
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	row := database.DB.QueryRow(ctx, `
		INSERT INTO habits(user_id, name, description, frequency, tags, created_at, updated_at)
		VALUES($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING `+habitColumns,
		ownerID, req.Name, req.Description, frequency, pq.Array(tags),
	)

	habit, err := scanner.ScanHabit(row)
	if err != nil {
		return nil, fmt.Errorf("could not create habit: %w", err)
	}
	return habit, nil
}

// GetHabit charge un habit avec son log et ses sessions marathon.
// Seul le propriétaire peut le consulter.
func GetHabit(ctx context.Context, habitID, callerID string) (*model.Habit, error) {
	habit, err := loadHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != callerID {
		return nil, apperr.Unauthorized("not the habit owner")
	}

	if habit.Entries, err = loadHabitLogs(ctx, habitID); err != nil {
		return nil, err
	}
	if habit.Marathons, err = loadSessionsForHabit(ctx, habitID); err != nil {
		return nil, err
	}
	return habit, nil
}

// ListHabits liste les habits (non supprimés) d'un utilisateur
func ListHabits(ctx context.Context, ownerID string) ([]model.Habit, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []model.Habit
	for rows.Next() {
		habit, err := scanner.ScanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *habit)
	}
	return habits, rows.Err()
}

// UpdateHabit met à jour nom/description/fréquence/tags
func UpdateHabit(ctx context.Context, habitID, callerID string, req model.UpdateHabitRequest) (*model.Habit, error) {
	habit, err := loadHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != callerID {
		return nil, apperr.Unauthorized("not the habit owner")
	}
	if req.Name == "" {
		return nil, apperr.Validation("habit name is required")
	}
	if req.Frequency != "" && !model.ValidFrequency(req.Frequency) {
		return nil, apperr.Validation("invalid frequency %q", req.Frequency)
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = habit.Frequency
	}
	tags := req.Tags
	if tags == nil {
		tags = habit.Tags
	}

	row := database.DB.QueryRow(ctx, `
		UPDATE habits
		SET name=$1, description=$2, frequency=$3, tags=$4, updated_at=NOW()
		WHERE id=$5 AND deleted_at IS NULL
		RETURNING `+habitColumns,
		req.Name, req.Description, frequency, pq.Array(tags), habitID,
	)

	updated, err := scanner.ScanHabit(row)
	if err != nil {
		return nil, fmt.Errorf("could not update habit: %w", err)
	}
	return updated, nil
}

// DeleteHabit soft delete l'habit ; ses sessions marathon partent avec
// (suppression dure, les invitations suivent par cascade)
func DeleteHabit(ctx context.Context, habitID, callerID string) error {
	habit, err := loadHabit(ctx, habitID)
	if err != nil {
		return err
	}
	if habit.UserID != callerID {
		return apperr.Unauthorized("not the habit owner")
	}

	if _, err := database.DB.Exec(ctx,
		`DELETE FROM marathon_sessions WHERE habit_id=$1`, habitID,
	); err != nil {
		return fmt.Errorf("could not delete marathon sessions: %w", err)
	}

	res, err := database.DB.Exec(ctx,
		`UPDATE habits SET deleted_at=NOW(), updated_at=NOW() WHERE id=$1 AND deleted_at IS NULL`,
		habitID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("habit not found")
	}
	return nil
}

// TrackHabit enregistre un jour fait / pas fait. Écriture idempotente par
// date (upsert), puis recalcul du streak depuis le log complet : les champs
// current/longest sont un cache dénormalisé, jamais la source de vérité.
func TrackHabit(ctx context.Context, habitID, callerID string, req model.TrackHabitRequest) (*model.Habit, error) {
	habit, err := loadHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != callerID {
		return nil, apperr.Unauthorized("not the habit owner")
	}

	today := streak.Today()
	date := req.Date
	if date == "" {
		date = today
	}
	if _, err := parseDay(date); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, err, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date))
	}

	// Une seule entrée par date : l'upsert écrase, jamais de doublon
	_, err = database.DB.Exec(ctx, `
		INSERT INTO habit_logs(habit_id, log_date, completed, notes, created_at, updated_at)
		VALUES($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (habit_id, log_date)
		DO UPDATE SET completed=EXCLUDED.completed, notes=EXCLUDED.notes, updated_at=NOW()`,
		habitID, date, req.Completed, req.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("could not record entry: %w", err)
	}

	return recomputeStreaks(ctx, habit, today)
}

// RecomputeStreaks reconstruit le cache de streaks depuis le log.
// Chemin de récupération documenté si cache et log divergent.
func RecomputeStreaks(ctx context.Context, habitID, callerID string) (*model.Habit, error) {
	habit, err := loadHabit(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != callerID {
		return nil, apperr.Unauthorized("not the habit owner")
	}
	return recomputeStreaks(ctx, habit, streak.Today())
}

func recomputeStreaks(ctx context.Context, habit *model.Habit, today string) (*model.Habit, error) {
	entries, err := loadHabitLogs(ctx, habit.ID)
	if err != nil {
		return nil, err
	}

	current, longest := streak.Calculate(habit.Frequency, entries, today, habit.LongestStreak)

	_, err = database.DB.Exec(ctx,
		`UPDATE habits SET current_streak=$1, longest_streak=$2, updated_at=NOW() WHERE id=$3`,
		current, longest, habit.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("could not update streaks: %w", err)
	}

	habit.CurrentStreak = current
	habit.LongestStreak = longest
	habit.Entries = entries
	return habit, nil
}

// loadHabit charge un habit par id (NotFound si absent ou supprimé)
func loadHabit(ctx context.Context, habitID string) (*model.Habit, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE id=$1 AND deleted_at IS NULL`,
		habitID,
	)

	habit, err := scanner.ScanHabit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("habit not found")
		}
		return nil, err
	}
	return habit, nil
}

func loadHabitLogs(ctx context.Context, habitID string) ([]model.HabitLogEntry, error) {
	rows, err := database.DB.Query(ctx, `
		SELECT id, habit_id, log_date, completed, notes
		FROM habit_logs
		WHERE habit_id=$1
		ORDER BY log_date ASC`,
		habitID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.HabitLogEntry
	for rows.Next() {
		entry, err := scanner.ScanHabitLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// findHabitByExactName correspondance stricte, utilisée à la création et
// par l'auto-provisionnement marathon
func findHabitByExactName(ctx context.Context, ownerID, name string) (*model.Habit, error) {
	return findHabitByName(ctx, ownerID, name, false)
}

// findHabitByFoldedName correspondance insensible à la casse, utilisée par
// l'agrégation de progression pour relier les habits des participants
func findHabitByFoldedName(ctx context.Context, ownerID, name string) (*model.Habit, error) {
	return findHabitByName(ctx, ownerID, name, true)
}

func findHabitByName(ctx context.Context, ownerID, name string, foldCase bool) (*model.Habit, error) {
	where := `name = $2`
	if foldCase {
		where = `LOWER(name) = LOWER($2)`
	}

	row := database.DB.QueryRow(ctx, `
		SELECT `+habitColumns+`
		FROM habits
		WHERE user_id = $1 AND `+where+` AND deleted_at IS NULL
		ORDER BY created_at ASC
		LIMIT 1`,
		ownerID, name,
	)

	habit, err := scanner.ScanHabit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return habit, nil
}

// provisionHabit crée l'habit d'accueil d'un participant qui accepte une
// invitation (log vide, streaks à zéro)
func provisionHabit(ctx context.Context, ownerID, name, frequency string) (*model.Habit, error) {
	if !model.ValidFrequency(frequency) {
		frequency = model.FrequencyDaily
	}

	row := database.DB.QueryRow(ctx, `
		INSERT INTO habits(user_id, name, description, frequency, tags, created_at, updated_at)
		VALUES($1, $2, '', $3, '{}', NOW(), NOW())
		RETURNING `+habitColumns,
		ownerID, name, frequency,
	)
	return scanner.ScanHabit(row)
}

func parseDay(date string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, date, time.UTC)
}
