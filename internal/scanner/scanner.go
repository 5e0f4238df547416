package scanner

import (
	"database/sql"
	"time"

	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/Detroit4455/socbuddy-sub001/internal/utils"
	"github.com/lib/pq"
)

// ScanHabit scanne une ligne SQL vers un Habit
// Colonnes attendues : id, user_id, name, description, frequency,
// current_streak, longest_streak, tags, created_at, updated_at, deleted_at
func ScanHabit(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Habit, error) {
	var h model.Habit
	var deletedAt sql.NullTime

	err := scanner.Scan(
		&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency,
		&h.CurrentStreak, &h.LongestStreak, pq.Array(&h.Tags),
		&h.CreatedAt, &h.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, err
	}

	h.DeletedAt = utils.NullTimeToPointer(deletedAt)

	return &h, nil
}

// ScanHabitLog scanne une ligne SQL vers une HabitLogEntry
// Colonnes attendues : id, habit_id, log_date, completed, notes
func ScanHabitLog(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.HabitLogEntry, error) {
	var e model.HabitLogEntry
	var day time.Time

	err := scanner.Scan(&e.ID, &e.HabitID, &day, &e.Completed, &e.Notes)
	if err != nil {
		return nil, err
	}

	e.Date = day.Format(model.DateLayout)

	return &e, nil
}

// ScanMarathonSession scanne une ligne SQL vers une MarathonSession
// Colonnes attendues : id, habit_id, group_name, initiated_by, habit_name, created_at
func ScanMarathonSession(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.MarathonSession, error) {
	var s model.MarathonSession

	err := scanner.Scan(&s.ID, &s.HabitID, &s.GroupName, &s.InitiatedBy, &s.HabitName, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// ScanInvitation scanne une ligne SQL vers une MarathonInvitation
// Colonnes attendues : id, marathon_id, to_user_id, status, start_date, created_at, updated_at
func ScanInvitation(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.MarathonInvitation, error) {
	var inv model.MarathonInvitation
	var startDate sql.NullTime

	err := scanner.Scan(&inv.ID, &inv.MarathonID, &inv.ToUserID, &inv.Status, &startDate, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	inv.StartDate = utils.NullTimeToDay(startDate)

	return &inv, nil
}
