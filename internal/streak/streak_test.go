package streak

import (
	"testing"

	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/stretchr/testify/assert"
)

func entry(date string, completed bool) model.HabitLogEntry {
	return model.HabitLogEntry{Date: date, Completed: completed}
}

func TestDailyStreakConsecutive(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-03", true),
		entry("2024-01-02", true),
		entry("2024-01-01", true),
	}

	current, longest := Calculate(model.FrequencyDaily, entries, "2024-01-03", 0)
	assert.Equal(t, 3, current)
	assert.Equal(t, 3, longest)
}

func TestDailyStreakUnorderedInput(t *testing.T) {
	// Le log est stocké sans ordre garanti
	entries := []model.HabitLogEntry{
		entry("2024-01-01", true),
		entry("2024-01-03", true),
		entry("2024-01-02", true),
	}

	current, _ := Calculate(model.FrequencyDaily, entries, "2024-01-03", 0)
	assert.Equal(t, 3, current)
}

func TestDailyStreakGapBreaks(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-03", true),
		entry("2024-01-01", true), // trou le 01-02
	}

	current, _ := Calculate(model.FrequencyDaily, entries, "2024-01-03", 0)
	assert.Equal(t, 1, current)
}

func TestDailyStreakIncompleteStops(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-03", false),
	}

	current, longest := Calculate(model.FrequencyDaily, entries, "2024-01-03", 0)
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

func TestDailyStreakIncompleteInMiddle(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-04", true),
		entry("2024-01-03", true),
		entry("2024-01-02", false),
		entry("2024-01-01", true),
	}

	current, _ := Calculate(model.FrequencyDaily, entries, "2024-01-04", 0)
	assert.Equal(t, 2, current)
}

func TestDailyStreakSkipsFutureEntries(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-05", true), // pré-rempli dans le futur
		entry("2024-01-03", true),
		entry("2024-01-02", true),
	}

	current, _ := Calculate(model.FrequencyDaily, entries, "2024-01-03", 0)
	assert.Equal(t, 2, current)
}

func TestDailyStreakMissingTodayDoesNotBreak(t *testing.T) {
	// Aujourd'hui pas encore rempli : la série d'hier tient toujours
	entries := []model.HabitLogEntry{
		entry("2024-01-02", true),
		entry("2024-01-01", true),
	}

	current, _ := Calculate(model.FrequencyDaily, entries, "2024-01-03", 0)
	assert.Equal(t, 2, current)
}

func TestDailyStreakAcrossMonthBoundary(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-02-01", true),
		entry("2024-01-31", true),
	}

	current, _ := Calculate(model.FrequencyDaily, entries, "2024-02-01", 0)
	assert.Equal(t, 2, current)
}

func TestEmptyLog(t *testing.T) {
	current, longest := Calculate(model.FrequencyDaily, nil, "2024-01-03", 0)
	assert.Equal(t, 0, current)
	assert.Equal(t, 0, longest)
}

func TestLongestStreakMonotonic(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-10", true),
	}

	current, longest := Calculate(model.FrequencyDaily, entries, "2024-01-10", 7)
	assert.Equal(t, 1, current)
	assert.Equal(t, 7, longest)

	// Recalcul successif : jamais de régression
	_, longest2 := Calculate(model.FrequencyDaily, entries, "2024-01-10", longest)
	assert.GreaterOrEqual(t, longest2, longest)
}

func TestWeeklyStreakDegraded(t *testing.T) {
	// 2024-01-03 est un mercredi, 2024-01-01 le lundi de la même semaine ISO
	entries := []model.HabitLogEntry{entry("2024-01-01", true)}
	current, _ := Calculate(model.FrequencyWeekly, entries, "2024-01-03", 0)
	assert.Equal(t, 1, current)

	// Semaine précédente : aucune consécutivité, juste 0
	current, _ = Calculate(model.FrequencyWeekly, entries, "2024-01-10", 0)
	assert.Equal(t, 0, current)
}

func TestMonthlyStreakDegraded(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-05", true),
		entry("2024-01-06", false),
	}

	current, _ := Calculate(model.FrequencyMonthly, entries, "2024-01-20", 0)
	assert.Equal(t, 1, current)

	current, _ = Calculate(model.FrequencyMonthly, entries, "2024-02-20", 0)
	assert.Equal(t, 0, current)
}

func TestFilterFrom(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-01", true),
		entry("2024-01-05", true),
		entry("2024-01-10", false),
	}

	filtered := FilterFrom(entries, "2024-01-05")
	assert.Len(t, filtered, 2)
	assert.Equal(t, "2024-01-05", filtered[0].Date)

	assert.Len(t, FilterFrom(entries, ""), 3)
}

func TestProgress(t *testing.T) {
	entries := []model.HabitLogEntry{
		entry("2024-01-01", true),
		entry("2024-01-02", true),
		entry("2024-01-03", false),
	}

	completed, total, rate := Progress(entries)
	assert.Equal(t, 2, completed)
	assert.Equal(t, 3, total)
	assert.Equal(t, 67, rate)
}

func TestProgressEmptyWindow(t *testing.T) {
	completed, total, rate := Progress(nil)
	assert.Equal(t, 0, completed)
	assert.Equal(t, 0, total)
	assert.Equal(t, 0, rate)
}
