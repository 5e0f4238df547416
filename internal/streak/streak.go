package streak

import (
	"math"
	"sort"
	"time"

	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
)

// Calculate recalcule les streaks d'un habit à partir de son log complet.
// Le longest streak est un cache monotone : il ne redescend jamais et n'est
// pas recalculé depuis l'historique, seulement relevé par le streak courant.
func Calculate(frequency string, entries []model.HabitLogEntry, today string, previousLongest int) (current int, longest int) {
	switch frequency {
	case model.FrequencyWeekly, model.FrequencyMonthly:
		current = periodStreak(frequency, entries, today)
	default:
		current = dailyStreak(entries, today)
	}

	longest = previousLongest
	if current > longest {
		longest = current
	}
	return current, longest
}

// dailyStreak compte les jours complétés consécutifs en remontant depuis
// l'entrée la plus récente qui n'est pas dans le futur. Un trou de plus d'un
// jour casse la série même si les deux entrées sont complétées.
func dailyStreak(entries []model.HabitLogEntry, today string) int {
	sorted := sortedByDateDesc(entries)

	// Sauter les entrées datées après aujourd'hui
	i := 0
	for i < len(sorted) && sorted[i].Date > today {
		i++
	}

	count := 0
	for ; i < len(sorted); i++ {
		if !sorted[i].Completed {
			break
		}
		count++

		if i+1 < len(sorted) {
			next, err := parseDay(sorted[i+1].Date)
			if err != nil {
				break
			}
			cur, err := parseDay(sorted[i].Date)
			if err != nil {
				break
			}
			// La série continue seulement si l'entrée suivante est la veille exacte
			if !next.AddDate(0, 0, 1).Equal(cur) {
				break
			}
		}
	}
	return count
}

// periodStreak sémantique dégradée pour weekly/monthly : 1 si une entrée
// complétée existe dans la période courante, sinon 0.
func periodStreak(frequency string, entries []model.HabitLogEntry, today string) int {
	ref, err := parseDay(today)
	if err != nil {
		return 0
	}

	for _, e := range entries {
		if !e.Completed {
			continue
		}
		day, err := parseDay(e.Date)
		if err != nil {
			continue
		}
		if frequency == model.FrequencyWeekly {
			refYear, refWeek := ref.ISOWeek()
			y, w := day.ISOWeek()
			if y == refYear && w == refWeek {
				return 1
			}
		} else {
			if day.Year() == ref.Year() && day.Month() == ref.Month() {
				return 1
			}
		}
	}
	return 0
}

// FilterFrom garde les entrées dont la date est >= start (comparaison
// lexicographique, valide pour le format YYYY-MM-DD).
func FilterFrom(entries []model.HabitLogEntry, start string) []model.HabitLogEntry {
	if start == "" {
		return entries
	}
	filtered := make([]model.HabitLogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= start {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Progress calcule jours complétés / total / taux arrondi en pourcentage
func Progress(entries []model.HabitLogEntry) (completed int, total int, rate int) {
	total = len(entries)
	for _, e := range entries {
		if e.Completed {
			completed++
		}
	}
	if total > 0 {
		rate = int(math.Round(float64(completed) * 100 / float64(total)))
	}
	return completed, total, rate
}

func sortedByDateDesc(entries []model.HabitLogEntry) []model.HabitLogEntry {
	sorted := make([]model.HabitLogEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

func parseDay(date string) (time.Time, error) {
	return time.ParseInLocation(model.DateLayout, date, time.UTC)
}

// Today jour calendaire courant au format YYYY-MM-DD
func Today() string {
	return time.Now().Format(model.DateLayout)
}
