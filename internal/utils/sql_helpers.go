package utils

import (
	"database/sql"
	"time"

	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
)

// NullTimeToPointer convertit sql.NullTime en *time.Time
func NullTimeToPointer(nt sql.NullTime) *time.Time {
	if nt.Valid {
		return &nt.Time
	}
	return nil
}

// NullTimeToDay convertit une DATE nullable en jour YYYY-MM-DD ("" si NULL)
func NullTimeToDay(nt sql.NullTime) string {
	if nt.Valid {
		return nt.Time.Format(model.DateLayout)
	}
	return ""
}
