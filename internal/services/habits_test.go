package services

import (
	"context"
	"testing"

	"github.com/Detroit4455/socbuddy-sub001/internal/apperr"
	model "github.com/Detroit4455/socbuddy-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHabitNameRequired(t *testing.T) {
	_, err := CreateHabit(context.Background(), "owner-1", model.CreateHabitRequest{Frequency: model.FrequencyDaily})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestCreateHabitInvalidFrequency(t *testing.T) {
	_, err := CreateHabit(context.Background(), "owner-1", model.CreateHabitRequest{Name: "lecture", Frequency: "hourly"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
