package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bizdesk/internal/domains/schedule/model"
)

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    model.Status
		to      model.Status
		allowed bool
	}{
		{name: "scheduled to confirmed", from: model.StatusScheduled, to: model.StatusConfirmed, allowed: true},
		{name: "scheduled to cancelled", from: model.StatusScheduled, to: model.StatusCancelled, allowed: true},
		{name: "scheduled to in progress", from: model.StatusScheduled, to: model.StatusInProgress, allowed: false},
		{name: "scheduled to no show", from: model.StatusScheduled, to: model.StatusNoShow, allowed: false},
		{name: "confirmed to in progress", from: model.StatusConfirmed, to: model.StatusInProgress, allowed: true},
		{name: "confirmed to cancelled", from: model.StatusConfirmed, to: model.StatusCancelled, allowed: true},
		{name: "confirmed to no show", from: model.StatusConfirmed, to: model.StatusNoShow, allowed: true},
		{name: "in progress to completed", from: model.StatusInProgress, to: model.StatusCompleted, allowed: true},
		{name: "in progress to cancelled", from: model.StatusInProgress, to: model.StatusCancelled, allowed: false},
		{name: "completed is terminal", from: model.StatusCompleted, to: model.StatusScheduled, allowed: false},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusConfirmed, allowed: false},
		{name: "no show is terminal", from: model.StatusNoShow, to: model.StatusScheduled, allowed: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.allowed, test.from.CanTransitionTo(test.to))
		})
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, model.StatusCompleted.Terminal())
	assert.True(t, model.StatusCancelled.Terminal())
	assert.True(t, model.StatusNoShow.Terminal())
	assert.False(t, model.StatusScheduled.Terminal())
	assert.False(t, model.StatusConfirmed.Terminal())
	assert.False(t, model.StatusInProgress.Terminal())
	assert.False(t, model.Status("UNKNOWN").Terminal())
}

func TestStatusActive(t *testing.T) {
	assert.True(t, model.StatusScheduled.Active())
	assert.True(t, model.StatusConfirmed.Active())
	assert.True(t, model.StatusInProgress.Active())
	assert.False(t, model.StatusCompleted.Active())
	assert.False(t, model.StatusCancelled.Active())
	assert.False(t, model.StatusNoShow.Active())
}

func TestStatusCanCheckIn(t *testing.T) {
	assert.True(t, model.StatusScheduled.CanCheckIn())
	assert.True(t, model.StatusConfirmed.CanCheckIn())
	assert.False(t, model.StatusInProgress.CanCheckIn())
	assert.False(t, model.StatusCompleted.CanCheckIn())
	assert.False(t, model.StatusCancelled.CanCheckIn())
}

func TestStatusValid(t *testing.T) {
	assert.True(t, model.StatusScheduled.Valid())
	assert.False(t, model.Status("PENDING").Valid())
}
