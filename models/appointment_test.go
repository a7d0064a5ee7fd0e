package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to string }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	rejected := []struct{ from, to string }{
		{StatusPending, StatusCompleted},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusConfirmed},
		{StatusCompleted, StatusConfirmed},
		{StatusCompleted, StatusCancelled},
		{StatusConfirmed, StatusPending},
		{StatusPending, StatusPending},
	}
	for _, tc := range rejected {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}
