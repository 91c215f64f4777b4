package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInvalidReasonFresh(t *testing.T) {
	inv := Invitation{ExpiresAt: time.Now().Add(time.Hour)}

	assert.False(t, inv.IsAccepted())
	assert.False(t, inv.IsExpired())
	assert.Empty(t, inv.InvalidReason())
}

func TestInvalidReasonExpired(t *testing.T) {
	inv := Invitation{ExpiresAt: time.Now().Add(-time.Minute)}

	assert.True(t, inv.IsExpired())
	assert.Equal(t, InvitationErrExpired, inv.InvalidReason())
}

func TestInvalidReasonAccepted(t *testing.T) {
	accepted := time.Now().Add(-time.Hour)
	inv := Invitation{
		ExpiresAt:  time.Now().Add(time.Hour),
		AcceptedAt: &accepted,
	}

	assert.True(t, inv.IsAccepted())
	assert.Equal(t, InvitationErrAlreadyUsed, inv.InvalidReason())
}

func TestInvalidReasonAcceptedWinsOverExpired(t *testing.T) {
	accepted := time.Now().Add(-2 * time.Hour)
	inv := Invitation{
		ExpiresAt:  time.Now().Add(-time.Hour),
		AcceptedAt: &accepted,
	}

	assert.Equal(t, InvitationErrAlreadyUsed, inv.InvalidReason())
}
