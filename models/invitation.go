package models

import (
	"time"
)

// Reasons returned when a token fails validation.
const (
	InvitationErrNotFound    = "invitation_not_found"
	InvitationErrAlreadyUsed = "invitation_already_used"
	InvitationErrExpired     = "invitation_expired"
)

// Invitation is a single-use, token-addressed credential granting workspace
// signup with a predefined permission payload. Consumption (AcceptedAt set +
// member created) is atomic at the database boundary.
type Invitation struct {
	ID          string `json:"id" gorm:"primaryKey"`
	WorkspaceID string `json:"workspace_id" gorm:"column:workspace_id;not null;index"`
	Email       string `json:"email" gorm:"not null"`
	Token       string `json:"token" gorm:"uniqueIndex;not null"`
	InvitedBy   string `json:"invited_by" gorm:"column:invited_by"`

	MemberPermissions

	ExpiresAt         time.Time  `json:"expires_at" gorm:"column:expires_at;not null"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty" gorm:"column:accepted_at"`
	AcceptedBy        string     `json:"accepted_by,omitempty" gorm:"column:accepted_by"`
	AcceptedIP        string     `json:"accepted_ip,omitempty" gorm:"column:accepted_ip"`
	AcceptedUserAgent string     `json:"accepted_user_agent,omitempty" gorm:"column:accepted_user_agent"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// IsAccepted reports whether the token was already consumed.
func (i *Invitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}

// IsExpired reports whether the validity window has passed.
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// InvalidReason returns the first failing check, or "" when the token can
// still be accepted. Consumed-state wins over expiry so a redeemed token
// reports already_used even after its window closes.
func (i *Invitation) InvalidReason() string {
	if i.IsAccepted() {
		return InvitationErrAlreadyUsed
	}
	if i.IsExpired() {
		return InvitationErrExpired
	}
	return ""
}
