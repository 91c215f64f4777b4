package models

import (
	"time"
)

// Editable resource names used by the permission resolver.
const (
	ResourceTests     = "tests"
	ResourceOffers    = "offers"
	ResourceFinancial = "financial"
	ResourceMembers   = "members"
)

// Workspace groups an owner and the collaborators they invited.
type Workspace struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	OwnerID   string    `json:"owner_id" gorm:"column:owner_id;not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// MemberPermissions maps named capabilities to booleans. It is embedded in
// both WorkspaceMember (applied state) and Invitation (payload to apply).
type MemberPermissions struct {
	EditTests     bool `json:"edit_tests" gorm:"column:edit_tests;default:false"`
	EditOffers    bool `json:"edit_offers" gorm:"column:edit_offers;default:false"`
	EditFinancial bool `json:"edit_financial" gorm:"column:edit_financial;default:false"`
	ManageMembers bool `json:"manage_members" gorm:"column:manage_members;default:false"`
	FullAccess    bool `json:"full_access" gorm:"column:full_access;default:false"`
	ViewOnly      bool `json:"view_only" gorm:"column:view_only;default:false"`
}

// ViewOnlyPermissions is the most restrictive fallback, applied when a
// member's stored permission set cannot be fetched.
func ViewOnlyPermissions() MemberPermissions {
	return MemberPermissions{ViewOnly: true}
}

// WorkspaceMember binds an account to a workspace with its permission set.
type WorkspaceMember struct {
	ID          string `json:"id" gorm:"primaryKey"`
	WorkspaceID string `json:"workspace_id" gorm:"column:workspace_id;not null;index"`
	UserID      string `json:"user_id" gorm:"column:user_id;not null;uniqueIndex"`
	Email       string `json:"email"`
	IsOwner     bool   `json:"is_owner" gorm:"column:is_owner;default:false"`

	MemberPermissions

	JoinedAt time.Time `json:"joined_at" gorm:"autoCreateTime"`
}

// CanEdit answers a capability query for one resource. Owners can edit
// everything; full_access likewise; otherwise the resource-specific flag
// decides, defaulting to false.
func (m *WorkspaceMember) CanEdit(resource string) bool {
	if m.IsOwner || m.FullAccess {
		return true
	}
	switch resource {
	case ResourceTests:
		return m.EditTests
	case ResourceOffers:
		return m.EditOffers
	case ResourceFinancial:
		return m.EditFinancial
	case ResourceMembers:
		return m.ManageMembers
	default:
		return false
	}
}

// CanView is unconditionally true: view access is not gated for members.
func (m *WorkspaceMember) CanView() bool {
	return true
}
