package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"traffic-manager-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvitationService struct {
	DB   *gorm.DB
	Auth *AuthServiceClient
	TTL  time.Duration
}

func NewInvitationService(db *gorm.DB, auth *AuthServiceClient, ttl time.Duration) *InvitationService {
	return &InvitationService{DB: db, Auth: auth, TTL: ttl}
}

// CreateInvitation issues a single-use signup token carrying the permission
// payload to apply on acceptance. Only owners and members with
// manage_members may invite.
func (s *InvitationService) CreateInvitation(c *fiber.Ctx) error {
	type Req struct {
		Email       string                   `json:"email"`
		WorkspaceID string                   `json:"workspace_id"`
		Permissions models.MemberPermissions `json:"permissions"`
	}
	userID := c.Locals("user_id").(string)

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Email == "" || req.WorkspaceID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email and workspace_id are required"})
	}

	var workspace models.Workspace
	if err := s.DB.First(&workspace, "id = ?", req.WorkspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "workspace not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if !memberCanEdit(s.DB, workspace.ID, userID, models.ResourceMembers) {
		return c.Status(403).JSON(fiber.Map{"error": "not allowed to manage members"})
	}

	invitation := models.Invitation{
		ID:                uuid.NewString(),
		WorkspaceID:       workspace.ID,
		Email:             req.Email,
		Token:             uuid.NewString(),
		InvitedBy:         userID,
		MemberPermissions: req.Permissions,
		ExpiresAt:         time.Now().Add(s.TTL),
	}
	if err := s.DB.Create(&invitation).Error; err != nil {
		log.Printf("ERROR creating invitation for %s: %v", req.Email, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create invitation"})
	}
	return c.Status(201).JSON(invitation)
}

// ValidateInvitationToken answers the pre-signup check. Invalid tokens get a
// 200 with valid=false and a reason: for the onboarding UI an invalid token
// is a state, not a transport failure.
func (s *InvitationService) ValidateInvitationToken(c *fiber.Ctx) error {
	type Req struct {
		Token string `json:"invitation_token"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Token == "" {
		return c.JSON(fiber.Map{"valid": false, "error": models.InvitationErrNotFound})
	}

	var invitation models.Invitation
	if err := s.DB.Where("token = ?", req.Token).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"valid": false, "error": models.InvitationErrNotFound})
		}
		log.Printf("ERROR validating invitation token: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	if reason := invitation.InvalidReason(); reason != "" {
		return c.JSON(fiber.Map{"valid": false, "error": reason})
	}

	var workspace models.Workspace
	if err := s.DB.First(&workspace, "id = ?", invitation.WorkspaceID).Error; err != nil {
		log.Printf("ERROR fetching workspace %s for invitation: %v", invitation.WorkspaceID, err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}

	return c.JSON(fiber.Map{
		"valid":          true,
		"email":          invitation.Email,
		"workspace_id":   invitation.WorkspaceID,
		"workspace_name": workspace.Name,
		"permissions":    invitation.MemberPermissions,
		"expires_at":     invitation.ExpiresAt,
	})
}

// AcceptInvitation runs the whole signup flow: policy check, account
// creation on the auth service, then atomic consumption — the row is locked,
// re-checked, marked accepted and the member created in one transaction so a
// token can never be redeemed twice. If consumption fails after the account
// exists, the response says so (account_created=true) and the caller retries
// consumption without re-registering.
func (s *InvitationService) AcceptInvitation(c *fiber.Ctx) error {
	type Req struct {
		Token     string `json:"invitation_token"`
		Password  string `json:"user_password"`
		ClientIP  string `json:"client_ip"`
		UserAgent string `json:"client_user_agent"`
	}
	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var invitation models.Invitation
	if err := s.DB.Where("token = ?", req.Token).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": models.InvitationErrNotFound})
		}
		log.Printf("ERROR fetching invitation for accept: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if reason := invitation.InvalidReason(); reason != "" {
		return c.Status(410).JSON(fiber.Map{"success": false, "error": reason})
	}

	// Policy runs before any network call: the auth service never sees a
	// password the UI should have rejected.
	if violations := ValidatePassword(req.Password); len(violations) > 0 {
		return c.Status(400).JSON(fiber.Map{
			"success":    false,
			"error":      "password_policy_violation",
			"violations": violations,
		})
	}

	account, err := s.Auth.SignUp(invitation.Email, req.Password, invitation.Token, invitation.WorkspaceID)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyRegistered) {
			return c.Status(409).JSON(fiber.Map{"success": false, "error": "email_already_registered"})
		}
		log.Printf("ERROR creating account for invitation %s: %v", invitation.ID, err)
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "account_creation_failed"})
	}

	workspaceName, err := s.consume(invitation.ID, account.UserID, req.ClientIP, req.UserAgent)
	if err != nil {
		if errors.Is(err, errInvitationAlreadyUsed) {
			return c.Status(409).JSON(fiber.Map{
				"success":         false,
				"error":           models.InvitationErrAlreadyUsed,
				"account_created": true,
			})
		}
		// The account exists either way; the caller retries consumption,
		// never the signup.
		log.Printf("ERROR consuming invitation %s for user %s: %v", invitation.ID, account.UserID, err)
		return c.Status(500).JSON(fiber.Map{
			"success":         false,
			"error":           "invitation_consume_failed",
			"account_created": true,
		})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"workspace_name": workspaceName,
	})
}

var errInvitationAlreadyUsed = errors.New("invitation already used")

// consume marks the invitation accepted and binds the account to the
// workspace with the invitation's permission payload, atomically. The row
// lock makes concurrent accepts serialize; the loser sees accepted_at set
// and backs out.
func (s *InvitationService) consume(invitationID, accountID, clientIP, userAgent string) (string, error) {
	var workspaceName string
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var locked models.Invitation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", invitationID).
			First(&locked).Error; err != nil {
			return fmt.Errorf("failed to lock invitation: %w", err)
		}
		if locked.IsAccepted() {
			return errInvitationAlreadyUsed
		}
		if locked.IsExpired() {
			return fmt.Errorf("invitation expired while accepting")
		}

		now := time.Now()
		if err := tx.Model(&locked).Updates(map[string]interface{}{
			"accepted_at":         &now,
			"accepted_by":         accountID,
			"accepted_ip":         clientIP,
			"accepted_user_agent": userAgent,
		}).Error; err != nil {
			return fmt.Errorf("failed to mark invitation accepted: %w", err)
		}

		member := models.WorkspaceMember{
			ID:                uuid.NewString(),
			WorkspaceID:       locked.WorkspaceID,
			UserID:            accountID,
			Email:             locked.Email,
			MemberPermissions: locked.MemberPermissions,
		}
		if err := tx.Create(&member).Error; err != nil {
			return fmt.Errorf("failed to create workspace member: %w", err)
		}

		var workspace models.Workspace
		if err := tx.First(&workspace, "id = ?", locked.WorkspaceID).Error; err != nil {
			return fmt.Errorf("failed to fetch workspace: %w", err)
		}
		workspaceName = workspace.Name
		return nil
	})
	return workspaceName, err
}

// ListInvitations shows a workspace's outstanding and consumed invitations.
func (s *InvitationService) ListInvitations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	workspaceID := c.Params("id")

	if !memberCanEdit(s.DB, workspaceID, userID, models.ResourceMembers) {
		return c.Status(403).JSON(fiber.Map{"error": "not allowed to manage members"})
	}

	invitations := []models.Invitation{}
	if err := s.DB.Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		log.Printf("ERROR listing invitations for workspace %s: %v", workspaceID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch invitations"})
	}
	return c.JSON(invitations)
}

// RevokeInvitation deletes an unconsumed invitation so its token can no
// longer be redeemed.
func (s *InvitationService) RevokeInvitation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	workspaceID := c.Params("id")
	invitationID := c.Params("invitation_id")

	if !memberCanEdit(s.DB, workspaceID, userID, models.ResourceMembers) {
		return c.Status(403).JSON(fiber.Map{"error": "not allowed to manage members"})
	}

	result := s.DB.Where("workspace_id = ? AND accepted_at IS NULL", workspaceID).
		Delete(&models.Invitation{}, "id = ?", invitationID)
	if result.Error != nil {
		log.Printf("ERROR revoking invitation %s: %v", invitationID, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "invitation not found or already accepted"})
	}
	return c.JSON(fiber.Map{"message": "invitation revoked"})
}
