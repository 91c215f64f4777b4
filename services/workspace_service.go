package services

import (
	"errors"
	"log"

	"traffic-manager-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceService struct {
	DB *gorm.DB
}

func NewWorkspaceService(db *gorm.DB) *WorkspaceService {
	return &WorkspaceService{DB: db}
}

// memberCanEdit resolves a capability query for one user inside one
// workspace. The workspace owner can edit everything even without a member
// row; any lookup failure resolves to false, the restrictive default.
func memberCanEdit(db *gorm.DB, workspaceID, userID, resource string) bool {
	var workspace models.Workspace
	if err := db.First(&workspace, "id = ?", workspaceID).Error; err == nil && workspace.OwnerID == userID {
		return true
	}

	var member models.WorkspaceMember
	err := db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&member).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("ERROR resolving permissions for user %s in workspace %s: %v", userID, workspaceID, err)
		}
		return false
	}
	return member.CanEdit(resource)
}

// CreateWorkspace makes the caller owner of a fresh workspace and seeds
// their member row with full access.
func (s *WorkspaceService) CreateWorkspace(c *fiber.Ctx) error {
	type Req struct {
		Name string `json:"name"`
	}
	userID := c.Locals("user_id").(string)
	email, _ := c.Locals("user_email").(string)

	var req Req
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}

	workspace := models.Workspace{
		ID:      uuid.NewString(),
		Name:    req.Name,
		OwnerID: userID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}
		member := models.WorkspaceMember{
			ID:                uuid.NewString(),
			WorkspaceID:       workspace.ID,
			UserID:            userID,
			Email:             email,
			IsOwner:           true,
			MemberPermissions: models.MemberPermissions{FullAccess: true},
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		log.Printf("ERROR creating workspace for user %s: %v", userID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to create workspace"})
	}
	return c.Status(201).JSON(workspace)
}

// GetMyPermissions feeds the UI resolver. A caller without a member row is a
// solo account and gets owner semantics; any fetch failure degrades to the
// most restrictive state instead of erroring the session.
func (s *WorkspaceService) GetMyPermissions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var member models.WorkspaceMember
	err := s.DB.Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{
				"is_owner":    true,
				"permissions": models.MemberPermissions{FullAccess: true},
			})
		}
		log.Printf("ERROR fetching permissions for user %s: %v", userID, err)
		return c.JSON(fiber.Map{
			"is_owner":    false,
			"permissions": models.ViewOnlyPermissions(),
		})
	}

	return c.JSON(fiber.Map{
		"is_owner":     member.IsOwner,
		"workspace_id": member.WorkspaceID,
		"permissions":  member.MemberPermissions,
	})
}

// ListMembers shows a workspace's roster, owner first.
func (s *WorkspaceService) ListMembers(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	workspaceID := c.Params("id")

	if !memberCanEdit(s.DB, workspaceID, userID, models.ResourceMembers) {
		return c.Status(403).JSON(fiber.Map{"error": "not allowed to manage members"})
	}

	members := []models.WorkspaceMember{}
	if err := s.DB.Where("workspace_id = ?", workspaceID).
		Order("is_owner DESC, joined_at ASC").
		Find(&members).Error; err != nil {
		log.Printf("ERROR listing members for workspace %s: %v", workspaceID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch members"})
	}
	return c.JSON(members)
}

// UpdateMemberPermissions replaces one member's capability set.
func (s *WorkspaceService) UpdateMemberPermissions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	workspaceID := c.Params("id")
	memberID := c.Params("member_id")

	if !memberCanEdit(s.DB, workspaceID, userID, models.ResourceMembers) {
		return c.Status(403).JSON(fiber.Map{"error": "not allowed to manage members"})
	}

	var req models.MemberPermissions
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid JSON"})
	}

	var member models.WorkspaceMember
	if err := s.DB.Where("id = ? AND workspace_id = ?", memberID, workspaceID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "member not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if member.IsOwner {
		return c.Status(400).JSON(fiber.Map{"error": "owner permissions cannot be changed"})
	}

	member.MemberPermissions = req
	if err := s.DB.Save(&member).Error; err != nil {
		log.Printf("ERROR updating permissions for member %s: %v", memberID, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to update permissions"})
	}
	return c.JSON(member)
}

// RemoveMember drops a non-owner member from the workspace.
func (s *WorkspaceService) RemoveMember(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	workspaceID := c.Params("id")
	memberID := c.Params("member_id")

	if !memberCanEdit(s.DB, workspaceID, userID, models.ResourceMembers) {
		return c.Status(403).JSON(fiber.Map{"error": "not allowed to manage members"})
	}

	result := s.DB.Where("workspace_id = ? AND is_owner = false", workspaceID).
		Delete(&models.WorkspaceMember{}, "id = ?", memberID)
	if result.Error != nil {
		log.Printf("ERROR removing member %s: %v", memberID, result.Error)
		return c.Status(500).JSON(fiber.Map{"error": "DB error"})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "member not found or is owner"})
	}
	return c.JSON(fiber.Map{"message": "member removed"})
}
