// handlers/workspace.go
package handlers

import (
	"traffic-manager-system/middleware"
	"traffic-manager-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupWorkspaceRoutes(app *fiber.App, workspaceService *services.WorkspaceService, invitationService *services.InvitationService) {
	// 🔓 Public routes — no user context: the invitee has no account yet.
	// Gateway auth still applies app-wide.
	app.Post("/invitations/validate", invitationService.ValidateInvitationToken)
	app.Post("/invitations/accept", invitationService.AcceptInvitation)

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/me/permissions", workspaceService.GetMyPermissions)
	secured.Post("/workspaces", workspaceService.CreateWorkspace)

	// Member management authorizes per-workspace inside the service: the
	// caller must be owner or hold manage_members for that workspace.
	secured.Get("/workspaces/:id/members", workspaceService.ListMembers)
	secured.Put("/workspaces/:id/members/:member_id", workspaceService.UpdateMemberPermissions)
	secured.Delete("/workspaces/:id/members/:member_id", workspaceService.RemoveMember)

	secured.Post("/invitations", invitationService.CreateInvitation)
	secured.Get("/workspaces/:id/invitations", invitationService.ListInvitations)
	secured.Delete("/workspaces/:id/invitations/:invitation_id", invitationService.RevokeInvitation)
}
