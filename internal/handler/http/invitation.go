package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/invitation"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/handler/http/response"
)

// InvitationHandler defines the interface for invite code HTTP handlers
type InvitationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
}

type invitationHandlerImpl struct {
	invitationService invitation.InvitationService
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService invitation.InvitationService) InvitationHandler {
	return &invitationHandlerImpl{
		invitationService: invitationService,
	}
}

// Create handles POST /invite-codes
func (h *invitationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFrom(w, r)
	if !ok {
		return
	}

	result, err := h.invitationService.CreateInviteCode(r.Context(), claims.AdminID)
	if err != nil {
		slog.Error("Failed to create invite code", "admin_id", claims.AdminID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invite code created", result)
}
