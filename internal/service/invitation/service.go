package invitation

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/invitation"
)

const maxCodeAttempts = 5

var codeSpace = big.NewInt(1_000_000)

type InvitationServiceImpl struct {
	inviteRepo invitation.InviteCodeRepository
	ttl        time.Duration
	clock      func() time.Time
	generate   func() (string, error)
}

func NewInvitationService(inviteRepo invitation.InviteCodeRepository, ttl time.Duration) invitation.InvitationService {
	return &InvitationServiceImpl{
		inviteRepo: inviteRepo,
		ttl:        ttl,
		clock:      time.Now,
		generate:   generateCode,
	}
}

// generateCode returns a uniformly random zero-padded six-digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// CreateInviteCode implements invitation.InvitationService.
func (s *InvitationServiceImpl) CreateInviteCode(ctx context.Context, adminID string) (invitation.InviteCodeResponse, error) {
	now := s.clock()

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return invitation.InviteCodeResponse{}, fmt.Errorf("failed to generate invite code: %w", err)
		}

		created, err := s.inviteRepo.Create(ctx, invitation.InviteCode{
			AdminID:   adminID,
			Code:      code,
			ExpiresAt: now.Add(s.ttl),
		})
		if errors.Is(err, invitation.ErrInviteCodeCollision) {
			slog.Warn("Invite code collision, retrying", "admin_id", adminID, "attempt", attempt)
			continue
		}
		if err != nil {
			return invitation.InviteCodeResponse{}, fmt.Errorf("failed to create invite code: %w", err)
		}

		slog.Info("Invite code created", "admin_id", adminID, "expires_at", created.ExpiresAt)
		return invitation.ToResponse(created), nil
	}

	return invitation.InviteCodeResponse{}, invitation.ErrInviteCodeCollision
}

// Redeem implements invitation.InvitationService.
func (s *InvitationServiceImpl) Redeem(ctx context.Context, code, userID string) (string, error) {
	invite, err := s.inviteRepo.GetActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, invitation.ErrInviteCodeNotFound) {
			return "", err
		}
		return "", fmt.Errorf("failed to get invite code: %w", err)
	}

	if invite.UsedAt != nil {
		return "", invitation.ErrInviteCodeAlreadyUsed
	}
	if invite.IsExpired(s.clock()) {
		return "", invitation.ErrInviteCodeExpired
	}

	if err := s.inviteRepo.MarkUsed(ctx, invite.ID, userID); err != nil {
		return "", fmt.Errorf("failed to mark invite code as used: %w", err)
	}
	return invite.AdminID, nil
}
