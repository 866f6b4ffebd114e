package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/invitation"
	"github.com/cmlabs-hris/presensi-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const activeInviteCodeIndex = "idx_invite_codes_active_code"

type inviteCodeRepository struct {
	db *database.DB
}

func NewInviteCodeRepository(db *database.DB) invitation.InviteCodeRepository {
	return &inviteCodeRepository{db: db}
}

// Create implements invitation.InviteCodeRepository.
func (r *inviteCodeRepository) Create(ctx context.Context, code invitation.InviteCode) (invitation.InviteCode, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return invitation.InviteCode{}, fmt.Errorf("failed to generate id: %w", err)
	}
	code.ID = id.String()

	query := `
		INSERT INTO invite_codes (id, admin_id, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err = q.QueryRow(ctx, query, code.ID, code.AdminID, code.Code, code.ExpiresAt).Scan(&code.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, activeInviteCodeIndex) {
			return invitation.InviteCode{}, invitation.ErrInviteCodeCollision
		}
		return invitation.InviteCode{}, fmt.Errorf("failed to create invite code: %w", err)
	}
	return code, nil
}

// GetActiveByCode implements invitation.InviteCodeRepository. Two employees
// redeeming the same code serialize on the row lock.
func (r *inviteCodeRepository) GetActiveByCode(ctx context.Context, code string) (invitation.InviteCode, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, admin_id, code, expires_at, used_by, used_at, created_at
		FROM invite_codes
		WHERE code = $1 AND used_at IS NULL
		FOR UPDATE
	`
	var c invitation.InviteCode
	err := q.QueryRow(ctx, query, code).Scan(&c.ID, &c.AdminID, &c.Code, &c.ExpiresAt, &c.UsedBy, &c.UsedAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invitation.InviteCode{}, invitation.ErrInviteCodeNotFound
		}
		return invitation.InviteCode{}, fmt.Errorf("failed to get invite code: %w", err)
	}
	return c, nil
}

// MarkUsed implements invitation.InviteCodeRepository.
func (r *inviteCodeRepository) MarkUsed(ctx context.Context, id, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE invite_codes SET used_by = $1, used_at = NOW()
		WHERE id = $2 AND used_at IS NULL`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to mark invite code as used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invitation.ErrInviteCodeAlreadyUsed
	}
	return nil
}
