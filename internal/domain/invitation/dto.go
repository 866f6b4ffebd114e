package invitation

import "time"

type InviteCodeResponse struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}

func ToResponse(c InviteCode) InviteCodeResponse {
	return InviteCodeResponse{
		Code:      c.Code,
		ExpiresAt: c.ExpiresAt.Format(time.RFC3339),
	}
}
