package office

import "context"

type OfficeService interface {
	GetOffice(ctx context.Context, adminID string) (OfficeResponse, error)
	UpsertOffice(ctx context.Context, req UpsertOfficeRequest) (OfficeResponse, error)
}
