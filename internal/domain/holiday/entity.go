package holiday

import "time"

// Holiday is a non-working date for one organization.
type Holiday struct {
	ID          string
	AdminID     string
	HolidayDate time.Time
	Description string
	CreatedAt   time.Time
}
