package sales

import "github.com/salesdash/backend/internal/domain/shared"

// Sales domain errors
var (
	ErrNameRequired    = shared.NewDomainError("NAME_REQUIRED", "Staff name is required")
	ErrStaffRequired   = shared.NewDomainError("STAFF_REQUIRED", "Staff member is required")
	ErrSalesRequired   = shared.NewDomainError("SALES_REQUIRED", "Sales value is required")
	ErrInvalidMonth    = shared.NewDomainError("INVALID_MONTH", "Month must be between 01 and 12")
	ErrInvalidYear     = shared.NewDomainError("INVALID_YEAR", "Year must have four digits")
	ErrDuplicatePeriod = shared.NewDomainError("DUPLICATE_PERIOD", "A record already exists for this staff member and period")
	ErrStaffNotFound   = shared.NewDomainError("NOT_FOUND", "Staff member not found")
	ErrRecordNotFound  = shared.NewDomainError("NOT_FOUND", "Sales record not found")
)
