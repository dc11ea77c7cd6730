package sales

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/salesdash/backend/internal/domain/sales"
	"github.com/salesdash/backend/internal/domain/shared"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names so messages match the request shape.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors maps fields whose failure has a dedicated domain code.
var fieldErrors = map[string]*shared.DomainError{
	"name":     sales.ErrNameRequired,
	"staff_id": sales.ErrStaffRequired,
	"sales":    sales.ErrSalesRequired,
	"month":    sales.ErrInvalidMonth,
	"year":     sales.ErrInvalidYear,
}

// validateRequest checks req against its struct tags. The first failing
// field with a dedicated code returns that code; anything else becomes
// VALIDATION_FAILED listing the offending fields.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if de, ok := fieldErrors[fe.Field()]; ok {
			if fe.Field() != "staff_id" || fe.Tag() == "required" {
				return de
			}
		}
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return shared.NewDomainError(shared.ErrValidation.Code, "Invalid fields: "+strings.Join(fields, ", "))
}
