package accountdelivery

import (
	"github.com/go-playground/validator/v10"

	"github.com/taller01/accountms/internal/domain"
)

// ValidCategory validates whether the account category is supported.
var ValidCategory validator.Func = func(fl validator.FieldLevel) bool {
	return domain.Category(fl.Field().String()).Valid()
}
