package handler

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator that understands decimal amounts through
// the decimal_gt and decimal_gte tags, e.g. `validate:"decimal_gt=0"`.
func NewValidator() *validator.Validate {
	v := validator.New()

	// Decimals are validated through their string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("decimal_gt", decimalCompare(func(d, bound decimal.Decimal) bool {
		return d.GreaterThan(bound)
	}))
	_ = v.RegisterValidation("decimal_gte", decimalCompare(func(d, bound decimal.Decimal) bool {
		return d.GreaterThanOrEqual(bound)
	}))

	return v
}

func decimalCompare(cmp func(d, bound decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		bound, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, bound)
	}
}
