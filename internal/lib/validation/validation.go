// Package validation создает валидатор входных данных с поддержкой decimal-полей.
package validation

import (
	"reflect"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
)

// New возвращает validator.Validate, умеющий проверять decimal.Decimal
// как число: теги required, gte и подобные применяются к его значению.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}
