package customvalidator

import (
	"database/sql/driver"
	"reflect"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
)

func isDateOnly(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

func isTimeOnly(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}

func isPriority(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "high", "medium", "low":
		return true
	}
	return false
}

func isRoleName(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "manager", "driller", "viewer":
		return true
	}
	return false
}

// nullValuer unwraps tri-state null types so rules like dateonly see
// the underlying value. A null field validates as empty.
func nullValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(driver.Valuer); ok {
		val, err := valuer.Value()
		if err == nil {
			return val
		}
	}
	return nil
}

// RegisterCustomValidations wires the project-specific rules into the
// shared validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(nullValuer,
		null.String{}, null.Float64{}, null.Bool{}, null.Int{})

	if err := v.RegisterValidation("dateonly", isDateOnly); err != nil {
		return err
	}
	if err := v.RegisterValidation("timeonly", isTimeOnly); err != nil {
		return err
	}
	if err := v.RegisterValidation("priority", isPriority); err != nil {
		return err
	}
	if err := v.RegisterValidation("rolename", isRoleName); err != nil {
		return err
	}
	return nil
}
