package models

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the model-specific rules registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			if d, ok := v.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			if d, ok := v.Interface().(Date); ok {
				return d.Time
			}
			return nil
		}, Date{})
		_ = validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			return fl.Field().Kind() == reflect.Float64 && fl.Field().Float() >= 0
		})
		_ = validate.RegisterValidation("shipment_status", func(fl validator.FieldLevel) bool {
			return ShipmentStatus(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("transportation_state", func(fl validator.FieldLevel) bool {
			return TransportationState(fl.Field().String()).Valid()
		})
	})
	return validate
}

// ValidateShape runs struct validation and flattens the failures into one error
func ValidateShape(shape interface{}) error {
	err := Validator().Struct(shape)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "money":
		return fmt.Sprintf("%s must not be negative", field)
	case "shipment_status":
		return fmt.Sprintf("%s must be one of: Pending, Processing, In Transit, Delivered", field)
	case "transportation_state":
		return fmt.Sprintf("%s must be one of: Available, In Use, Maintenance", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
