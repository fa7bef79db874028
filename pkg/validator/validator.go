package validator

import (
	"math"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("lat", func(fl validator.FieldLevel) bool {
		lat := fl.Field().Float()
		return !math.IsNaN(lat) && lat >= -90 && lat <= 90
	})
	_ = validate.RegisterValidation("lng", func(fl validator.FieldLevel) bool {
		lng := fl.Field().Float()
		return !math.IsNaN(lng) && lng >= -180 && lng <= 180
	})
	_ = validate.RegisterValidation("checkin_kind", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "start_mission", "checkin", "end_mission":
			return true
		}
		return false
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
