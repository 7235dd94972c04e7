package utils

import (
	"docbook-service/internal/app/models"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate         *validator.Validate
	cardExpiryRegexp = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	validate.RegisterValidation("card_expiry", validateCardExpiry)
	validate.RegisterValidation("day_key", validateDayKey)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateCardExpiry(fl validator.FieldLevel) bool {
	return cardExpiryRegexp.MatchString(fl.Field().String())
}

func validateDayKey(fl validator.FieldLevel) bool {
	_, err := models.ParseDayKey(fl.Field().String())
	return err == nil
}
