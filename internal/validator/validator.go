// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	isoDateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
		_ = v.RegisterValidation("category_kind", validateTransactionType)
		_ = v.RegisterValidation("reminder_status", validateReminderStatus)
		_ = v.RegisterValidation("user_plan", validateUserPlan)
		_ = v.RegisterValidation("period_filter", validatePeriodFilter)
		_ = v.RegisterValidation("iso_date", validateISODate)
		_ = v.RegisterValidation("hex_color", validateHexColor)
	}
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "income", "expense":
		return true
	}
	return false
}

func validateReminderStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "paid":
		return true
	}
	return false
}

func validateUserPlan(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "basic", "pro":
		return true
	}
	return false
}

func validatePeriodFilter(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "7d", "30d", "all", "custom":
		return true
	}
	return false
}

func validateISODate(fl validator.FieldLevel) bool {
	return isoDateRegex.MatchString(fl.Field().String())
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}
