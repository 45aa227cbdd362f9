// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// validCurrencies contains the ISO 4217 currency codes accepted in settings.
var validCurrencies = map[string]bool{
	"AUD": true, "BRL": true, "CAD": true, "CHF": true, "CNY": true,
	"CZK": true, "DKK": true, "EUR": true, "GBP": true, "HKD": true,
	"HUF": true, "IDR": true, "ILS": true, "INR": true, "JPY": true,
	"KES": true, "KRW": true, "MXN": true, "MYR": true, "NOK": true,
	"NZD": true, "PHP": true, "PLN": true, "RON": true, "SEK": true,
	"SGD": true, "THB": true, "TRY": true, "TWD": true, "USD": true,
	"VND": true, "ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("budget_period", validateBudgetPeriod)
		_ = v.RegisterValidation("frequency", validateFrequency)
		_ = v.RegisterValidation("debt_type", validateDebtType)
		_ = v.RegisterValidation("milestones", validateMilestones)
	}
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "weekly", "monthly", "yearly":
		return true
	}
	return false
}

func validateFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "monthly", "yearly":
		return true
	}
	return false
}

func validateDebtType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "loan", "mortgage", "credit_card", "personal", "other":
		return true
	}
	return false
}

// validateMilestones accepts an ordered list of percentages in (0, 100].
func validateMilestones(fl validator.FieldLevel) bool {
	milestones, ok := fl.Field().Interface().([]int)
	if !ok {
		return false
	}
	prev := 0
	for _, m := range milestones {
		if m <= prev || m > 100 {
			return false
		}
		prev = m
	}
	return true
}
