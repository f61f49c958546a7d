package validator

import (
	"log"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// UK National Insurance number, spaces tolerated.
	niNumberRe = regexp.MustCompile(`^[A-CEGHJ-PR-TW-Z][A-CEGHJ-NPR-TW-Z][0-9]{6}[A-D]$`)
	digitsRe   = regexp.MustCompile(`^[0-9]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9 ()-]{10,20}$`)
)

// registerCustomRules installs the UK-format rules the form schema
// references. Registration failures abort startup.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("uk_ni_number", validateNINumber)
	mustRegister("uk_sort_code", validateSortCode)
	mustRegister("uk_bank_account", validateBankAccount)
	mustRegister("uk_phone", validatePhone)
}

func validateNINumber(fl validator.FieldLevel) bool {
	value := strings.ToUpper(strings.ReplaceAll(fl.Field().String(), " ", ""))
	return niNumberRe.MatchString(value)
}

// Accepts 12-34-56, 12 34 56 or 123456.
func validateSortCode(fl validator.FieldLevel) bool {
	value := strings.NewReplacer("-", "", " ", "").Replace(fl.Field().String())
	return len(value) == 6 && digitsRe.MatchString(value)
}

// Accepts 12345678 or 1234 5678.
func validateBankAccount(fl validator.FieldLevel) bool {
	value := strings.ReplaceAll(fl.Field().String(), " ", "")
	return len(value) == 8 && digitsRe.MatchString(value)
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(fl.Field().String())
}
