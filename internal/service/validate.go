package service

import (
	"fmt"
	"regexp"
)

// ValidationError carries a field-level message suitable for showing to the
// user as-is.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

var (
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	lettersPattern    = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑüÜ\s]+$`)
	digitsPattern     = regexp.MustCompile(`^[0-9]+$`)
	nationalIDPattern = regexp.MustCompile(`^[0-9-]+$`)
	phonePattern      = regexp.MustCompile(`^[0-9\-\s()+]+$`)
)

// provinces is the closed set of Costa Rica provinces accepted as a client
// address.
var provinces = map[string]bool{
	"San José":   true,
	"Alajuela":   true,
	"Cartago":    true,
	"Heredia":    true,
	"Guanacaste": true,
	"Puntarenas": true,
	"Limón":      true,
}

func ValidProvince(name string) bool { return provinces[name] }

func ValidEmail(email string) bool {
	return email != "" && len(email) <= 100 && emailPattern.MatchString(email)
}
