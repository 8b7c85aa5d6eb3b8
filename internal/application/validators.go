package application

import (
	"fmt"
	"regexp"
	"strings"
)

// Validator groups the contact form's field checks.
type Validator struct{}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func (v *Validator) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email %q is not valid", email)
	}
	return nil
}

func (v *Validator) ValidatePhone(phone string) error {
	clean := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)

	phoneRegex := regexp.MustCompile(`^\+?\d{7,15}$`)
	if !phoneRegex.MatchString(clean) {
		return fmt.Errorf("phone %q must have 7 to 15 digits", phone)
	}
	return nil
}
