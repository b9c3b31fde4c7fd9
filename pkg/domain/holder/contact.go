package holder

import (
	"regexp"
	"strings"

	"github.com/fintechlab/bankapi/pkg/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// EmailAddress is a validated email address.
type EmailAddress string

// ParseEmail validates an email address.
func ParseEmail(value string) (EmailAddress, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.Validation("email address cannot be empty")
	}
	if !emailPattern.MatchString(value) {
		return "", domain.Validation("invalid email address: " + value)
	}
	return EmailAddress(strings.ToLower(value)), nil
}

// String returns the email address value.
func (e EmailAddress) String() string { return string(e) }

// PhoneNumber is a validated phone number in loose E.164 form.
type PhoneNumber string

// ParsePhone validates a phone number, accepting spaces and dashes as
// separators.
func ParsePhone(value string) (PhoneNumber, error) {
	clean := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(value))
	if clean == "" {
		return "", domain.Validation("phone number cannot be empty")
	}
	if !phonePattern.MatchString(clean) {
		return "", domain.Validation("invalid phone number: " + value)
	}
	return PhoneNumber(clean), nil
}

// String returns the phone number value.
func (p PhoneNumber) String() string { return string(p) }

// Address is the postal address of an account holder.
type Address struct {
	Street  string
	City    string
	ZipCode string
	Country string
}
