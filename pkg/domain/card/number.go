package card

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/fintechlab/bankapi/pkg/domain"
)

// Number is an immutable 16-digit card number satisfying the Luhn checksum.
type Number string

// ParseNumber validates an existing card number, accepting spaces and
// dashes as separators.
func ParseNumber(value string) (Number, error) {
	if strings.TrimSpace(value) == "" {
		return "", domain.Validation("card number cannot be empty")
	}
	clean := strings.NewReplacer(" ", "", "-", "").Replace(value)
	if len(clean) != 16 {
		return "", domain.Validation("card number must be 16 digits")
	}
	for _, c := range clean {
		if c < '0' || c > '9' {
			return "", domain.Validation("card number must contain only digits")
		}
	}
	if !passesLuhn(clean) {
		return "", domain.Validation("card number failed Luhn validation")
	}
	return Number(clean), nil
}

// GenerateNumber produces a new random card number with a valid Luhn check
// digit. The leading digit is fixed to 4.
func GenerateNumber() Number {
	var sb strings.Builder
	sb.WriteByte('4')
	for i := 0; i < 14; i++ {
		sb.WriteByte(byte('0' + rand.Intn(10)))
	}
	partial := sb.String()
	return Number(partial + strconv.Itoa(luhnCheckDigit(partial)))
}

// String returns the full card number value.
func (n Number) String() string { return string(n) }

// Masked returns the card number with all but the last four digits hidden.
func (n Number) Masked() string {
	if len(n) < 4 {
		return string(n)
	}
	return "****-****-****-" + string(n[len(n)-4:])
}

// passesLuhn implements the standard mod 10 checksum.
func passesLuhn(number string) bool {
	sum := 0
	alternate := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alternate = !alternate
	}
	return sum%10 == 0
}

// luhnCheckDigit computes the digit that makes number+digit pass Luhn.
func luhnCheckDigit(number string) int {
	sum := 0
	alternate := true
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if alternate {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		alternate = !alternate
	}
	return (10 - sum%10) % 10
}
