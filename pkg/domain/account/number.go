package account

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/fintechlab/bankapi/pkg/domain"
)

// numberPrefix is the fixed prefix of every account number.
const numberPrefix = "ACC-"

// Number is an immutable account number in the form ACC-XXXXXXXX.
type Number string

// ParseNumber validates an existing account number value.
func ParseNumber(value string) (Number, error) {
	if strings.TrimSpace(value) == "" {
		return "", domain.Validation("account number cannot be empty")
	}
	if !strings.HasPrefix(value, numberPrefix) {
		return "", domain.Validation("account number must start with 'ACC-'")
	}
	if len(value) != len(numberPrefix)+8 {
		return "", domain.Validation("account number must be in format ACC-XXXXXXXX")
	}
	for _, c := range value[len(numberPrefix):] {
		if c < '0' || c > '9' {
			return "", domain.Validation("account number suffix must be digits")
		}
	}
	return Number(value), nil
}

// GenerateNumber produces a new random account number.
func GenerateNumber() Number {
	return Number(fmt.Sprintf("%s%08d", numberPrefix, 10000000+rand.Intn(90000000)))
}

// String returns the account number value.
func (n Number) String() string { return string(n) }
