// Package card implements the Card aggregate root, covering the card
// lifecycle (permanent and temporary blocks), CVV verification, and the
// usability predicate checked before any card-originated transfer.
package card

import (
	"strings"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Type is the kind of card issued.
type Type string

// Supported card types.
const (
	TypeDebit   Type = "Debit"
	TypeCredit  Type = "Credit"
	TypePrepaid Type = "Prepaid"
)

// expiryYears is how long a newly issued card stays valid.
const expiryYears = 3

// Card is a payment card aggregate root bound to exactly one account.
// Invariants:
//   - A permanent block is terminal; it can never be undone.
//   - Permanent and temporary blocks are mutually exclusive and entered
//     only from the open state.
//   - Usability requires not deleted, not blocked, not temporarily blocked,
//     and not expired.
type Card struct {
	ID             uuid.UUID
	Number         Number
	AccountID      uuid.UUID
	HolderName     string
	ExpirationDate time.Time
	CVVHash        string
	IsBlocked      bool
	IsTempBlocked  bool
	CardType       Type
	IsDeleted      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	events []domain.Event
}

// New issues a card for the given account. The card number is generated
// Luhn-valid and the CVV is stored only as a bcrypt hash.
func New(accountID uuid.UUID, holderName, cvv string, cardType Type) (*Card, error) {
	if accountID == uuid.Nil {
		return nil, domain.Validation("account ID cannot be empty")
	}
	if strings.TrimSpace(holderName) == "" {
		return nil, domain.Validation("card holder name cannot be empty")
	}
	if !isValidCVV(cvv) {
		return nil, domain.Validation("CVV must be a 3-digit number")
	}
	hash, err := hashCVV(cvv)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &Card{
		ID:             uuid.New(),
		Number:         GenerateNumber(),
		AccountID:      accountID,
		HolderName:     holderName,
		ExpirationDate: now.AddDate(expiryYears, 0, 0),
		CVVHash:        hash,
		CardType:       cardType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	c.record(CreatedEvent{
		CardID:       c.ID,
		MaskedNumber: c.Number.Masked(),
		AccountID:    accountID,
		HolderName:   holderName,
		CardType:     string(cardType),
		OccurredAt:   now,
	})
	return c, nil
}

// Block blocks the card permanently. This is a terminal state.
func (c *Card) Block() error {
	if c.IsDeleted {
		return domain.InvalidOperation("cannot block a deleted card")
	}
	if c.IsBlocked {
		return domain.InvalidOperation("card is already blocked")
	}
	c.IsBlocked = true
	c.IsTempBlocked = false
	c.touch()
	c.record(BlockedEvent{
		CardID:       c.ID,
		MaskedNumber: c.Number.Masked(),
		Permanent:    true,
		OccurredAt:   c.UpdatedAt,
	})
	return nil
}

// TemporarilyBlock blocks the card until Unblock is called.
func (c *Card) TemporarilyBlock() error {
	if c.IsDeleted {
		return domain.InvalidOperation("cannot block a deleted card")
	}
	if c.IsBlocked {
		return domain.InvalidOperation("card is permanently blocked")
	}
	if c.IsTempBlocked {
		return domain.InvalidOperation("card is already temporarily blocked")
	}
	c.IsTempBlocked = true
	c.touch()
	c.record(BlockedEvent{
		CardID:       c.ID,
		MaskedNumber: c.Number.Masked(),
		Permanent:    false,
		OccurredAt:   c.UpdatedAt,
	})
	return nil
}

// Unblock lifts a temporary block. A permanent block cannot be undone.
func (c *Card) Unblock() error {
	if c.IsDeleted {
		return domain.InvalidOperation("cannot unblock a deleted card")
	}
	if c.IsBlocked {
		return domain.InvalidOperation("cannot unblock a permanently blocked card")
	}
	if !c.IsTempBlocked {
		return domain.InvalidOperation("card is not blocked")
	}
	c.IsTempBlocked = false
	c.touch()
	c.record(UnblockedEvent{
		CardID:       c.ID,
		MaskedNumber: c.Number.Masked(),
		OccurredAt:   c.UpdatedAt,
	})
	return nil
}

// ValidateCVV compares the provided CVV against the stored hash. Blank
// input short-circuits to false without touching the hash.
func (c *Card) ValidateCVV(cvv string) bool {
	if strings.TrimSpace(cvv) == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.CVVHash), []byte(cvv)) == nil
}

// IsUsable reports whether the card can originate or receive a transfer.
func (c *Card) IsUsable() bool {
	return !c.IsDeleted && !c.IsBlocked && !c.IsTempBlocked &&
		c.ExpirationDate.After(time.Now().UTC())
}

// MarkAsDeleted soft-deletes the card.
func (c *Card) MarkAsDeleted() {
	c.IsDeleted = true
	c.touch()
}

// PullEvents drains and returns the events collected since the last call.
func (c *Card) PullEvents() []domain.Event {
	events := c.events
	c.events = nil
	return events
}

func isValidCVV(cvv string) bool {
	if len(cvv) != 3 {
		return false
	}
	for _, ch := range cvv {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}

// hashCVV hashes the CVV with bcrypt. A fast digest is not acceptable here;
// the stored value must survive a database leak.
func hashCVV(cvv string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(cvv), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (c *Card) record(e domain.Event) {
	c.events = append(c.events, e)
}

func (c *Card) touch() {
	c.UpdatedAt = time.Now().UTC()
}
