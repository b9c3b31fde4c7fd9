// Package holder implements the AccountHolder aggregate: the person accounts
// belong to, with identity and age validation at creation.
package holder

import (
	"strings"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
)

// minimumAge is the youngest an account holder may be.
const minimumAge = 18

// IDGenerator produces account holder identifiers. Injected so ID
// generation stays safe across replicas; no global counters.
type IDGenerator interface {
	NewHolderID() string
}

// AccountHolder is the owner of one or more accounts.
type AccountHolder struct {
	ID          string
	FirstName   string
	LastName    string
	Email       EmailAddress
	Phone       PhoneNumber
	DateOfBirth time.Time
	Address     *Address
	IsDeleted   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	events []domain.Event
}

// New registers an account holder. The holder must be at least 18 years old.
func New(
	gen IDGenerator,
	firstName, lastName string,
	email EmailAddress,
	phone PhoneNumber,
	dateOfBirth time.Time,
	address *Address,
) (*AccountHolder, error) {
	if strings.TrimSpace(firstName) == "" {
		return nil, domain.Validation("first name cannot be empty")
	}
	if strings.TrimSpace(lastName) == "" {
		return nil, domain.Validation("last name cannot be empty")
	}
	now := time.Now().UTC()
	if dateOfBirth.After(now) {
		return nil, domain.Validation("date of birth cannot be in the future")
	}
	if age(dateOfBirth, now) < minimumAge {
		return nil, domain.Validation("account holder must be at least 18 years old")
	}
	h := &AccountHolder{
		ID:          gen.NewHolderID(),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		Phone:       phone,
		DateOfBirth: dateOfBirth,
		Address:     address,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	h.record(CreatedEvent{
		HolderID:   h.ID,
		Email:      email.String(),
		FullName:   firstName + " " + lastName,
		OccurredAt: now,
	})
	return h, nil
}

// UpdateContactInfo replaces any of the contact fields that are non-nil.
func (h *AccountHolder) UpdateContactInfo(email *EmailAddress, phone *PhoneNumber, address *Address) error {
	if h.IsDeleted {
		return domain.InvalidOperation("cannot update a deleted account holder")
	}
	if email != nil {
		h.Email = *email
	}
	if phone != nil {
		h.Phone = *phone
	}
	if address != nil {
		h.Address = address
	}
	h.touch()
	return nil
}

// MarkAsDeleted soft-deletes the account holder.
func (h *AccountHolder) MarkAsDeleted() {
	h.IsDeleted = true
	h.touch()
	h.record(DeletedEvent{
		HolderID:   h.ID,
		Email:      h.Email.String(),
		OccurredAt: h.UpdatedAt,
	})
}

// PullEvents drains and returns the events collected since the last call.
func (h *AccountHolder) PullEvents() []domain.Event {
	events := h.events
	h.events = nil
	return events
}

func (h *AccountHolder) record(e domain.Event) {
	h.events = append(h.events, e)
}

func (h *AccountHolder) touch() {
	h.UpdatedAt = time.Now().UTC()
}

// age computes whole years between born and now.
func age(born, now time.Time) int {
	years := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		years--
	}
	return years
}

// CreatedEvent is emitted when an account holder is registered.
type CreatedEvent struct {
	HolderID   string
	Email      string
	FullName   string
	OccurredAt time.Time
}

// Type implements domain.Event.
func (CreatedEvent) Type() string { return "holder.created" }

// DeletedEvent is emitted when an account holder is soft-deleted.
type DeletedEvent struct {
	HolderID   string
	Email      string
	OccurredAt time.Time
}

// Type implements domain.Event.
func (DeletedEvent) Type() string { return "holder.deleted" }
