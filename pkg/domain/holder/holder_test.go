package holder_test

import (
	"testing"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGen struct{ id string }

func (g staticGen) NewHolderID() string { return g.id }

func validDOB() time.Time {
	return time.Now().UTC().AddDate(-30, 0, 0)
}

func mustEmail(t *testing.T, value string) holder.EmailAddress {
	t.Helper()
	email, err := holder.ParseEmail(value)
	require.NoError(t, err)
	return email
}

func mustPhone(t *testing.T, value string) holder.PhoneNumber {
	t.Helper()
	phone, err := holder.ParsePhone(value)
	require.NoError(t, err)
	return phone
}

func TestNewHolder(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	h, err := holder.New(staticGen{id: "HLD-42"},
		"Jane", "Roe",
		mustEmail(t, "jane@example.com"), mustPhone(t, "+15551234567"),
		validDOB(), nil)
	require.NoError(err)
	assert.Equal("HLD-42", h.ID, "ID comes from the injected generator")
	assert.False(h.IsDeleted)

	events := h.PullEvents()
	require.Len(events, 1)
	assert.Equal("holder.created", events[0].Type())
}

func TestNewHolderValidation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	gen := staticGen{id: "HLD-1"}
	email := mustEmail(t, "jane@example.com")
	phone := mustPhone(t, "+15551234567")

	_, err := holder.New(gen, "", "Roe", email, phone, validDOB(), nil)
	assert.ErrorIs(err, domain.ErrValidation)

	_, err = holder.New(gen, "Jane", " ", email, phone, validDOB(), nil)
	assert.ErrorIs(err, domain.ErrValidation)

	_, err = holder.New(gen, "Jane", "Roe", email, phone, time.Now().UTC().AddDate(0, 0, 1), nil)
	assert.ErrorIs(err, domain.ErrValidation)
}

func TestMinimumAge(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	gen := staticGen{id: "HLD-1"}
	email := mustEmail(t, "kid@example.com")
	phone := mustPhone(t, "+15551234567")

	// 18th birthday is tomorrow: too young
	almost := time.Now().UTC().AddDate(-18, 0, 1)
	_, err := holder.New(gen, "Jane", "Roe", email, phone, almost, nil)
	assert.ErrorIs(err, domain.ErrValidation)

	// turned 18 a day ago: allowed
	justTurned := time.Now().UTC().AddDate(-18, 0, -1)
	_, err = holder.New(gen, "Jane", "Roe", email, phone, justTurned, nil)
	require.NoError(err)
}

func TestUpdateContactInfo(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	h, err := holder.New(staticGen{id: "HLD-1"},
		"Jane", "Roe",
		mustEmail(t, "jane@example.com"), mustPhone(t, "+15551234567"),
		validDOB(), nil)
	require.NoError(err)

	newEmail := mustEmail(t, "jane.roe@example.com")
	require.NoError(h.UpdateContactInfo(&newEmail, nil, &holder.Address{City: "Lisbon"}))
	assert.Equal("jane.roe@example.com", h.Email.String())
	assert.Equal("+15551234567", h.Phone.String(), "nil fields stay unchanged")
	assert.Equal("Lisbon", h.Address.City)

	h.MarkAsDeleted()
	assert.ErrorIs(h.UpdateContactInfo(&newEmail, nil, nil), domain.ErrInvalidOperation)
}

func TestParseEmail(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	email, err := holder.ParseEmail("  Jane@Example.COM ")
	assert.NoError(err)
	assert.Equal("jane@example.com", email.String(), "emails are normalized to lower case")

	for _, value := range []string{"", "nope", "a@b", "a b@c.com"} {
		_, err := holder.ParseEmail(value)
		assert.ErrorIs(err, domain.ErrValidation, "value %q", value)
	}
}

func TestParsePhone(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	phone, err := holder.ParsePhone("+1 (555) 123-4567")
	assert.NoError(err)
	assert.Equal("+15551234567", phone.String())

	for _, value := range []string{"", "12345", "phone", "+123456789012345678"} {
		_, err := holder.ParsePhone(value)
		assert.ErrorIs(err, domain.ErrValidation, "value %q", value)
	}
}
