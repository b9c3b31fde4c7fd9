package holder_test

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/holder"
	"github.com/fintechlab/bankapi/pkg/repository/fake"
	holdersvc "github.com/fintechlab/bankapi/pkg/service/holder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newService(uow *fake.UoW, bus *fake.RecorderBus) *holdersvc.Service {
	return holdersvc.NewService(uow, bus, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func adultDOB() time.Time {
	return time.Now().UTC().AddDate(-30, 0, 0)
}

func TestRegister(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	uow := fake.NewUoW()
	bus := &fake.RecorderBus{}
	svc := newService(uow, bus)

	h, err := svc.Register(context.Background(),
		"Jane", "Roe", "Jane@Example.com", "+1 555 123 4567", adultDOB(), nil)
	require.NoError(err)
	assert.NotEmpty(h.ID)
	assert.Equal("jane@example.com", h.Email.String())
	assert.Equal("+15551234567", h.Phone.String())
	assert.Equal([]string{"holder.created"}, bus.Types())

	stored, err := svc.Get(context.Background(), h.ID)
	require.NoError(err)
	assert.Equal(h.Email, stored.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	uow := fake.NewUoW()
	svc := newService(uow, &fake.RecorderBus{})

	_, err := svc.Register(context.Background(),
		"Jane", "Roe", "jane@example.com", "+15551234567", adultDOB(), nil)
	require.NoError(err)

	_, err = svc.Register(context.Background(),
		"John", "Doe", "JANE@example.com", "+15557654321", adultDOB(), nil)
	assert.ErrorIs(err, domain.ErrValidation, "email uniqueness is case-insensitive")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	svc := newService(fake.NewUoW(), &fake.RecorderBus{})

	_, err := svc.Register(context.Background(),
		"Jane", "Roe", "not-an-email", "+15551234567", adultDOB(), nil)
	assert.ErrorIs(err, domain.ErrValidation)

	_, err = svc.Register(context.Background(),
		"Jane", "Roe", "jane@example.com", "12", adultDOB(), nil)
	assert.ErrorIs(err, domain.ErrValidation)

	minor := time.Now().UTC().AddDate(-17, 0, 0)
	_, err = svc.Register(context.Background(),
		"Jane", "Roe", "jane@example.com", "+15551234567", minor, nil)
	assert.ErrorIs(err, domain.ErrValidation)
}

func TestUpdateContactInfo(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	uow := fake.NewUoW()
	svc := newService(uow, &fake.RecorderBus{})

	h, err := svc.Register(context.Background(),
		"Jane", "Roe", "jane@example.com", "+15551234567", adultDOB(), nil)
	require.NoError(err)

	email, err := holder.ParseEmail("new@example.com")
	require.NoError(err)
	updated, err := svc.UpdateContactInfo(context.Background(), h.ID, &email, nil,
		&holder.Address{City: "Porto", Country: "PT"})
	require.NoError(err)
	assert.Equal("new@example.com", updated.Email.String())
	assert.Equal("Porto", updated.Address.City)

	stored, err := svc.Get(context.Background(), h.ID)
	require.NoError(err)
	assert.Equal("new@example.com", stored.Email.String())
}

func TestDeleteHolder(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	uow := fake.NewUoW()
	bus := &fake.RecorderBus{}
	svc := newService(uow, bus)

	h, err := svc.Register(context.Background(),
		"Jane", "Roe", "jane@example.com", "+15551234567", adultDOB(), nil)
	require.NoError(err)

	require.NoError(svc.Delete(context.Background(), h.ID))
	stored, err := svc.Get(context.Background(), h.ID)
	require.NoError(err)
	assert.True(stored.IsDeleted)
	assert.Contains(bus.Types(), "holder.deleted")
}

func TestUUIDGeneratorUnique(t *testing.T) {
	t.Parallel()
	gen := holdersvc.UUIDGenerator{}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.NewHolderID()
		require.False(t, seen[id], "holder IDs must be unique")
		seen[id] = true
	}
}
