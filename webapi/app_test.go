package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintechlab/bankapi/pkg/config"
	"github.com/fintechlab/bankapi/pkg/domain"
	"github.com/fintechlab/bankapi/pkg/domain/account"
	"github.com/fintechlab/bankapi/pkg/domain/card"
	"github.com/fintechlab/bankapi/pkg/domain/money"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	"github.com/fintechlab/bankapi/pkg/repository/fake"
	accountsvc "github.com/fintechlab/bankapi/pkg/service/account"
	cardsvc "github.com/fintechlab/bankapi/pkg/service/card"
	holdersvc "github.com/fintechlab/bankapi/pkg/service/holder"
	transfersvc "github.com/fintechlab/bankapi/pkg/service/transfer"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func newTestApp(t *testing.T) (*fiber.App, *fake.UoW) {
	t.Helper()
	uow := fake.NewUoW()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := eventbus.NewMemoryBus(logger)
	cfg := &config.App{
		Jwt: config.JwtConfig{Secret: testSecret, Expiry: time.Hour},
		Server: config.ServerConfig{
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, Window: time.Minute},
	}
	app := NewApp(cfg, Services{
		Account:  accountsvc.NewService(uow, bus, logger),
		Card:     cardsvc.NewService(uow, bus, logger),
		Holder:   holdersvc.NewService(uow, bus, nil, logger),
		Transfer: transfersvc.NewService(uow, bus, logger),
	})
	return app, uow
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func makeRequest(t *testing.T, app *fiber.App, method, target, body, token string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)
	resp := makeRequest(t, app, "GET", "/health", "", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	assert := assert.New(t)
	app, _ := newTestApp(t)

	resp := makeRequest(t, app, "GET", "/holder/HLD-1", "", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(fiber.StatusBadRequest, resp.StatusCode, "missing token")

	badToken := signToken(t, "wrong-secret", "HLD-1")
	resp = makeRequest(t, app, "GET", "/holder/HLD-1", "", badToken)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(fiber.StatusUnauthorized, resp.StatusCode, "bad signature")
}

func TestRegisterHolderVariants(t *testing.T) {
	app, _ := newTestApp(t)
	token := signToken(t, testSecret, "HLD-admin")

	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{
			desc: "success",
			body: `{"first_name":"Jane","last_name":"Roe","email":"jane@example.com",
				"phone":"+15551234567","date_of_birth":"1990-04-01"}`,
			wantStatus: fiber.StatusCreated,
		},
		{
			desc: "duplicate email",
			body: `{"first_name":"John","last_name":"Doe","email":"jane@example.com",
				"phone":"+15557654321","date_of_birth":"1991-05-02"}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "missing fields",
			body:       `{"first_name":"Jane"}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc: "underage",
			body: fmt.Sprintf(`{"first_name":"Kid","last_name":"Roe","email":"kid@example.com",
				"phone":"+15550001111","date_of_birth":"%s"}`,
				time.Now().AddDate(-10, 0, 0).Format("2006-01-02")),
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			resp := makeRequest(t, app, "POST", "/holder", tc.body, token)
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestCardTransferEndpoint(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	app, uow := newTestApp(t)

	sourceAcct, err := account.New("HLD-src", "USD", "")
	require.NoError(err)
	funds, err := money.New(100, "USD")
	require.NoError(err)
	require.NoError(sourceAcct.Credit(funds))
	sourceAcct.PullEvents()
	uow.SeedAccount(sourceAcct)

	targetAcct, err := account.New("HLD-dst", "USD", "")
	require.NoError(err)
	targetAcct.PullEvents()
	uow.SeedAccount(targetAcct)

	sourceCard, err := card.New(sourceAcct.ID, "Jane Roe", "123", card.TypeDebit)
	require.NoError(err)
	sourceCard.PullEvents()
	uow.SeedCard(sourceCard)

	targetCard, err := card.New(targetAcct.ID, "John Doe", "456", card.TypeDebit)
	require.NoError(err)
	targetCard.PullEvents()
	uow.SeedCard(targetCard)

	body := fmt.Sprintf(`{"source_card_number":"%s","target_card_number":"%s","amount":40,"description":"dinner"}`,
		sourceCard.Number, targetCard.Number)

	// token subject does not own the source card
	intruder := signToken(t, testSecret, "HLD-intruder")
	resp := makeRequest(t, app, "POST", "/transfer/card", body, intruder)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(fiber.StatusForbidden, resp.StatusCode)

	owner := signToken(t, testSecret, "HLD-src")
	resp = makeRequest(t, app, "POST", "/transfer/card", body, owner)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(fiber.StatusCreated, resp.StatusCode)

	var respBody Response
	require.NoError(json.NewDecoder(resp.Body).Decode(&respBody))
	data, ok := respBody.Data.(map[string]any)
	require.True(ok)
	assert.Equal("Completed", data["status"])
	assert.Equal(sourceCard.Number.Masked(), data["source_card"], "responses carry masked numbers only")

	// amount exceeds the remaining balance
	over := fmt.Sprintf(`{"source_card_number":"%s","target_card_number":"%s","amount":500}`,
		sourceCard.Number, targetCard.Number)
	resp = makeRequest(t, app, "POST", "/transfer/card", over, owner)
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestErrorToStatusCode(t *testing.T) {
	testCases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, fiber.StatusNotFound},
		{domain.ErrValidation, fiber.StatusBadRequest},
		{domain.ErrInvalidOperation, fiber.StatusConflict},
		{domain.ErrAlreadyExists, fiber.StatusConflict},
		{domain.ErrUnauthorized, fiber.StatusForbidden},
		{domain.ErrInsufficientBalance, fiber.StatusUnprocessableEntity},
		{domain.ErrCurrencyMismatch, fiber.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{errors.New("unknown"), fiber.StatusInternalServerError},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ErrorToStatusCode(tc.err), tc.err.Error())
	}
}
