package middlewares

import (
	"docbook-service/internal/app/config"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/dto/responses"
	"docbook-service/internal/pkg/utils"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "test-payment-api-key-12345"

type mockTokenVerifier struct {
	mock.Mock
}

func (m *mockTokenVerifier) VerifyToken(token string) (models.Actor, error) {
	args := m.Called(token)
	return args.Get(0).(models.Actor), args.Error(1)
}

func newTestMiddlewares(verifier *mockTokenVerifier) *Middlewares {
	return NewMiddlewares(zap.NewNop(), verifier, &config.InternalConfig{
		Payment: config.AppPayment{ServiceAPIKey: testAPIKey},
	})
}

// actorEcho writes the resolved actor id, or "none".
func actorEcho(w http.ResponseWriter, r *http.Request) {
	actor, ok := utils.ActorFromContext(r.Context())
	if !ok {
		w.Write([]byte("none"))
		return
	}
	w.Write([]byte(actor.ID + ":" + string(actor.Role)))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) responses.ErrorResponseDTO {
	t.Helper()
	var body responses.ErrorResponseDTO
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	verifier := new(mockTokenVerifier)
	verifier.On("VerifyToken", "good-token").Return(models.Actor{ID: "patient-1", Role: models.RolePatient}, nil)
	verifier.On("VerifyToken", "bad-token").Return(models.Actor{}, errors.New("signature is invalid"))
	m := newTestMiddlewares(verifier)
	handler := m.Authenticate(http.HandlerFunc(actorEcho))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
		req.Header.Set(constvars.HeaderToken, "good-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "patient-1:Patient", rr.Body.String())
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		body := decodeError(t, rr)
		assert.False(t, body.Success)
		assert.Equal(t, constvars.ErrClientTokenMissing, body.Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
		req.Header.Set(constvars.HeaderToken, "bad-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, constvars.ErrClientTokenInvalid, decodeError(t, rr).Message)
	})
}

func TestPaymentAPIKey(t *testing.T) {
	verifier := new(mockTokenVerifier)
	verifier.On("VerifyToken", "doctor-token").Return(models.Actor{ID: "doc-1", Role: models.RoleDoctor}, nil)
	m := newTestMiddlewares(verifier)
	handler := m.PaymentAPIKey(m.Authenticate(http.HandlerFunc(actorEcho)))

	t.Run("valid api key acts as payment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/mark-paid", nil)
		req.Header.Set(constvars.HeaderAPIKey, testAPIKey)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, constvars.PaymentServiceActorID+":Payment", rr.Body.String())
		verifier.AssertNotCalled(t, "VerifyToken", mock.Anything)
	})

	t.Run("invalid api key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/mark-paid", nil)
		req.Header.Set(constvars.HeaderAPIKey, "TEST-PAYMENT-API-KEY-12345")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("no api key falls back to token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/mark-paid", nil)
		req.Header.Set(constvars.HeaderToken, "doctor-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "doc-1:Doctor", rr.Body.String())
	})

	t.Run("unset key disables api key auth", func(t *testing.T) {
		disabled := NewMiddlewares(zap.NewNop(), verifier, &config.InternalConfig{})
		req := httptest.NewRequest(http.MethodPost, "/api/mark-paid", nil)
		req.Header.Set(constvars.HeaderAPIKey, "anything")
		rr := httptest.NewRecorder()
		disabled.PaymentAPIKey(http.HandlerFunc(actorEcho)).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestErrorHandler_RecoversPanic(t *testing.T) {
	m := newTestMiddlewares(new(mockTokenVerifier))
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/appointments", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeError(t, rr)
	assert.False(t, body.Success)
	assert.Equal(t, constvars.ErrClientSomethingWrongWithApplication, body.Message)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(new(mockTokenVerifier))
	var seen string
	handler := m.RequestIDMiddleware(m.Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(constvars.HeaderXRequestID, "client-request-1")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, "client-request-1", seen)
	assert.Equal(t, "client-request-1", rr.Header().Get(constvars.HeaderXRequestID))

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, seen)
	assert.NotEqual(t, "client-request-1", seen)
	assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
}

func TestRateLimiter_BlocksAfterBudget(t *testing.T) {
	limiter := NewRateLimiter(2, time.Minute, time.Minute, zap.NewNop())
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/book-appointment", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234").Code)

	blocked := send("10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get(constvars.HeaderRetryAfter))
	assert.Equal(t, constvars.ErrClientTooManyRequests, decodeError(t, blocked).Message)

	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:5678").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234").Code)
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	clock := time.Date(2025, 7, 5, 10, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, time.Minute, 2*time.Minute, zap.NewNop())
	limiter.now = func() time.Time { return clock }
	limiter.lastSweep = clock
	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/book-appointment", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	for i := 0; i < 50; i++ {
		assert.Equal(t, http.StatusOK, send(fmt.Sprintf("10.0.1.%d:1234", i)))
	}
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.1.0:1234"))
	assert.Len(t, limiter.limiters, 50)
	assert.Len(t, limiter.blocked, 1)

	clock = clock.Add(90 * time.Second)
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.1.0:1234"))
	assert.Len(t, limiter.limiters, 50)

	clock = clock.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, send("10.0.2.1:1234"))
	assert.Len(t, limiter.limiters, 1)
	assert.Empty(t, limiter.blocked)

	assert.Equal(t, http.StatusOK, send("10.0.1.0:1234"))
	assert.Len(t, limiter.limiters, 2)
}
