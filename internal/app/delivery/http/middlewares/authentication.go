package middlewares

import (
	"crypto/subtle"
	"docbook-service/internal/app/models"
	"docbook-service/internal/pkg/constvars"
	"docbook-service/internal/pkg/exceptions"
	"docbook-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the token header into an actor. Requests already
// authenticated by PaymentAPIKey pass through untouched.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.ActorFromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		requestID := utils.GetRequestID(r.Context())
		token := strings.TrimSpace(r.Header.Get(constvars.HeaderToken))
		if token == "" {
			m.Log.Info("Middlewares.Authenticate token missing",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		actor, err := m.TokenVerifier.VerifyToken(token)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate token rejected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		m.Log.Debug("Middlewares.Authenticate succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingActorIDKey, actor.ID),
			zap.String(constvars.LoggingActorRoleKey, string(actor.Role)),
		)
		next.ServeHTTP(w, r.WithContext(utils.WithActor(r.Context(), actor)))
	})
}

// PaymentAPIKey lets the payment gateway act as the Payment actor by
// presenting the shared key in x-api-key. Requests without the header are
// left to Authenticate.
func (m *Middlewares) PaymentAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		expected := m.InternalConfig.Payment.ServiceAPIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			m.Log.Warn("Middlewares.PaymentAPIKey invalid api key",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		actor := models.Actor{ID: constvars.PaymentServiceActorID, Role: models.RolePayment}

		m.Log.Info("Middlewares.PaymentAPIKey authentication successful",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
		)
		next.ServeHTTP(w, r.WithContext(utils.WithActor(r.Context(), actor)))
	})
}
