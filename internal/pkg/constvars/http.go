package constvars

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodDelete  = "DELETE"
	MethodOptions = "OPTIONS"
)

const (
	MIMEApplicationJSON            = "application/json"
	MIMEApplicationJSONCharsetUTF8 = "application/json; charset=utf-8"
)

const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusForbidden           = 403
	StatusNotFound            = 404
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderAccept       = "Accept"
	HeaderContentType  = "Content-Type"
	HeaderXRequestID   = "X-Request-ID"
	HeaderToken        = "token"
	HeaderAPIKey       = "x-api-key"
	HeaderCSRFToken    = "X-CSRF-Token"
	HeaderRetryAfter   = "Retry-After"
	HeaderUserAgent    = "User-Agent"
	HeaderForwardedFor = "X-Forwarded-For"
)
