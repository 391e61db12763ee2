package common

const (
	// AuthorizationHeaderName carries the bearer credential on protected requests.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "
	// RequestIDHeaderName is set on every HTTP response.
	RequestIDHeaderName = "X-Request-ID"
	// DefaultContentType is used for uploads that do not declare a type.
	DefaultContentType = "application/octet-stream"
)
