// Package client is the CLI's view of the SmartDrive HTTP API.
//
// HTTPClient implements Client. Non-2xx responses come back as *APIError,
// which unwraps to a sentinel so callers can use errors.Is:
//
//	400 -> common.ErrInvalidInput
//	401 -> common.ErrInvalidCredentials (login) or ErrUnauthorized
//	409 -> common.ErrAlreadyExists
//	500 -> common.ErrStorageFailure when the server attached a provider error
//
// Transport failures wrap ErrUnavailable.
package client
