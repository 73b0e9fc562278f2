// ABOUTME: Error taxonomy for the feed pipeline.
// ABOUTME: AuthError means re-authenticate; NetworkError means retry later.
package feed

import (
	"errors"
	"fmt"
)

// AuthError reports an invalid, expired, or missing credential.
type AuthError struct {
	Platform string
	Op       string
	Err      error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Platform, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s: authentication required", e.Platform, e.Op)
}

func (e *AuthError) Unwrap() error { return e.Err }

// NetworkError reports a transient failure: connectivity loss, rate
// limiting, or a server-side error. Pipeline state is left untouched and
// the failed operation may be retried as-is.
type NetworkError struct {
	Platform   string
	Op         string
	StatusCode int // 0 when the request never reached the server
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s: status %d", e.Platform, e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Platform, e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsNetworkError reports whether err is (or wraps) a NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ErrReactionsUnsupported is returned by Feed.React when the platform
// adapter has no write API.
var ErrReactionsUnsupported = errors.New("reactions not supported on this platform")
