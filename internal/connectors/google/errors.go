package google

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Common Google API errors.
var (
	// ErrUnauthorized indicates invalid or expired credentials.
	ErrUnauthorized = errors.New("google: unauthorised (invalid credentials)")

	// ErrForbidden indicates insufficient permissions.
	ErrForbidden = errors.New("google: forbidden (insufficient permissions)")

	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = errors.New("google: resource not found")

	// ErrRateLimited indicates the API rate limit or quota was exceeded.
	ErrRateLimited = errors.New("google: rate limit exceeded")

	// ErrInvalidRequest indicates the service rejected the request arguments.
	ErrInvalidRequest = errors.New("google: invalid request")

	// ErrUnavailable indicates the service could not be reached in time.
	ErrUnavailable = errors.New("google: service unavailable")
)

// grpcCode extracts a gRPC status code from err, if it carries one.
func grpcCode(err error) (codes.Code, bool) {
	s, ok := status.FromError(err)
	if !ok || s == nil || s.Code() == codes.Unknown {
		return codes.Unknown, false
	}
	return s.Code(), true
}

// httpCode extracts an HTTP status code from err, if it carries one.
func httpCode(err error) (int, bool) {
	var aerr *apierror.APIError
	if errors.As(err, &aerr) && aerr.HTTPCode() > 0 {
		return aerr.HTTPCode(), true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code, true
	}
	return 0, false
}

// classify maps err to one of the package sentinels, or nil if unrecognised.
func classify(err error) error {
	if code, ok := grpcCode(err); ok {
		switch code {
		case codes.Unauthenticated:
			return ErrUnauthorized
		case codes.PermissionDenied:
			return ErrForbidden
		case codes.NotFound:
			return ErrNotFound
		case codes.ResourceExhausted:
			return ErrRateLimited
		case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
			return ErrInvalidRequest
		case codes.Unavailable, codes.DeadlineExceeded:
			return ErrUnavailable
		}
	}

	if code, ok := httpCode(err); ok {
		switch code {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrForbidden
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusTooManyRequests:
			return ErrRateLimited
		case http.StatusBadRequest:
			return ErrInvalidRequest
		case http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return ErrUnavailable
		}
	}

	return nil
}

func is(err, target error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, target) {
		return true
	}
	return errors.Is(classify(err), target)
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool { return is(err, ErrUnauthorized) }

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool { return is(err, ErrForbidden) }

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool { return is(err, ErrNotFound) }

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool { return is(err, ErrRateLimited) }

// IsUnavailable returns true if the service was unreachable or timed out.
func IsUnavailable(err error) bool { return is(err, ErrUnavailable) }

// RetryDelay returns the retry delay the service attached to err, or zero.
func RetryDelay(err error) time.Duration {
	var aerr *apierror.APIError
	if !errors.As(err, &aerr) {
		return 0
	}
	return aerr.Details().RetryInfo.GetRetryDelay().AsDuration()
}

// WrapError tags a Google API error with the matching sentinel.
// The original error stays in the chain so its message is preserved.
func WrapError(err error) error {
	if err == nil {
		return nil
	}

	sentinel := classify(err)
	if sentinel == nil || errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
