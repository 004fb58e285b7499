package container

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Validation errors. These are returned before any authentication or
// network activity takes place.
var (
	ErrNameRequired     = errors.New("Name must not be empty")
	ErrStreamRequired   = errors.New("FileStream must not be empty")
	ErrSinkRequired     = errors.New("FileStream must not be empty")
	ErrStreamAndContent = errors.New("swift-container: stream and content are mutually exclusive")
	ErrInvalidDirective = errors.New("expected when to be a number of seconds or a date")
)

// Lease errors
var (
	ErrInvalidLease = errors.New("swift-container: authenticator returned an unusable lease")
)

var validationErrors = []error{
	ErrNameRequired,
	ErrStreamRequired,
	ErrSinkRequired,
	ErrStreamAndContent,
	ErrInvalidDirective,
}

// IsValidation reports whether err was raised by argument checking rather
// than by the service or the transport.
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// StatusError is returned when the service answers with an unexpected
// status code.
type StatusError struct {
	Method  string
	Name    string
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("swift %s %s: HTTP %d", e.Method, e.Name, e.Status)
	}
	return fmt.Sprintf("swift %s %s: HTTP %d: %s", e.Method, e.Name, e.Status, e.Message)
}

func (e *StatusError) GetStatusCode() int {
	return e.Status
}

func (e *StatusError) GetName() string {
	return http.StatusText(e.Status)
}

// IsStatus reports whether err carries the given HTTP status code.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}
