// Package queryfail classifies reporting-view query failures.
//
// Handlers use the classification to decide how a failed panel load is
// presented: auth failures bounce the operator to the login page, while
// network and query failures render a panel-local failure state. The
// taxonomy is deliberately small; there are no retries anywhere, so a
// class only needs to pick a message and a log level.
package queryfail

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind identifies the failure class of a reporting query.
type Kind int

const (
	KindQuery   Kind = iota // backend rejected or failed the query
	KindNetwork             // timeout or transport failure reaching the backend
	KindAuth                // session is no longer valid
)

// Error wraps a reporting-view failure with its classification and the
// panel operation that failed.
type Error struct {
	Kind Kind
	Op   string // e.g. "overview.summary", "daily.list"
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// String returns the class name for logging.
func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	default:
		return "query"
	}
}

// Classify wraps err with the failure class inferred from the mongo
// driver error. Timeouts and server-selection failures are network
// failures; everything else the driver reports is a query failure.
func Classify(op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

func classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindNetwork
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return KindNetwork
	}
	return KindQuery
}

// KindOf reports the class of err, or KindQuery when err carries no
// classification.
func KindOf(err error) Kind {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Kind
	}
	return classify(err)
}

// Message returns the operator-facing failure message for err.
// The message is panel-local; the rest of the page stays usable.
func Message(err error) string {
	switch KindOf(err) {
	case KindNetwork:
		return "Could not reach the reporting backend. Check your connection and try again."
	case KindAuth:
		return "Your session has expired. Please sign in again."
	default:
		return "The report could not be loaded. Please try again."
	}
}
