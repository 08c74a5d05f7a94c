package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"resto-backend/internal/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

// Substrings that identify a connectivity failure when the error type has
// been lost, e.g. after crossing an HTTP proxy to a hosted database.
var transientSignatures = []string{
	"connect timeout error",
	"und_err_connect_timeout",
	"fetch failed",
	"connection refused",
	"connection reset",
	"i/o timeout",
}

// IsTransient reports whether err looks like a connectivity failure worth retrying.
// Server-side errors such as constraint violations never are.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return false
	}

	var transient *apperr.TransientConnectivityError
	if errors.As(err, &transient) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, sig := range transientSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
