// Package queue carries AI processing tasks between the API and the
// worker over AMQP. The producer publishes one persistent message per
// uploaded document to a durable queue; the consumer feeds each message
// to a handler and acknowledges only after the handler returns.
package queue

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/estudai/estudai-api/internal/config"
)

// ErrUnavailable indicates the broker could not be reached or refused
// the operation. The upload flow compensates on this error by undoing
// the study row and the stored file.
var ErrUnavailable = errors.New("task queue unavailable")

// UnavailableError wraps a broker failure with the host it targeted.
type UnavailableError struct {
	Host string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("task queue at %s unavailable: %v", e.Host, e.Err)
}

// Unwrap exposes both the sentinel and the underlying broker error, so
// errors.Is matches ErrUnavailable as well as the cause (a dial timeout,
// a refused connection, ...).
func (e *UnavailableError) Unwrap() []error { return []error{ErrUnavailable, e.Err} }

// IsUnavailable reports whether err stems from an unreachable broker.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// brokerAddr builds the AMQP URI for the configured broker. Credentials
// and the vhost are percent-escaped per URI component; the default vhost
// "/" is expressed by omitting the path, which is how the URI scheme
// spells it.
func brokerAddr(cfg config.QueueConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
	if cfg.VHost != "" && cfg.VHost != "/" {
		u.Path = "/" + cfg.VHost
	}
	return u.String()
}
