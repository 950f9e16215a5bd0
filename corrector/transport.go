package corrector

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

var _ http.RoundTripper = Transport{}

// Transport wraps a RoundTripper with a circuit breaker.
type Transport struct {
	http.RoundTripper
	breaker *gobreaker.CircuitBreaker[*http.Response]
}

// TransportWithCircuitBreaker wraps rt, http.DefaultTransport when nil.
// Cancelled requests do not count as failures.
func TransportWithCircuitBreaker(settings gobreaker.Settings, rt http.RoundTripper) Transport {
	if settings.IsSuccessful == nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		}
	}
	if rt == nil {
		rt = http.DefaultTransport
	}
	return Transport{
		RoundTripper: rt,
		breaker:      gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

func (btr Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	return btr.breaker.Execute(func() (*http.Response, error) {
		return btr.RoundTripper.RoundTrip(req)
	})
}

// State reports the breaker state.
func (btr Transport) State() gobreaker.State {
	return btr.breaker.State()
}

// leveledLogger adapts zerolog to retryablehttp.LeveledLogger.
type leveledLogger struct{ zerolog.Logger }

func (l leveledLogger) Error(msg string, kv ...interface{}) { l.Logger.Error().Fields(kv).Msg(msg) }
func (l leveledLogger) Warn(msg string, kv ...interface{})  { l.Logger.Warn().Fields(kv).Msg(msg) }
func (l leveledLogger) Info(msg string, kv ...interface{})  { l.Logger.Debug().Fields(kv).Msg(msg) }
func (l leveledLogger) Debug(msg string, kv ...interface{}) { l.Logger.Debug().Fields(kv).Msg(msg) }
