// Package metrics defines the recording surface for payment exchange
// observability. The default is NoopRecorder.
package metrics

import "time"

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}

// Event and operation names recorded by the payment interceptor.
const (
	EventChallenge = "challenge"
	EventRetry     = "retry"
	EventSettled   = "settled"
	EventFailure   = "failure"

	OperationPaymentRetry = "payment_retry"
)

type NoopRecorder struct{}

func (NoopRecorder) IncCounter(string, map[string]string)                    {}
func (NoopRecorder) ObserveLatency(string, time.Duration, map[string]string) {}
