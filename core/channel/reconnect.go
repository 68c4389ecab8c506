package channel

import "time"

// ReconnectPolicy decides whether a channel that closed unexpectedly is
// dialed again. The zero value never reconnects.
type ReconnectPolicy struct {
	Enabled bool
	// MaxAttempts bounds consecutive attempts after one unexpected closure.
	MaxAttempts int
	// Backoff is multiplied by the attempt number before each attempt.
	Backoff time.Duration
}

func (p ReconnectPolicy) allows(attempt int) bool {
	return p.Enabled && attempt <= p.MaxAttempts
}

func (p ReconnectPolicy) delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return p.Backoff * time.Duration(attempt)
}
