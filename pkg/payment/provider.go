package payment

import "context"

// Session is the provider-side view of a checkout session.
type Session struct {
	ID        string
	URL       string
	Completed bool
}

// Provider is the payment gateway contract: create a hosted checkout
// session for an amount, and re-query it later by id to learn whether the
// customer completed it. Amounts are in minor units (cents).
type Provider interface {
	CreateSession(ctx context.Context, amountMinor int64, currency, ref string, metadata map[string]string) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}
