package identitymock

import (
	"context"

	"loanmarket-api/internal/domain/identity"
)

var _ identity.Verifier = (*Verifier)(nil)

// Verifier is a function-backed mock for the identity boundary. The zero
// value rejects everything.
type Verifier struct {
	VerifyFn func(ctx context.Context, token string) (string, error)
}

// Static builds a verifier that maps each listed token to an email and
// rejects the rest. Handy for handler tests.
func Static(tokens map[string]string) *Verifier {
	return &Verifier{
		VerifyFn: func(_ context.Context, token string) (string, error) {
			email, ok := tokens[token]
			if !ok {
				return "", identity.ErrInvalidToken
			}
			return email, nil
		},
	}
}

func (m *Verifier) Verify(ctx context.Context, token string) (string, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	return "", identity.ErrInvalidToken
}
