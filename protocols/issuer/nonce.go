package issuer

import (
	"math/big"
	"regexp"

	"github.com/google/uuid"
)

var nonceFormat = regexp.MustCompile(`^[0-9]+$`)

// NonceSource produces proof request nonces.
type NonceSource func() string

// NewNonce renders a random 128-bit UUID as a decimal integer string.
func NewNonce() string {
	id := uuid.New()
	return new(big.Int).SetBytes(id[:]).String()
}

// ensureNonce fills a missing nonce and leaves an existing one untouched.
func ensureNonce(proof ProofRequest, source NonceSource) ProofRequest {
	if proof.Nonce != "" {
		return proof
	}
	if source == nil {
		source = NewNonce
	}
	proof.Nonce = source()
	return proof
}
