package session

import (
	"fmt"

	"github.com/avencourt/uastack/pkg/ua"
)

// SecurityPolicyNone is the URI of the null security policy; sessions
// on channels with this policy skip nonce and signature computation.
const SecurityPolicyNone = "http://opcfoundation.org/UA/SecurityPolicy#None"

// nonceLength is the server nonce size mandated by Part 4.
const nonceLength = 32

// CryptoProvider produces the random material and signatures the
// session machine needs. The concrete provider belongs to the security
// layer; this package only consumes the interface.
type CryptoProvider interface {
	// GenerateNonce returns n cryptographically random bytes.
	GenerateNonce(n int) ([]byte, error)
	// SignatureAlgorithmURI identifies the asymmetric signature
	// algorithm of the endpoint's server key.
	SignatureAlgorithmURI() string
	// SignWithServerKey signs data with the endpoint server key.
	SignWithServerKey(data []byte) ([]byte, error)
}

// ComputeNonceAndSignature fills the session's server nonce and the
// CreateSession response signature over clientCert+clientNonce. With
// the None policy this is a no-op. The nonce is generated once per
// session; a repeated call keeps the existing one.
func (m *Manager) ComputeNonceAndSignature(s *Session, req *ua.CreateSessionRequest, policyURI string) error {
	if policyURI == SecurityPolicyNone {
		return nil
	}
	if m.crypto == nil {
		return fmt.Errorf("security policy %q requires a crypto provider", policyURI)
	}
	if s.NonceServer.Len() == 0 {
		nonce, err := m.crypto.GenerateNonce(nonceLength)
		if err != nil {
			return fmt.Errorf("generating server nonce: %w", err)
		}
		s.NonceServer = ua.ByteString{Data: nonce}
	}

	toSign := make([]byte, 0, req.ClientCertificate.Len()+req.ClientNonce.Len())
	toSign = append(toSign, req.ClientCertificate.Data...)
	toSign = append(toSign, req.ClientNonce.Data...)
	sig, err := m.crypto.SignWithServerKey(toSign)
	if err != nil {
		return fmt.Errorf("signing client certificate and nonce: %w", err)
	}
	s.Signature = ua.SignatureData{
		Algorithm: ua.NewString(m.crypto.SignatureAlgorithmURI()),
		Signature: ua.ByteString{Data: sig},
	}
	return nil
}
