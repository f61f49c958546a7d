package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"accomform_backend/pkg/apperrors"
)

// VerificationService issues and validates the short-lived numeric
// tokens that prove control of an email address.
type VerificationService struct {
	tokenLength int
	expiry      time.Duration
	now         func() time.Time
}

func NewVerificationService(tokenLength, expiryMinutes int) *VerificationService {
	if tokenLength <= 0 {
		tokenLength = 6
	}
	if expiryMinutes <= 0 {
		expiryMinutes = 15
	}
	return &VerificationService{
		tokenLength: tokenLength,
		expiry:      time.Duration(expiryMinutes) * time.Minute,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Tests only.
func (s *VerificationService) WithClock(now func() time.Time) *VerificationService {
	s.now = now
	return s
}

func (s *VerificationService) ExpiryMinutes() int {
	return int(s.expiry / time.Minute)
}

// Generate returns a fixed-length numeric token and its expiry.
func (s *VerificationService) Generate() (string, time.Time, error) {
	token := make([]byte, s.tokenLength)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
		}
		token[i] = byte('0' + n.Int64())
	}
	return string(token), s.now().Add(s.expiry), nil
}

// Check validates a presented token against the stored one. Expiry is
// evaluated first so a stale code always reports "expired", never
// "mismatch", even when the digits match.
func (s *VerificationService) Check(stored string, expiresAt *time.Time, presented string) error {
	if stored == "" || expiresAt == nil {
		return apperrors.VerificationMismatchError()
	}
	if s.now().After(*expiresAt) {
		return apperrors.VerificationExpiredError()
	}
	if stored != presented {
		return apperrors.VerificationMismatchError()
	}
	return nil
}
