package service

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// ============================================================
// One-time codes
// ============================================================

const CodeLength = 6

var (
	ErrNoCode          = errors.New("no code requested")
	ErrCodeExpired     = errors.New("code expired")
	ErrCodeMismatch    = errors.New("code mismatch")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrTooSoon         = errors.New("code requested too recently")
)

type pendingCode struct {
	code     string
	expires  time.Time
	attempts int
}

// OTPStore holds at most one outstanding code per phone. Requesting a new
// code replaces the previous one; failed attempts carry over while the old
// code is still live. A phone can request at most one code per cooldown.
type OTPStore struct {
	mu          sync.Mutex
	ttl         time.Duration
	maxAttempts int
	cooldown    time.Duration
	now         func() time.Time
	codes       map[string]*pendingCode
	issued      map[string]time.Time
}

func NewOTPStore(ttl time.Duration, maxAttempts int, cooldown time.Duration) *OTPStore {
	return &OTPStore{
		ttl:         ttl,
		maxAttempts: maxAttempts,
		cooldown:    cooldown,
		now:         time.Now,
		codes:       make(map[string]*pendingCode),
		issued:      make(map[string]time.Time),
	}
}

// Issue returns a new code for phone, or ErrTooSoon inside the cooldown.
func (s *OTPStore) Issue(phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	code := fmt.Sprintf("%0*d", CodeLength, n.Int64())

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)
	if last, ok := s.issued[phone]; ok && now.Sub(last) < s.cooldown {
		return "", ErrTooSoon
	}

	next := &pendingCode{code: code, expires: now.Add(s.ttl)}
	if prev, ok := s.codes[phone]; ok {
		next.attempts = prev.attempts
	}
	s.codes[phone] = next
	if s.cooldown > 0 {
		s.issued[phone] = now
	}
	return code, nil
}

// Len reports how many codes are outstanding.
func (s *OTPStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.codes)
}

func (s *OTPStore) sweep(now time.Time) {
	for phone, p := range s.codes {
		if now.After(p.expires) {
			delete(s.codes, phone)
		}
	}
	for phone, at := range s.issued {
		if now.Sub(at) >= s.cooldown {
			delete(s.issued, phone)
		}
	}
}

// Verify consumes the code on success. A code is burnt once it expires or
// runs out of attempts.
func (s *OTPStore) Verify(phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.codes[phone]
	if !ok {
		return ErrNoCode
	}
	if s.now().After(p.expires) {
		delete(s.codes, phone)
		return ErrCodeExpired
	}
	if subtle.ConstantTimeCompare([]byte(p.code), []byte(code)) != 1 {
		p.attempts++
		if s.maxAttempts > 0 && p.attempts >= s.maxAttempts {
			delete(s.codes, phone)
			return ErrTooManyAttempts
		}
		return ErrCodeMismatch
	}
	delete(s.codes, phone)
	return nil
}
