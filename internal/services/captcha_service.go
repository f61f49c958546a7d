package services

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CaptchaService hands out simple arithmetic challenges checked before
// session initialization. Challenges live in memory with a short expiry.
type CaptchaService struct {
	mutex      sync.Mutex
	challenges map[string]captchaChallenge
	expiry     time.Duration
	now        func() time.Time
}

type captchaChallenge struct {
	answer    int
	expiresAt time.Time
}

func NewCaptchaService(expiryMinutes int) *CaptchaService {
	if expiryMinutes <= 0 {
		expiryMinutes = 5
	}
	return &CaptchaService{
		challenges: make(map[string]captchaChallenge),
		expiry:     time.Duration(expiryMinutes) * time.Minute,
		now:        time.Now,
	}
}

// Generate creates a new challenge and returns its id and question.
func (s *CaptchaService) Generate() (string, string) {
	a := rand.Intn(9) + 1
	b := rand.Intn(9) + 1

	var question string
	var answer int
	if rand.Intn(2) == 0 {
		question = fmt.Sprintf("What is %d + %d?", a, b)
		answer = a + b
	} else {
		if a < b {
			a, b = b, a
		}
		question = fmt.Sprintf("What is %d - %d?", a, b)
		answer = a - b
	}

	id := uuid.NewString()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.cleanupLocked()
	s.challenges[id] = captchaChallenge{
		answer:    answer,
		expiresAt: s.now().Add(s.expiry),
	}

	return id, question
}

// Verify consumes a challenge. A challenge can be answered once.
func (s *CaptchaService) Verify(id, answer string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	challenge, ok := s.challenges[id]
	if !ok {
		return false
	}
	delete(s.challenges, id)

	if s.now().After(challenge.expiresAt) {
		return false
	}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false
	}
	return n == challenge.answer
}

func (s *CaptchaService) cleanupLocked() {
	now := s.now()
	for id, challenge := range s.challenges {
		if now.After(challenge.expiresAt) {
			delete(s.challenges, id)
		}
	}
}
