// Package auth implements the mock OTP login flow. This is explicitly not
// a security boundary: no SMS is sent and the accepted code is fixed. It
// exists so the session plumbing (JWT cookies, protected routes) works the
// same way it would against a real provider.
package auth

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// AcceptedOTP is the only code VerifyOTP accepts.
const AcceptedOTP = "123456"

// sessionTTL is how long a requested OTP stays verifiable.
const sessionTTL = 5 * time.Minute

var (
	ErrInvalidPhone   = fmt.Errorf("phone number must have at least 10 digits")
	ErrUnknownSession = fmt.Errorf("unknown or expired OTP session")
	ErrWrongOTP       = fmt.Errorf("incorrect OTP")
)

type session struct {
	phone   string
	expires time.Time
}

// OTPService hands out mock OTP sessions and verifies codes against them.
type OTPService struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func NewOTPService() *OTPService {
	return &OTPService{sessions: make(map[string]session), now: time.Now}
}

// SendOTP validates the phone and returns a session ID. Resending is just
// calling this again; the old session keeps working until it expires.
func (s *OTPService) SendOTP(phone string) (string, error) {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 10 {
		return "", ErrInvalidPhone
	}

	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.sessions[id] = session{phone: strings.TrimSpace(phone), expires: s.now().Add(sessionTTL)}
	return id, nil
}

// VerifyOTP checks the code against a live session and returns the phone
// number the session was opened for.
func (s *OTPService) VerifyOTP(sessionID, otp string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", ErrUnknownSession
	}
	if otp != AcceptedOTP {
		return "", ErrWrongOTP
	}
	delete(s.sessions, sessionID)
	return sess.phone, nil
}

func (s *OTPService) purgeLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.expires) {
			delete(s.sessions, id)
		}
	}
}
