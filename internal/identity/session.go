// Package identity answers the two authorization questions the sync engines
// ask before every write: is someone signed in, and is that someone the
// blog's author.
//
// Verdicts come from the claims of the bearer token the client presents to
// the document store. The client cannot verify the token's signature; the
// store does, so a forged token only changes what the client attempts, never
// what the store accepts.
package identity

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-blog-sync/internal/utils"
	"github.com/MKhiriev/go-blog-sync/models"
)

// Capabilities is the authorization oracle consulted on every mutation.
type Capabilities interface {
	// IsAuthenticated reports whether a non-expired identity is present.
	IsAuthenticated() bool
	// IsAuthorized reports whether the current identity may write posts.
	IsAuthorized() bool
	// Identity returns the signed-in user; ok is false when anonymous.
	Identity() (models.Identity, bool)
}

// Session is a [Capabilities] backed by a bearer token.
type Session struct {
	mu          sync.RWMutex
	token       string
	claims      *models.Claims
	authorEmail string
	now         func() time.Time
}

// NewSession parses token (may be empty for an anonymous session) and binds
// it to the blog author's email.
func NewSession(token, authorEmail string) (*Session, error) {
	s := &Session{authorEmail: strings.TrimSpace(authorEmail), now: time.Now}
	if err := s.SetToken(token); err != nil {
		return nil, err
	}
	return s, nil
}

// SetToken replaces the session's token. An empty token signs out.
func (s *Session) SetToken(token string) error {
	token = strings.TrimSpace(token)

	var claims *models.Claims
	if token != "" {
		parsed, err := utils.ParseUnverifiedClaims(token)
		if err != nil {
			return fmt.Errorf("invalid session token: %w", err)
		}
		claims = &parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	return nil
}

// Token returns the raw bearer token, "" when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Identity()
	return ok
}

func (s *Session) IsAuthorized() bool {
	id, ok := s.Identity()
	if !ok || s.authorEmail == "" {
		return false
	}
	return strings.EqualFold(id.Email, s.authorEmail)
}

func (s *Session) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.claims == nil || s.claims.Subject == "" {
		return models.Identity{}, false
	}
	if exp := s.claims.ExpiresAt; exp != nil && !s.now().Before(exp.Time) {
		return models.Identity{}, false
	}
	return s.claims.Identity(), true
}
