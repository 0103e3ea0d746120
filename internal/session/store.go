// Package session owns the process-wide authentication state. The Store
// is the single source of truth consulted by every screen and the only
// component permitted to write the credential; all mutation funnels
// through Bootstrap, Login and Logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/millio-space/guardops/internal/apperrors"
	"github.com/millio-space/guardops/internal/credential"
	"github.com/millio-space/guardops/internal/domain/auth"
)

// ErrLoginInFlight is returned when Login is called while another login
// attempt has not settled. Attempts are rejected, never interleaved.
var ErrLoginInFlight = errors.New("a login attempt is already in flight")

// Gateway is the slice of the backend client the store needs: the
// credential exchange and the identity lookup.
type Gateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	Me(ctx context.Context) (auth.Identity, error)
}

// Store holds the one live Session. Commits from in-flight operations
// re-validate a generation captured when the operation began, so a
// response arriving after a logout can never resurrect the session.
type Store struct {
	gw     Gateway
	creds  credential.Store
	logger *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	session     auth.Session
	generation  uint64
	subscribers []func(auth.Session)
}

// NewStore creates a session store over the given gateway and credential
// storage.
func NewStore(gw Gateway, creds credential.Store, logger *slog.Logger) *Store {
	return NewStoreWithClock(gw, creds, logger, time.Now)
}

// NewStoreWithClock creates a session store with an injected clock.
func NewStoreWithClock(gw Gateway, creds credential.Store, logger *slog.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		gw:     gw,
		creds:  creds,
		logger: logger,
		now:    now,
	}
}

// Current returns a copy of the session for rendering decisions. It
// never triggers network activity.
func (s *Store) Current() auth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Token implements the gateway's token source: it exposes the held
// bearer token read-only.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Credential == nil {
		return "", false
	}
	return s.session.Credential.Token, true
}

// Subscribe registers a callback invoked with a session copy after every
// state commit. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func(auth.Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Bootstrap restores the session from the persisted credential, once, at
// process start. It always settles into a determinate state and never
// returns an error: any failure falls back to logged out.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	s.session.Loading = true
	s.mu.Unlock()
	s.notify()

	defer s.settle()

	token, err := s.creds.Read()
	if err != nil {
		if !errors.Is(err, credential.ErrNoCredential) {
			s.logger.WarnContext(ctx, "read persisted credential failed", "error", err)
		}
		return
	}

	cred, err := credential.Decode(token)
	if err != nil || cred.Expired(s.now()) {
		// Expired or undecodable: treat as logged out without a network call.
		if err != nil {
			s.logger.WarnContext(ctx, "persisted credential undecodable, clearing", "error", err)
		}
		s.clearPersisted(ctx)
		return
	}

	s.mu.Lock()
	s.session.Credential = &cred
	gen := s.generation
	s.mu.Unlock()

	identity, err := s.gw.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		// A logout or invalidation won the race; it already cleaned up.
		return
	}
	if err != nil {
		s.logger.WarnContext(ctx, "identity fetch failed during bootstrap, logging out", "error", err)
		s.session.Credential = nil
		s.clearPersistedLocked(ctx)
		return
	}
	s.session.Identity = &identity
}

// Login exchanges credentials, persists the returned token, fetches the
// identity behind it and commits the authenticated session. On failure
// of either step the credential is left absent, the session error is set
// to a user-facing message, and the failure is returned to the caller.
// The loading flag is cleared on every exit path.
func (s *Store) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	if s.session.Loading {
		s.mu.Unlock()
		return ErrLoginInFlight
	}
	s.session.Loading = true
	s.session.Error = ""
	gen := s.generation
	s.mu.Unlock()
	s.notify()

	defer s.settle()

	token, err := s.gw.Login(ctx, username, password)
	if err != nil {
		s.recordError(gen, err)
		return err
	}

	cred, decodeErr := credential.Decode(token)
	if decodeErr != nil {
		// The backend just issued this token; accept it and let the next
		// bootstrap re-check expiry.
		cred = auth.Credential{Token: token}
	}

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		return apperrors.Canceled("login superseded by logout")
	}
	if err := s.creds.Write(token); err != nil {
		s.session.Error = "could not persist credential"
		s.mu.Unlock()
		return fmt.Errorf("persist credential: %w", err)
	}
	s.session.Credential = &cred
	s.mu.Unlock()
	s.notify()

	identity, err := s.gw.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if s.generation == gen {
			s.session.Credential = nil
			s.session.Error = apperrors.UserMessage(err)
			s.clearPersistedLocked(ctx)
		}
		return err
	}
	if s.generation != gen {
		return apperrors.Canceled("login superseded by logout")
	}
	s.session.Identity = &identity
	s.session.Error = ""
	return nil
}

// Logout clears the credential, identity and error. It is synchronous,
// idempotent and safe to call in any state.
func (s *Store) Logout() {
	s.reset(context.Background(), "user logout")
}

// Invalidate is the forced-logout path driven by the gateway when the
// backend answers 401: the held credential is no longer accepted.
func (s *Store) Invalidate() {
	s.reset(context.Background(), "credential rejected")
}

func (s *Store) reset(ctx context.Context, reason string) {
	s.mu.Lock()
	hadCredential := s.session.Credential != nil
	s.generation++
	s.session = auth.Session{Bootstrapped: true}
	s.clearPersistedLocked(ctx)
	s.mu.Unlock()
	s.notify()

	if hadCredential {
		s.logger.InfoContext(ctx, "session cleared", "reason", reason)
	}
}

// recordError commits a user-facing error message unless the session was
// superseded while the operation was in flight.
func (s *Store) recordError(gen uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation == gen {
		s.session.Error = apperrors.UserMessage(err)
	}
}

// settle clears the loading flag and marks the session bootstrapped.
func (s *Store) settle() {
	s.mu.Lock()
	s.session.Loading = false
	s.session.Bootstrapped = true
	s.mu.Unlock()
	s.notify()
}

func (s *Store) clearPersisted(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearPersistedLocked(ctx)
}

func (s *Store) clearPersistedLocked(ctx context.Context) {
	if err := s.creds.Clear(); err != nil {
		s.logger.WarnContext(ctx, "clear persisted credential failed", "error", err)
	}
}

func (s *Store) snapshotLocked() auth.Session {
	out := s.session
	if s.session.Credential != nil {
		cred := *s.session.Credential
		out.Credential = &cred
	}
	if s.session.Identity != nil {
		identity := *s.session.Identity
		out.Identity = &identity
	}
	return out
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(auth.Session), len(s.subscribers))
	copy(subs, s.subscribers)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
