package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/prodline/internal/core/session"
	"github.com/example/prodline/internal/ports/primary"
	"github.com/example/prodline/internal/ports/secondary"
)

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	gateway secondary.Gateway
	store   secondary.SessionStore
	clock   secondary.Clock
	state   *State
	log     logrus.FieldLogger
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(gateway secondary.Gateway, store secondary.SessionStore, clock secondary.Clock, state *State, log logrus.FieldLogger) *AuthServiceImpl {
	return &AuthServiceImpl{
		gateway: gateway,
		store:   store,
		clock:   clock,
		state:   state,
		log:     log,
	}
}

var _ primary.AuthService = (*AuthServiceImpl)(nil)

// Login authenticates, persists the session, and makes it current. A fresh
// session id is written with the session; another console instance watching
// the store sees the id change and tears itself down.
func (s *AuthServiceImpl) Login(ctx context.Context, req primary.LoginRequest) (*session.Session, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, &ValidationError{Field: "username", Message: "must not be empty"}
	}
	if req.Database == "" {
		return nil, &ValidationError{Field: "database", Message: "must not be empty"}
	}

	result, err := s.gateway.Login(ctx, username, req.Database)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{
		Username: username,
		UserID:   result.UserID,
		LedgerID: result.LedgerID,
		Database: req.Database,
		Machines: result.Machines,
	}
	sessionID := session.NewID(s.clock.Now())

	if err := s.store.Save(ctx, sess, sessionID); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	s.state.SetSession(sess, sessionID)

	s.log.WithFields(logrus.Fields{"user": username, "database": req.Database}).Info("logged in")
	return sess, nil
}

// Restore loads a persisted session on boot. Returns nil when none is
// stored.
func (s *AuthServiceImpl) Restore(ctx context.Context) (*session.Session, error) {
	sess, sessionID, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, nil
	}
	s.state.SetSession(sess, sessionID)
	return sess, nil
}

// Logout clears the persisted session and all local state.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.state.Reset()
	s.log.Info("logged out")
	return nil
}

// Teardown clears local state only. Used when another console instance
// replaced this session: the store now belongs to the new login.
func (s *AuthServiceImpl) Teardown() {
	s.state.Reset()
	s.log.Info("session replaced elsewhere, local state dropped")
}
