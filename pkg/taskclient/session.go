package taskclient

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Session ties a Client to a TokenStore and remembers the signed-in user. A 401
// on any call made through the client ends the session.
type Session struct {
	client *Client
	store  TokenStore

	mu   sync.RWMutex
	user *User
}

func NewSession(client *Client, store TokenStore) *Session {
	s := &Session{client: client, store: store}
	client.OnUnauthorized(s.expire)
	return s
}

func (s *Session) Client() *Client {
	return s.client
}

// Init restores a persisted token and checks it against the server. It reports
// whether a user is signed in. A rejected token is cleared; any other failure
// leaves it in place and is returned.
func (s *Session) Init(ctx context.Context) (bool, error) {
	token, err := s.store.Load()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	s.client.SetToken(token)
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		if KindOf(err) == KindUnauthorized {
			return false, nil
		}
		return false, err
	}

	s.setUser(&user)
	return true, nil
}

func (s *Session) Login(ctx context.Context, email, password string) (User, error) {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return User{}, err
	}
	return s.start(resp)
}

func (s *Session) Register(ctx context.Context, name, email, password string) (User, error) {
	resp, err := s.client.Register(ctx, name, email, password)
	if err != nil {
		return User{}, err
	}
	return s.start(resp)
}

func (s *Session) start(resp AuthResponse) (User, error) {
	if err := s.store.Save(resp.Token); err != nil {
		return User{}, err
	}
	user := resp.User
	s.setUser(&user)
	return user, nil
}

// Logout always clears the local session, even when the server call fails.
func (s *Session) Logout(ctx context.Context) error {
	var apiErr error
	if s.client.Token() != "" {
		apiErr = s.client.Logout(ctx)
	}
	s.client.SetToken("")
	s.setUser(nil)
	return errors.Join(apiErr, s.store.Clear())
}

func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}

func (s *Session) setUser(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Session) expire() {
	s.setUser(nil)
	if err := s.store.Clear(); err != nil {
		zap.L().Warn("failed to clear stored token", zap.Error(err))
	}
}
