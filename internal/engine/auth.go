package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"homeroom/internal/models"
)

// Auth operations block on the gateway and surface errors to the caller:
// unlike snapshot reads there is no cached fallback to show, the caller has
// to react (retry prompt, bad-credentials message).

// Login authenticates against the backend and persists the session.
// A nil user with nil error means the credentials were rejected.
func (e *Engine) Login(ctx context.Context, username, password string) (*models.User, error) {
	payload := map[string]string{
		"username": strings.TrimSpace(username),
		"password": strings.TrimSpace(password),
	}
	raw, err := e.gw.Call(ctx, "auth.login", payload)
	if err != nil {
		return nil, err
	}
	user, err := decodeUser(raw)
	if err != nil || user == nil {
		return nil, err
	}
	if err := e.store.SaveSession(user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Register creates an account remotely and persists the session.
func (e *Engine) Register(ctx context.Context, user models.User) (*models.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	user.Password = strings.TrimSpace(user.Password)
	user.FullName = strings.TrimSpace(user.FullName)

	raw, err := e.gw.Call(ctx, "auth.register", user)
	if err != nil {
		return nil, err
	}
	created, err := decodeUser(raw)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("register: empty response")
	}
	if err := e.store.SaveSession(created); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return created, nil
}

// CurrentUser returns the stored principal, nil when logged out.
func (e *Engine) CurrentUser() (*models.User, error) {
	return e.store.LoadSession()
}

// Logout clears the stored session. The snapshot is kept; it belongs to
// the device, not the principal.
func (e *Engine) Logout() error {
	return e.store.ClearSession()
}

// Ping checks end-to-end connectivity through the relay to the backend.
func (e *Engine) Ping(ctx context.Context) error {
	raw, err := e.gw.Call(ctx, "ping", nil)
	if err != nil {
		return err
	}
	var reply string
	if err := json.Unmarshal(raw, &reply); err != nil || reply != "pong" {
		return fmt.Errorf("unexpected ping reply: %s", raw)
	}
	return nil
}

func decodeUser(raw json.RawMessage) (*models.User, error) {
	if len(raw) == 0 || string(raw) == "null" || string(raw) == "false" {
		return nil, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("parse user: %w", err)
	}
	return &user, nil
}
