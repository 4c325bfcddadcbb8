package engine

import (
	"context"
	"encoding/json"
	"testing"

	"homeroom/internal/gateway"
	"homeroom/internal/models"
)

func TestLoginPersistsSession(t *testing.T) {
	gw := newFakeGateway()
	gw.handler = func(action string, data any) (json.RawMessage, error) {
		if action != "auth.login" {
			t.Errorf("action = %s, want auth.login", action)
		}
		payload := data.(map[string]string)
		if payload["username"] != "teacher1" {
			t.Errorf("username = %q (whitespace not trimmed?)", payload["username"])
		}
		return json.RawMessage(`{"id":"u1","username":"teacher1","role":"teacher"}`), nil
	}
	e := newTestEngine(t, gw)

	user, err := e.Login(context.Background(), "  teacher1  ", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user == nil || user.ID != "u1" {
		t.Fatalf("user = %+v", user)
	}

	current, err := e.CurrentUser()
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if current == nil || current.Username != "teacher1" {
		t.Errorf("session = %+v", current)
	}
}

func TestLoginRejectedCredentials(t *testing.T) {
	gw := newFakeGateway()
	gw.handler = func(action string, data any) (json.RawMessage, error) {
		return json.RawMessage(`null`), nil
	}
	e := newTestEngine(t, gw)

	user, err := e.Login(context.Background(), "teacher1", "wrong")
	if err != nil {
		t.Fatalf("rejection must not be an error: %v", err)
	}
	if user != nil {
		t.Errorf("user = %+v, want nil", user)
	}

	current, _ := e.CurrentUser()
	if current != nil {
		t.Errorf("rejected login stored a session: %+v", current)
	}
}

func TestLoginGatewayError(t *testing.T) {
	gw := newFakeGateway()
	gw.handler = func(action string, data any) (json.RawMessage, error) {
		return nil, &gateway.RemoteError{Message: "backend down"}
	}
	e := newTestEngine(t, gw)

	if _, err := e.Login(context.Background(), "teacher1", "pw"); err == nil {
		t.Error("expected error from failed gateway call")
	}
}

func TestLogoutKeepsSnapshot(t *testing.T) {
	gw := newFakeGateway()
	gw.handler = func(action string, data any) (json.RawMessage, error) {
		if action == "auth.login" {
			return json.RawMessage(`{"id":"u1","username":"teacher1"}`), nil
		}
		return json.RawMessage(`{}`), nil
	}
	e := newTestEngine(t, gw)

	e.AddStudent(models.Student{ID: "s1"})
	if _, err := e.Login(context.Background(), "teacher1", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := e.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	current, _ := e.CurrentUser()
	if current != nil {
		t.Errorf("session survived logout: %+v", current)
	}
	if len(e.Students()) != 1 {
		t.Error("logout wiped the snapshot")
	}
}

func TestAddUserBlocksOnGateway(t *testing.T) {
	gw := newFakeGateway()
	gw.handler = func(action string, data any) (json.RawMessage, error) {
		return nil, &gateway.RemoteError{Message: "username taken"}
	}
	e := newTestEngine(t, gw)

	_, err := e.AddUser(context.Background(), models.User{Username: "dup"})
	if err == nil {
		t.Fatal("expected error when registration fails")
	}
	if len(e.Users()) != 0 {
		t.Error("failed registration still cached a user")
	}
}

func TestPing(t *testing.T) {
	gw := newFakeGateway()
	gw.handler = func(action string, data any) (json.RawMessage, error) {
		return json.RawMessage(`"pong"`), nil
	}
	e := newTestEngine(t, gw)

	if err := e.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}

	gw.handler = func(action string, data any) (json.RawMessage, error) {
		return json.RawMessage(`"something else"`), nil
	}
	if err := e.Ping(context.Background()); err == nil {
		t.Error("expected error for wrong ping reply")
	}
}
