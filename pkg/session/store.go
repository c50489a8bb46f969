// Package session persists the bearer token and cached user profile that
// make up a PioneersX login.
//
// A session is two string-keyed entries: "token" holds the opaque bearer
// string and "user" holds the JSON-encoded profile. The pair is written
// non-atomically; consumers must treat the profile as absent whenever the
// token is absent.
package session

import (
	"context"
	"encoding/json"
	"errors"
)

// Persisted key names.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrInvalidUser is returned by SetUser when the profile is not valid JSON.
var ErrInvalidUser = errors.New("session: user is not valid JSON")

// Store holds the session pair. Implementations must be safe for concurrent
// use; writes are last-write-wins.
type Store interface {
	// Token returns the stored bearer token, or "" when none is stored.
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	// User returns the stored profile, or nil when none is stored or the
	// stored value does not parse as JSON.
	User(ctx context.Context) (json.RawMessage, error)
	SetUser(ctx context.Context, user json.RawMessage) error
	// Clear removes both token and user.
	Clear(ctx context.Context) error
}

// LoggedIn reports whether s holds both a token and a profile.
func LoggedIn(ctx context.Context, s Store) (bool, error) {
	tok, err := s.Token(ctx)
	if err != nil || tok == "" {
		return false, err
	}
	user, err := s.User(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// decodeUser applies the read-side rule shared by all stores: missing,
// empty, null or malformed values read as no profile.
func decodeUser(raw []byte) json.RawMessage {
	if len(raw) == 0 || !json.Valid(raw) || string(raw) == "null" {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

func validateUser(user json.RawMessage) error {
	if !json.Valid(user) {
		return ErrInvalidUser
	}
	return nil
}
