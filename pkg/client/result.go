package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies how a call ended.
type Kind string

const (
	// KindOK is a 2xx response.
	KindOK Kind = "ok"
	// KindDomain is a non-2xx, non-401 response. Message carries the
	// backend's explanation when it sent one.
	KindDomain Kind = "domain"
	// KindSessionExpired is a 401. The stored session has been cleared.
	KindSessionExpired Kind = "session_expired"
	// KindTransport covers network failures and unreadable bodies.
	KindTransport Kind = "transport"
)

// Fixed result messages.
const (
	MsgSuccess        = "Success"
	MsgRequestFailed  = "Request failed"
	MsgSessionExpired = "Session expired"
	MsgNetworkError   = "Network error. Please check your connection."
)

// ErrNoData is returned by Result.Decode when a successful result has no data.
var ErrNoData = errors.New("client: result has no data")

// Result is the normalized outcome of every backend call. Calls never
// return a Go error; failures are described by Kind and Message.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message"`
	Kind    Kind            `json:"kind"`
	Status  int             `json:"status,omitempty"`

	// Cause is the underlying error of a transport failure.
	Cause error `json:"-"`
}

// Err returns nil for a successful result and an *Error otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &Error{Kind: r.Kind, StatusCode: r.Status, Message: r.Message, Cause: r.Cause}
}

// Decode unmarshals Data into v. A failed result yields its Err.
func (r Result) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}
	if len(r.Data) == 0 || string(r.Data) == "null" {
		return ErrNoData
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("client.Result.Decode: %w", err)
	}
	return nil
}

func transportFailure(cause error) Result {
	return Result{Message: MsgNetworkError, Kind: KindTransport, Cause: cause}
}

func sessionExpired() Result {
	return Result{Message: MsgSessionExpired, Kind: KindSessionExpired, Status: 401}
}
