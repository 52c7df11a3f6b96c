package ctdf

import (
	"encoding/json"
	"errors"
)

// Result is the tagged outcome handed back to callers.
// Data is only meaningful when Success is true, otherwise Message holds the failure text and Kind its category.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	Kind    ErrorKind
}

func Success[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Failure[T any](kind ErrorKind, message string) Result[T] {
	return Result[T]{Success: false, Kind: kind, Message: message}
}

// FailureFromError keeps the kind of the first UpstreamError in err's tree, anything else is treated as a transport failure.
// The message is always err's own text.
func FailureFromError[T any](err error) Result[T] {
	var upstreamError *UpstreamError
	if errors.As(err, &upstreamError) {
		return Failure[T](upstreamError.Kind, err.Error())
	}

	return Failure[T](ErrorKindTransport, err.Error())
}

// Err converts a failed result into an UpstreamError, nil on success
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}

	return &UpstreamError{Kind: r.Kind, Message: r.Message}
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Data    string `json:"data"`
		}{false, r.Message})
	}

	return json.Marshal(struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}{true, r.Data})
}

func (r *Result[T]) UnmarshalJSON(body []byte) error {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return err
	}

	r.Success = envelope.Success
	if !envelope.Success {
		return json.Unmarshal(envelope.Data, &r.Message)
	}

	return json.Unmarshal(envelope.Data, &r.Data)
}
