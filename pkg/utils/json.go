package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var ErrEmptyPayload = errors.New("empty payload")

// DecodeRaw decodes a raw JSON value into T. A missing or null value is
// reported as ErrEmptyPayload so that callers can tell it from a valid zero.
func DecodeRaw[T any](raw jsoniter.RawMessage) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrEmptyPayload
	}
	result := new(T)
	if err := jsoniter.Unmarshal(raw, result); err != nil {
		return nil, errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}
