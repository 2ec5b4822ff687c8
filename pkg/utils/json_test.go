package utils

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeRaw(t *testing.T) {
	v, err := DecodeRaw[sample](jsoniter.RawMessage(`{"name":"a","count":2}`))
	require.NoError(t, err)
	assert.Equal(t, sample{Name: "a", Count: 2}, *v)

	_, err = DecodeRaw[sample](jsoniter.RawMessage(`null`))
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = DecodeRaw[sample](nil)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = DecodeRaw[sample](jsoniter.RawMessage(`{"count":"many"}`))
	assert.Error(t, err)
}
