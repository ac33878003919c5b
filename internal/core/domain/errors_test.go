package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are distinct
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrInvalidRecord", ErrInvalidRecord, "invalid record"},
		{"ErrMissingToken", ErrMissingToken, "github token not set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.Equal(t, tt.msg, tt.err.Error())
			for _, other := range tests {
				if other.name != tt.name {
					assert.False(t, errors.Is(tt.err, other.err))
				}
			}
		})
	}
}

// TestErrors_Wrapped tests that wrapped errors still match their sentinel
func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("texts.jsonl line 3: %w: unexpected end of JSON input", ErrInvalidRecord)

	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}
