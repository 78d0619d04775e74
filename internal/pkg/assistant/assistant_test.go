package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), GeminiConfig{Model: "gemini-2.5-flash"})
	assert.Nil(t, client)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUnconfigured(t *testing.T) {
	var c Client = Unconfigured{}
	answer, err := c.Ask(context.Background(), "what is a B-tree?")
	assert.Empty(t, answer)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
