package commandinit_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/zephyrtronium/arith/internal/commandinit"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := commandinit.NewLogger(&buf, zerolog.InfoLevel, "eval")

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "command=eval")
	assert.NotContains(t, buf.String(), "\x1b[", "colored output to a buffer")
}
