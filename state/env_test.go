package state

import (
	"bytes"
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextWithEnv(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))
	require.NotNil(t, env)
	assert.False(t, env.start.IsZero())
	assert.NotNil(t, env.Log)
	assert.GreaterOrEqual(t, env.Uptime().Nanoseconds(), int64(0))
}

func TestEnvFromContextPanics(t *testing.T) {
	assert.Panics(t, func() { EnvFromContext(context.Background()) })
}

func TestRedirectStdLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	env := EnvFromContext(ContextWithEnv(context.Background()))
	env.Log = zap.New(core)

	var before bytes.Buffer
	log.SetOutput(&before)
	env.RedirectStdLog()
	log.Print("from std log")
	env.RestoreStdLog()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "from std log", logs.All()[0].Message)
	// restoring twice is harmless
	env.RestoreStdLog()
}
