package logging

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithWorldAttachesLoggerToContext(t *testing.T) {
	Init(true)

	ctx := WithWorld(context.Background(), "world-1")
	logger := FromContext(ctx)

	assert.NotNil(t, logger)
}

func TestFromContextFallsBackToGlobalLogger(t *testing.T) {
	Init(true)

	logger := FromContext(context.Background())

	assert.NotNil(t, logger)
}

func TestLogTickDoesNotPanic(t *testing.T) {
	Init(false)
	ctx := WithWorld(context.Background(), "world-1")

	assert.NotPanics(t, func() {
		LogTick(ctx, 5, 10*time.Millisecond, 2, true)
	})
}

func TestLogRuleErrorDoesNotPanic(t *testing.T) {
	Init(false)
	ctx := WithWorld(context.Background(), "world-1")

	assert.NotPanics(t, func() {
		LogRuleError(ctx, "terrain", 42, assertError{})
	})
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
