package infra

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewErrorStack(t *testing.T) {
	err := NewErrorStack("something broken")
	require.Error(t, err)
	require.Equal(t, "something broken", err.Error())

	es, ok := err.(ErrorStack)
	require.True(t, ok)
	require.NotEmpty(t, es.Frames())

	verbose := fmt.Sprintf("%+v", err)
	require.True(t, strings.HasPrefix(verbose, "something broken"))
	require.Contains(t, verbose, "err_stack_test.go")
}

func TestWrapErrorStack(t *testing.T) {
	require.NoError(t, WrapErrorStack(nil))

	sentinel := errors.New("sentinel")
	err := WrapErrorStack(sentinel)
	require.ErrorIs(t, err, sentinel)

	// Re-wrapping keeps the original frames.
	require.Equal(t, err, WrapErrorStack(err))
}

func TestErrorStack_MarshalLogObject(t *testing.T) {
	err := NewErrorStack("oops")
	es, ok := err.(ErrorStack)
	require.True(t, ok)

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, es.MarshalLogObject(enc))
	require.Equal(t, "oops", enc.Fields["error"])
	frames, ok := enc.Fields["errorStack"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, frames)
}
