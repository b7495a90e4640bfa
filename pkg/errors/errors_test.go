package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrorTypeInput, "source file is empty")
	assert.Equal(t, "input: source file is empty", err.Error())

	wrapped := Wrap(fmt.Errorf("permission denied"), ErrorTypeIO, "failed to write output")
	assert.Equal(t, "io: failed to write output: permission denied", wrapped.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	err := Newf(ErrorTypeOption, "unknown scaling method %q", "log")
	assert.Equal(t, `option: unknown scaling method "log"`, err.Error())
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrorTypeIO, "no-op"))
}

func TestWrapPreservesOriginalStack(t *testing.T) {
	inner := New(ErrorTypeStage, "scaling failed")
	outer := Wrap(inner, ErrorTypeInternal, "pipeline aborted")

	require.NotEmpty(t, outer.Stack)
	assert.Equal(t, inner.Stack, outer.Stack)
	assert.Equal(t, inner, outer.Unwrap())
}

func TestIsTypeFollowsWrapChain(t *testing.T) {
	inner := New(ErrorTypeInput, "bad header")
	outer := fmt.Errorf("loading failed: %w", inner)

	assert.True(t, IsType(outer, ErrorTypeInput))
	assert.False(t, IsType(outer, ErrorTypeIO))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeInput))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeOption, TypeOf(New(ErrorTypeOption, "bad option")))
	assert.Equal(t, ErrorTypeInternal, TypeOf(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrorTypeInput, "too many rows").
		WithDetail("rows", 100000).
		WithDetail("limit", 50000)

	assert.Equal(t, 100000, err.Details["rows"])
	assert.Equal(t, 50000, err.Details["limit"])
}

func TestStackCaptured(t *testing.T) {
	err := New(ErrorTypeInternal, "boom")
	require.NotEmpty(t, err.Stack)
	assert.Contains(t, err.Stack[0].Function, "TestStackCaptured")
}
