package errors

import (
	"github.com/stretchr/testify/require"
	"log/slog"
	"slices"
	"testing"
)

func TestAnnotatedError(t *testing.T) {
	err := New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Assert that wrapping sentinel errors work as expected.
	sentinel := NewSentinel("test error")
	require.NotErrorIs(t, err, NewSentinel("test error"))
	wrapped := Wrap(sentinel, "wrapped context")
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "wrapped context: test error", wrapped.Error())

	// Ensure log values are coming through.
	var annotated AnnotatedError
	require.True(t, As(err, &annotated))
	group := annotated.LogValue().Group()
	require.Contains(t, group, slog.String("id", "123"))

	// Assert there's a valid source
	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	source := group[sourceIdx]
	require.Contains(t, source.Value.String(), "annotatederror_test.go")
}

func TestAnnotatedError_WrapChain(t *testing.T) {
	sentinel := NewSentinel("connection refused")
	inner := Wrap(sentinel, "dial knowledge base", slog.String("host", "localhost"))
	outer := Wrap(inner, "submit question")

	require.ErrorIs(t, outer, sentinel)
	require.Equal(t, "submit question: dial knowledge base: connection refused", outer.Error())

	var annotated AnnotatedError
	require.True(t, As(outer, &annotated))
	group := annotated.LogValue().Group()
	wrappedIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "wrapped"
	})
	require.NotEqual(t, -1, wrappedIdx, "wrapped error should be logged")
}
