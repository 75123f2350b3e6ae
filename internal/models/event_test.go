package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTemporalPredicatesAreStrict(t *testing.T) {
	now := time.Now()

	future := Event{DateTime: now.Add(time.Hour)}
	require.True(t, future.IsUpcoming(now))
	require.False(t, future.IsPast(now))

	past := Event{DateTime: now.Add(-time.Hour)}
	require.False(t, past.IsUpcoming(now))
	require.True(t, past.IsPast(now))

	// exactly at now: neither upcoming nor past
	exact := Event{DateTime: now}
	require.False(t, exact.IsUpcoming(now))
	require.False(t, exact.IsPast(now))
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "alice@x.com", NormalizeEmail("  Alice@X.Com "))
	require.Equal(t, "", NormalizeEmail("   "))
}

func TestFullName(t *testing.T) {
	require.Equal(t, "Alice A", User{FirstName: "Alice", LastName: "A"}.FullName())
	require.Equal(t, "Alice", User{FirstName: "Alice"}.FullName())
}
