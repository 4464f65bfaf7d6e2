package assessor

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func connReset() error {
	return &net.OpError{Op: "read", Err: syscall.ECONNRESET}
}

func TestRetryRecoversFromTransient(t *testing.T) {
	policy := RetryPolicy{Delay: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "fetch", func() error {
		calls++
		if calls < 3 {
			return connReset()
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryStructuralFailsImmediately(t *testing.T) {
	policy := RetryPolicy{Delay: time.Millisecond}

	calls := 0
	err := policy.Do(context.Background(), "fetch", func() error {
		calls++
		return &StructuralError{PropertyID: 42, Stage: "table 3", Detail: "table not found"}
	})
	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	require.Equal(t, int64(42), structural.PropertyID)
	require.Equal(t, 1, calls)
}

func TestRetryBounded(t *testing.T) {
	policy := RetryPolicy{Delay: time.Millisecond, MaxAttempts: 3}

	calls := 0
	err := policy.Do(context.Background(), "fetch", func() error {
		calls++
		return connReset()
	})
	require.Error(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	policy := RetryPolicy{Delay: time.Minute}
	calls := 0
	err := policy.Do(ctx, "fetch", func() error {
		calls++
		return connReset()
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestIsTransient(t *testing.T) {
	testCases := []struct {
		err       error
		transient bool
	}{
		{connReset(), true},
		{io.EOF, true},
		{io.ErrUnexpectedEOF, true},
		{&net.DNSError{Err: "no such host"}, true},
		{&transientStatusError{status: 503}, true},
		{&StructuralError{Stage: "table 3", Detail: "missing"}, false},
		{errors.New("some parse failure"), false},
		{context.Canceled, false},
		{nil, false},
	}
	for _, test := range testCases {
		require.Equal(t, test.transient, IsTransient(test.err), "err: %v", test.err)
	}
}
