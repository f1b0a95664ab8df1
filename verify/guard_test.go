package verify

import (
	"testing"
	"time"

	"github.com/njchilds90/solvecheck/symbolic"
	"github.com/stretchr/testify/require"
)

func TestGuardRecoversPanic(t *testing.T) {
	v := New()
	res := v.guard(OpSimplify, func() Result { panic("division by zero") })
	require.False(t, res.Verified)
	require.Nil(t, res.IsCorrect)
	require.Equal(t, symbolic.InternalComputation, res.Kind())
	require.Contains(t, res.Error, "division by zero")
}

func TestGuardTimeout(t *testing.T) {
	v := New(WithTimeout(10 * time.Millisecond))
	release := make(chan struct{})
	defer close(release)
	res := v.guard(OpEvaluate, func() Result {
		<-release
		return Result{Op: OpEvaluate, Verified: true}
	})
	require.False(t, res.Verified)
	require.Equal(t, symbolic.InternalComputation, res.Kind())
	require.ErrorIs(t, res.Cause, symbolic.ErrInternal)
}
