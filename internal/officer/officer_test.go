package officer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	require.True(t, Verify("hunter2", "hunter2"))
	require.False(t, Verify("hunter", "hunter2"))
	require.False(t, Verify("", "hunter2"))

	// An unset passcode locks everything out, including empty submissions.
	require.False(t, Verify("", ""))
	require.False(t, Verify("anything", ""))
}
