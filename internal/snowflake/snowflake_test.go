package snowflake_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tscat/internal/snowflake"
)

func TestNextID_Unique(t *testing.T) {
	require.NoError(t, snowflake.Init(7))

	seen := make(map[int64]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := snowflake.NextID()
		require.Positive(t, id)
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestInit_RejectsOutOfRange(t *testing.T) {
	require.Error(t, snowflake.Init(2048))
}
