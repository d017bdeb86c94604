package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/randomizedcoder/tsqueue/internal/workload"
)

func TestNewQueue(t *testing.T) {
	testCases := []struct {
		strategy    string
		size        int
		consumers   int
		expectedErr string
	}{
		{strategyTSQueue, 0, 8, ""},
		{strategyChannel, 16, 8, ""},
		{strategyChannel, 0, 8, ".*needs a positive size.*"},
		{strategySharded, 16, 1, ""},
		{strategySharded, 16, 2, ".*exactly one consumer.*"},
		{"lifo", 16, 1, ".*unknown strategy.*"},
	}

	for _, tc := range testCases {
		q, err := newQueue[workload.Item](tc.strategy, tc.size, tc.consumers, zap.NewNop())
		if tc.expectedErr != "" {
			require.Error(t, err)
			require.Regexp(t, tc.expectedErr, err.Error())
			continue
		}
		require.NoError(t, err)
		require.True(t, q.Empty())
	}
}

func TestRunBench(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, runBench(&buf, 1000, 64))
	out := buf.String()
	for _, name := range []string{"TSQueue", "Channel", "RingBuffer", "Sharded"} {
		require.Contains(t, out, name)
	}
}
