package diaglog_test

import (
	"fmt"
	"sync"
	"testing"

	"lockerhub/internal/pkg/diaglog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_AppendAndSnapshot(t *testing.T) {
	buf := diaglog.NewBufferWithCapacity(10)

	buf.Append(diaglog.LevelError, "cell state conflict", "lifecycle", map[string]any{"cellId": "c-1"})
	buf.Append(diaglog.LevelWarn, "invalid transition", "lifecycle", nil)

	entries := buf.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, diaglog.LevelError, entries[0].Level)
	assert.Equal(t, "cell state conflict", entries[0].Message)
	assert.Equal(t, "lifecycle", entries[0].Source)
	assert.Equal(t, "c-1", entries[0].Data["cellId"])
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.Equal(t, "invalid transition", entries[1].Message)
}

func TestBuffer_EvictsOldestFirst(t *testing.T) {
	buf := diaglog.NewBufferWithCapacity(3)

	for i := range 5 {
		buf.Append(diaglog.LevelInfo, fmt.Sprintf("entry %d", i), "test", nil)
	}

	entries := buf.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "entry 2", entries[0].Message)
	assert.Equal(t, "entry 4", entries[2].Message)
}

func TestBuffer_SnapshotIsDetached(t *testing.T) {
	buf := diaglog.NewBufferWithCapacity(5)
	buf.Append(diaglog.LevelInfo, "first", "test", nil)

	snapshot := buf.Entries()
	buf.Append(diaglog.LevelInfo, "second", "test", nil)

	assert.Len(t, snapshot, 1)
	assert.Equal(t, 2, buf.Len())
}

func TestBuffer_ConcurrentAppend(t *testing.T) {
	buf := diaglog.NewBufferWithCapacity(100)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				buf.Append(diaglog.LevelInfo, "concurrent", "test", nil)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, buf.Len())
}
