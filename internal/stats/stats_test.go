package stats

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRollingWindow(t *testing.T) {
	var w rollingWindow
	require.Equal(t, time.Duration(0), w.average())
	w.add(2 * time.Second)
	w.add(4 * time.Second)
	require.Equal(t, 3*time.Second, w.average())
	for i := 0; i < statisticRollingWindows; i++ {
		w.add(time.Second)
	}
	// older entries have rolled out of the window
	require.Equal(t, time.Second, w.average())
}

func TestSessionStatistics(t *testing.T) {
	ss := NewSessionStatistics()
	require.False(t, ss.GetStartTime().IsZero())
	require.GreaterOrEqual(t, ss.GetRuntime(), time.Duration(0))

	start := time.Now().Add(-time.Second)
	ss.RecordPlan(start, nil)
	ss.RecordPlan(start, fmt.Errorf("rejected"))
	ss.RecordFetch(start, 128)
	require.EqualValues(t, 2, ss.GetNumPlansSubmitted())
	require.EqualValues(t, 1, ss.GetNumPlansFailed())
	require.EqualValues(t, 1, ss.GetNumFetches())
	require.EqualValues(t, 128, ss.GetNumBytesFetched())
	require.GreaterOrEqual(t, ss.GetRecentPlanRuntime(), time.Second)
	require.GreaterOrEqual(t, ss.GetRecentFetchRuntime(), time.Second)
}

func TestSessionStatisticsConcurrent(t *testing.T) {
	ss := NewSessionStatistics()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ss.RecordPlan(time.Now(), nil)
			ss.RecordFetch(time.Now(), 1)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 10, ss.GetNumPlansSubmitted())
	require.EqualValues(t, 10, ss.GetNumBytesFetched())
}
