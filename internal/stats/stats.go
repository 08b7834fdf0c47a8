package stats

import (
	"sync"
	"time"

	"github.com/go-sif/remoteframe"
)

const statisticRollingWindows = 5

// rollingWindow keeps the most recent statisticRollingWindows durations
type rollingWindow struct {
	runtimes [statisticRollingWindows]int64
	head     int
	count    int
}

func (w *rollingWindow) add(d time.Duration) {
	w.runtimes[w.head] = d.Nanoseconds()
	w.head = (w.head + 1) % len(w.runtimes)
	if w.count < len(w.runtimes) {
		w.count++
	}
}

func (w *rollingWindow) average() time.Duration {
	if w.count == 0 {
		return 0
	}
	var total int64
	for i := 0; i < w.count; i++ {
		total += w.runtimes[i]
	}
	return time.Duration(total / int64(w.count))
}

// SessionStatistics contains statistics about the requests made by a Session.
// It is safe for concurrent use.
type SessionStatistics struct {
	lock             sync.Mutex
	startTime        time.Time
	plansSubmitted   int64
	plansFailed      int64
	fetches          int64
	bytesFetched     int64
	recentPlanTimes  rollingWindow
	recentFetchTimes rollingWindow
}

var _ remoteframe.RuntimeStatistics = &SessionStatistics{}

// NewSessionStatistics starts statistics tracking
func NewSessionStatistics() *SessionStatistics {
	return &SessionStatistics{startTime: time.Now()}
}

// RecordPlan tracks the completion of a plan submission which began at start
func (ss *SessionStatistics) RecordPlan(start time.Time, err error) {
	elapsed := time.Since(start)
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.plansSubmitted++
	if err != nil {
		ss.plansFailed++
		return
	}
	ss.recentPlanTimes.add(elapsed)
}

// RecordFetch tracks the completion of a successful fetch of numBytes which began at start
func (ss *SessionStatistics) RecordFetch(start time.Time, numBytes int) {
	elapsed := time.Since(start)
	ss.lock.Lock()
	defer ss.lock.Unlock()
	ss.fetches++
	ss.bytesFetched += int64(numBytes)
	ss.recentFetchTimes.add(elapsed)
}

// GetStartTime returns the creation time of the Session
func (ss *SessionStatistics) GetStartTime() time.Time {
	return ss.startTime
}

// GetRuntime returns the time elapsed since the Session was created
func (ss *SessionStatistics) GetRuntime() time.Duration {
	return time.Since(ss.startTime)
}

// GetNumPlansSubmitted returns the number of composite plans submitted so far
func (ss *SessionStatistics) GetNumPlansSubmitted() int64 {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	return ss.plansSubmitted
}

// GetNumPlansFailed returns the number of composite plans which failed
func (ss *SessionStatistics) GetNumPlansFailed() int64 {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	return ss.plansFailed
}

// GetNumFetches returns the number of successful fetches so far
func (ss *SessionStatistics) GetNumFetches() int64 {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	return ss.fetches
}

// GetNumBytesFetched returns the total size of all fetched data
func (ss *SessionStatistics) GetNumBytesFetched() int64 {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	return ss.bytesFetched
}

// GetRecentPlanRuntime returns a rolling average of successful plan round trip times
func (ss *SessionStatistics) GetRecentPlanRuntime() time.Duration {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	return ss.recentPlanTimes.average()
}

// GetRecentFetchRuntime returns a rolling average of fetch round trip times
func (ss *SessionStatistics) GetRecentFetchRuntime() time.Duration {
	ss.lock.Lock()
	defer ss.lock.Unlock()
	return ss.recentFetchTimes.average()
}
