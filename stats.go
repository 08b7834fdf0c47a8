package remoteframe

import "time"

// RuntimeStatistics facilitates the retrieval of statistics about the requests
// a Session has made of its Collaborator
type RuntimeStatistics interface {
	// GetStartTime returns the creation time of the Session
	GetStartTime() time.Time
	// GetRuntime returns the time elapsed since the Session was created
	GetRuntime() time.Duration
	// GetNumPlansSubmitted returns the number of composite plans submitted so far, including failures
	GetNumPlansSubmitted() int64
	// GetNumPlansFailed returns the number of composite plans which the Collaborator rejected
	GetNumPlansFailed() int64
	// GetNumFetches returns the number of successful fetches so far
	GetNumFetches() int64
	// GetNumBytesFetched returns the total size of all fetched data, in bytes
	GetNumBytesFetched() int64
	// GetRecentPlanRuntime returns a rolling average of plan round trip time
	GetRecentPlanRuntime() time.Duration
	// GetRecentFetchRuntime returns a rolling average of fetch round trip time
	GetRecentFetchRuntime() time.Duration
}
