package metrics

import "sync/atomic"

type SyncMetrics struct {
	FetchedCount  atomic.Int32
	MappedCount   atomic.Int32
	SkippedCount  atomic.Int32
	ReplacedCount atomic.Int32
}
