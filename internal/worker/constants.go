package worker

import "time"

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Settlement sweep defaults. A pending purchase older than the max age is
// treated as abandoned and failed; the sweep interval controls how promptly
// that happens.
const (
	DefaultSettlementInterval = 10 * time.Minute
	DefaultPendingMaxAge      = time.Hour
)
