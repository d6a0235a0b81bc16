package editor

// Executor runs slow work, such as image decoding, away from the event
// loop. work returns a completion that must run back on the goroutine
// that owns the Session; a nil completion is skipped.
type Executor interface {
	Go(work func() (complete func()))
}

// SyncExecutor runs work and its completion inline. Headless sessions
// and the script command use it.
type SyncExecutor struct{}

// Go implements Executor.
func (SyncExecutor) Go(work func() func()) {
	if done := work(); done != nil {
		done()
	}
}
