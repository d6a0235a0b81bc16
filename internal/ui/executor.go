package ui

import "sync"

// completion carries work finished off the event goroutine back to it.
type completion struct {
	fn func()
}

// executor runs work on its own goroutine and queues the completion for
// the window loop, which owns the session. After stop, completions are
// dropped.
type executor struct {
	done     chan completion
	quit     chan struct{}
	stopOnce sync.Once
	workers  sync.WaitGroup
}

func newExecutor() *executor {
	return &executor{done: make(chan completion, 16), quit: make(chan struct{})}
}

// Go implements editor.Executor.
func (e *executor) Go(work func() func()) {
	e.workers.Add(1)
	go func() {
		defer e.workers.Done()
		fn := work()
		if fn == nil {
			return
		}
		select {
		case e.done <- completion{fn: fn}:
		case <-e.quit:
		}
	}()
}

// stop releases workers blocked on a window loop that has gone away.
func (e *executor) stop() {
	e.stopOnce.Do(func() { close(e.quit) })
}
