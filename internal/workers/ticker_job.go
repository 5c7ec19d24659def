// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"
)

// tickerJob calls tick on a fixed interval in a background goroutine. The
// job is idle until Start is called.
type tickerJob struct {
	interval  time.Duration
	immediate bool
	tick      func(ctx context.Context)

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start stops any previously running loop, then launches a goroutine that
// calls tick every interval (and once right away when immediate is set). The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *tickerJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		if j.immediate {
			j.tick(jobCtx)
		}

		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// Stop cancels the loop and blocks until its goroutine has exited. Safe to
// call when the job is not running.
func (j *tickerJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
