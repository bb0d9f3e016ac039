//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"context"
	"os"
	"time"
)

// watchdog aborts a transfer that stalls: its context is cancelled with
// os.ErrDeadlineExceeded when Kick is not called within timeout. With a
// zero timeout the context is only cancelled by Cancel.
type watchdog struct {
	ctx     context.Context
	cancel  context.CancelCauseFunc
	timer   *time.Timer
	timeout time.Duration
}

func newWatchdog(parent context.Context, timeout time.Duration) (context.Context, watchdog) {
	ctx, cancel := context.WithCancelCause(parent)
	wd := watchdog{ctx: ctx, cancel: cancel, timeout: timeout}
	if timeout > 0 {
		wd.timer = time.AfterFunc(timeout, func() { cancel(os.ErrDeadlineExceeded) })
	}
	return ctx, wd
}

// Kick signals that data has been received.
func (wd *watchdog) Kick() {
	if wd.timer != nil {
		wd.timer.Reset(wd.timeout)
	}
}

// Cancel stops the timer and releases the context.
func (wd *watchdog) Cancel() {
	if wd.timer != nil {
		wd.timer.Stop()
	}
	wd.cancel(nil)
}

// translate replaces a read error caused by the cancellation of the
// watchdog context with the cancellation cause, so that a stalled transfer
// reports os.ErrDeadlineExceeded (or the parent context error) instead of
// a transport specific message.
func (wd *watchdog) translate(err error) error {
	if err == nil || wd.ctx.Err() == nil {
		return err
	}
	if cause := context.Cause(wd.ctx); cause != nil {
		return cause
	}
	return err
}
