//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"context"
	"fmt"
	"os"
	"time"
)

// DefaultDelay is the pause between two tasks.
const DefaultDelay = time.Second

// Summary is the outcome of a whole run.
type Summary struct {
	Total       int
	Succeeded   int
	Results     []Result
	Dirs        []string
	Missing     []string
	Interrupted bool
}

// Runner processes task groups sequentially.
type Runner struct {
	Fetcher  Fetcher
	Reporter Reporter
	// Delay is waited between two consecutive tasks.
	Delay time.Duration
	// Critical lists the files checked at the end of the run.
	Critical []string
}

// Run creates the destination directories, then fetches every task in
// order. Failed tasks are reported and counted but never stop the run; a
// cancelled context stops it before the next task. The only returned error
// is the failure to create a destination directory.
func (r *Runner) Run(ctx context.Context, groups []Group) (*Summary, error) {
	s := &Summary{
		Total: CountTasks(groups),
		Dirs:  Dirs(groups),
	}
	for _, dir := range s.Dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	r.Reporter.Banner()
	remaining := s.Total
loop:
	for _, g := range groups {
		r.Reporter.Group(g.Title)
		for _, task := range g.Tasks {
			if ctx.Err() != nil {
				s.Interrupted = true
				break loop
			}
			res := FetchIfAbsent(ctx, r.Fetcher, task, r.Reporter)
			s.Results = append(s.Results, res)
			if res.Success() {
				s.Succeeded++
			}
			remaining--
			if remaining > 0 && !wait(ctx, r.Delay) {
				s.Interrupted = true
				break loop
			}
		}
	}

	s.Missing = MissingFiles(r.Critical)
	r.Reporter.Summary(s)
	return s, nil
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
