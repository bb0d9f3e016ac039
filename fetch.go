//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ErrChecksumMismatch is returned when a downloaded file does not match the
// digest declared in its Task.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// PartSuffix is appended to the destination path while a file is being
// downloaded.
const PartSuffix = ".part"

// ProgressFunc receives the bytes downloaded so far and the total size
// (-1 when unknown).
type ProgressFunc func(current, size int64)

// Fetcher retrieves the file described by a Task and stores it at the task
// path. On error nothing must be left at the task path.
type Fetcher interface {
	Fetch(ctx context.Context, task Task, progress ProgressFunc) (int64, error)
}

// HTTPFetcher is a Fetcher that downloads files over HTTP(S).
type HTTPFetcher struct {
	Config       Config
	PollInterval time.Duration
}

// NewHTTPFetcher returns an HTTPFetcher using the given configuration.
func NewHTTPFetcher(config Config, pollInterval time.Duration) *HTTPFetcher {
	return &HTTPFetcher{Config: config, PollInterval: pollInterval}
}

// NewDefaultHTTPFetcher returns an HTTPFetcher using the configuration
// installed with SetDefaultConfig.
func NewDefaultHTTPFetcher(pollInterval time.Duration) *HTTPFetcher {
	return NewHTTPFetcher(GetDefaultConfig(), pollInterval)
}

// Fetch downloads task.URL into a part file and moves it onto task.Path
// once the transfer and the optional checksum verification succeed.
func (f *HTTPFetcher) Fetch(ctx context.Context, task Task, progress ProgressFunc) (int64, error) {
	if progress == nil {
		progress = func(int64, int64) {}
	}
	part := task.Path + PartSuffix
	d, err := Download(ctx, part, task.URL, f.Config)
	if err != nil {
		return 0, err
	}
	if err := d.RunAndPoll(progress, f.PollInterval); err != nil {
		_ = os.Remove(part)
		return d.Completed(), err
	}
	if task.SHA256 != "" {
		if err := verifySHA256(part, task.SHA256); err != nil {
			_ = os.Remove(part)
			return d.Completed(), err
		}
	}
	if err := os.Rename(part, task.Path); err != nil {
		_ = os.Remove(part)
		return d.Completed(), fmt.Errorf("moving %s into place: %w", part, err)
	}
	return d.Completed(), nil
}

func verifySHA256(file, expected string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("computing checksum of %s: %w", file, err)
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, actual)
	}
	return nil
}

// FetchIfAbsent retrieves the task unless a file is already present at its
// path, in which case no network call is made. Errors are not returned:
// they are reported and recorded in the Result.
func FetchIfAbsent(ctx context.Context, fetcher Fetcher, task Task, reporter Reporter) Result {
	if FileExists(task.Path) {
		reporter.Skipped(task)
		return Result{Task: task, Outcome: Skipped}
	}

	reporter.Started(task)
	n, err := fetcher.Fetch(ctx, task, func(current, size int64) {
		reporter.Progress(task, current, size)
	})
	if err != nil {
		reporter.Failed(task, err)
		return Result{Task: task, Outcome: Failed, Bytes: n, Err: err}
	}
	reporter.Downloaded(task, n)
	return Result{Task: task, Outcome: Downloaded, Bytes: n}
}

// Percent returns current as a percentage of size, capped at 100, or -1
// when the size is unknown.
func Percent(current, size int64) int64 {
	if size <= 0 {
		return -1
	}
	return min(100, current*100/size)
}
