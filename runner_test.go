//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeFetcher writes the URL as file content, unless the URL is listed in
// fail.
type fakeFetcher struct {
	fail    map[string]bool
	calls   []string
	onFetch func(task Task)
}

func (f *fakeFetcher) Fetch(ctx context.Context, task Task, progress ProgressFunc) (int64, error) {
	f.calls = append(f.calls, task.URL)
	if f.onFetch != nil {
		f.onFetch(task)
	}
	if f.fail[task.URL] {
		return 0, errors.New("connection reset by peer")
	}
	progress(int64(len(task.URL)), int64(len(task.URL)))
	if err := os.WriteFile(task.Path, []byte(task.URL), 0644); err != nil {
		return 0, err
	}
	return int64(len(task.URL)), nil
}

// rebase moves every destination of the built-in catalog under dir.
func rebase(dir string, groups []Group, critical []string) ([]Group, []string) {
	for gi := range groups {
		for ti := range groups[gi].Tasks {
			groups[gi].Tasks[ti].Path = filepath.Join(dir, groups[gi].Tasks[ti].Path)
		}
	}
	rebased := make([]string, len(critical))
	for i, p := range critical {
		rebased[i] = filepath.Join(dir, p)
	}
	return groups, rebased
}

func TestRunAllSucceed(t *testing.T) {
	groups, critical := rebase(t.TempDir(), DefaultGroups(), DefaultCriticalFiles())
	fetcher := &fakeFetcher{}
	out := &bytes.Buffer{}
	runner := &Runner{Fetcher: fetcher, Reporter: NewConsoleReporter(out), Critical: critical}

	s, err := runner.Run(context.Background(), groups)
	require.NoError(t, err)
	require.Equal(t, CountTasks(groups), s.Total)
	require.Equal(t, s.Total, s.Succeeded)
	require.Len(t, fetcher.calls, s.Total)
	require.Empty(t, s.Missing)
	require.False(t, s.Interrupted)
	require.Contains(t, out.String(), "All critical files are present!")
	require.Contains(t, out.String(), "Downloading Essential Models...")
	require.Contains(t, out.String(), "Downloading GFPGAN Enhancer Weights...")
}

func TestRunContinuesAfterFailure(t *testing.T) {
	groups, critical := rebase(t.TempDir(), DefaultGroups(), DefaultCriticalFiles())
	failing := groups[0].Tasks[2] // epoch_20.pth, a critical file
	fetcher := &fakeFetcher{fail: map[string]bool{failing.URL: true}}
	out := &bytes.Buffer{}
	runner := &Runner{Fetcher: fetcher, Reporter: NewConsoleReporter(out), Critical: critical}

	s, err := runner.Run(context.Background(), groups)
	require.NoError(t, err)
	require.Len(t, fetcher.calls, s.Total)
	require.Equal(t, s.Total-1, s.Succeeded)
	require.Equal(t, Failed, s.Results[2].Outcome)
	require.NoFileExists(t, failing.Path)
	require.FileExists(t, groups[0].Tasks[3].Path)
	require.Equal(t, []string{failing.Path}, s.Missing)
	require.Contains(t, out.String(), "Missing critical files")
	require.Contains(t, out.String(), "   - "+failing.Path)
}

func TestRunSkipsExistingFiles(t *testing.T) {
	groups, critical := rebase(t.TempDir(), DefaultGroups(), DefaultCriticalFiles())
	existing := groups[1].Tasks[0]
	require.NoError(t, os.MkdirAll(filepath.Dir(existing.Path), 0755))
	require.NoError(t, os.WriteFile(existing.Path, []byte("cached"), 0644))

	fetcher := &fakeFetcher{}
	runner := &Runner{Fetcher: fetcher, Reporter: NewConsoleReporter(&bytes.Buffer{}), Critical: critical}
	s, err := runner.Run(context.Background(), groups)
	require.NoError(t, err)
	require.Equal(t, s.Total, s.Succeeded)
	require.Len(t, fetcher.calls, s.Total-1)
	require.NotContains(t, fetcher.calls, existing.URL)
	require.Equal(t, Skipped, s.Results[len(groups[0].Tasks)].Outcome)
}

func TestRunCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	groups, _ := rebase(dir, DefaultGroups(), nil)
	runner := &Runner{Fetcher: &fakeFetcher{}, Reporter: NewConsoleReporter(&bytes.Buffer{})}

	s, err := runner.Run(context.Background(), groups)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "checkpoints"), filepath.Join(dir, "gfpgan", "weights")}, s.Dirs)
	require.DirExists(t, filepath.Join(dir, "checkpoints"))
	require.DirExists(t, filepath.Join(dir, "gfpgan", "weights"))
}

func TestRunStopsWhenCancelled(t *testing.T) {
	groups, _ := rebase(t.TempDir(), DefaultGroups(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{}
	runner := &Runner{Fetcher: fetcher, Reporter: NewConsoleReporter(&bytes.Buffer{}), Delay: time.Hour}
	s, err := runner.Run(ctx, groups)
	require.NoError(t, err)
	require.True(t, s.Interrupted)
	require.Empty(t, fetcher.calls)
	require.Zero(t, s.Succeeded)
}

func TestRunCancelledDuringLastTask(t *testing.T) {
	groups, _ := rebase(t.TempDir(), DefaultGroups(), nil)
	last := groups[len(groups)-1].Tasks[len(groups[len(groups)-1].Tasks)-1]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &fakeFetcher{onFetch: func(task Task) {
		if task.URL == last.URL {
			cancel()
		}
	}}
	out := &bytes.Buffer{}
	runner := &Runner{Fetcher: fetcher, Reporter: NewConsoleReporter(out), Delay: time.Hour}
	s, err := runner.Run(ctx, groups)
	require.NoError(t, err)
	require.False(t, s.Interrupted)
	require.Equal(t, s.Total, s.Succeeded)
	require.NotContains(t, out.String(), "remaining files were not processed")
}

func TestRunWaitsBetweenTasks(t *testing.T) {
	groups, _ := rebase(t.TempDir(), []Group{{Title: "Two", Tasks: []Task{
		{URL: "https://example.com/a", Path: "a.pth"},
		{URL: "https://example.com/b", Path: "b.pth"},
	}}}, nil)
	runner := &Runner{Fetcher: &fakeFetcher{}, Reporter: NewConsoleReporter(&bytes.Buffer{}), Delay: 20 * time.Millisecond}

	start := time.Now()
	s, err := runner.Run(context.Background(), groups)
	require.NoError(t, err)
	require.Equal(t, 2, s.Succeeded)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMissingFiles(t *testing.T) {
	dir := t.TempDir()
	critical := []string{
		filepath.Join(dir, "auido2pose_00140-model.pth"),
		filepath.Join(dir, "auido2exp_00300-model.pth"),
		filepath.Join(dir, "epoch_20.pth"),
	}
	require.Equal(t, critical, MissingFiles(critical))

	require.NoError(t, os.WriteFile(critical[1], nil, 0644))
	require.Equal(t, []string{critical[0], critical[2]}, MissingFiles(critical))

	require.NoError(t, os.WriteFile(critical[0], nil, 0644))
	require.NoError(t, os.WriteFile(critical[2], nil, 0644))
	require.Empty(t, MissingFiles(critical))
}

func TestDefaultCatalog(t *testing.T) {
	groups := DefaultGroups()
	require.Len(t, groups, 2)
	require.Len(t, groups[0].Tasks, 9)
	require.Len(t, groups[1].Tasks, 4)
	require.Equal(t, []string{"checkpoints", filepath.Join("gfpgan", "weights")}, Dirs(groups))

	paths := map[string]bool{}
	for _, g := range groups {
		for _, task := range g.Tasks {
			require.Contains(t, task.URL, "https://github.com/")
			require.Equal(t, filepath.Base(task.URL), filepath.Base(task.Path))
			paths[task.Path] = true
		}
	}
	for _, c := range DefaultCriticalFiles() {
		require.True(t, paths[c], "critical file %s is not in the catalog", c)
	}
	require.NoError(t, (&Manifest{Groups: groups}).Validate())
}
