//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"os"
	"path/filepath"
)

// Task is a single file to retrieve: the remote URL and the local path
// where it must be stored.
type Task struct {
	URL  string `yaml:"url"`
	Path string `yaml:"path"`
	// SHA256 is an optional hex encoded digest. When set, a freshly
	// downloaded file is discarded if its content does not match.
	SHA256 string `yaml:"sha256,omitempty"`
}

// Group is a titled list of tasks processed together.
type Group struct {
	Title string `yaml:"title"`
	Tasks []Task `yaml:"tasks"`
}

// Outcome is the final state of a task.
type Outcome int

const (
	// Skipped means the destination file was already present.
	Skipped Outcome = iota
	// Downloaded means the file has been retrieved and stored.
	Downloaded
	// Failed means the retrieval did not succeed, the destination is absent.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Downloaded:
		return "downloaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result reports what happened to a Task.
type Result struct {
	Task    Task
	Outcome Outcome
	Bytes   int64
	Err     error
}

// Success returns true if the destination file is present after the task.
func (r Result) Success() bool {
	return r.Outcome != Failed
}

// FileExists returns true if something exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MissingFiles returns, in order, the paths that do not exist on disk.
func MissingFiles(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if !FileExists(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Dirs returns the distinct parent directories of all the tasks, in order
// of first appearance.
func Dirs(groups []Group) []string {
	seen := map[string]bool{}
	var dirs []string
	for _, g := range groups {
		for _, t := range g.Tasks {
			dir := filepath.Dir(t.Path)
			if seen[dir] {
				continue
			}
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// CountTasks returns the number of tasks in all groups.
func CountTasks(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Tasks)
	}
	return n
}
