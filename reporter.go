//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
)

// Reporter receives the events of a run.
type Reporter interface {
	Banner()
	Group(title string)
	Skipped(task Task)
	Started(task Task)
	Progress(task Task, current, size int64)
	Downloaded(task Task, n int64)
	Failed(task Task, err error)
	Summary(s *Summary)
}

// ConsoleReporter prints human readable progress to a writer.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter returns a Reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

var rule = strings.Repeat("=", 60)

// Banner prints the run header.
func (r *ConsoleReporter) Banner() {
	fmt.Fprintln(r.out, pterm.Info.Sprint("Starting model download..."))
	fmt.Fprintln(r.out, rule)
}

// Group announces the group about to be processed.
func (r *ConsoleReporter) Group(title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, pterm.Info.Sprintf("Downloading %s...", title))
}

// Skipped reports a destination that is already present.
func (r *ConsoleReporter) Skipped(task Task) {
	fmt.Fprintln(r.out, pterm.Success.Sprintf("%s already exists", task.Path))
}

// Started reports the beginning of a transfer.
func (r *ConsoleReporter) Started(task Task) {
	fmt.Fprintf(r.out, "Downloading %s...\n", task.Path)
}

// Progress rewrites the current progress line.
func (r *ConsoleReporter) Progress(task Task, current, size int64) {
	if p := Percent(current, size); p >= 0 {
		fmt.Fprintf(r.out, "\rProgress: %d%% (%d/%d bytes)", p, current, size)
	} else {
		fmt.Fprintf(r.out, "\rProgress: %d bytes", current)
	}
}

// Downloaded reports a completed transfer.
func (r *ConsoleReporter) Downloaded(task Task, n int64) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, pterm.Success.Sprintf("Downloaded %s", task.Path))
}

// Failed reports a transfer error.
func (r *ConsoleReporter) Failed(task Task, err error) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, pterm.Error.Sprintf("Failed to download %s: %v", task.Path, err))
}

// Summary prints the totals and the critical files check.
func (r *ConsoleReporter) Summary(s *Summary) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, pterm.Success.Sprint("Download Summary:"))
	fmt.Fprintf(r.out, "   Total files processed: %d\n", s.Total)
	fmt.Fprintf(r.out, "   Successfully downloaded: %d\n", s.Succeeded)
	for _, dir := range s.Dirs {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		fmt.Fprintf(r.out, "   Output folder: %s\n", dir)
	}
	if s.Interrupted {
		fmt.Fprintln(r.out, pterm.Warning.Sprint("Run interrupted, remaining files were not processed"))
	}
	fmt.Fprintln(r.out, rule)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, pterm.Info.Sprint("Checking critical files..."))
	if len(s.Missing) == 0 {
		fmt.Fprintln(r.out, pterm.Success.Sprint("All critical files are present!"))
		return
	}
	fmt.Fprintln(r.out, pterm.Error.Sprint("Missing critical files (may cause errors):"))
	for _, f := range s.Missing {
		fmt.Fprintf(r.out, "   - %s\n", f)
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, pterm.Description.Sprint("Run modelfetch again to retry the missing downloads."))
}

// Warn prints a warning line.
func (r *ConsoleReporter) Warn(format string, a ...any) {
	fmt.Fprintln(r.out, pterm.Warning.Sprintf(format, a...))
}
