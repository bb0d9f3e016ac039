//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

// modelfetch downloads the SadTalker checkpoints and GFPGAN weights into
// the current directory.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.bug.st/modelfetch"
)

func main() {
	s, err := loadSettings(".env")
	if err != nil {
		log.Fatal(err)
	}

	groups := modelfetch.DefaultGroups()
	critical := modelfetch.DefaultCriticalFiles()
	if s.Manifest != "" {
		m, err := modelfetch.LoadManifest(s.Manifest)
		if err != nil {
			log.Fatal(err)
		}
		groups, critical = m.Groups, m.Critical
	}

	reporter := modelfetch.NewConsoleReporter(os.Stdout)
	config := modelfetch.GetDefaultConfig()
	config.InactivityTimeout = s.InactivityTimeout
	if s.Insecure {
		reporter.Warn("TLS certificate validation is disabled (%s)", envInsecure)
		config = config.WithInsecureTLS()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	modelfetch.SetDefaultConfig(config)

	runner := &modelfetch.Runner{
		Fetcher:  modelfetch.NewDefaultHTTPFetcher(s.PollInterval),
		Reporter: reporter,
		Delay:    s.Delay,
		Critical: critical,
	}
	// Download failures are reported by the runner and do not change the
	// exit status.
	if _, err := runner.Run(ctx, groups); err != nil {
		log.Fatal(err)
	}
}
