//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.bug.st/modelfetch"
)

const (
	envManifest          = "MODELFETCH_MANIFEST"
	envDelay             = "MODELFETCH_DELAY"
	envInactivityTimeout = "MODELFETCH_INACTIVITY_TIMEOUT"
	envPollInterval      = "MODELFETCH_POLL_INTERVAL"
	envInsecure          = "MODELFETCH_INSECURE"
)

type settings struct {
	Manifest          string
	Delay             time.Duration
	InactivityTimeout time.Duration
	PollInterval      time.Duration
	Insecure          bool
}

// loadSettings reads the environment, after loading envFile if it exists.
// Variables already set in the environment take precedence over envFile.
func loadSettings(envFile string) (*settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	s := &settings{
		Manifest:     os.Getenv(envManifest),
		Delay:        modelfetch.DefaultDelay,
		PollInterval: 250 * time.Millisecond,
	}
	var err error
	if s.Delay, err = durationEnv(envDelay, s.Delay); err != nil {
		return nil, err
	}
	if s.InactivityTimeout, err = durationEnv(envInactivityTimeout, 0); err != nil {
		return nil, err
	}
	if s.PollInterval, err = durationEnv(envPollInterval, s.PollInterval); err != nil {
		return nil, err
	}
	if v := os.Getenv(envInsecure); v != "" {
		if s.Insecure, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", envInsecure, err)
		}
	}
	return s, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration %s", key, v)
	}
	return d, nil
}
