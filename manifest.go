//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// Manifest is a task list loaded from a YAML file, replacing the built-in
// catalog.
type Manifest struct {
	Groups   []Group  `yaml:"groups"`
	Critical []string `yaml:"critical,omitempty"`
}

// LoadManifest reads and validates the manifest at path. Relative task and
// critical paths are resolved against the manifest directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m, err := ParseManifest(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("loading manifest %s: %w", path, err)
	}
	return m, nil
}

// ParseManifest decodes and validates a YAML manifest, resolving relative
// paths against baseDir.
func ParseManifest(data []byte, baseDir string) (*Manifest, error) {
	var m Manifest
	if err := yaml.UnmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	resolve := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	for gi := range m.Groups {
		for ti := range m.Groups[gi].Tasks {
			t := &m.Groups[gi].Tasks[ti]
			t.Path = resolve(t.Path)
		}
	}
	for i, p := range m.Critical {
		m.Critical[i] = resolve(p)
	}
	return &m, nil
}

// Validate checks that the manifest has at least one task and that every
// task has an http(s) URL and a destination path.
func (m *Manifest) Validate() error {
	if len(m.Groups) == 0 {
		return errors.New("manifest has no groups")
	}
	for gi, g := range m.Groups {
		if len(g.Tasks) == 0 {
			return fmt.Errorf("group %d (%q) has no tasks", gi, g.Title)
		}
		for ti, t := range g.Tasks {
			if t.Path == "" {
				return fmt.Errorf("group %q, task %d: missing path", g.Title, ti)
			}
			u, err := url.Parse(t.URL)
			if err != nil {
				return fmt.Errorf("group %q, task %d: invalid url: %w", g.Title, ti, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return fmt.Errorf("group %q, task %d: only http and https urls are supported, got %q", g.Title, ti, t.URL)
			}
			if u.Host == "" {
				return fmt.Errorf("group %q, task %d: url %q has no host", g.Title, ti, t.URL)
			}
		}
	}
	for i, p := range m.Critical {
		if p == "" {
			return fmt.Errorf("critical file %d: empty path", i)
		}
	}
	return nil
}
