//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"crypto/tls"
	"net/http"
	"sync"
	"time"
)

// Config contains the configuration for the downloader
type Config struct {
	// HttpClient to use to perform HTTP requests
	HttpClient http.Client
	// ExtraHeaders to add to the HTTP requests.
	ExtraHeaders map[string]string
	// AcceptFunc is an optional function that will be called
	// when the HTTP response headers are received, before starting the download.
	// If the function returns an error, the download is aborted.
	AcceptFunc func(resp *http.Response) error
	// DoNotErrorOnNon2xxStatusCode set to true to not return an error
	// if the server returns a non-2xx status code.
	DoNotErrorOnNon2xxStatusCode bool
	// InactivityTimeout is the duration after which, if no data is received,
	// the download is aborted. If set to 0, no timeout is applied.
	InactivityTimeout time.Duration
}

// WithInsecureTLS returns a copy of the configuration whose HTTP client does
// not validate server certificates.
func (c Config) WithInsecureTLS() Config {
	base, ok := c.HttpClient.Transport.(*http.Transport)
	if !ok || base == nil {
		base = http.DefaultTransport.(*http.Transport)
	}
	t := base.Clone()
	if t.TLSClientConfig == nil {
		t.TLSClientConfig = &tls.Config{}
	}
	t.TLSClientConfig.InsecureSkipVerify = true
	c.HttpClient.Transport = t
	return c
}

var (
	defaultConfig     Config
	defaultConfigLock sync.Mutex
)

// SetDefaultConfig installs the configuration used by NewDefaultHTTPFetcher.
func SetDefaultConfig(config Config) {
	defaultConfigLock.Lock()
	defaultConfig = config
	defaultConfigLock.Unlock()
}

// GetDefaultConfig returns a copy of the process-wide configuration. The
// ExtraHeaders map is shared with the installed configuration.
func GetDefaultConfig() Config {
	defaultConfigLock.Lock()
	defer defaultConfigLock.Unlock()
	return defaultConfig
}
