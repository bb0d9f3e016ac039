//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package modelfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"
)

// Downloader streams the body of a single HTTP response into a local file.
type Downloader struct {
	URL           string
	Done          chan struct{}
	Resp          *http.Response
	out           *os.File
	completed     int64
	completedLock sync.Mutex
	size          int64
	err           error
	wd            watchdog
}

// HTTPStatusError is returned by Download when the server answers with a
// non-2xx status code.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("server returned %q for %s", e.Status, e.URL)
}

// Close the download
func (d *Downloader) Close() error {
	defer d.wd.Cancel()
	err1 := d.out.Close()
	err2 := d.Resp.Body.Close()
	if err1 != nil {
		return fmt.Errorf("closing output file: %w", err1)
	}
	if err2 != nil {
		return fmt.Errorf("closing input stream: %w", err2)
	}
	return nil
}

// Size return the size of the download (or -1 if the server doesn't provide it)
func (d *Downloader) Size() int64 {
	return d.size
}

// RunAndPoll starts the downloader copy-loop and calls the poll function every
// interval time to update progress. The poll function is called one last time
// after the download completes. A non-positive interval disables the periodic
// calls.
func (d *Downloader) RunAndPoll(poll func(current, size int64), interval time.Duration) error {
	if interval <= 0 {
		err := d.Run()
		poll(d.Completed(), d.size)
		return err
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	go d.Run()
	for {
		select {
		case <-t.C:
			poll(d.Completed(), d.size)
		case <-d.Done:
			poll(d.Completed(), d.size)
			return d.Error()
		}
	}
}

// Run starts the downloader and waits until it completes the download.
// This method can be run in a goroutine to perform an asynchronous download;
// it will close the Done channel when the download is completed or an error occurs.
func (d *Downloader) Run() error {
	defer close(d.Done)

	in := d.Resp.Body
	buff := [32 * 1024]byte{}
	for {
		n, err := in.Read(buff[:])
		if n > 0 {
			d.wd.Kick()
			if _, werr := d.out.Write(buff[:n]); werr != nil {
				d.err = fmt.Errorf("writing %s: %w", d.out.Name(), werr)
				break
			}
			d.completedLock.Lock()
			d.completed += int64(n)
			d.completedLock.Unlock()
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			d.err = d.wd.translate(err)
			break
		}
	}
	if err := d.Close(); err != nil && d.err == nil {
		d.err = err
	}
	return d.Error()
}

// Error returns the error during download or nil if no errors happened
func (d *Downloader) Error() error {
	return d.err
}

// Completed returns the bytes read so far
func (d *Downloader) Completed() int64 {
	d.completedLock.Lock()
	res := d.completed
	d.completedLock.Unlock()
	return res
}

// maxDrain caps the bytes of a rejected response body read before closing it.
const maxDrain = 64 << 10

// Download performs a GET request for reqURL and returns a Downloader ready
// to copy the response body into file. The file is created (or truncated)
// only once the server response has been accepted.
func Download(ctx context.Context, file string, reqURL string, config Config) (*Downloader, error) {
	ctx, wd := newWatchdog(ctx, config.InactivityTimeout)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		wd.Cancel()
		return nil, fmt.Errorf("setting up HTTP request: %w", err)
	}
	for k, v := range config.ExtraHeaders {
		req.Header.Set(k, v)
	}
	resp, err := config.HttpClient.Do(req)
	if err != nil {
		wd.Cancel()
		return nil, fmt.Errorf("performing HTTP request: %w", err)
	}
	wd.Kick()

	reject := func(err error) (*Downloader, error) {
		_, _ = io.CopyN(io.Discard, resp.Body, maxDrain)
		_ = resp.Body.Close()
		wd.Cancel()
		return nil, err
	}
	if !config.DoNotErrorOnNon2xxStatusCode && (resp.StatusCode < 200 || resp.StatusCode > 299) {
		return reject(&HTTPStatusError{URL: reqURL, StatusCode: resp.StatusCode, Status: resp.Status})
	}
	if config.AcceptFunc != nil {
		if err := config.AcceptFunc(resp); err != nil {
			return reject(err)
		}
	}

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return reject(fmt.Errorf("opening %s for writing: %w", file, err))
	}

	return &Downloader{
		URL:  reqURL,
		Done: make(chan struct{}),
		Resp: resp,
		out:  f,
		size: resp.ContentLength, // -1 if server doesn't send Content-Length
		wd:   wd,
	}, nil
}
