/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package telemetry is an opt-in sender for anonymous usage events and
// crash reports. Nothing is sent unless opted in and an endpoint is set.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	applog "core2d/internal/log"
	"core2d/internal/version"
)

// EnvPrefix prefixes the variables FromEnv reads, e.g. CORE2D_TELEMETRY_OPT_IN.
const EnvPrefix = "CORE2D_TELEMETRY"

// Config holds runtime configuration for telemetry and crash uploads.
type Config struct {
	OptIn        bool          `envconfig:"OPT_IN"`
	EventsURL    string        `envconfig:"URL"`
	CrashURL     string        `envconfig:"CRASH_URL"`
	Timeout      time.Duration `envconfig:"TIMEOUT" default:"1500ms"`
	DebugLogging bool          `envconfig:"DEBUG"`
}

// FromEnv reads Config from the environment. Malformed values disable telemetry.
func FromEnv() Config {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		applog.WithComponent("telemetry").Warn("telemetry disabled", slog.Any("err", err))
		return Config{Timeout: 1500 * time.Millisecond}
	}
	return cfg
}

// Client sends events from a bounded queue on a background goroutine. Full
// queues and failed requests drop events.
type Client struct {
	cfg     Config
	log     *slog.Logger
	cli     *http.Client
	q       chan map[string]any
	pending sync.WaitGroup
	once    sync.Once
	closed  chan struct{}
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// Default returns the package client, created from the environment on first use.
func Default() *Client {
	defaultOnce.Do(func() {
		if defaultClient == nil {
			defaultClient = New(FromEnv())
		}
	})
	return defaultClient
}

// SetDefault installs c as the package client.
func SetDefault(c *Client) {
	defaultOnce.Do(func() {})
	defaultClient = c
}

func New(cfg Config) *Client {
	c := &Client{
		cfg:    cfg,
		log:    applog.WithComponent("telemetry"),
		cli:    &http.Client{Timeout: cfg.Timeout},
		q:      make(chan map[string]any, 64),
		closed: make(chan struct{}),
	}
	go c.loop()
	return c
}

// Enabled reports whether events are sent.
func (c *Client) Enabled() bool { return c != nil && c.cfg.OptIn && c.cfg.EventsURL != "" }

// Event queues a small JSON event. Props must not carry personal data.
func (c *Client) Event(name string, props map[string]any) {
	if !c.Enabled() || name == "" {
		return
	}
	payload := map[string]any{
		"name":    name,
		"ts":      time.Now().UTC().Format(time.RFC3339Nano),
		"version": version.String(),
		"os":      runtime.GOOS,
		"arch":    runtime.GOARCH,
	}
	for k, v := range props {
		payload[k] = v
	}
	c.pending.Add(1)
	select {
	case c.q <- payload:
	default:
		c.pending.Done()
	}
}

// Flush waits until queued events are sent or ctx is done.
func (c *Client) Flush(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
	case <-done:
	}
}

// Close stops the background goroutine. Queued events are dropped.
func (c *Client) Close() { c.once.Do(func() { close(c.closed) }) }

func (c *Client) loop() {
	for {
		select {
		case <-c.closed:
			return
		case item := <-c.q:
			buf, _ := json.Marshal(item)
			if err := c.post(context.Background(), c.cfg.EventsURL, "application/json", buf); err != nil && c.cfg.DebugLogging {
				c.log.Debug("telemetry send failed", slog.Any("err", err))
			}
			c.pending.Done()
		}
	}
}

func (c *Client) post(ctx context.Context, url, contentType string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := c.cli.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry: %s returned %s", url, resp.Status)
	}
	return nil
}

// UploadCrash posts a crash report and waits for the answer. It does
// nothing unless opted in with a crash URL.
func (c *Client) UploadCrash(ctx context.Context, report []byte) error {
	if c == nil || !c.cfg.OptIn || c.cfg.CrashURL == "" {
		return nil
	}
	if err := c.post(ctx, c.cfg.CrashURL, "text/plain; charset=utf-8", report); err != nil {
		c.log.Warn("crash upload failed", slog.Any("err", err))
		return err
	}
	c.log.Info("crash report uploaded")
	return nil
}
