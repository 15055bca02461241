/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"core2d/internal/domain"
	applog "core2d/internal/log"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type EditorConfig struct {
	SnapToGrid       bool    `yaml:"snap_to_grid"`
	SnapX            float64 `yaml:"snap_x"`
	SnapY            float64 `yaml:"snap_y"`
	HitThreshold     float64 `yaml:"hit_threshold"`
	MoveMode         string  `yaml:"move_mode"` // "point" | "shape"
	TryToConnect     bool    `yaml:"try_to_connect"`
	DrawPoints       bool    `yaml:"draw_points"`
	DefaultIsStroked bool    `yaml:"default_is_stroked"`
	DefaultIsFilled  bool    `yaml:"default_is_filled"`
}

type HistoryConfig struct {
	MaxDepth int `yaml:"max_depth"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Editor        EditorConfig  `yaml:"editor"`
	History       HistoryConfig `yaml:"history"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	o := domain.DefaultOptions()
	return AppConfig{
		ConfigVersion: 1,
		Editor: EditorConfig{
			SnapToGrid:       o.SnapToGrid,
			SnapX:            o.SnapX,
			SnapY:            o.SnapY,
			HitThreshold:     o.HitThreshold,
			MoveMode:         o.MoveMode.String(),
			TryToConnect:     o.TryToConnect,
			DrawPoints:       o.DrawPoints,
			DefaultIsStroked: o.DefaultIsStroked,
			DefaultIsFilled:  o.DefaultIsFilled,
		},
		History: HistoryConfig{MaxDepth: 500},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// EnvPrefix is prepended to every override variable, e.g. CORE2D_SNAP_X.
const EnvPrefix = "CORE2D"

// overrides holds environment values; nil means unset.
type overrides struct {
	SnapToGrid   *bool    `envconfig:"SNAP_TO_GRID"`
	SnapX        *float64 `envconfig:"SNAP_X"`
	SnapY        *float64 `envconfig:"SNAP_Y"`
	HitThreshold *float64 `envconfig:"HIT_THRESHOLD"`
	MoveMode     *string  `envconfig:"MOVE_MODE"`
	TryToConnect *bool    `envconfig:"TRY_TO_CONNECT"`
	DrawPoints   *bool    `envconfig:"DRAW_POINTS"`
	MaxDepth     *int     `envconfig:"HISTORY_MAX_DEPTH"`
	LogLevel     *string  `envconfig:"LOG_LEVEL"`
	LogFormat    *string  `envconfig:"LOG_FORMAT"`
	LogSource    *bool    `envconfig:"LOG_SOURCE"`
	LogFile      *string  `envconfig:"LOG_FILE"`
}

// envKeys maps config keys to the variables overriding them.
var envKeys = map[string]string{
	"editor.snap_to_grid":   "SNAP_TO_GRID",
	"editor.snap_x":         "SNAP_X",
	"editor.snap_y":         "SNAP_Y",
	"editor.hit_threshold":  "HIT_THRESHOLD",
	"editor.move_mode":      "MOVE_MODE",
	"editor.try_to_connect": "TRY_TO_CONNECT",
	"editor.draw_points":    "DRAW_POINTS",
	"history.max_depth":     "HISTORY_MAX_DEPTH",
	"logging.level":         "LOG_LEVEL",
	"logging.format":        "LOG_FORMAT",
	"logging.source":        "LOG_SOURCE",
	"logging.file":          "LOG_FILE",
}

var ErrInvalid = errors.New("config: invalid value")

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "core2d")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "core2d")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "core2d")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the config file at path (the user config when empty), applies
// defaults and merges environment overrides. A missing file is not an error.
func Load(path string) (AppConfig, error) {
	cfg := Defaults()
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes cfg as YAML to path (the user config when empty).
func Save(path string, cfg AppConfig) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate rejects values the editor cannot work with.
func (c AppConfig) Validate() error {
	if _, ok := domain.ParseMoveMode(c.Editor.MoveMode); !ok {
		return fmt.Errorf("%w: editor.move_mode %q", ErrInvalid, c.Editor.MoveMode)
	}
	if c.Editor.SnapX < 0 || c.Editor.SnapY < 0 {
		return fmt.Errorf("%w: negative snap increment", ErrInvalid)
	}
	if c.Editor.HitThreshold < 0 {
		return fmt.Errorf("%w: negative hit threshold", ErrInvalid)
	}
	if c.History.MaxDepth < 0 {
		return fmt.Errorf("%w: negative history depth", ErrInvalid)
	}
	return nil
}

// Options builds the editing options from the editor section.
func (c AppConfig) Options() *domain.Options {
	o := domain.DefaultOptions()
	o.SnapToGrid = c.Editor.SnapToGrid
	o.SnapX = c.Editor.SnapX
	o.SnapY = c.Editor.SnapY
	o.HitThreshold = c.Editor.HitThreshold
	if m, ok := domain.ParseMoveMode(c.Editor.MoveMode); ok {
		o.MoveMode = m
	}
	o.TryToConnect = c.Editor.TryToConnect
	o.DrawPoints = c.Editor.DrawPoints
	o.DefaultIsStroked = c.Editor.DefaultIsStroked
	o.DefaultIsFilled = c.Editor.DefaultIsFilled
	return o
}

// LogOptions converts the logging section for log.Init.
func (c AppConfig) LogOptions() applog.Options {
	return applog.Options{Level: c.Logging.Level, Format: c.Logging.Format, AddSource: c.Logging.Source, File: c.Logging.File}
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Editor.SnapToGrid = src.Editor.SnapToGrid
	dst.Editor.TryToConnect = src.Editor.TryToConnect
	dst.Editor.DrawPoints = src.Editor.DrawPoints
	dst.Editor.DefaultIsStroked = src.Editor.DefaultIsStroked
	dst.Editor.DefaultIsFilled = src.Editor.DefaultIsFilled
	if src.Editor.SnapX != 0 {
		dst.Editor.SnapX = src.Editor.SnapX
	}
	if src.Editor.SnapY != 0 {
		dst.Editor.SnapY = src.Editor.SnapY
	}
	if src.Editor.HitThreshold != 0 {
		dst.Editor.HitThreshold = src.Editor.HitThreshold
	}
	if v := strings.ToLower(strings.TrimSpace(src.Editor.MoveMode)); v != "" {
		dst.Editor.MoveMode = v
	}
	if src.History.MaxDepth != 0 {
		dst.History.MaxDepth = src.History.MaxDepth
	}
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	var ov overrides
	if err := envconfig.Process(EnvPrefix, &ov); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	setIf(&cfg.Editor.SnapToGrid, ov.SnapToGrid)
	setIf(&cfg.Editor.SnapX, ov.SnapX)
	setIf(&cfg.Editor.SnapY, ov.SnapY)
	setIf(&cfg.Editor.HitThreshold, ov.HitThreshold)
	if ov.MoveMode != nil {
		cfg.Editor.MoveMode = strings.ToLower(strings.TrimSpace(*ov.MoveMode))
	}
	setIf(&cfg.Editor.TryToConnect, ov.TryToConnect)
	setIf(&cfg.Editor.DrawPoints, ov.DrawPoints)
	setIf(&cfg.History.MaxDepth, ov.MaxDepth)
	if ov.LogLevel != nil {
		cfg.Logging.Level = strings.ToLower(*ov.LogLevel)
	}
	if ov.LogFormat != nil {
		cfg.Logging.Format = strings.ToLower(*ov.LogFormat)
	}
	setIf(&cfg.Logging.Source, ov.LogSource)
	setIf(&cfg.Logging.File, ov.LogFile)
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	suffix, ok := envKeys[key]
	if !ok {
		return "", false
	}
	name := EnvPrefix + "_" + suffix
	if os.Getenv(name) != "" {
		return name, true
	}
	return "", false
}
