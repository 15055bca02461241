/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"core2d/internal/clipboard"
	"core2d/internal/config"
	"core2d/internal/crash"
	"core2d/internal/domain"
	"core2d/internal/editor"
	"core2d/internal/factory"
	applog "core2d/internal/log"
	"core2d/internal/pathconv"
	"core2d/internal/storage"
	"core2d/internal/stylepack"
	"core2d/internal/telemetry"
	"core2d/internal/undo"
	"core2d/internal/version"
)

func usage() {
	fmt.Println("Core2D")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  core2d version|-v|--version            Show version")
	fmt.Println("  core2d init <dir> <name>               Create a new project at <dir> with name <name>")
	fmt.Println("  core2d info <dir>                      Print a summary of the project at <dir>")
	fmt.Println("  core2d paste <dir> <file>              Paste shapes from a transfer file into the current layer")
	fmt.Println("  core2d checkpoint <dir> [label]        Store a checkpoint of the project")
	fmt.Println("  core2d checkpoints <dir>               List stored checkpoints")
	fmt.Println("  core2d restore <dir> <id>              Restore a checkpoint and save it as the project")
	fmt.Println("  core2d export-styles <dir> <zip>       Export style and group libraries to a style pack")
	fmt.Println("  core2d install-styles <dir> <zip>      Install the libraries of a style pack")
	fmt.Println("  core2d config                          Print the effective configuration")
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func need(args []string, n int, msg string) {
	if len(args) < n {
		fmt.Println(msg)
		usage()
		os.Exit(2)
	}
}

func main() {
	cfgPath, _ := config.ConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(2)
	}
	applog.Init(cfg.LogOptions())
	l := applog.WithComponent("cli")

	tel := telemetry.Default()
	defer tel.Close()
	sess := &crash.Session{Upload: tel.UploadCrash}
	defer crash.Recover(sess)
	open := func(dir string) *storage.ProjectHandle {
		abs, _ := filepath.Abs(dir)
		ph, err := storage.Open(abs)
		if err != nil {
			fail(l, "open failed", err)
		}
		if ph.Recovered {
			fmt.Println("Warning: project file was unreadable; loaded the latest usable backup.")
		}
		sess.Dir, sess.Project = ph.Root, ph.Project.Name
		sess.Autosave = func() (string, error) { return storage.AutosaveCrashCheckpoint(ph) }
		return ph
	}
	f := factory.New(cfg.Options(), l)
	ctx := context.Background()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage()
		return
	}
	tel.Event("command", map[string]any{"command": args[1]})
	defer func() {
		fctx, cancel := context.WithTimeout(ctx, time.Second)
		tel.Flush(fctx)
		cancel()
	}()
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())
	case "init":
		need(args, 4, "init requires <dir> and <name>")
		abs, _ := filepath.Abs(args[2])
		l.Info("init project", slog.String("root", abs), slog.String("name", args[3]))
		if _, err := storage.InitProject(abs, f.NewProject(args[3])); err != nil {
			fail(l, "init failed", err)
		}
		fmt.Println("Created project at", abs)
	case "info":
		need(args, 3, "info requires <dir>")
		ph := open(args[2])
		printInfo(ph)
	case "paste":
		need(args, 4, "paste requires <dir> and <file>")
		ph := open(args[2])
		data, err := os.ReadFile(args[3])
		if err != nil {
			fail(l, "read transfer file failed", err)
		}
		clip := &clipboard.Memory{}
		ed, err := editor.New(editor.Deps{
			Factory:       f,
			PathConverter: pathconv.New(pathconv.DefaultTolerance),
			Clipboard:     clip,
			Logger:        l,
			History:       undo.NewManager(undo.Config{MaxDepth: cfg.History.MaxDepth}),
		})
		if err != nil {
			fail(l, "editor failed", err)
		}
		layer := ph.Project.CurrentLayer()
		if layer == nil {
			fail(l, "paste failed", errors.New("project has no current layer"))
		}
		ed.Load(ph.Project)
		before := len(layer.Shapes)
		if err := clip.WriteText(ctx, string(data)); err != nil {
			fail(l, "clipboard failed", err)
		}
		if err := ed.Paste(ctx); err != nil {
			fail(l, "paste failed", err)
		}
		added := len(layer.Shapes) - before
		if !ed.IsDirty() {
			fmt.Println("Nothing pasted.")
			return
		}
		if err := storage.Save(ph); err != nil {
			fail(l, "save failed", err)
		}
		ed.MarkClean()
		fmt.Printf("Pasted %d shapes.\n", added)
	case "checkpoint":
		need(args, 3, "checkpoint requires <dir>")
		ph := open(args[2])
		label := storage.LabelManual
		if len(args) > 3 {
			label = args[3]
		}
		id, err := storage.SaveCheckpoint(ctx, ph, label, time.Now())
		if err != nil {
			fail(l, "checkpoint failed", err)
		}
		fmt.Printf("Stored checkpoint %d (%s).\n", id, label)
	case "checkpoints":
		need(args, 3, "checkpoints requires <dir>")
		ph := open(args[2])
		cps, err := storage.ListCheckpoints(ctx, ph, 50)
		if err != nil {
			fail(l, "list checkpoints failed", err)
		}
		for _, c := range cps {
			fmt.Printf("%6d  %-10s %s  %d pages  %d bytes\n", c.ID, c.Label, c.TS.Format(time.RFC3339), c.Pages, c.Size)
		}
	case "restore":
		need(args, 4, "restore requires <dir> and <id>")
		ph := open(args[2])
		id, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			fail(l, "bad checkpoint id", err)
		}
		p, err := storage.LoadCheckpoint(ctx, ph, id)
		if err != nil {
			fail(l, "load checkpoint failed", err)
		}
		ph.Project = p
		if err := storage.Save(ph); err != nil {
			fail(l, "save failed", err)
		}
		fmt.Printf("Restored checkpoint %d.\n", id)
	case "export-styles":
		need(args, 4, "export-styles requires <dir> and <zip>")
		ph := open(args[2])
		if err := stylepack.Export(ph.Project, args[3]); err != nil {
			fail(l, "export styles failed", err)
		}
		fmt.Println("Exported style pack to", args[3])
	case "install-styles":
		need(args, 4, "install-styles requires <dir> and <zip>")
		ph := open(args[2])
		n, err := stylepack.Install(ph.Project, args[3])
		if err != nil {
			fail(l, "install styles failed", err)
		}
		if n > 0 {
			if err := storage.Save(ph); err != nil {
				fail(l, "save failed", err)
			}
		}
		fmt.Printf("Installed %d libraries.\n", n)
	case "config":
		fmt.Println("Config file:", cfgPath)
		fmt.Printf("Editor:  %+v\n", cfg.Editor)
		fmt.Printf("History: %+v\n", cfg.History)
		fmt.Printf("Logging: %+v\n", cfg.Logging)
	default:
		usage()
	}
}

func printInfo(ph *storage.ProjectHandle) {
	p := ph.Project
	fmt.Printf("Project: %s\n", p.Name)
	fmt.Println("Root:", ph.Root)
	fmt.Printf("Templates: %d  Databases: %d\n", len(p.Templates), len(p.Databases))
	for _, d := range p.Documents {
		fmt.Printf("Document %s: %d pages\n", d.Name, len(d.Pages))
		for _, pg := range d.Pages {
			shapes := 0
			for _, layer := range pg.Layers {
				shapes += len(layer.Shapes)
			}
			fmt.Printf("  Page %s: %d layers, %d shapes\n", pg.Name, len(pg.Layers), shapes)
		}
	}
	if l := p.CurrentLayer(); l != nil {
		fmt.Printf("Current layer: %s (%s)\n", l.Name, countKinds(l.Shapes))
	}
}

func countKinds(shapes []domain.Shape) string {
	counts := make(map[domain.Kind]int)
	for _, s := range shapes {
		counts[s.Kind()]++
	}
	out := ""
	for k := domain.Kind(0); k <= domain.KindGroup; k++ {
		if n := counts[k]; n > 0 {
			if out != "" {
				out += ", "
			}
			out += fmt.Sprintf("%d %s", n, k)
		}
	}
	if out == "" {
		return "empty"
	}
	return out
}
