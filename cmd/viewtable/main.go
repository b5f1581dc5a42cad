// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command viewtable shows CSV, Parquet, JSON and Delta Sharing tables,
// either in a window or, with -print, as a table on standard output.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2/app"

	"github.com/magpierre/fyne-viewtable/adapters/share"
	"github.com/magpierre/fyne-viewtable/config"
	"github.com/magpierre/fyne-viewtable/datatable"
	"github.com/magpierre/fyne-viewtable/internal/logging"
	"github.com/magpierre/fyne-viewtable/render/text"
	"github.com/magpierre/fyne-viewtable/windows"
)

type options struct {
	configPath  string
	print       bool
	ascii       bool
	logLevel    string
	seqURL      string
	profilePath string
	table       string
	limit       int
	timeout     int
	file        string
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("viewtable", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML table description")
	fs.BoolVar(&o.print, "print", false, "print the table to standard output instead of opening a window")
	fs.BoolVar(&o.ascii, "ascii", false, "draw -print borders with ASCII characters")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&o.seqURL, "seq", "", "Seq server URL to ship logs to")
	fs.StringVar(&o.profilePath, "profile", "", "Delta Sharing profile file")
	fs.StringVar(&o.table, "table", "", "shared table as share.schema.table")
	fs.IntVar(&o.limit, "limit", 0, "maximum number of rows to load from a share, 0 for all")
	fs.IntVar(&o.timeout, "timeout", 60, "Delta Sharing request timeout in seconds")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 1 {
		return o, errors.New("at most one data file may be given")
	}
	o.file = fs.Arg(0)
	if o.table != "" && o.profilePath == "" {
		return o, errors.New("-table requires -profile")
	}
	if o.print && o.file == "" && o.table == "" {
		return o, errors.New("-print needs a data file or -profile and -table")
	}
	return o, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	_, closeLog := logging.SetupLogger(logging.Options{Level: level, SeqURL: opts.seqURL})

	err = run(opts, os.Stdout)
	closeLog()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options, stdout io.Writer) error {
	var desc *config.Table
	if opts.configPath != "" {
		var err error
		desc, err = config.Load(opts.configPath)
		if err != nil {
			return err
		}
	}

	var profile string
	if opts.profilePath != "" {
		content, err := os.ReadFile(opts.profilePath)
		if err != nil {
			return fmt.Errorf("failed to read profile: %w", err)
		}
		profile = string(content)
	}

	if opts.print {
		return printTable(opts, desc, profile, stdout)
	}

	a := app.NewWithID("viewtable")
	mw := windows.NewMainWindow(a, windows.Options{
		Table:      desc,
		APITimeout: opts.timeout,
		Limit:      opts.limit,
	})
	switch {
	case opts.file != "":
		mw.LoadFile(opts.file)
	case opts.table != "":
		mw.LoadShareTable(profile, opts.table)
	case profile != "":
		mw.OpenShare(profile)
	}
	mw.Window().ShowAndRun()
	return nil
}

func printTable(opts options, desc *config.Table, profile string, stdout io.Writer) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(opts.timeout)*time.Second)
	defer cancel()

	var src datatable.RecordSource
	if opts.file != "" {
		res, err := windows.LoadDataFile(ctx, opts.file)
		if err != nil {
			return err
		}
		if res.Source == nil {
			return fmt.Errorf("%s is a %s, use -profile and -table", opts.file, res.Type)
		}
		src = res.Source
	} else {
		s, err := share.Load(ctx, profile, opts.table, opts.limit)
		if err != nil {
			return err
		}
		src = s
	}

	var (
		cols *datatable.ColumnSet
		id   datatable.IdentityFunc
	)
	if desc != nil {
		var err error
		if cols, err = desc.ColumnSet(); err != nil {
			return err
		}
		id = desc.IdentityFunc()
	}
	model, err := datatable.NewModelFromSource(src, cols, id)
	if err != nil {
		return err
	}
	slog.Debug("table mapped", "rows", model.Len(), "columns", model.Columns().Len())

	shown := model.Columns().Columns()
	if desc != nil {
		if shown, err = model.Columns().Select(desc.Names()...); err != nil {
			return err
		}
	}
	out := text.Render(model.Views(), shown, text.Options{ASCII: opts.ascii, Limit: opts.limit})
	_, err = fmt.Fprintln(stdout, out)
	return err
}
