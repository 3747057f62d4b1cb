// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gramgraph plots tabular data described by a
// grammar-of-graphics pipeline.
//
// Usage:
//
//	gramgraph [flags] 'pipeline' [data.csv|data.json]
//
// The pipeline is a sequence of segments separated by '|', such as
//
//	aes(x: time, y: value, color: host) | line() | labs(title: "Load")
//
// Data is read from the named file, or from stdin if there is none or
// it is "-". JSON input is an array of objects; anything else is CSV
// with a header row.
//
// The plot is written as a PNG or SVG image to the -o file, or to
// stdout. A PNG is never written to a terminal.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/gramgraph/internal/logger"
	"github.com/aclements/gramgraph/plot"
	"github.com/aclements/gramgraph/render"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/theme"
	"github.com/aclements/gramgraph/vars"
	"github.com/alecthomas/units"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/pkg/browser"
	"golang.org/x/term"
)

// defs collects repeated -D flags.
type defs []string

func (d *defs) String() string {
	return strings.Join(*d, " ")
}

func (d *defs) Set(s string) error {
	*d = append(*d, s)
	return nil
}

// command is one gramgraph invocation.
type command struct {
	out       string
	width     int
	height    int
	format    render.Format
	formatSet bool
	scale     int
	defs      defs
	vars      string
	config    string
	theme     string
	palette   string
	table     bool
	scene     bool
	open      bool
	maxData   string
	log       logger.Flags

	// set records the flags given on the command line.
	set map[string]bool

	stdin  io.Reader
	stdout io.Writer

	// isTerminal reports whether stdout is a terminal.
	isTerminal func() bool
}

func (c *command) setFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.out, "o", "", "write output to `file` (default: stdout)")
	fs.IntVar(&c.width, "width", plot.DefaultWidth, "canvas width in `pixels`")
	fs.IntVar(&c.height, "height", plot.DefaultHeight, "canvas height in `pixels`")
	fs.Var(&c.format, "format", "output `format`, png or svg (default: from the -o extension, else png)")
	fs.IntVar(&c.scale, "scale", 2, "PNG supersampling `factor`")
	fs.Var(&c.defs, "D", "define pipeline variable as `name=value` (repeatable)")
	fs.StringVar(&c.vars, "vars", "", "define pipeline variables as shell-quoted `'name=value ...'`")
	fs.StringVar(&c.config, "config", "", "read defaults from YAML `file`")
	fs.StringVar(&c.theme, "theme", "", "apply YAML theme `file`")
	fs.StringVar(&c.palette, "palette", "", "group color `palette`, such as Set1 or Dark2")
	fs.BoolVar(&c.table, "table", false, "output the input table instead of a plot")
	fs.BoolVar(&c.scene, "scene", false, "output the scene as text instead of an image")
	fs.BoolVar(&c.open, "open", false, "open the output in a browser")
	fs.StringVar(&c.maxData, "maxdata", units.Base2Bytes(64<<20).String(), "refuse input larger than `size`, such as 64MiB")
	c.log.SetFlags(fs)
}

func main() {
	log.SetPrefix("gramgraph: ")
	log.SetFlags(0)

	c := &command{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
	c.setFlags(flag.CommandLine)
	flagCPUProfile := flag.String("cpuprofile", "", "write CPU profile to `file`")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] 'pipeline' [data.csv|data.json]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}
	c.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) { c.set[f.Name] = true })

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := c.run(context.Background(), flag.Args()); err != nil {
		pprof.StopCPUProfile()
		log.Fatal(err)
	}
}

func (c *command) run(ctx context.Context, args []string) error {
	if err := c.applyConfig(); err != nil {
		return err
	}
	opts, err := c.options()
	if err != nil {
		return err
	}
	l, err := c.log.Open()
	if err != nil {
		return err
	}
	defer l.Sync()
	opts.Logger = l

	maxData, err := units.ParseBase2Bytes(c.maxData)
	if err != nil {
		return fmt.Errorf("-maxdata: %w", err)
	}
	path := "-"
	if len(args) > 1 {
		path = args[1]
	}
	tab, err := c.readData(path, int64(maxData))
	if err != nil {
		return err
	}

	// Everything is built in memory so that a failure writes
	// nothing.
	var buf bytes.Buffer
	if c.table {
		table.Fprint(&buf, tab)
		return c.write(buf.Bytes())
	}
	s, err := plot.NewCompiler(1).Build(ctx, args[0], tab, opts)
	if err != nil {
		return err
	}
	if c.scene {
		if err := scene.Fprint(&buf, s); err != nil {
			return err
		}
		return c.write(buf.Bytes())
	}

	format := c.outputFormat()
	if format == render.FormatPNG && c.out == "" && !c.open && c.isTerminal() {
		return errors.New("refusing to write a PNG to a terminal; use -o or redirect stdout")
	}
	if err := render.Write(&buf, s, format, c.scale); err != nil {
		return err
	}
	return c.write(buf.Bytes())
}

// applyConfig fills in flags that were not given on the command line
// from the -config file.
func (c *command) applyConfig() error {
	if c.config == "" {
		return nil
	}
	cfg, err := plot.LoadConfig(c.config)
	if err != nil {
		return err
	}
	if cfg.Width > 0 && !c.set["width"] {
		c.width = cfg.Width
	}
	if cfg.Height > 0 && !c.set["height"] {
		c.height = cfg.Height
	}
	if cfg.Format != "" && !c.set["format"] {
		if err := c.format.Set(cfg.Format); err != nil {
			return fmt.Errorf("%s: %w", c.config, err)
		}
		c.formatSet = true
	}
	if cfg.Palette != "" && !c.set["palette"] {
		c.palette = cfg.Palette
	}
	if cfg.Theme != "" && !c.set["theme"] {
		c.theme = cfg.Theme
	}
	if cfg.DPIScale > 0 && !c.set["scale"] {
		c.scale = cfg.DPIScale
	}
	// Command-line variables override the file's.
	var fileDefs defs
	for name, val := range cfg.Vars {
		fileDefs = append(fileDefs, name+"="+val)
	}
	c.defs = append(fileDefs, c.defs...)
	return nil
}

// options collects the build options from the flags.
func (c *command) options() (plot.Options, error) {
	all := append([]string(nil), c.defs...)
	if c.vars != "" {
		words, err := shellquote.Split(c.vars)
		if err != nil {
			return plot.Options{}, fmt.Errorf("-vars: %w", err)
		}
		all = append(all, words...)
	}
	vs, err := vars.Parse(all)
	if err != nil {
		return plot.Options{}, err
	}
	opts := plot.Options{
		Vars:    vs,
		Width:   c.width,
		Height:  c.height,
		Palette: c.palette,
	}
	if c.theme != "" {
		s, err := plot.LoadTheme(c.theme)
		if err != nil {
			return plot.Options{}, err
		}
		opts.ThemeFiles = []theme.Sheet{s}
	}
	return opts, nil
}

// outputFormat returns the requested format, defaulting to the -o
// file's extension and then PNG.
func (c *command) outputFormat() render.Format {
	if c.set["format"] || c.formatSet {
		return c.format
	}
	if f, ok := render.FormatOf(c.out); ok {
		return f
	}
	return render.FormatPNG
}

// write writes the finished output.
func (c *command) write(b []byte) error {
	if c.open && c.out == "" {
		return c.openTemp(b)
	}
	if c.out == "" {
		_, err := c.stdout.Write(b)
		return err
	}
	if err := os.WriteFile(c.out, b, 0666); err != nil {
		return err
	}
	if c.open {
		return browser.OpenFile(c.out)
	}
	return nil
}

// openTemp writes b to a temporary file and opens it in a browser.
func (c *command) openTemp(b []byte) error {
	ext := "." + c.outputFormat().String()
	if c.table || c.scene {
		ext = ".txt"
	}
	f, err := os.CreateTemp("", "gramgraph-*"+ext)
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return browser.OpenFile(f.Name())
}
