package main

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/htmlcut"
	"github.com/fwojciec/htmlcut/douceur"
	"github.com/fwojciec/htmlcut/goquery"
	"github.com/fwojciec/htmlcut/htmltomarkdown"
	cutslog "github.com/fwojciec/htmlcut/slog"
	"github.com/fwojciec/htmlcut/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Reader htmlcut.DocumentReader
	Writer htmlcut.DocumentWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract the dialog from one HTML file"`
	Batch   BatchCmd   `cmd:"" help:"Extract the dialog from many HTML files"`
}

// ExtractFlags are the options shared by extract and batch.
// Zero values mean "not given" so a config file can supply them.
type ExtractFlags struct {
	Strategy     string   `short:"s" help:"Extraction strategy: rebuild or prune (default rebuild)"`
	Class        string   `short:"c" help:"Class token of the target element (default focusLock__49fc1)"`
	Tag          string   `help:"Element name of the target (default div)"`
	Dialog       bool     `xor:"dialog" help:"Require role=dialog and aria-modal=true on the target"`
	NoDialog     bool     `xor:"dialog" help:"Match the target by class only"`
	Attr         []string `name:"attr" help:"Additional required attribute as key=value (repeatable)"`
	Selector     string   `help:"CSS selector for the target; overrides class matching"`
	Preserve     []string `help:"Resource tag to carry into the output (repeatable, default style and script)"`
	WrapperClass string   `help:"Class of the wrapper div built by the rebuild strategy"`
	RelevantCSS  bool     `name:"relevant-css" help:"Drop CSS rules that cannot apply to the extracted dialog"`
	DropScript   []string `name:"drop-script" help:"Drop preserved scripts whose src or text contains this substring (repeatable)"`
	Markdown     bool     `short:"m" help:"Write Markdown of the dialog instead of HTML"`
	Config       string   `type:"path" env:"HTMLCUT_CONFIG" help:"YAML configuration file"`
	Verbose      bool     `short:"v" help:"Log extraction diagnostics to stderr"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Input  string `arg:"" help:"Input HTML file"`
	Output string `arg:"" optional:"" help:"Output file, or - for stdout (default INPUT.extracted.html)"`

	ExtractFlags `embed:""`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Inputs      []string `arg:"" help:"Input HTML files"`
	Concurrency int      `short:"j" default:"4" help:"Files processed at once"`
	Suffix      string   `default:"extracted" help:"Inserted before the extension of each output file"`
	OutDir      string   `type:"path" help:"Directory for output files (default next to each input)"`

	ExtractFlags `embed:""`
}

// file converts the flags that were given into a config overlay.
func (f *ExtractFlags) file() (*yaml.File, error) {
	file := &yaml.File{}
	if f.Strategy != "" {
		file.Strategy = &f.Strategy
	}
	if f.Class != "" {
		file.TargetClass = &f.Class
	}
	if f.Tag != "" {
		file.TargetTag = &f.Tag
	}
	if f.Dialog || f.NoDialog {
		require := f.Dialog
		file.RequireDialogAttributes = &require
	}
	for _, kv := range f.Attr {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, htmlcut.Errorf(htmlcut.EINVALID, "attribute %q must be key=value", kv)
		}
		file.Attributes = append(file.Attributes, htmlcut.Attribute{Key: key, Val: val})
	}
	if f.Selector != "" {
		file.Selector = &f.Selector
	}
	if len(f.Preserve) > 0 {
		file.PreservedTags = f.Preserve
	}
	if f.WrapperClass != "" {
		file.WrapperClass = &f.WrapperClass
	}
	if f.RelevantCSS {
		file.RelevantCSS = &f.RelevantCSS
	}
	if len(f.DropScript) > 0 {
		file.DropScripts = f.DropScript
	}
	return file, nil
}

// Options resolves the extraction options: built-in defaults for the chosen
// strategy, then the config file, then the flags that were given.
func (f *ExtractFlags) Options() (htmlcut.Options, error) {
	flags, err := f.file()
	if err != nil {
		return htmlcut.Options{}, err
	}

	var config *yaml.File
	if f.Config != "" {
		if config, err = yaml.ReadFile(f.Config); err != nil {
			return htmlcut.Options{}, err
		}
	}

	strategy := string(htmlcut.StrategyRebuild)
	if config != nil && config.Strategy != nil {
		strategy = *config.Strategy
	}
	if flags.Strategy != nil {
		strategy = *flags.Strategy
	}
	opts := htmlcut.DefaultOptions(htmlcut.Strategy(strings.ToLower(strategy)))

	if config != nil {
		if opts, err = config.Apply(opts); err != nil {
			return htmlcut.Options{}, err
		}
	}
	return flags.Apply(opts)
}

// Logger returns the diagnostics logger. Verbose mode lowers the level to debug.
func (f *ExtractFlags) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if f.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Services builds the extractor and, in Markdown mode, the converter.
func (f *ExtractFlags) Services(logger *slog.Logger) (htmlcut.Extractor, htmlcut.Converter, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, nil, err
	}
	opts.OnEvent = cutslog.EventLogger(logger)

	ext, err := goquery.NewExtractor(opts, goquery.WithStyleFilter(douceur.NewStyleFilter()))
	if err != nil {
		return nil, nil, err
	}

	var conv htmlcut.Converter
	if f.Markdown {
		conv = cutslog.NewLoggingConverter(htmltomarkdown.NewConverter(), logger)
	}
	return cutslog.NewLoggingExtractor(ext, logger), conv, nil
}

// outputExt is the extension of derived output paths.
func (f *ExtractFlags) outputExt() string {
	if f.Markdown {
		return ".md"
	}
	return ".html"
}
