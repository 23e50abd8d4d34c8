// Package yaml loads extraction options from YAML configuration files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fwojciec/htmlcut"
	yaml "gopkg.in/yaml.v3"
)

// File is the configuration file schema. Pointer and nil-slice fields are
// left unset when absent so they do not override the base options.
type File struct {
	Strategy                *string             `yaml:"strategy"`
	TargetTag               *string             `yaml:"target_tag"`
	TargetClass             *string             `yaml:"target_class"`
	RequireDialogAttributes *bool               `yaml:"require_dialog_attributes"`
	Attributes              []htmlcut.Attribute `yaml:"attributes"`
	Selector                *string             `yaml:"selector"`
	PreservedTags           []string            `yaml:"preserved_tags"`
	WrapperClass            *string             `yaml:"wrapper_class"`
	RelevantCSS             *bool               `yaml:"relevant_css"`
	DropScripts             []string            `yaml:"drop_scripts"`
}

// Parse decodes a configuration document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, htmlcut.Errorf(htmlcut.EINVALID, "parse config: %v", err)
	}
	return &f, nil
}

// ReadFile reads and parses the configuration file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, htmlcut.Errorf(htmlcut.ENOTFOUND, "config file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadOptions reads the file at path and overlays it on base.
func LoadOptions(path string, base htmlcut.Options) (htmlcut.Options, error) {
	f, err := ReadFile(path)
	if err != nil {
		return base, err
	}
	return f.Apply(base)
}

// Apply returns base with every field set in f overridden.
//
// Setting target_class changes only the class of the target selector, and
// require_dialog_attributes only adds or removes the role/aria-modal pair.
// Attributes listed under "attributes" are appended to the selector.
func (f *File) Apply(base htmlcut.Options) (htmlcut.Options, error) {
	opts := base

	if f.Strategy != nil {
		s := htmlcut.Strategy(strings.ToLower(strings.TrimSpace(*f.Strategy)))
		if !s.Valid() {
			return base, htmlcut.Errorf(htmlcut.EINVALID, "unknown strategy %q", *f.Strategy)
		}
		opts.Strategy = s
	}

	if f.TargetClass != nil {
		opts.Target.Class = *f.TargetClass
	}
	if f.RequireDialogAttributes != nil {
		opts.Target.Attributes = dialogAttributes(opts.Target.Attributes, *f.RequireDialogAttributes)
	}
	if f.TargetTag != nil {
		opts.Target.Tag = *f.TargetTag
	}
	if len(f.Attributes) > 0 {
		attrs := make([]htmlcut.Attribute, 0, len(opts.Target.Attributes)+len(f.Attributes))
		attrs = append(attrs, opts.Target.Attributes...)
		opts.Target.Attributes = append(attrs, f.Attributes...)
	}

	if f.Selector != nil {
		opts.Query = *f.Selector
	}
	if f.PreservedTags != nil {
		opts.PreservedTags = append([]string(nil), f.PreservedTags...)
	}
	if f.WrapperClass != nil {
		opts.WrapperClass = *f.WrapperClass
	}
	if f.RelevantCSS != nil {
		opts.RelevantCSS = *f.RelevantCSS
	}
	if f.DropScripts != nil {
		opts.DropScripts = append([]string(nil), f.DropScripts...)
	}

	return opts, nil
}

// dialogAttributes returns attrs without role and aria-modal, followed by
// the dialog pair when require is set.
func dialogAttributes(attrs []htmlcut.Attribute, require bool) []htmlcut.Attribute {
	var out []htmlcut.Attribute
	for _, a := range attrs {
		if a.Key == "role" || a.Key == "aria-modal" {
			continue
		}
		out = append(out, a)
	}
	if require {
		out = append(out, htmlcut.DialogSelector("", true).Attributes...)
	}
	return out
}
