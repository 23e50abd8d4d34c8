package htmlcut

import (
	"strconv"
	"strings"
)

// DefaultTargetClass is the class token of the dialog container the tool was
// written for.
const DefaultTargetClass = "focusLock__49fc1"

// Strategy selects how the output document is produced.
type Strategy string

// Supported extraction strategies.
const (
	// StrategyRebuild copies the target and resources into a fresh document.
	StrategyRebuild Strategy = "rebuild"

	// StrategyPrune removes everything off the path from root to target
	// in the parsed document itself.
	StrategyPrune Strategy = "prune"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyRebuild || s == StrategyPrune
}

// Attribute is a required attribute key/value pair.
type Attribute struct {
	Key string `yaml:"key"`
	Val string `yaml:"value"`
}

// Selector is a compound match rule: tag name, class membership and exact
// attribute values.
type Selector struct {
	// Tag is the element name. Empty means "div".
	Tag string

	// Class must be one of the whitespace-separated tokens of the class attribute.
	Class string

	// Attributes must all be present with exactly these values.
	Attributes []Attribute
}

// DialogSelector returns the selector for a dialog container with the given
// class. When requireDialog is set, role="dialog" and aria-modal="true" are
// required as well.
func DialogSelector(class string, requireDialog bool) Selector {
	sel := Selector{Tag: "div", Class: class}
	if requireDialog {
		sel.Attributes = []Attribute{
			{Key: "role", Val: "dialog"},
			{Key: "aria-modal", Val: "true"},
		}
	}
	return sel
}

// TagName returns the selector's tag, defaulting to "div".
func (s Selector) TagName() string {
	if s.Tag == "" {
		return "div"
	}
	return strings.ToLower(s.Tag)
}

// String renders the selector in CSS notation for logs and messages.
func (s Selector) String() string {
	var b strings.Builder
	b.WriteString(s.TagName())
	if s.Class != "" {
		b.WriteString(".")
		b.WriteString(s.Class)
	}
	for _, a := range s.Attributes {
		b.WriteString("[")
		b.WriteString(a.Key)
		b.WriteString("=")
		b.WriteString(strconv.Quote(a.Val))
		b.WriteString("]")
	}
	return b.String()
}

// Options configures a single extraction.
type Options struct {
	Strategy Strategy

	// Target identifies the node to extract. Ignored when Query is set.
	Target Selector

	// Query is an optional CSS selector that replaces Target.
	Query string

	// PreservedTags lists the resource elements carried into the output.
	PreservedTags []string

	// WrapperClass is set on the container div built by the rebuild strategy.
	WrapperClass string

	// RelevantCSS filters preserved style text down to rules that can apply
	// to the extracted subtree. Requires a StyleFilter.
	RelevantCSS bool

	// DropScripts drops preserved scripts whose src or text contains any of
	// these substrings.
	DropScripts []string

	// OnEvent receives diagnostic events. May be nil.
	OnEvent EventFunc
}

// DefaultOptions returns the options the given strategy was designed with.
// Prune requires the dialog attributes; rebuild matches by class only.
func DefaultOptions(strategy Strategy) Options {
	return Options{
		Strategy:      strategy,
		Target:        DialogSelector(DefaultTargetClass, strategy == StrategyPrune),
		PreservedTags: []string{"style", "script"},
	}
}

// Validate returns an error if the options cannot drive an extraction.
func (o *Options) Validate() error {
	if !o.Strategy.Valid() {
		return Errorf(EINVALID, "unknown strategy %q", o.Strategy)
	}
	if o.Query == "" && strings.TrimSpace(o.Target.Class) == "" {
		return Errorf(EINVALID, "target class or selector required")
	}
	if strings.ContainsAny(o.Target.Class, " \t\n\f\r") {
		return Errorf(EINVALID, "target class %q must be a single token", o.Target.Class)
	}
	for _, a := range o.Target.Attributes {
		if a.Key == "" {
			return Errorf(EINVALID, "attribute key required")
		}
	}
	for _, tag := range o.PreservedTags {
		if strings.TrimSpace(tag) == "" {
			return Errorf(EINVALID, "preserved tag name required")
		}
	}
	return nil
}

// Preserves reports whether elements named tag are preserved resources.
func (o *Options) Preserves(tag string) bool {
	for _, t := range o.PreservedTags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Emit sends ev to OnEvent if one is configured.
func (o *Options) Emit(ev Event) {
	if o.OnEvent != nil {
		o.OnEvent(ev)
	}
}
