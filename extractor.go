package htmlcut

// Outcome distinguishes a performed extraction from a pass-through.
type Outcome string

// Extraction outcomes. Failures are reported as errors, never as an Outcome.
const (
	// OutcomeExtracted means the target was found and the output rebuilt.
	OutcomeExtracted Outcome = "extracted"

	// OutcomePassThrough means no target matched and the input is returned unchanged.
	OutcomePassThrough Outcome = "pass-through"
)

// Result holds the output of one extraction.
type Result struct {
	// HTML is the serialized output document. For a pass-through it is the
	// input text, byte for byte.
	HTML string

	Outcome Outcome

	// TargetHTML is the serialized target subtree. Empty on pass-through.
	TargetHTML string

	// Preserved counts resource nodes carried into the output.
	Preserved int

	// Skipped counts resource nodes whose copy failed.
	Skipped int

	// Dropped counts resource nodes removed by DropScripts.
	Dropped int

	// Candidates lists class attributes of elements that looked like
	// dialogs when no target matched.
	Candidates []string
}

// Extractor locates the target subtree and builds the minimal document.
type Extractor interface {
	// Extract processes raw HTML with the extractor's options.
	// A missing target is not an error: the result has OutcomePassThrough.
	// Returns EPARSE when the input cannot be parsed and ERECONSTRUCT when
	// the output document cannot be assembled.
	Extract(html string) (*Result, error)
}

// StyleFilter reduces a stylesheet to the rules relevant to a subtree.
type StyleFilter interface {
	// Filter returns css with rules dropped that cannot match any element
	// carrying one of the given class or id tokens. Tokens are prefixed
	// with "." for classes and "#" for ids.
	Filter(css string, tokens map[string]bool) (string, error)
}

// EventType identifies a diagnostic event.
type EventType string

// Diagnostic event types.
const (
	EventTargetFound     EventType = "target_found"
	EventTargetNotFound  EventType = "target_not_found"
	EventCandidate       EventType = "candidate"
	EventResourceCopied  EventType = "resource_copied"
	EventResourceSkipped EventType = "resource_skipped"
	EventResourceDropped EventType = "resource_dropped"
	EventStyleFiltered   EventType = "style_filtered"
)

// Event is an optional diagnostic emitted during extraction.
type Event struct {
	Type   EventType
	Tag    string
	Detail string
	Err    error
}

// EventFunc receives diagnostic events.
type EventFunc func(Event)
