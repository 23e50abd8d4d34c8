package htmlcut_test

import (
	"testing"

	"github.com/fwojciec/htmlcut"
	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	t.Run("rebuild matches by class only", func(t *testing.T) {
		t.Parallel()

		opts := htmlcut.DefaultOptions(htmlcut.StrategyRebuild)

		assert.Equal(t, htmlcut.StrategyRebuild, opts.Strategy)
		assert.Equal(t, htmlcut.DefaultTargetClass, opts.Target.Class)
		assert.Empty(t, opts.Target.Attributes)
		assert.Equal(t, []string{"style", "script"}, opts.PreservedTags)
		assert.NoError(t, opts.Validate())
	})

	t.Run("prune requires dialog attributes", func(t *testing.T) {
		t.Parallel()

		opts := htmlcut.DefaultOptions(htmlcut.StrategyPrune)

		assert.Equal(t, []htmlcut.Attribute{
			{Key: "role", Val: "dialog"},
			{Key: "aria-modal", Val: "true"},
		}, opts.Target.Attributes)
		assert.NoError(t, opts.Validate())
	})
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(o *htmlcut.Options)
	}{
		{
			name:   "unknown strategy",
			modify: func(o *htmlcut.Options) { o.Strategy = "shred" },
		},
		{
			name:   "empty class without query",
			modify: func(o *htmlcut.Options) { o.Target.Class = " " },
		},
		{
			name:   "class with whitespace",
			modify: func(o *htmlcut.Options) { o.Target.Class = "a b" },
		},
		{
			name:   "empty attribute key",
			modify: func(o *htmlcut.Options) { o.Target.Attributes = []htmlcut.Attribute{{Val: "x"}} },
		},
		{
			name:   "empty preserved tag",
			modify: func(o *htmlcut.Options) { o.PreservedTags = []string{"style", ""} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := htmlcut.DefaultOptions(htmlcut.StrategyRebuild)
			tt.modify(&opts)

			err := opts.Validate()

			assert.Equal(t, htmlcut.EINVALID, htmlcut.ErrorCode(err))
		})
	}

	t.Run("query replaces class", func(t *testing.T) {
		t.Parallel()

		opts := htmlcut.DefaultOptions(htmlcut.StrategyRebuild)
		opts.Target.Class = ""
		opts.Query = "div[role=dialog]"

		assert.NoError(t, opts.Validate())
	})
}

func TestOptions_Preserves(t *testing.T) {
	t.Parallel()

	opts := htmlcut.Options{PreservedTags: []string{"style", "LINK"}}

	assert.True(t, opts.Preserves("style"))
	assert.True(t, opts.Preserves("link"))
	assert.False(t, opts.Preserves("script"))
}

func TestOptions_Emit(t *testing.T) {
	t.Parallel()

	t.Run("nil callback is ignored", func(t *testing.T) {
		t.Parallel()

		opts := htmlcut.Options{}

		assert.NotPanics(t, func() {
			opts.Emit(htmlcut.Event{Type: htmlcut.EventTargetFound})
		})
	})

	t.Run("forwards to callback", func(t *testing.T) {
		t.Parallel()

		var got []htmlcut.Event
		opts := htmlcut.Options{OnEvent: func(ev htmlcut.Event) { got = append(got, ev) }}

		opts.Emit(htmlcut.Event{Type: htmlcut.EventCandidate, Detail: "modal"})

		assert.Equal(t, []htmlcut.Event{{Type: htmlcut.EventCandidate, Detail: "modal"}}, got)
	})
}

func TestSelector_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sel  htmlcut.Selector
		want string
	}{
		{
			name: "class only",
			sel:  htmlcut.DialogSelector("focusLock__49fc1", false),
			want: "div.focusLock__49fc1",
		},
		{
			name: "dialog attributes",
			sel:  htmlcut.DialogSelector("focusLock__49fc1", true),
			want: `div.focusLock__49fc1[role="dialog"][aria-modal="true"]`,
		},
		{
			name: "tag defaults to div",
			sel:  htmlcut.Selector{Class: "x"},
			want: "div.x",
		},
		{
			name: "custom tag is lowercased",
			sel:  htmlcut.Selector{Tag: "SECTION", Class: "x"},
			want: "section.x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.sel.String())
		})
	}
}
