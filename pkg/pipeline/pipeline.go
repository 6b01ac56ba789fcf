// Package pipeline runs the mind-map pipeline shared by the CLI and the API.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Relations: ask the completion service to restate a model response as
//     relation triplets and extract them (see package relation)
//  2. Layout: build the graph and compute node positions with a layout
//     engine (see packages graph and layout)
//  3. Render: serialize the laid-out document as JSON, DOT or SVG
//
// Each stage can run on its own; [Runner.Execute] chains them. Relations
// and layouts are cached through the Runner's cache.
//
// The Runner also exposes the two assistance calls of the application:
// [Runner.Papers] finds supporting papers for keywords and [Runner.Explain]
// asks the model to elaborate on a text.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	runner.Completer = llmClient
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Response: answer,
//	    Formats:  []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/graph"
	"github.com/matzehuels/graphologue/pkg/layout"
	"github.com/matzehuels/graphologue/pkg/relation"
)

// DefaultEngine is the layout engine used when none is named.
const DefaultEngine = layout.EngineLayered

// Output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatJSON, FormatDOT, FormatSVG}

// ValidateFormat checks that a format is supported. Formats are
// case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks that an engine name is known.
func ValidateEngine(name string) error {
	if _, err := layout.ByName(name); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidEngine, err, "invalid engine")
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures a pipeline run. It is the body of API graph requests.
type Options struct {
	// Response is the model answer to turn into a mind map. Ignored when
	// Triplets is set.
	Response string `json:"response,omitempty"`

	// Triplets skips the relations stage.
	Triplets []relation.Triplet `json:"triplets,omitempty"`

	Engine  string   `json:"engine,omitempty"`
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses cached relations and layouts.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives the run's progress and errors. Nil means the
	// runner's logger.
	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults applies defaults and checks the engine and formats.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// =============================================================================
// Result
// =============================================================================

// Result holds the outputs of a pipeline run.
type Result struct {
	Triplets  []relation.Triplet
	Document  graph.Document
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats holds timing and size information.
type Stats struct {
	TripletCount  int
	NodeCount     int
	EdgeCount     int
	RelationsTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo records which stages were served from the cache.
type CacheInfo struct {
	RelationsHit bool
	LayoutHit    bool
}

func (s Stats) String() string {
	return fmt.Sprintf("%d triplets, %d nodes, %d edges", s.TripletCount, s.NodeCount, s.EdgeCount)
}
