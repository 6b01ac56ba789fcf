package pipeline

import (
	"context"

	"github.com/matzehuels/graphologue/pkg/errors"
	"github.com/matzehuels/graphologue/pkg/graph"
)

// Render serializes doc in each requested format.
func Render(ctx context.Context, doc graph.Document, formats []string) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = graph.Marshal(doc)
		case FormatDOT:
			data = []byte(graph.ToDOT(doc))
		case FormatSVG:
			data, err = graph.RenderSVG(ctx, graph.ToDOT(doc))
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
