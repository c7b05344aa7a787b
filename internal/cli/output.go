package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdtouch/pkg/config"
)

const yamlIndent = 2

// printStructured writes data as JSON or YAML. A non-empty jq query filters
// the data first; each query result is written as its own document.
func printStructured(ctx context.Context, w io.Writer, format config.OutputFormat, data any, query string) error {
	if query == "" {
		return encode(w, format, data)
	}

	results, err := runQuery(ctx, data, query)
	if err != nil {
		return err
	}
	for _, result := range results {
		if err := encode(w, format, result); err != nil {
			return err
		}
	}
	return nil
}

func encode(w io.Writer, format config.OutputFormat, data any) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)
		defer func() { _ = enc.Close() }()
		return enc.Encode(data)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// runQuery evaluates a jq expression against data. data is round-tripped
// through JSON so gojq sees plain maps and slices.
func runQuery(ctx context.Context, data any, query string) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --query: %w", ErrUsage, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid --query: %w", ErrUsage, err)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode query input: %w", err)
	}
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("decode query input: %w", err)
	}

	var results []any
	iter := code.RunWithContext(ctx, input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}
