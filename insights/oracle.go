package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// GenerateRequest describes one call to the text-generation oracle. The
// response is expected to conform to Schema (a JSON schema object), but
// callers must not rely on that: any malformed or degenerate response is
// treated the same as a transport error.
type GenerateRequest struct {
	// Instructions is the system-level prompt for the call.
	Instructions string

	// Input is the user-level prompt text.
	Input string

	// SchemaName names the response shape for providers that support
	// structured output.
	SchemaName string

	// Schema is the JSON schema the response should conform to.
	Schema map[string]any

	// MaxOutputTokens bounds the response size. Zero means provider default.
	MaxOutputTokens int64
}

// Generator is the capability interface for the external text-generation
// oracle. Implementations return the raw response text (expected JSON) or an
// error. Every call site must supply a fallback for the error path; oracle
// failures are never fatal to the pipeline.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) ([]byte, error)
}

// decodeModelJSON unmarshals JSON from a model response, with a small amount
// of robustness for cases where the model wraps the JSON in extra text or
// returns leading/trailing whitespace.
func decodeModelJSON(output []byte, v any) error {
	s := strings.TrimSpace(string(output))
	if s == "" {
		return io.ErrUnexpectedEOF
	}

	// Fast path: valid JSON as-is.
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}

	// Fallback: attempt to extract the first top-level JSON object.
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object found in model output (len=%d)", len(s))
	}

	sub := s[start : end+1]
	if err := json.Unmarshal([]byte(sub), v); err != nil {
		return fmt.Errorf("failed to unmarshal extracted JSON (len=%d): %w", len(sub), err)
	}
	return nil
}
