// Package provider implements the text-generation oracle on the OpenAI
// Responses API with strict structured output.
package provider

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/theimaginaryfoundation/review-radar/insights"
)

// OpenAI is an insights.Generator backed by one OpenAI model.
type OpenAI struct {
	client *openai.Client
	model  string
}

// New builds an OpenAI provider from an API key and model name.
func New(apiKey, model string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{client: &client, model: model}
}

// Generate issues one structured-output request and returns the raw response
// text. The caller owns JSON validation and fallback handling.
func (p *OpenAI) Generate(ctx context.Context, req insights.GenerateRequest) ([]byte, error) {
	if p == nil || p.client == nil {
		return nil, errors.New("provider: client is nil")
	}
	if p.model == "" {
		return nil, errors.New("provider: model is empty")
	}
	if strings.TrimSpace(req.Input) == "" {
		return nil, errors.New("provider: empty input")
	}

	maxTokens := req.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	params := responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(maxTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(req.Input, responses.EasyInputMessageRoleUser),
			},
		},
	}
	if req.Instructions != "" {
		params.Instructions = openai.String(req.Instructions)
	}
	if req.Schema != nil {
		params.Text = responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   req.SchemaName,
					Schema: req.Schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		}
	}

	resp, err := callWithRetry(ctx, p.client, params)
	if err != nil {
		return nil, err
	}
	return []byte(resp.OutputText()), nil
}

func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{65 * time.Second, 100 * time.Second, 135 * time.Second}
	serverErrorWaitTimes := []time.Duration{5 * time.Second, 30 * time.Second, 60 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			if isRateLimitError(err) {
				if attempt < maxRetries-1 {
					if werr := wait(ctx, rateLimitWaitTimes[attempt]); werr != nil {
						return nil, werr
					}
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 {
					if werr := wait(ctx, serverErrorWaitTimes[attempt]); werr != nil {
						return nil, werr
					}
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, errors.New("provider: retries exhausted")
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
