// Package openai implements the scoring client against any
// OpenAI-compatible chat-completions endpoint.
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/chidung091/hr-scanning-sub001/internal/scoring"
)

// Client calls a chat-completions endpoint and parses the structured reply.
type Client struct {
	http  *resty.Client
	model string
}

func New(apiKey, baseURL, model string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Authorization", "Bearer "+apiKey).
			SetHeader("Content-Type", "application/json"),
		model: model,
	}
}

func (c *Client) Score(ctx context.Context, input scoring.Input) (scoring.Result, error) {
	payload := map[string]any{
		"model":           c.model,
		"temperature":     0,
		"response_format": map[string]string{"type": "json_object"},
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": buildUserPrompt(input)},
		},
	}

	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	latency := time.Since(started).Milliseconds()
	if err != nil {
		return scoring.Result{}, err
	}
	if resp.IsError() {
		return scoring.Result{}, fmt.Errorf("scoring API returned %d: %s", resp.StatusCode(), resp.String())
	}

	body := resp.String()
	content := gjson.Get(body, "choices.0.message.content").String()
	if content == "" {
		return scoring.Result{}, fmt.Errorf("scoring API returned no content")
	}

	result := parseContent(content)
	result.Model = gjson.Get(body, "model").String()
	if result.Model == "" {
		result.Model = c.model
	}
	result.TokensUsed = int(gjson.Get(body, "usage.total_tokens").Int())
	result.LatencyMs = latency
	return result, nil
}

// parseContent reads the model's JSON reply tolerantly: missing or
// mistyped fields come back zero-valued rather than failing the call.
func parseContent(content string) scoring.Result {
	return scoring.Result{
		Score:          gjson.Get(content, "score").Float(),
		Strengths:      stringArray(gjson.Get(content, "strengths")),
		Weaknesses:     stringArray(gjson.Get(content, "weaknesses")),
		Explanation:    gjson.Get(content, "explanation").String(),
		Recommendation: gjson.Get(content, "recommendation").String(),
	}
}

func stringArray(value gjson.Result) []string {
	items := value.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := item.String(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
