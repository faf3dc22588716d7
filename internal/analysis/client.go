// Optional natural-language summary of recent metrics records
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"meshjam-sim/internal/attack"
	"meshjam-sim/internal/metrics"
)

// Sentinels returned instead of errors: the analysis surface never raises
// past its boundary and never aborts the simulation.
const (
	SentinelUnavailable = "analysis unavailable: no API key configured"
	sentinelFailed      = "analysis failed"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel    = "gpt-4o-mini"

	// MaxSample bounds how many recent records are sent per request.
	MaxSample = 100
)

// Client calls an OpenAI-compatible chat endpoint to describe recent
// simulation metrics. The zero-credential case is handled with a sentinel,
// not an error.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
}

// NewFromEnv builds a client from ANALYSIS_API_KEY, ANALYSIS_ENDPOINT, and
// ANALYSIS_MODEL. A missing key yields a client whose Describe always
// returns the unavailable sentinel.
func NewFromEnv() *Client {
	endpoint := os.Getenv("ANALYSIS_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	model := os.Getenv("ANALYSIS_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   os.Getenv("ANALYSIS_API_KEY"),
		model:    model,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Describe sends at most MaxSample of the given records plus the active
// attack kind and returns free-text analysis, or a sentinel on missing
// credentials or transport failure.
func (c *Client) Describe(ctx context.Context, records []metrics.Record, kind attack.Kind) string {
	if c.apiKey == "" {
		return SentinelUnavailable
	}
	if len(records) > MaxSample {
		records = records[len(records)-MaxSample:]
	}

	sample, err := json.Marshal(records)
	if err != nil {
		return fmt.Sprintf("%s: %v", sentinelFailed, err)
	}
	prompt := fmt.Sprintf(
		"These are performance records from a mobile sensor network under a %q jamming attack. "+
			"Fields: packet delivery ratio, loss rate, throughput (pkts/s), latency (ms), cumulative energy, "+
			"average link quality, jamming power. Describe how the attack affects the network.\n\n%s",
		kind, sample)

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return fmt.Sprintf("%s: %v", sentinelFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Sprintf("%s: %v", sentinelFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Sprintf("%s: %v", sentinelFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("%s: status %d", sentinelFailed, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Sprintf("%s: %v", sentinelFailed, err)
	}
	if len(parsed.Choices) == 0 {
		return fmt.Sprintf("%s: empty response", sentinelFailed)
	}
	return parsed.Choices[0].Message.Content
}
