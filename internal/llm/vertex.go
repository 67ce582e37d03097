package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// VertexAnthropicClient implements Client against the Vertex AI rawPredict
// endpoint for Anthropic models, authenticated with a service account.
type VertexAnthropicClient struct {
	MaxTokens int
}

func NewVertexAnthropicClient() *VertexAnthropicClient {
	return &VertexAnthropicClient{MaxTokens: 1024}
}

func (c *VertexAnthropicClient) Chat(ctx context.Context, systemMessage string, messages []Message) (string, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT_ID")
	location := os.Getenv("GOOGLE_CLOUD_VERTEXAI_LOCATION") // e.g. "us-east5"
	modelID := os.Getenv("VERTEX_ANTHROPIC_MODEL_ID")
	if projectID == "" || location == "" || modelID == "" {
		return "", fmt.Errorf("GOOGLE_CLOUD_PROJECT_ID, GOOGLE_CLOUD_VERTEXAI_LOCATION and VERTEX_ANTHROPIC_MODEL_ID must be set")
	}

	// Authed HTTP client from base64-encoded SA JSON
	enc := os.Getenv("GCP_SERVICE_ACCOUNT_CREDENTIALS")
	if enc == "" {
		return "", fmt.Errorf("GCP_SERVICE_ACCOUNT_CREDENTIALS not set")
	}
	saJSON, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", fmt.Errorf("decode sa json: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, saJSON, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("CredentialsFromJSON: %w", err)
	}
	httpClient := oauth2.NewClient(ctx, creds.TokenSource)

	url := fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1/projects/%s/locations/%s/publishers/anthropic/models/%s:rawPredict",
		location, projectID, location, modelID,
	)

	msgs := make([]map[string]interface{}, len(messages))
	for i, m := range messages {
		role := string(m.Role)
		if role != "assistant" {
			role = "user"
		}
		msgs[i] = map[string]interface{}{
			"role":    role,
			"content": m.Content,
		}
	}

	body := map[string]interface{}{
		"anthropic_version": "vertex-2023-10-16",
		"messages":          msgs,
		"max_tokens":        c.MaxTokens,
		"stream":            false,
	}
	if systemMessage != "" {
		body["system"] = systemMessage
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(resp.Body)
		return "", fmt.Errorf("vertex error %d: %s", resp.StatusCode, buf.String())
	}

	var raw struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	parts := make([]string, 0, len(raw.Content))
	for _, block := range raw.Content {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
