package qiita

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"seqflow/internal/artifacts"
	"seqflow/internal/config"
	"seqflow/internal/services"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Option configures the client.
type Option func(*Client)

// WithHTTPDoer injects a custom HTTP backend (primarily for tests).
func WithHTTPDoer(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.doer = doer
		}
	}
}

// Client talks to the orchestrating Qiita server.
type Client struct {
	baseURL      string
	clientID     string
	clientSecret string
	doer         HTTPDoer
}

// New constructs a Qiita client from configuration.
func New(cfg config.Qiita, opts ...Option) *Client {
	timeout := time.Duration(cfg.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		doer:         &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// GetArtifact fetches the file listing and prep reference for an artifact.
func (c *Client) GetArtifact(ctx context.Context, artifactID string) (*Artifact, error) {
	var artifact Artifact
	path := fmt.Sprintf("/qiita_db/artifacts/%s/", artifactID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}

// GetPrepTemplate fetches prep-template metadata, including the mapping file path.
func (c *Client) GetPrepTemplate(ctx context.Context, prepID string) (*PrepTemplate, error) {
	var prep PrepTemplate
	path := fmt.Sprintf("/qiita_db/prep_template/%s/", prepID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &prep); err != nil {
		return nil, err
	}
	return &prep, nil
}

// UpdateJobStep reports a human-readable progress message for a running job.
func (c *Client) UpdateJobStep(ctx context.Context, jobID, message string) error {
	path := fmt.Sprintf("/qiita_db/jobs/%s/step/", jobID)
	return c.doJSON(ctx, http.MethodPost, path, stepPayload{Step: message}, nil)
}

// CompleteJob reports the job's tri-state result and transfers artifact
// ownership to the server.
func (c *Client) CompleteJob(ctx context.Context, jobID string, success bool, descriptors []artifacts.Descriptor, message string) error {
	payload := completePayload{Success: success}
	if !success {
		payload.Error = message
	}
	for _, desc := range descriptors {
		ap := artifactPayload{Name: desc.Label, ArtifactType: desc.Kind}
		for _, file := range desc.Files {
			ap.Filepaths = append(ap.Filepaths, [2]string{file.Path, file.Type})
		}
		payload.Artifacts = append(payload.Artifacts, ap)
	}
	path := fmt.Sprintf("/qiita_db/jobs/%s/complete/", jobID)
	return c.doJSON(ctx, http.MethodPost, path, payload, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "qiita", "encode request", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "qiita", "build request", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.clientID != "" {
		req.SetBasicAuth(c.clientID, c.clientSecret)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "qiita", "request", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return services.Wrap(services.ErrExternalTool, "qiita", "request",
			fmt.Sprintf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet))), nil)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return services.Wrap(services.ErrExternalTool, "qiita", "decode response", path, err)
	}
	return nil
}
