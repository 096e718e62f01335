package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/finbook-dev/finbook/internal/model"
)

// Client is the HTTP RemoteStore implementation, talking to the blob
// store backend with a bearer session token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a remote client for an authenticated session.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Load fetches the user's document. A user who has never saved gets a
// fresh default document, not an error.
func (c *Client) Load(ctx context.Context) (model.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/state", nil)
	if err != nil {
		return model.Document{}, fmt.Errorf("building state request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Document{}, fmt.Errorf("loading document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return model.NewDocument(), nil
	}
	if resp.StatusCode != http.StatusOK {
		return model.Document{}, fmt.Errorf("loading document: unexpected status %s", resp.Status)
	}

	var doc model.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return model.Document{}, fmt.Errorf("decoding document: %w", err)
	}
	doc.Normalize()
	return doc, nil
}

// Save upserts the user's document, overwriting the stored one.
func (c *Client) Save(ctx context.Context, doc model.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/state", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building state request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("saving document: unexpected status %s", resp.Status)
	}
	return nil
}
