// Package custody talks to the external asset custody service. The auction
// core never holds assets itself; it only asks the custodian to move them.
package custody

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/anans7/auction-NFT/internal/domain"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ApprovedFor reports whether the owner has pre-authorized this system to pull
// the asset into escrow.
func (c *Client) ApprovedFor(ctx context.Context, asset domain.AssetRef, owner string) (bool, error) {
	url := fmt.Sprintf("%s/assets/%s/%s/approval?owner=%s", c.BaseURL, asset.Contract, asset.TokenID, owner)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return false, fmt.Errorf("custody returned %d", resp.StatusCode)
	}
	var out struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.Approved, nil
}

// TransferIn moves the asset from the seller into escrow custody.
func (c *Client) TransferIn(ctx context.Context, asset domain.AssetRef, from, to string) error {
	return c.transfer(ctx, "/transfers/in", asset, from, to)
}

// TransferOut releases the asset from escrow custody.
func (c *Client) TransferOut(ctx context.Context, asset domain.AssetRef, from, to string) error {
	return c.transfer(ctx, "/transfers/out", asset, from, to)
}

func (c *Client) transfer(ctx context.Context, path string, asset domain.AssetRef, from, to string) error {
	body := map[string]string{
		"contract": asset.Contract,
		"token_id": asset.TokenID,
		"from":     from,
		"to":       to,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("custody returned %d", resp.StatusCode)
	}
	return nil
}
