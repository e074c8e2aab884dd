// Package remote implements the agents.Backend contract against an external
// reasoning service over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/averill/parley/internal/domain"
	"golang.org/x/oauth2"
)

// Client calls a remote evaluation service. It satisfies agents.Backend and
// stream.Pinger so the driver can probe it before streaming.
type Client struct {
	baseURL string
	http    *http.Client
}

// evaluateRequest is the wire shape of one evaluation call.
type evaluateRequest struct {
	Role  domain.Role          `json:"role"`
	Order domain.Order         `json:"order"`
	Round int                  `json:"round"`
	Prev  *domain.RoundSummary `json:"previousRound,omitempty"`
}

// New builds a client for the service at baseURL. When token is non-empty
// every request carries it as a bearer credential.
func New(baseURL, token string) *Client {
	hc := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), src)
		hc.Timeout = 30 * time.Second
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Name implements agents.Backend.
func (c *Client) Name() string { return "remote" }

// Ping probes the service health endpoint. A non-200 response is an error so
// the caller can fall back before any negotiation state exists.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("remote: build ping request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: ping %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("remote: ping %s: status %d", c.baseURL, resp.StatusCode)
	}
	return nil
}

// Evaluate implements agents.Backend over HTTP. The remote service receives
// the same inputs a local evaluator would and must return a full proposal.
func (c *Client) Evaluate(ctx context.Context, role domain.Role, order domain.Order, round int, prev *domain.RoundSummary) (domain.AgentProposal, error) {
	body, err := json.Marshal(evaluateRequest{Role: role, Order: order, Round: round, Prev: prev})
	if err != nil {
		return domain.AgentProposal{}, fmt.Errorf("remote: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/evaluate", bytes.NewReader(body))
	if err != nil {
		return domain.AgentProposal{}, fmt.Errorf("remote: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.AgentProposal{}, fmt.Errorf("remote: evaluate %s round %d: %w", role, round, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.AgentProposal{}, fmt.Errorf("remote: evaluate %s round %d: status %d: %s", role, round, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var proposal domain.AgentProposal
	if err := json.NewDecoder(resp.Body).Decode(&proposal); err != nil {
		return domain.AgentProposal{}, fmt.Errorf("remote: decode proposal: %w", err)
	}
	if proposal.Role == "" {
		proposal.Role = role
	}
	if proposal.Round == 0 {
		proposal.Round = round
	}
	return proposal, nil
}
