// Package commandcenter proxies the dashboard's GitHub and Vercel panels so
// tokens never leave the hub for a third-party origin.
package commandcenter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/seezee/launcherhub/internal/models"
)

// Upstream base URLs.
const (
	GitHubAPI = "https://api.github.com"
	VercelAPI = "https://api.vercel.com"
)

const maxUpstreamBody = 8 << 20

// GitHub lists repositories through the GitHub REST API.
type GitHub struct {
	BaseURL string
	Client  *http.Client
}

// NewGitHub creates a GitHub proxy. A nil client uses a 15 second timeout.
func NewGitHub(client *http.Client) *GitHub {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &GitHub{BaseURL: GitHubAPI, Client: client}
}

// Repos returns the token owner's repositories, or the public repositories of
// owner when no token is given. When owner is set the list is filtered to
// repositories whose owner login matches it case-insensitively.
func (g *GitHub) Repos(ctx context.Context, token, owner string) ([]json.RawMessage, *models.AppError) {
	var target string
	switch {
	case token != "":
		target = g.BaseURL + "/user/repos?per_page=50&sort=pushed"
	case owner != "":
		target = g.BaseURL + "/users/" + url.PathEscape(owner) + "/repos?per_page=50&sort=pushed"
	default:
		return nil, models.ErrBadRequest("GitHub owner or token required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, models.ErrInternal("Failed to fetch GitHub repositories")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var repos []json.RawMessage
	if appErr := fetch(g.Client, req, "GitHub", &repos); appErr != nil {
		if appErr.Status == http.StatusInternalServerError {
			appErr.Message = "Failed to fetch GitHub repositories"
		}
		return nil, appErr
	}

	filtered := make([]json.RawMessage, 0, len(repos))
	for _, raw := range repos {
		if owner != "" && !strings.EqualFold(ownerLogin(raw), owner) {
			continue
		}
		filtered = append(filtered, raw)
	}
	return filtered, nil
}

func ownerLogin(raw json.RawMessage) string {
	var repo struct {
		Owner *struct {
			Login string `json:"login"`
		} `json:"owner"`
	}
	if err := json.Unmarshal(raw, &repo); err != nil || repo.Owner == nil {
		return ""
	}
	return repo.Owner.Login
}

// fetch performs req and decodes the body into out. Non-2xx answers become a
// 502 naming the upstream; transport or decode failures become a 500.
// A body that is not of out's shape decodes to its zero value.
func fetch(client *http.Client, req *http.Request, upstream string, out any) *models.AppError {
	resp, err := client.Do(req)
	if err != nil {
		slog.Warn("commandcenter: request failed", "upstream", upstream, "err", err)
		return models.ErrInternal(upstream + " request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.ErrUpstream(fmt.Sprintf("%s API error: %d", upstream, resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return models.ErrInternal(upstream + " request failed")
	}
	if err := json.Unmarshal(data, out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil
		}
		slog.Warn("commandcenter: bad upstream body", "upstream", upstream, "err", err)
		return models.ErrInternal(upstream + " request failed")
	}
	return nil
}
