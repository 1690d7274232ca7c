package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// StarFetcher looks up a repository's star count from the GitHub API. The
// lookup is best-effort sugar for the submission form: any failure means
// "unknown", never a user-facing error.
type StarFetcher struct {
	client  *http.Client
	baseURL string
}

// NewStarFetcher returns a fetcher against the public GitHub API.
func NewStarFetcher() StarFetcher {
	return StarFetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://api.github.com",
	}
}

// NewStarFetcherWithBaseURL is used by tests to point at a stub server.
func NewStarFetcherWithBaseURL(client *http.Client, baseURL string) StarFetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return StarFetcher{client: client, baseURL: baseURL}
}

type repoResponse struct {
	StargazersCount int64 `json:"stargazers_count"`
}

// FetchStarCount resolves the star count for a github.com project URL. It
// returns nil when the URL is not a GitHub repository or the API call fails
// for any reason.
func (f StarFetcher) FetchStarCount(ctx context.Context, projectURL string) *int64 {
	owner, repo, ok := parseGitHubRepo(projectURL)
	if !ok {
		return nil
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s", f.baseURL, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Debug().Err(err).Str("url", projectURL).Msg("Failed to build GitHub request")
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := f.client.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("repo", owner+"/"+repo).Msg("GitHub star lookup failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("repo", owner+"/"+repo).Msg("GitHub star lookup non-200")
		return nil
	}

	var payload repoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Debug().Err(err).Str("repo", owner+"/"+repo).Msg("Failed to decode GitHub response")
		return nil
	}

	return &payload.StargazersCount
}

// parseGitHubRepo extracts owner and repo from a github.com URL. Anything
// else (other hosts, profile links, malformed input) reports not-a-repo.
func parseGitHubRepo(projectURL string) (owner, repo string, ok bool) {
	parsed, err := url.Parse(projectURL)
	if err != nil {
		return "", "", false
	}

	host := strings.TrimPrefix(parsed.Host, "www.")
	if host != "github.com" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}
