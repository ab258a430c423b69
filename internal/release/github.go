package release

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ZebulonRouseFrantzich/fridamanager/internal/logging"
)

const (
	// DefaultBaseURL is the GitHub API root.
	DefaultBaseURL = "https://api.github.com"
	// DefaultOwner and DefaultRepo name the upstream project.
	DefaultOwner = "frida"
	DefaultRepo  = "frida"
	// DefaultUserAgent is sent with every request. GitHub rejects
	// anonymous requests without one.
	DefaultUserAgent = "fridamanager"

	// maxJSONResponseBytes bounds the release JSON read from the API (10 MB).
	maxJSONResponseBytes = 10 << 20
)

// UpstreamError reports an unusable response from the releases API.
// StatusCode is zero when the failure is not an HTTP status.
type UpstreamError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("upstream %s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

type (
	// githubRelease is the JSON wire format of a release.
	// Pointer fields distinguish absent values from empty ones.
	githubRelease struct {
		TagName *string        `json:"tag_name"`
		Assets  *[]githubAsset `json:"assets"`
	}

	// githubAsset is the JSON wire format of a release asset.
	githubAsset struct {
		Name               *string `json:"name"`
		ContentType        *string `json:"content_type"`
		BrowserDownloadURL *string `json:"browser_download_url"`
	}
)

// Client queries the GitHub releases API for frida releases.
type Client struct {
	httpClient *http.Client
	baseURL    string
	owner      string
	repo       string
	userAgent  string
	token      string
	logger     logging.Logger
}

// ClientOption configures a Client during construction.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for API requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithBaseURL overrides the API base URL, primarily for test servers.
func WithBaseURL(base string) ClientOption {
	return func(cl *Client) {
		if base != "" {
			cl.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithRepo overrides the upstream repository.
func WithRepo(owner, repo string) ClientOption {
	return func(cl *Client) {
		if owner != "" && repo != "" {
			cl.owner = owner
			cl.repo = repo
		}
	}
}

// WithToken sets a GitHub token sent as a bearer credential to the API host.
func WithToken(token string) ClientOption {
	return func(cl *Client) {
		cl.token = token
	}
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) ClientOption {
	return func(cl *Client) {
		cl.logger = logging.OrNop(l)
	}
}

// NewClient creates a Client targeting frida/frida on api.github.com.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		owner:      DefaultOwner,
		repo:       DefaultRepo,
		userAgent:  DefaultUserAgent,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserAgent returns the User-Agent the client sends.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// LatestURL returns the endpoint of the latest release.
func (c *Client) LatestURL() string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
}

// TagURL returns the endpoint of the release tagged version.
func (c *Client) TagURL(version string) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, c.owner, c.repo, url.PathEscape(version))
}

// Latest fetches the latest published release.
func (c *Client) Latest(ctx context.Context) (*Release, error) {
	return c.Fetch(ctx, c.LatestURL())
}

// ByTag fetches the release tagged version.
func (c *Client) ByTag(ctx context.Context, version string) (*Release, error) {
	return c.Fetch(ctx, c.TagURL(version))
}

// Resolve fetches the release tagged version, or the latest release when
// version is empty.
func (c *Client) Resolve(ctx context.Context, version string) (*Release, error) {
	if version == "" {
		return c.Latest(ctx)
	}
	return c.ByTag(ctx, version)
}

// Fetch retrieves and decodes the release at endpoint.
// Every failure is returned as *UpstreamError.
func (c *Client) Fetch(ctx context.Context, endpoint string) (*Release, error) {
	c.logger.Debug("fetching release", "endpoint", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" && c.isAPIHost(req.URL) {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	rel, err := decodeRelease(io.LimitReader(resp.Body, maxJSONResponseBytes))
	if err != nil {
		return nil, &UpstreamError{Endpoint: endpoint, Err: err}
	}

	c.logger.Debug("fetched release", "version", rel.Version, "assets", len(rel.Assets))
	return rel, nil
}

// decodeRelease parses a release document, rejecting it entirely if any
// required field is absent or not a string.
func decodeRelease(r io.Reader) (*Release, error) {
	var gr githubRelease
	dec := json.NewDecoder(r)
	if err := dec.Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode release: trailing data after JSON document")
	}

	if gr.TagName == nil {
		return nil, errors.New("release has no tag_name")
	}
	if *gr.TagName == "" {
		return nil, errors.New("release has an empty tag_name")
	}
	if gr.Assets == nil {
		return nil, errors.New("release has no assets array")
	}

	assets := make([]Asset, 0, len(*gr.Assets))
	for i, ga := range *gr.Assets {
		switch {
		case ga.Name == nil:
			return nil, fmt.Errorf("asset %d has no name", i)
		case ga.ContentType == nil:
			return nil, fmt.Errorf("asset %d (%s) has no content_type", i, *ga.Name)
		case ga.BrowserDownloadURL == nil:
			return nil, fmt.Errorf("asset %d (%s) has no browser_download_url", i, *ga.Name)
		case *ga.Name == "":
			return nil, fmt.Errorf("asset %d has an empty name", i)
		}

		assets = append(assets, Asset{
			Name:        *ga.Name,
			ContentType: *ga.ContentType,
			DownloadURL: *ga.BrowserDownloadURL,
		})
	}

	return &Release{
		Version: *gr.TagName,
		Assets:  assets,
	}, nil
}

// isAPIHost reports whether u targets the configured API host, so the
// token is never sent to a download CDN.
func (c *Client) isAPIHost(u *url.URL) bool {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}
