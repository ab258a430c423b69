package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const validReleaseJSON = `{
  "tag_name": "16.0.0",
  "assets": [
    {
      "name": "frida-server-16.0.0-android-arm64.xz",
      "content_type": "application/x-xz",
      "browser_download_url": "https://example.invalid/frida-server-16.0.0-android-arm64.xz"
    },
    {
      "name": "frida-tools.tar.gz",
      "content_type": "application/gzip",
      "browser_download_url": "https://example.invalid/frida-tools.tar.gz"
    }
  ]
}`

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *[]*http.Request) {
	t.Helper()

	var requests []*http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if _, err := w.Write([]byte(body)); err != nil {
			t.Errorf("failed to write response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)

	return srv, &requests
}

func TestClientLatest_Success(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, validReleaseJSON)

	client := NewClient(WithBaseURL(srv.URL))
	rel, err := client.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rel.Version != "16.0.0" {
		t.Errorf("Version = %q, want %q", rel.Version, "16.0.0")
	}
	if len(rel.Assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(rel.Assets))
	}

	first := rel.Assets[0]
	if first.Name != "frida-server-16.0.0-android-arm64.xz" {
		t.Errorf("asset[0].Name = %q", first.Name)
	}
	if first.ContentType != "application/x-xz" {
		t.Errorf("asset[0].ContentType = %q", first.ContentType)
	}
	if first.DownloadURL != "https://example.invalid/frida-server-16.0.0-android-arm64.xz" {
		t.Errorf("asset[0].DownloadURL = %q", first.DownloadURL)
	}

	if len(*requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*requests))
	}
	req := (*requests)[0]
	if req.URL.Path != "/repos/frida/frida/releases/latest" {
		t.Errorf("unexpected path: %s", req.URL.Path)
	}
	if req.Header.Get("User-Agent") != DefaultUserAgent {
		t.Errorf("unexpected User-Agent: %q", req.Header.Get("User-Agent"))
	}
}

func TestClientByTag_Path(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, validReleaseJSON)

	client := NewClient(WithBaseURL(srv.URL), WithUserAgent("custom-agent/1.0"))
	if _, err := client.ByTag(context.Background(), "15.2.2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := (*requests)[0]
	if req.URL.Path != "/repos/frida/frida/releases/tags/15.2.2" {
		t.Errorf("unexpected path: %s", req.URL.Path)
	}
	if req.Header.Get("User-Agent") != "custom-agent/1.0" {
		t.Errorf("unexpected User-Agent: %q", req.Header.Get("User-Agent"))
	}
}

func TestClientResolve(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, validReleaseJSON)
	client := NewClient(WithBaseURL(srv.URL), WithRepo("someone", "fork"))

	if _, err := client.Resolve(context.Background(), ""); err != nil {
		t.Fatalf("Resolve latest: %v", err)
	}
	if _, err := client.Resolve(context.Background(), "16.1.0"); err != nil {
		t.Fatalf("Resolve tag: %v", err)
	}

	wantPaths := []string{
		"/repos/someone/fork/releases/latest",
		"/repos/someone/fork/releases/tags/16.1.0",
	}
	for i, want := range wantPaths {
		if got := (*requests)[i].URL.Path; got != want {
			t.Errorf("request[%d] path = %q, want %q", i, got, want)
		}
	}
}

func TestClientFetch_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{
			name:       "404_not_found",
			status:     http.StatusNotFound,
			body:       `{"message":"Not Found"}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "500_server_error",
			status:     http.StatusInternalServerError,
			body:       "oops",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:   "invalid_json",
			status: http.StatusOK,
			body:   "{not json",
		},
		{
			name:   "invalid_json_trailing_data",
			status: http.StatusOK,
			body:   `{"tag_name":"16.0.0","assets":[]} <html>oops</html>`,
		},
		{
			name:   "invalid_json_second_document",
			status: http.StatusOK,
			body:   `{"tag_name":"16.0.0","assets":[]}{"tag_name":"15.0.0","assets":[]}`,
		},
		{
			name:   "missing_tag_name",
			status: http.StatusOK,
			body:   `{"assets": []}`,
		},
		{
			name:   "tag_name_not_string",
			status: http.StatusOK,
			body:   `{"tag_name": 16, "assets": []}`,
		},
		{
			name:   "missing_assets",
			status: http.StatusOK,
			body:   `{"tag_name": "16.0.0"}`,
		},
		{
			name:   "assets_not_array",
			status: http.StatusOK,
			body:   `{"tag_name": "16.0.0", "assets": {}}`,
		},
		{
			name:   "asset_missing_name",
			status: http.StatusOK,
			body:   `{"tag_name": "16.0.0", "assets": [{"content_type": "a", "browser_download_url": "u"}]}`,
		},
		{
			name:   "asset_missing_content_type",
			status: http.StatusOK,
			body:   `{"tag_name": "16.0.0", "assets": [{"name": "n", "browser_download_url": "u"}]}`,
		},
		{
			name:   "asset_missing_download_url",
			status: http.StatusOK,
			body:   `{"tag_name": "16.0.0", "assets": [{"name": "n", "content_type": "a"}]}`,
		},
		{
			name:   "asset_name_not_string",
			status: http.StatusOK,
			body:   `{"tag_name": "16.0.0", "assets": [{"name": 1, "content_type": "a", "browser_download_url": "u"}]}`,
		},
		{
			name:   "asset_null_download_url",
			status: http.StatusOK,
			body:   `{"tag_name": "16.0.0", "assets": [{"name": "n", "content_type": "a", "browser_download_url": null}]}`,
		},
		{
			name:   "one_bad_asset_among_good",
			status: http.StatusOK,
			body: `{"tag_name": "16.0.0", "assets": [
				{"name": "frida-server-a.xz", "content_type": "a", "browser_download_url": "u"},
				{"name": "frida-server-b.xz", "content_type": "a"}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			client := NewClient(WithBaseURL(srv.URL))

			rel, err := client.Latest(context.Background())
			if err == nil {
				t.Fatalf("expected error, got release %+v", rel)
			}

			var upstreamErr *UpstreamError
			if !errors.As(err, &upstreamErr) {
				t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
			}
			if upstreamErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", upstreamErr.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestClientFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(WithBaseURL(base))
	_, err := client.Latest(context.Background())

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *UpstreamError, got %T: %v", err, err)
	}
	if upstreamErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", upstreamErr.StatusCode)
	}
}

func TestClientFetch_TokenOnlyForAPIHost(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, validReleaseJSON)

	client := NewClient(WithBaseURL(srv.URL), WithToken("secret"))
	if _, err := client.Latest(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := (*requests)[0].Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("Authorization = %q, want bearer token", got)
	}

	other, otherRequests := newTestServer(t, http.StatusOK, validReleaseJSON)
	if _, err := client.Fetch(context.Background(), other.URL+"/elsewhere"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := (*otherRequests)[0].Header.Get("Authorization"); got != "" {
		t.Errorf("token leaked to foreign host: %q", got)
	}
}
