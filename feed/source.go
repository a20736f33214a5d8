// Package feed obtains the static clustering artifact and decodes it into records.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Source yields the raw dataset document: a JSON array of flat objects.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads the document from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", s, err, ErrFetchFailed)
	}
	return data, nil
}

func (s FileSource) String() string { return "file:" + s.Path }

// HTTPSource GETs the document from a URL, e.g. a static /data.json.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", s, err, ErrFetchFailed)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		zerolog.Ctx(ctx).Warn().Str("url", s.URL).Int("status_code", res.StatusCode).Msg("dataset fetch refused")
		return nil, fmt.Errorf("%s: status %d: %w", s, res.StatusCode, ErrFetchFailed)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading body: %v: %w", s, err, ErrFetchFailed)
	}
	return body, nil
}

func (s *HTTPSource) String() string { return s.URL }
