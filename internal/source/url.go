package source

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/samber/oops"
	"resty.dev/v3"
)

type urlSource struct {
	rawURL string
	client *resty.Client
}

// NewURL returns a Source that fetches the document over HTTP.
func NewURL(rawURL string) Source {
	return &urlSource{
		rawURL: rawURL,
		client: resty.New(),
	}
}

func (s *urlSource) Name() string {
	return s.rawURL
}

func (s *urlSource) Open(ctx context.Context) (io.ReadCloser, error) {
	response, err := s.client.R().SetContext(ctx).Get(s.rawURL)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("url", s.rawURL).
			Wrapf(err, "downloading document")
	}

	if response.StatusCode() < http.StatusOK || response.StatusCode() >= http.StatusMultipleChoices {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("url", s.rawURL).
			With("status", response.StatusCode()).
			Errorf("document fetch returned non-success status %d", response.StatusCode())
	}

	content, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, oops.
			Code("DOWNLOAD_FAILED").
			With("url", s.rawURL).
			Wrapf(err, "reading response body")
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}
