// Package netx contains plain HTTP helpers that bypass the API client,
// e.g. fetching an object through a presigned link.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DownloadFromURL issues a GET to url and copies the body into w.
// It returns the number of bytes written. Any non-200 status is an error
// that includes the start of the response body.
func DownloadFromURL(ctx context.Context, client *http.Client, url string, w io.Writer) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	return io.Copy(w, resp.Body)
}
