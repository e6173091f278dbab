package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

const fallbackDownloadName = "download.bin"

// Download streams a binary response into destDir and returns the full path
// of the written file. The filename is taken from the Content-Disposition
// header when the server suggests one, else from fallback, else a generic
// placeholder. The name is always reduced to its base to keep the server
// from escaping destDir.
func (c *Client) Download(ctx context.Context, path, fallback, destDir string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		return "", newError(resp.StatusCode, data, req.Header.Get(requestIDHeader))
	}

	name := filenameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fallback
	}
	if name == "" {
		name = fallbackDownloadName
	}
	name = filepath.Base(name)

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(destDir, name)

	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("saving %s: %w", name, err)
	}
	return dest, nil
}

func filenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}
