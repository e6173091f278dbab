package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
)

// FilePart is one file to include in a multipart upload.
type FilePart struct {
	Field    string // form field name, e.g. "files"
	Filename string
	Reader   io.Reader
}

// PostMultipart uploads scalar form fields plus one part per file. Fields are
// written in sorted order so request bodies are reproducible.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := w.WriteField(name, fields[name]); err != nil {
			return fmt.Errorf("writing field %q: %w", name, err)
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return fmt.Errorf("creating part for %q: %w", f.Filename, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return fmt.Errorf("reading %q: %w", f.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	body, err := c.do(ctx, http.MethodPost, path, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	return decodeObject(body, out)
}
