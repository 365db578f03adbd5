package positions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// contains http utils shared by the remote service clients.

// HTTPStatusError is returned by GetJSON for non 2xx responses.
type HTTPStatusError struct {
	Method, URL string
	StatusCode  int
	Status      string
	Body        []byte
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("cannot http %s %s: %s", e.Method, e.URL, e.Status)
}

// Temporary reports whether retrying the same request may succeed.
func (e *HTTPStatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into data.
// header may be nil.
func GetJSON(ctx context.Context, client *http.Client, addr string, header http.Header, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPStatusError{
			Method:     req.Method,
			URL:        req.URL.Host + req.URL.Path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       buf.Bytes(),
		}
	}
	return json.Unmarshal(buf.Bytes(), data)
}
