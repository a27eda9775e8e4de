package deliver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PutUploader delivers files to a transfer.sh-style host: one HTTP PUT
// of the raw bytes, a 200 response whose body is the retrieval URL.
type PutUploader struct {
	Endpoint string
	Client   *http.Client
}

func (u *PutUploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}

	target := strings.TrimRight(u.Endpoint, "/") + "/" + url.PathEscape(filepath.Base(path))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, f)
	if err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}
	req.ContentLength = info.Size()

	client := u.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Minute}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &DeliveryError{Op: "upload", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &DeliveryError{Op: "upload", Status: resp.StatusCode}
	}

	link := strings.TrimSpace(string(body))
	if link == "" {
		return "", &DeliveryError{Op: "upload", Err: errors.New("empty response body")}
	}
	return link, nil
}
