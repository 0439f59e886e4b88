package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

const userAgent = "normative-lexicon/1.0"

// FilePath returns where a source's file lives under dir. The extension
// follows the URL path; sources without one default to .pdf.
func FilePath(dir string, src Source) string {
	ext := ".pdf"
	if u, err := url.Parse(src.URL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	return filepath.Join(dir, src.ID+ext)
}

// EnsureAll downloads every source file that is not yet present in dir and
// returns a per-source status: "already_exists", "downloaded", or an error
// string. A failed source does not stop the others; the caller decides whether
// an incomplete corpus is acceptable.
func EnsureAll(ctx context.Context, sources []Source, dir string, db *StateDB, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.Default()
	}
	os.MkdirAll(dir, 0o755)

	results := make(map[string]string, len(sources))
	for _, src := range sources {
		dest := FilePath(dir, src)
		if _, err := os.Stat(dest); err == nil {
			results[src.ID] = "already_exists"
			continue
		}

		u := src.URL
		if db != nil {
			if override, err := db.GetURL(src.ID); err == nil && override != "" {
				u = override
			}
		}

		logger.Info("downloading dictionary", "source", src.ID, "url", u)
		if err := downloadFile(ctx, u, dest); err != nil {
			logger.Error("download failed", "source", src.ID, "error", err)
			results[src.ID] = fmt.Sprintf("error: %v", err)
			os.Remove(dest)
			continue
		}
		results[src.ID] = "downloaded"
		if db != nil {
			if err := db.MarkDownloaded(src.ID); err != nil {
				logger.Warn("state update failed", "source", src.ID, "error", err)
			}
		}
	}
	return results
}

// downloadFile downloads url to dest with retries. Dictionary PDFs run to
// ~100 MB, hence the long per-attempt timeout.
func downloadFile(ctx context.Context, url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
			continue
		}

		f, err := os.Create(dest)
		if err != nil {
			resp.Body.Close()
			return fmt.Errorf("create file: %w", err)
		}

		_, copyErr := io.Copy(f, resp.Body)
		resp.Body.Close()
		closeErr := f.Close()

		if copyErr != nil {
			lastErr = copyErr
			continue
		}
		if closeErr != nil {
			return closeErr
		}
		return nil
	}
	return fmt.Errorf("download %s failed after 3 attempts: %w", url, lastErr)
}
