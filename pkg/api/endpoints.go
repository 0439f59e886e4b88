package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hazyhaar/normative-lexicon/pkg/check"
	"github.com/hazyhaar/normative-lexicon/pkg/index"
	"github.com/hazyhaar/normative-lexicon/pkg/kit"
	"github.com/hazyhaar/normative-lexicon/pkg/token"
)

// Shared request/response types used by both HTTP and MCP transports.

type checkWordReq struct {
	Word string
}

type checkBatchReq struct {
	Words []string
}

type checkURLReq struct {
	URL string
}

type batchResponse struct {
	Results []check.Report `json:"results"`
}

type urlResponse struct {
	URL          string         `json:"url"`
	WordsChecked int            `json:"words_checked"`
	NotAttested  []check.Report `json:"not_attested"`
}

type statusResponse struct {
	Ready    bool        `json:"ready"`
	Building bool        `json:"building"`
	Stats    index.Stats `json:"stats"`
}

const maxBatchWords = 100

func checkWordEndpoint(c *check.Checker) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*checkWordReq)
		if req.Word == "" {
			return nil, fmt.Errorf("word is empty")
		}
		return c.Analyze(req.Word), nil
	}
}

func checkBatchEndpoint(c *check.Checker) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*checkBatchReq)
		if len(req.Words) == 0 {
			return nil, fmt.Errorf("words array is empty")
		}
		if len(req.Words) > maxBatchWords {
			return nil, fmt.Errorf("too many words (max %d, got %d)", maxBatchWords, len(req.Words))
		}
		return batchResponse{Results: c.AnalyzeAll(req.Words)}, nil
	}
}

// checkURLEndpoint fetches a web page, extracts candidate words from its
// markup and reports the ones missing from the corpus.
func checkURLEndpoint(c *check.Checker, client *http.Client) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*checkURLReq)
		if req.URL == "" {
			return nil, fmt.Errorf("url is empty")
		}

		hreq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
		}
		resp, err := client.Do(hreq)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", req.URL, resp.StatusCode)
		}
		body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", req.URL, err)
		}

		tokens := token.Markup(string(body))
		out := urlResponse{URL: req.URL, WordsChecked: len(tokens), NotAttested: []check.Report{}}
		for _, t := range tokens {
			rep := c.Analyze(t.Text, check.Occurrence{Context: t.Context})
			if !rep.Attested {
				out.NotAttested = append(out.NotAttested, rep)
			}
		}
		return out, nil
	}
}

func statusEndpoint(mgr *index.Manager) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return statusResponse{
			Ready:    mgr.Ready(),
			Building: mgr.Building(),
			Stats:    mgr.Snapshot().Stats(),
		}, nil
	}
}
