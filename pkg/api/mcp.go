package api

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/normative-lexicon/pkg/kit"
)

// RegisterMCPTools registers the lexicon MCP tools on the server.
// Tools dispatch to the same endpoints the HTTP routes use.
func RegisterMCPTools(msrv *server.MCPServer, s *Server) {
	registerCheckWord(msrv, s)
	registerCheckBatch(msrv, s)
	registerCorpusStatus(msrv, s)
}

func registerCheckWord(msrv *server.MCPServer, s *Server) {
	tool := mcp.NewTool("check_word",
		mcp.WithDescription("Check whether a Russian word is attested in the official normative dictionaries, with a suggested Russian equivalent when it is not."),
		mcp.WithString("word", mcp.Required(), mcp.Description("The word to check")),
	)

	kit.RegisterMCPTool(msrv, tool, checkWordEndpoint(s.Checker),
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			args := req.GetArguments()
			word, _ := args["word"].(string)
			return &kit.MCPDecodeResult{
				Request:   &checkWordReq{Word: word},
				EnrichCtx: mcpTransport,
			}, nil
		})
}

func registerCheckBatch(msrv *server.MCPServer, s *Server) {
	tool := mcp.NewTool("check_batch",
		mcp.WithDescription("Check multiple Russian words (up to 100) against the official normative dictionaries."),
		mcp.WithString("words", mcp.Required(), mcp.Description("Comma-separated list of words to check")),
	)

	kit.RegisterMCPTool(msrv, tool, checkBatchEndpoint(s.Checker),
		func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			args := req.GetArguments()
			wordsStr, _ := args["words"].(string)
			words := strings.Split(wordsStr, ",")
			for i := range words {
				words[i] = strings.TrimSpace(words[i])
			}
			return &kit.MCPDecodeResult{
				Request:   &checkBatchReq{Words: words},
				EnrichCtx: mcpTransport,
			}, nil
		})
}

func registerCorpusStatus(msrv *server.MCPServer, s *Server) {
	tool := mcp.NewTool("corpus_status",
		mcp.WithDescription("Report corpus index readiness and size (files, pages, distinct word forms)."),
	)

	kit.RegisterMCPTool(msrv, tool, statusEndpoint(s.Manager),
		func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
			return &kit.MCPDecodeResult{EnrichCtx: mcpTransport}, nil
		})
}

func mcpTransport(ctx context.Context) context.Context {
	return kit.WithTransport(ctx, "mcp")
}
