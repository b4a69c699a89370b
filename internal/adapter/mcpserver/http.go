package mcpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewHTTPHandler serves srv over streamable HTTP at /mcp, with a liveness
// probe at /healthz. Every client shares the same server and so the same
// browser session.
func NewHTTPHandler(srv *mcp.Server) http.Handler {
	reqLog := httplog.NewLogger(ServerName, httplog.Options{JSON: true})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(reqLog))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return srv }, nil)
	r.Handle("/mcp", mcpHandler)
	r.Handle("/mcp/*", mcpHandler)
	return r
}
