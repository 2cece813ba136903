// Package mcpapi exposes the catalog over the Model Context Protocol so
// assistants can query the directory through stdio.
package mcpapi

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"hexageeky/internal/infra/catalog"
)

const serverVersion = "0.1.0"

type Server struct {
	mcp      *mcp.Server
	provider catalog.Provider
	logger   *zap.Logger
}

func NewServer(provider catalog.Provider, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		provider: provider,
		logger:   logger.Named("mcpapi"),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "hexageeky",
		Version: serverVersion,
	}, &mcp.ServerOptions{
		HasTools: true,
	})
	s.registerTools()

	return s
}

// Run serves the stdio transport until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting (stdio transport)")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
