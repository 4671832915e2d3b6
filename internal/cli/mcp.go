package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/brendan.keane/imdburl/internal/config"
	"github.com/brendan.keane/imdburl/internal/mcp"
)

// MCPHandler handles MCP server commands
type MCPHandler struct {
	logger zerolog.Logger
}

// NewMCPHandler creates a new MCP command handler
func NewMCPHandler(logger zerolog.Logger) *MCPHandler {
	return &MCPHandler{
		logger: logger.With().Str("handler", "mcp").Logger(),
	}
}

// Execute serves MCP over the command's stdin and stdout
func (h *MCPHandler) Execute(cmd *cobra.Command, args []string) error {
	// Get config from context (already loaded in main.go)
	cfg, ok := config.FromContext(cmd.Context())
	if !ok {
		var err error
		cfg, err = config.LoadGlobalFromFlags(cmd.Flags())
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to load configuration")
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		h.logger.Error().Err(err).Msg("configuration validation failed")
		return err
	}

	h.logger.Debug().
		Str("base_url", cfg.BaseURL).
		Bool("strict", cfg.StrictEncoding).
		Msg("starting MCP server")

	server := mcp.NewServer(h.logger, cfg)
	return server.Start(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
}
