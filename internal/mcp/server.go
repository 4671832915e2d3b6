// Package mcp exposes the search URL builder as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/brendan.keane/imdburl/internal/config"
	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/internal/logger"
	"github.com/brendan.keane/imdburl/internal/query"
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

// Tool names
const (
	ToolBuildSearchURL = "build_search_url"
	ToolListValues     = "list_values"
)

// Version is reported to clients during initialize
const Version = "1.0.0"

// Server implements the MCP tools on top of mcp-go
type Server struct {
	logger zerolog.Logger
	config *config.Config
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server with both tools registered
func NewServer(log zerolog.Logger, cfg *config.Config) *Server {
	s := &Server{
		logger: log.With().Str("component", "mcp_server").Logger(),
		config: cfg,
	}

	s.mcp = server.NewMCPServer("imdburl", Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Build IMDb advanced title search URLs. Call list_values to see accepted genres, title types, countries and sort values."),
	)
	s.mcp.AddTool(buildSearchURLTool(), s.handleBuildSearchURL)
	s.mcp.AddTool(listValuesTool(), s.handleListValues)

	return s
}

// Start serves MCP messages from in to out until ctx is done or in closes
func (s *Server) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Debug().Msg("MCP server started, reading from stdin")

	stdio := server.NewStdioServer(s.mcp)
	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, errors.ErrorTypeInternal, "MCP server stopped")
	}

	s.logger.Debug().Msg("MCP server stopped")
	return nil
}

// HandleMessage processes one raw JSON-RPC message
func (s *Server) HandleMessage(ctx context.Context, message json.RawMessage) mcp.JSONRPCMessage {
	return s.mcp.HandleMessage(ctx, message)
}

func buildSearchURLTool() mcp.Tool {
	return mcp.NewTool(ToolBuildSearchURL,
		mcp.WithDescription("Build an IMDb advanced title search URL. Every argument is optional; omitted filters are left out of the URL. Invalid values are reported with the accepted values."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithArray("include_genres", mcp.Description("Genres to include"), mcp.WithStringEnumItems(imdb.ValidGenres())),
		mcp.WithArray("exclude_genres", mcp.Description("Genres to exclude"), mcp.WithStringEnumItems(imdb.ValidGenres())),
		mcp.WithNumber("min_votes", mcp.Description("Minimum number of votes")),
		mcp.WithNumber("max_votes", mcp.Description("Maximum number of votes")),
		mcp.WithNumber("min_rating", mcp.Description("Minimum user rating"), mcp.Min(imdb.MinRating), mcp.Max(imdb.MaxRating)),
		mcp.WithNumber("max_rating", mcp.Description("Maximum user rating"), mcp.Min(imdb.MinRating), mcp.Max(imdb.MaxRating)),
		mcp.WithString("start_date", mcp.Description("Earliest release date, YYYY-MM-DD")),
		mcp.WithString("end_date", mcp.Description("Latest release date, YYYY-MM-DD")),
		mcp.WithArray("include_countries", mcp.Description("Country names to include, e.g. 'United States'"), mcp.WithStringItems()),
		mcp.WithArray("exclude_countries", mcp.Description("Country names to exclude"), mcp.WithStringItems()),
		mcp.WithNumber("min_runtime", mcp.Description("Minimum runtime in minutes")),
		mcp.WithNumber("max_runtime", mcp.Description("Maximum runtime in minutes")),
		mcp.WithString("sort_type", mcp.Description("Sort key, used only together with sort_option"), mcp.Enum(imdb.ValidSortTypes()...)),
		mcp.WithString("sort_option", mcp.Description("Sort direction, used only together with sort_type"), mcp.Enum(imdb.ValidSortOptions()...)),
		mcp.WithArray("title_type", mcp.Description("Title types"), mcp.WithStringEnumItems(imdb.ValidTitleTypes())),
		mcp.WithArray("exclude_keywords", mcp.Description("Keywords to exclude"), mcp.WithStringItems()),
		mcp.WithBoolean("has_awards", mcp.Description("Only titles with awards (default true)")),
		mcp.WithBoolean("strict_encoding", mcp.Description("Percent-encode commas and '!' in values")),
	)
}

func listValuesTool() mcp.Tool {
	return mcp.NewTool(ToolListValues,
		mcp.WithDescription("List the accepted values for a filter"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Which values to list"), mcp.Enum(imdb.CatalogKinds()...)),
	)
}

func (s *Server) handleBuildSearchURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.ForMCP(s.logger, ToolBuildSearchURL)

	data, err := json.Marshal(request.GetArguments())
	if err != nil {
		log.Error().Err(err).Msg("failed to encode arguments")
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	req, err := query.DecodeRequest(data)
	if err != nil {
		log.Debug().Err(err).Msg("invalid arguments")
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}

	var opts []imdb.Option
	if s.config != nil {
		opts = append(opts, imdb.WithBaseURL(s.config.BaseURL))
		if s.config.StrictEncoding {
			opts = append(opts, imdb.WithEncoding(imdb.EncodingStrict))
		}
	}

	url, err := req.URL(req.Builder(opts...), req.Awards())
	if err != nil {
		log.Debug().Str("type", string(errors.GetType(err))).Err(err).Msg("criteria rejected")
		return mcp.NewToolResultError(errors.UserMessage(err)), nil
	}

	log.Info().Str("url", url).Msg("built search URL")
	return mcp.NewToolResultText(url), nil
}

func (s *Server) handleListValues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := logger.ForMCP(s.logger, ToolListValues)

	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	values, ok := imdb.Catalog(kind)
	if !ok {
		log.Debug().Str("kind", kind).Msg("unknown catalog")
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q (valid values: %s)",
			kind, strings.Join(imdb.CatalogKinds(), ", "))), nil
	}

	if strings.EqualFold(kind, imdb.CatalogCountries) {
		lines := make([]string, len(values))
		for i, name := range values {
			code, _ := imdb.CountryCode(name)
			lines[i] = name + "\t" + code
		}
		values = lines
	}

	return mcp.NewToolResultText(strings.Join(values, "\n")), nil
}
