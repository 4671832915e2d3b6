package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/brendan.keane/imdburl/internal/config"
	"github.com/brendan.keane/imdburl/internal/display"
	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/internal/query"
	"github.com/brendan.keane/imdburl/internal/watch"
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

// BuildHandler handles the root command: load the query, build and print the URL
type BuildHandler struct {
	logger zerolog.Logger
}

// NewBuildHandler creates a new build command handler
func NewBuildHandler(logger zerolog.Logger) *BuildHandler {
	return &BuildHandler{
		logger: logger.With().Str("handler", "build").Logger(),
	}
}

// Execute handles the build command
func (h *BuildHandler) Execute(cmd *cobra.Command, args []string) error {
	cfg, ok := config.FromContext(cmd.Context())
	if !ok {
		var err error
		cfg, err = config.LoadFromFlags(cmd.Flags())
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
		Str("query", cfg.QueryPath).
		Bool("strict", cfg.StrictEncoding).
		Bool("awards", cfg.HasAwards).
		Bool("watch", cfg.Watch).
		Msg("processing build command")

	if !cfg.Watch {
		return h.run(cmd, cfg)
	}

	// An invalid file should not stop the watch; the next save may fix it
	if err := h.run(cmd, cfg); err != nil {
		errors.PresentError(h.logger, err)
	}

	w, err := watch.New(h.logger, cfg.QueryPath, watch.DefaultDebounce)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx, func() error { return h.run(cmd, cfg) })
}

// run performs a single load, build and print
func (h *BuildHandler) run(cmd *cobra.Command, cfg *config.Config) error {
	f, err := h.loadQuery(cmd.InOrStdin(), cfg)
	if err != nil {
		return err
	}
	if !cfg.Overrides.Empty() {
		h.logger.Debug().Msg("applying filter flags over the query file")
		cfg.Overrides.Apply(f)
	}

	opts := []imdb.Option{imdb.WithBaseURL(cfg.BaseURL)}
	if cfg.StrictEncoding {
		opts = append(opts, imdb.WithEncoding(imdb.EncodingStrict))
	}
	builder := imdb.NewBuilder(opts...)

	url, err := f.URL(builder, cfg.HasAwards)
	if err != nil {
		return err
	}

	h.logger.Info().Str("url", url).Msg("built search URL")

	if cfg.Explain {
		params, err := builder.Params(f.Criteria())
		if err != nil {
			return err
		}
		h.logger.Debug().Strs("params", params.Names()).Msg("explaining search URL")
		fmt.Fprintln(cmd.ErrOrStderr(), display.NewDisplayer().RenderExplain(display.Explanation{
			Source:   cfg.QueryPath,
			Params:   params,
			Keywords: builder.EncodeKeywords(f.ExcludeKeywords),
			Awards:   cfg.HasAwards,
			URL:      url,
			Encoding: builder.Encoding(),
		}))
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
	return err
}

// loadQuery reads the query file. A missing default file is treated as an
// empty query so flags alone can describe a search.
func (h *BuildHandler) loadQuery(stdin io.Reader, cfg *config.Config) (*query.File, error) {
	if cfg.QueryPath == config.StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to read query from stdin")
		}
		return query.Parse(data)
	}

	f, err := query.Load(cfg.QueryPath)
	if err != nil {
		if !cfg.QueryPathSet && stderrors.Is(err, fs.ErrNotExist) {
			h.logger.Info().Str("path", cfg.QueryPath).Msg("no query file, using flags only")
			return &query.File{}, nil
		}
		return nil, err
	}
	return f, nil
}
