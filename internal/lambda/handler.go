// Package lambda serves the search URL builder behind API Gateway HTTP APIs.
package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"

	"github.com/brendan.keane/imdburl/internal/config"
	"github.com/brendan.keane/imdburl/pkg/errors"
	"github.com/brendan.keane/imdburl/internal/logger"
	"github.com/brendan.keane/imdburl/internal/query"
	"github.com/brendan.keane/imdburl/pkg/imdb"
)

// Response is the success body
type Response struct {
	URL string `json:"url"`
}

// ErrorResponse is the failure body
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// Handler turns a JSON query body into a search URL
type Handler struct {
	logger zerolog.Logger
	config *config.Config
}

// NewHandler creates a Lambda handler
func NewHandler(log zerolog.Logger, cfg *config.Config) *Handler {
	return &Handler{
		logger: logger.ForComponent(log, "lambda"),
		config: cfg,
	}
}

// Handle processes one API Gateway v2 request. Caller mistakes come back as
// 400 responses, never as invocation errors.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	log := logger.ForRequest(h.logger, req.RequestContext.RequestID, req.RouteKey)

	body := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return h.failure(log, errors.Wrap(err, errors.ErrorTypeConfig, "failed to decode request body"))
		}
		body = decoded
	}

	r, err := query.DecodeRequest(body)
	if err != nil {
		return h.failure(log, err)
	}

	var opts []imdb.Option
	if h.config != nil {
		opts = append(opts, imdb.WithBaseURL(h.config.BaseURL))
		if h.config.StrictEncoding {
			opts = append(opts, imdb.WithEncoding(imdb.EncodingStrict))
		}
	}

	url, err := r.URL(r.Builder(opts...), r.Awards())
	if err != nil {
		return h.failure(log, err)
	}

	log.Info().Str("url", url).Msg("built search URL")
	return respond(http.StatusOK, Response{URL: url})
}

func (h *Handler) failure(log zerolog.Logger, err error) (events.APIGatewayV2HTTPResponse, error) {
	errType := errors.GetType(err)

	status := http.StatusBadRequest
	if errType == errors.ErrorTypeInternal {
		status = http.StatusInternalServerError
		errors.PresentError(log, err)
	} else {
		log.Info().Str("type", string(errType)).Err(err).Msg("request rejected")
	}

	return respond(status, ErrorResponse{
		Error: errors.UserMessage(err),
		Type:  string(errType),
	})
}

func respond(status int, body any) (events.APIGatewayV2HTTPResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, errors.Wrap(err, errors.ErrorTypeInternal, "failed to encode response")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}, nil
}
