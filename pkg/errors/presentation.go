package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// UserMessage returns a user-friendly error message
func UserMessage(err error) string {
	if sErr, ok := As(err); ok {
		return formatUserError(sErr)
	}
	return err.Error()
}

// formatUserError creates user-friendly error messages based on error type
func formatUserError(sErr *SearchError) string {
	switch {
	case sErr.IsValidation():
		return formatValidationError(sErr)
	case sErr.Type == ErrorTypeConfig:
		return formatConfigError(sErr)
	default:
		return sErr.Error()
	}
}

func formatValidationError(sErr *SearchError) string {
	msg := sErr.Message
	if field, ok := sErr.Context["field"]; ok {
		msg = fmt.Sprintf("Invalid %s: %s", field, msg)
	}
	if valid, ok := sErr.Context["valid_values"].([]string); ok && len(valid) > 0 {
		msg = fmt.Sprintf("%s (valid values: %s)", msg, strings.Join(valid, ", "))
	}
	return msg
}

func formatConfigError(sErr *SearchError) string {
	msg := sErr.Error()

	if path, ok := sErr.Context["path"]; ok {
		msg = fmt.Sprintf("Configuration error (%s): %s", path, msg)
	}

	return msg
}

// PresentError logs an error through the given logger with its context as structured fields
func PresentError(logger zerolog.Logger, err error) {
	if err == nil {
		return
	}

	sErr, ok := As(err)
	if !ok {
		logger.Error().Err(err).Msg("")
		return
	}

	event := logger.Error().Str("type", string(sErr.Type))

	keys := make([]string, 0, len(sErr.Context))
	for key := range sErr.Context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		event = event.Interface(key, sErr.Context[key])
	}
	if sErr.Cause != nil {
		event = event.Err(sErr.Cause)
	}

	event.Msg(sErr.Message)
}

// DebugInfo returns detailed error information for debugging
func DebugInfo(err error) map[string]interface{} {
	info := map[string]interface{}{
		"error":   err.Error(),
		"type":    "unknown",
		"context": map[string]interface{}{},
	}

	if sErr, ok := As(err); ok {
		info["type"] = string(sErr.Type)
		info["message"] = sErr.Message
		info["context"] = sErr.Context

		if sErr.Cause != nil {
			info["cause"] = sErr.Cause.Error()
		}
	}

	return info
}
