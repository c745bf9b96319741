package advice

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/logger"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
)

const (
	// EmptyReply is shown when the model returns no text
	EmptyReply = "I'm thinking... please try again!"
	// FailureReply is shown for any failed request
	FailureReply = "I'm currently resting. Please check your internet or try later! 🔋"
)

// ErrNotStarted is returned by Consult before the journey has started
var ErrNotStarted = errors.New("start your journey before asking the mentor")

// KeySource looks up a stored API key, such as the OS keyring
type KeySource func() (string, error)

// ConfigFromEnv builds a GeminiConfig from GEMINI_* variables, consulting
// fallback for the key when the environment has none.
func ConfigFromEnv(fallback KeySource) GeminiConfig {
	cfg := GeminiConfig{
		APIKey:  strings.TrimSpace(os.Getenv(constants.GeminiAPIKeyEnv)),
		Model:   strings.TrimSpace(os.Getenv(constants.GeminiModelEnv)),
		BaseURL: strings.TrimSpace(os.Getenv(constants.GeminiBaseURLEnv)),
	}
	if cfg.APIKey == "" && fallback != nil {
		if key, err := fallback(); err == nil {
			cfg.APIKey = strings.TrimSpace(key)
		} else {
			logger.Debug("No Gemini key in fallback source", "error", err)
		}
	}
	return cfg
}

// Consult asks the advisor for today's tip. Failures never escape: they are
// logged with a request id and replaced by FailureReply. The only error
// returned is ErrNotStarted.
func Consult(ctx context.Context, advisor Advisor, d models.UserData, now time.Time) (string, error) {
	if !d.IsStarted {
		return "", ErrNotStarted
	}

	requestID := uuid.NewString()
	if advisor == nil {
		logger.Error("Advice request failed", "requestID", requestID, "error", ErrMissingAPIKey)
		return FailureReply, nil
	}

	prompt := BuildPrompt(StatsFrom(progress.Derive(d, now)))
	logger.Debug("Requesting advice", "requestID", requestID, "promptBytes", len(prompt))

	text, err := advisor.Advise(ctx, prompt)
	if err != nil {
		logger.Error("Advice request failed", "requestID", requestID, "error", err)
		return FailureReply, nil
	}
	if strings.TrimSpace(text) == "" {
		logger.Warn("Advice response was empty", "requestID", requestID)
		return EmptyReply, nil
	}
	return text, nil
}
