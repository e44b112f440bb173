package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sentinel/internal/common"
	"github.com/ternarybob/sentinel/internal/interfaces"
)

// Services bundles the two pipeline roles: a fast model for relevance
// scoring, risk weighting, and discovery, and a deep model for
// multi-stage impact analysis.
type Services struct {
	Fast interfaces.LLMService
	Deep interfaces.LLMService
}

// NewServices creates the LLM services for both pipeline roles based on
// the configured providers. The same provider may serve both roles.
func NewServices(cfg *common.Config, logger arbor.ILogger) (*Services, error) {
	fast, err := newProvider(cfg, cfg.LLM.FastProvider, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create fast LLM service: %w", err)
	}

	deep, err := newProvider(cfg, cfg.LLM.DeepProvider, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deep LLM service: %w", err)
	}

	fastProvider, fastModel := fast.GetProviderInfo()
	deepProvider, deepModel := deep.GetProviderInfo()
	logger.Info().
		Str("fast_provider", fastProvider).
		Str("fast_model", fastModel).
		Str("deep_provider", deepProvider).
		Str("deep_model", deepModel).
		Msg("LLM services initialized")

	return &Services{Fast: fast, Deep: deep}, nil
}

func newProvider(cfg *common.Config, provider common.LLMProvider, logger arbor.ILogger) (interfaces.LLMService, error) {
	switch provider {
	case common.LLMProviderClaude:
		return NewClaudeService(&cfg.Claude, logger)
	case common.LLMProviderGemini:
		return NewGeminiService(&cfg.Gemini, logger)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

// Close shuts down both services
func (s *Services) Close() error {
	type closer interface{ Close() error }
	if c, ok := s.Fast.(closer); ok {
		_ = c.Close()
	}
	if c, ok := s.Deep.(closer); ok {
		_ = c.Close()
	}
	return nil
}
