package llmtransport

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"gtd-capture/config"
	"gtd-capture/pkg/deepseek"
	"gtd-capture/pkg/gemini"
	"gtd-capture/pkg/qwen"
)

// InitializeTransports creates Transport instances from config.LLMConfig.
// Returns transports sorted by priority (ascending) with disabled entries
// filtered out. The resulting order IS the fallback strategy; nothing here
// inspects the runtime environment. Transports that fail to initialize are
// skipped so one bad entry does not take the whole service down.
func InitializeTransports(cfg *config.LLMConfig) ([]Transport, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}
	if len(cfg.Transports) == 0 {
		return nil, ErrNoTransports
	}

	var enabled []config.TransportConfig
	for _, t := range cfg.Transports {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoTransports
	}

	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var transports []Transport
	var initErrors []string

	for _, t := range enabled {
		transport, err := createTransport(t)
		if err != nil {
			initErrors = append(initErrors,
				fmt.Sprintf("failed to initialize transport %s (priority %d): %v", t.Name, t.Priority, err))
			continue
		}
		transports = append(transports, transport)
	}

	if len(transports) == 0 {
		return nil, fmt.Errorf("no transports successfully initialized: %s", strings.Join(initErrors, "; "))
	}

	return transports, nil
}

// createTransport creates a concrete transport from its config entry.
// An empty API key is tolerated: the transport reports it on first use,
// which is what lets the executor fall back to the next entry.
func createTransport(cfg config.TransportConfig) (Transport, error) {
	httpClient := &http.Client{}
	if cfg.Timeout != "" {
		if d, err := time.ParseDuration(cfg.Timeout); err == nil {
			httpClient.Timeout = d
		}
	}

	switch cfg.Name {
	case "deepseek":
		client, err := deepseek.New(deepseek.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek client: %w", err)
		}
		return NewDeepSeekAdapter(client), nil

	case "qwen", "alibaba":
		client, err := qwen.New(qwen.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create qwen client: %w", err)
		}
		return NewQwenAdapter(client), nil

	case "gemini":
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	default:
		return nil, fmt.Errorf("unknown transport: %s", cfg.Name)
	}
}
