package llmtransport

import (
	"errors"
	"testing"

	"gtd-capture/config"
)

func TestInitializeTransportsPriorityOrder(t *testing.T) {
	cfg := &config.LLMConfig{
		Transports: []config.TransportConfig{
			{Name: "gemini", Enabled: true, Priority: 3, APIKey: "k3"},
			{Name: "deepseek", Enabled: true, Priority: 1, APIKey: "k1"},
			{Name: "qwen", Enabled: true, Priority: 2, APIKey: "k2"},
		},
	}

	transports, err := InitializeTransports(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(transports) != 3 {
		t.Fatalf("expected 3 transports, got %d", len(transports))
	}

	wantOrder := []string{"deepseek", "qwen", "gemini"}
	for i, want := range wantOrder {
		if transports[i].Name() != want {
			t.Errorf("position %d: want %s, got %s", i, want, transports[i].Name())
		}
	}
}

func TestInitializeTransportsFiltersDisabled(t *testing.T) {
	cfg := &config.LLMConfig{
		Transports: []config.TransportConfig{
			{Name: "deepseek", Enabled: false, Priority: 1, APIKey: "k"},
			{Name: "qwen", Enabled: true, Priority: 2, APIKey: "k"},
		},
	}

	transports, err := InitializeTransports(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(transports) != 1 || transports[0].Name() != "qwen" {
		t.Errorf("expected only qwen, got %v", transports)
	}
}

func TestInitializeTransportsSkipsUnknown(t *testing.T) {
	cfg := &config.LLMConfig{
		Transports: []config.TransportConfig{
			{Name: "carrier-pigeon", Enabled: true, Priority: 1},
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "k"},
		},
	}

	transports, err := InitializeTransports(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(transports) != 1 || transports[0].Name() != "deepseek" {
		t.Errorf("unknown transports should be skipped, got %v", transports)
	}
}

func TestInitializeTransportsAllUnknownFails(t *testing.T) {
	cfg := &config.LLMConfig{
		Transports: []config.TransportConfig{
			{Name: "carrier-pigeon", Enabled: true, Priority: 1},
		},
	}

	if _, err := InitializeTransports(cfg); err == nil {
		t.Fatal("expected error when nothing initializes")
	}
}

func TestInitializeTransportsEmpty(t *testing.T) {
	if _, err := InitializeTransports(&config.LLMConfig{}); !errors.Is(err, ErrNoTransports) {
		t.Errorf("expected ErrNoTransports, got %v", err)
	}

	cfg := &config.LLMConfig{
		Transports: []config.TransportConfig{
			{Name: "deepseek", Enabled: false, Priority: 1},
		},
	}
	if _, err := InitializeTransports(cfg); !errors.Is(err, ErrNoTransports) {
		t.Errorf("expected ErrNoTransports for all-disabled, got %v", err)
	}

	if _, err := InitializeTransports(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestInitializeTransportsAliasName(t *testing.T) {
	cfg := &config.LLMConfig{
		Transports: []config.TransportConfig{
			{Name: "alibaba", Enabled: true, Priority: 1, APIKey: "k"},
		},
	}

	transports, err := InitializeTransports(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if transports[0].Name() != "qwen" {
		t.Errorf("alibaba alias should yield the qwen transport, got %s", transports[0].Name())
	}
}
