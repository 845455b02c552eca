package usecase

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"gtd-capture/internal/conversation"
	"gtd-capture/internal/extraction"
	"gtd-capture/internal/optimizer"
	"gtd-capture/pkg/gcalendar"
	pkgLog "gtd-capture/pkg/log"
)

// Config tunes the extraction use case.
type Config struct {
	MaxInputChars int
	StrictJSON    bool
	Timezone      string
	CalendarID    string
	CacheSize     int
	CacheTTL      time.Duration
	SessionTTL    time.Duration
	MaxSessions   int
}

type implUseCase struct {
	l         pkgLog.Logger
	sender    conversation.Sender
	optimizer *optimizer.Optimizer
	calendar  *gcalendar.Client
	cfg       Config

	cache    *expirable.LRU[string, extraction.ExtractOutput]
	sessions *sessionStore
}

// New creates a new extraction UseCase instance. The calendar client is
// optional; when nil, dated actions are not scheduled.
func New(
	l pkgLog.Logger,
	sender conversation.Sender,
	calendar *gcalendar.Client,
	cfg Config,
) *implUseCase {
	if cfg.MaxInputChars <= 0 {
		cfg.MaxInputChars = optimizer.DefaultMaxChars
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}

	return &implUseCase{
		l:         l,
		sender:    sender,
		optimizer: optimizer.New(cfg.MaxInputChars),
		calendar:  calendar,
		cfg:       cfg,
		cache:     expirable.NewLRU[string, extraction.ExtractOutput](cfg.CacheSize, nil, cfg.CacheTTL),
		sessions:  newSessionStore(cfg.MaxSessions, cfg.SessionTTL),
	}
}
