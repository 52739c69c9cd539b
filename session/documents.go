package session

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
	"github.com/AlexZinkM/docuchain-wallet/internal/model"
)

// Library caches the document lists of the session
type Library struct {
	backend DocumentBackend
	logger  *zap.Logger
	reporter

	mu     sync.Mutex
	mine   []model.Document
	shared []model.Document
}

var _ DocumentReloader = (*Library)(nil)

func NewLibrary(backend DocumentBackend, notifier Notifier, log *zap.Logger) *Library {
	log = logger.OrNop(log)
	return &Library{
		backend:  backend,
		logger:   log,
		reporter: newReporter(notifier, log),
	}
}

// ReloadMyDocuments fetches the documents owned by the active wallet
func (l *Library) ReloadMyDocuments(ctx context.Context) {
	docs, err := l.backend.MyDocuments(ctx)
	if err != nil {
		l.warn(backendFailure("", "load my documents", err))
		return
	}

	l.mu.Lock()
	l.mine = docs
	l.mu.Unlock()
	l.logger.Debug("my documents loaded", zap.Int("count", len(docs)))
}

// ReloadSharedDocuments fetches the documents shared with the active wallet
func (l *Library) ReloadSharedDocuments(ctx context.Context) {
	docs, err := l.backend.SharedDocuments(ctx)
	if err != nil {
		l.warn(backendFailure("", "load shared documents", err))
		return
	}

	l.mu.Lock()
	l.shared = docs
	l.mu.Unlock()
	l.logger.Debug("shared documents loaded", zap.Int("count", len(docs)))
}

func (l *Library) MyDocuments() []model.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.mine)
}

func (l *Library) SharedDocuments() []model.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.shared)
}

// Clear drops both lists
func (l *Library) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mine = nil
	l.shared = nil
}
