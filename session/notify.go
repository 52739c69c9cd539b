package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlexZinkM/docuchain-wallet/internal/logger"
)

// Notification levels
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// DefaultInboxSize is how many notifications an Inbox keeps
const DefaultInboxSize = 50

// Notification is a non-blocking message for the user
type Notification struct {
	ID        string
	Level     string
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Notifier receives notifications. Notify must not block.
type Notifier interface {
	Notify(n Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

// Inbox keeps the most recent notifications and logs each one
type Inbox struct {
	logger *zap.Logger
	size   int

	mu    sync.Mutex
	items []Notification
}

// NewInbox creates an inbox holding up to size notifications
func NewInbox(size int, log *zap.Logger) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	return &Inbox{logger: logger.OrNop(log), size: size}
}

func (i *Inbox) Notify(n Notification) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	fields := []zap.Field{zap.String("id", n.ID), zap.String("level", n.Level)}
	if n.Kind != "" {
		fields = append(fields, zap.String("kind", string(n.Kind)))
	}
	switch n.Level {
	case LevelError:
		i.logger.Error(n.Message, fields...)
	case LevelWarning:
		i.logger.Warn(n.Message, fields...)
	default:
		i.logger.Info(n.Message, fields...)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.items = append(i.items, n)
	if len(i.items) > i.size {
		i.items = slices.Delete(i.items, 0, len(i.items)-i.size)
	}
}

// Snapshot returns the kept notifications, oldest first
func (i *Inbox) Snapshot() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	return slices.Clone(i.items)
}

// reporter turns failures into notifications
type reporter struct {
	notifier Notifier
	logger   *zap.Logger
}

func newReporter(notifier Notifier, log *zap.Logger) reporter {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return reporter{notifier: notifier, logger: logger.OrNop(log)}
}

// fail reports err and returns it. Superseded requests are logged only.
func (r reporter) fail(err *Error) error {
	r.logger.Debug("session operation failed",
		zap.String("kind", string(err.Kind)),
		zap.String("wallet", err.Wallet),
		zap.Error(err.Err),
		zap.String("message", err.Message),
	)
	if err.Kind != Superseded {
		r.notifier.Notify(Notification{Level: LevelError, Kind: err.Kind, Message: err.UserMessage()})
	}
	return err
}

// warn reports a failure that does not fail the operation
func (r reporter) warn(err *Error) {
	r.logger.Debug(err.Message, zap.String("kind", string(err.Kind)), zap.String("wallet", err.Wallet), zap.Error(err.Err))
	r.notifier.Notify(Notification{Level: LevelWarning, Kind: err.Kind, Message: err.UserMessage()})
}

func (r reporter) tell(level, message string) {
	r.notifier.Notify(Notification{Level: level, Message: message})
}
