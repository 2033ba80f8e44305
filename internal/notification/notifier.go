package notification

import (
	"time"

	"go.uber.org/zap"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Toast is the payload pushed to connected clients for each notification.
type Toast struct {
	Title    string    `json:"title"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	SentAt   time.Time `json:"sent_at"`
}

// Notifier is the fire-and-forget toast boundary. Callers never consult a result.
type Notifier interface {
	Notify(title, message string, severity Severity)
}

// Service logs every notification and, when a hub is attached, broadcasts it
// to connected clients. Broadcast failures are swallowed: a toast that cannot
// be delivered must never fail the operation that produced it.
type Service struct {
	hub *Hub
	log *zap.Logger
}

func NewService(hub *Hub, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{hub: hub, log: log}
}

func (s *Service) Notify(title, message string, severity Severity) {
	s.log.Info("notification",
		zap.String("title", title),
		zap.String("message", message),
		zap.String("severity", string(severity)),
	)

	if s.hub == nil {
		return
	}
	s.hub.Broadcast(envelope{
		Type: "toast",
		Data: Toast{Title: title, Message: message, Severity: severity, SentAt: time.Now()},
	})
}
