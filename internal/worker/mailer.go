package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/gym-service/internal/config"
)

// Message is a rendered mail ready for delivery.
type Message struct {
	To       string
	Subject  string
	Template string
	Context  map[string]string
}

// Mailer delivers rendered messages. Implementations decide transport.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer logs messages instead of sending them.
type LogMailer struct {
	logger *zap.Logger
	cfg    config.MailConfig
}

func NewLogMailer(logger *zap.Logger, cfg config.MailConfig) *LogMailer {
	return &LogMailer{logger: logger, cfg: cfg}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	fields := []zap.Field{
		zap.String("from", m.cfg.From),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("template", msg.Template),
	}
	for k, v := range msg.Context {
		fields = append(fields, zap.String("ctx_"+k, v))
	}
	m.logger.Info("mail delivered", fields...)
	return nil
}
