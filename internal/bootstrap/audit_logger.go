package bootstrap

import "go.uber.org/zap"

// AuditLog is a lifecycle event worth keeping outside request logs:
// startup, shutdown, configuration problems.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]string
}

type AuditLogger interface {
	Log(entry AuditLog)
}

type zapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger *zap.Logger) AuditLogger {
	return &zapAuditLogger{logger: logger.Named("lifecycle")}
}

func (l *zapAuditLogger) Log(entry AuditLog) {
	fields := make([]zap.Field, 0, len(entry.Meta)+1)
	fields = append(fields, zap.String("action", entry.Action))
	for k, v := range entry.Meta {
		fields = append(fields, zap.String(k, v))
	}
	l.logger.Info(entry.Message, fields...)
}
