package logger

import (
	"context"

	"github.com/Gunvolt24/wb_streams/pkg/ctxmeta"
	"go.uber.org/zap"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := &ZapLogger{
		base:   logger,
		sugar:  logger.Sugar(),
		isProd: isProd,
	}

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.enrich(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.enrich(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.enrich(ctx).Errorf(format, args...)
}

// enrich — добавляет к записи метаданные из контекста (request_id, topic).
func (z *ZapLogger) enrich(ctx context.Context) *zap.SugaredLogger {
	s := z.sugar
	if ctx == nil {
		return s
	}
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		s = s.With("request_id", rid)
	}
	if topic, ok := ctxmeta.TopicFromContext(ctx); ok {
		s = s.With("topic", topic)
	}
	return s
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
