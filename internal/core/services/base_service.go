package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/referral_pipeline/internal/middleware"
)

// BaseService is embedded by every service to log through the request-scoped logger.
type BaseService struct{}

func (s *BaseService) log(ctx context.Context, level slog.Level, msg string, attrs []any) {
	middleware.GetLoggerFromCtx(ctx).Log(ctx, level, msg, attrs...)
}

// LogError logs msg at ERROR with err attached under "error".
func (s *BaseService) LogError(ctx context.Context, err error, msg string, attrs ...any) {
	s.log(ctx, slog.LevelError, msg, append([]any{slog.Any("error", err)}, attrs...))
}

func (s *BaseService) LogWarn(ctx context.Context, msg string, attrs ...any) {
	s.log(ctx, slog.LevelWarn, msg, attrs)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, attrs ...any) {
	s.log(ctx, slog.LevelInfo, msg, attrs)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, attrs ...any) {
	s.log(ctx, slog.LevelDebug, msg, attrs)
}
