package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// SlogLogger é a implementação concreta da interface Logger
// que escreve uma linha JSON por entrada via log/slog.
type SlogLogger struct {
	base *slog.Logger
}

// NewLogger cria e retorna uma nova instância do Logger escrevendo em stdout.
func NewLogger(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter cria um Logger que escreve no writer informado (útil em testes).
func NewWithWriter(w io.Writer, level string) Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &SlogLogger{base: slog.New(handler)}
}

// parseLevel traduz o nível textual; desconhecidos caem em info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "fatal":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *SlogLogger) log(level slog.Level, msg string, fields map[string]interface{}, err error) {
	ctx := context.Background()
	if !l.base.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, len(fields)+1)
	if len(fields) > 0 {
		group := make([]any, 0, len(fields)*2)
		for k, v := range fields {
			group = append(group, k, v)
		}
		attrs = append(attrs, slog.Group("fields", group...))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.base.LogAttrs(ctx, level, msg, attrs...)
}

func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields, nil)
}

func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields, nil)
}

func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields, nil)
}

func (l *SlogLogger) Error(msg string, err error) {
	l.log(slog.LevelError, msg, nil, err)
}

// Fatal registra o erro e encerra o processo.
func (l *SlogLogger) Fatal(msg string, err error) {
	l.log(slog.LevelError, msg, map[string]interface{}{"fatal": true}, err)
	os.Exit(1)
}

// Nop devolve um Logger que descarta tudo.
func Nop() Logger {
	return NewWithWriter(io.Discard, "error")
}
