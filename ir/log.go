package ir

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
)

// slogExpr wraps an Expr as a slog.LogValuer to not render expression strings
// unless they definitely need to be logged
func slogExpr(expr Expr) slog.LogValuer {
	return exprLogValuer{expr}
}
func slogType(t Type) slog.LogValuer { return typeLogValuer{t} }

type exprLogValuer struct{ Expr }
type typeLogValuer struct{ Type }

func (l exprLogValuer) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("str", ExprString(l.Expr)),
		slog.String("type", TypeString(l.Type())),
		slog.String("hash", fmt.Sprintf("%x", l.Hash())),
		slog.String("name", l.Describe()),
	)
}
func (l typeLogValuer) LogValue() slog.Value { return slog.StringValue(TypeString(l.Type)) }

// LogHandler is a slog.Handler capable of lazy-printing expression trees and types
func LogHandler(underlying slog.Handler) slog.Handler {
	return &exprLogHandler{underlying: underlying}
}

// Logger wraps the handler of underlying in a LogHandler
func Logger(underlying *slog.Logger) *slog.Logger {
	return slog.New(LogHandler(underlying.Handler()))
}

type exprLogHandler struct {
	underlying slog.Handler
}

func (l *exprLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return l.underlying.Enabled(ctx, level)
}

func (l *exprLogHandler) Handle(ctx context.Context, record slog.Record) error {
	newRecord := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	// for each attr, add it wrapped in slogExpr if it is an Any and then an Expr
	record.Attrs(func(attr slog.Attr) bool {
		newRecord.AddAttrs(wrapAttr(attr))
		return true
	})
	return l.underlying.Handle(ctx, newRecord)
}

func (l *exprLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	wrapped := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		wrapped[i] = wrapAttr(attr)
	}
	return LogHandler(l.underlying.WithAttrs(wrapped))
}

func (l *exprLogHandler) WithGroup(name string) slog.Handler {
	return LogHandler(l.underlying.WithGroup(name))
}

func wrapAttr(attr slog.Attr) slog.Attr {
	if attr.Value.Kind() != slog.KindAny {
		return attr
	}
	switch value := attr.Value.Any().(type) {
	case Expr:
		attr.Value = slog.AnyValue(slogExpr(value))
	case Type:
		attr.Value = slog.AnyValue(slogType(value))
	case []Expr:
		strs := make([]string, len(value))
		for i, e := range value {
			strs[i] = ExprString(e)
		}
		attr.Value = slog.AnyValue(strs)
	}
	return attr
}

func reflectTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
