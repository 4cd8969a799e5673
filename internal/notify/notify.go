// Package notify carries transient user-facing messages (toasts).
//
// Delivery is fire-and-forget: a Sink has no return value and makes no ordering
// promise relative to screen redraws.
package notify

import (
	"go.uber.org/zap"
)

type Level int

const (
	Success Level = iota
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

type Sink interface {
	Notify(level Level, text string)
}

// Func adapts a function to a Sink.
type Func func(level Level, text string)

func (f Func) Notify(level Level, text string) { f(level, text) }

// Discard drops every message.
var Discard Sink = Func(func(Level, string) {})

// Logged forwards to next and records every message on l.
func Logged(next Sink, l *zap.Logger) Sink {
	if l == nil {
		return next
	}
	return Func(func(level Level, text string) {
		switch level {
		case Error:
			l.Warn("notify", zap.Stringer("level", level), zap.String("text", text))
		default:
			l.Info("notify", zap.Stringer("level", level), zap.String("text", text))
		}
		if next != nil {
			next.Notify(level, text)
		}
	})
}

type Message struct {
	Level Level
	Text  string
}

// Recorder keeps every message it receives, in order.
type Recorder struct {
	Messages []Message
}

func (r *Recorder) Notify(level Level, text string) {
	r.Messages = append(r.Messages, Message{Level: level, Text: text})
}

// Count returns how many messages of level were received.
func (r *Recorder) Count(level Level) int {
	n := 0
	for _, m := range r.Messages {
		if m.Level == level {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() { r.Messages = nil }

// Tee delivers every message to each non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	var out []Sink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return Func(func(level Level, text string) {
		for _, s := range out {
			s.Notify(level, text)
		}
	})
}
