package agent

import (
	"context"
	"strings"
	"sync"

	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// defaultConsoleCap bounds the in-memory console log. Older messages are
// dropped first; a health-check step cares about recent output.
const defaultConsoleCap = 500

// ConsoleMessage is a single browser console entry.
type ConsoleMessage struct {
	// Level is the console API level: "log", "info", "warning", "error", etc.
	Level string `yaml:"level" json:"level"`

	// Text is the stringified message arguments.
	Text string `yaml:"text" json:"text"`
}

// IsError reports whether the message came from console.error or an
// uncaught exception surfaced at error level.
func (m ConsoleMessage) IsError() bool {
	return m.Level == "error"
}

// consoleLog is a bounded, concurrency-safe console message buffer.
type consoleLog struct {
	mu  sync.Mutex
	cap int
	buf []ConsoleMessage
}

func newConsoleLog(capacity int) *consoleLog {
	return &consoleLog{cap: capacity}
}

func (l *consoleLog) add(m ConsoleMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = append(l.buf, m)
	if len(l.buf) > l.cap {
		l.buf = l.buf[len(l.buf)-l.cap:]
	}
}

func (l *consoleLog) reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.buf = nil
}

func (l *consoleLog) messages(errorsOnly bool) []ConsoleMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]ConsoleMessage, 0, len(l.buf))
	for _, m := range l.buf {
		if errorsOnly && !m.IsError() {
			continue
		}
		out = append(out, m)
	}
	return out
}

// startConsoleCapture subscribes to CDP console events for the lifetime of
// the given context.
func (b *Browser) startConsoleCapture(ctx context.Context) {
	page := b.page
	wait := page.Context(ctx).EachEvent(func(ev *proto.RuntimeConsoleAPICalled) {
		msg := ConsoleMessage{
			Level: string(ev.Type),
			Text:  stringifyConsoleArgs(ev.Args),
		}
		b.console.add(msg)
		if msg.IsError() {
			b.log.Debug("console error", zap.String("text", msg.Text))
		}
	})
	go wait()
}

// ConsoleMessages returns the messages collected since the last navigation,
// optionally filtered to errors only.
func (b *Browser) ConsoleMessages(ctx context.Context, errorsOnly bool) ([]ConsoleMessage, error) {
	if _, err := b.livePage(); err != nil {
		return nil, err
	}
	return b.console.messages(errorsOnly), nil
}

func stringifyConsoleArgs(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if !a.Value.Nil() {
			parts = append(parts, a.Value.String())
			continue
		}
		if a.Description != "" {
			parts = append(parts, a.Description)
		}
	}
	return strings.Join(parts, " ")
}
