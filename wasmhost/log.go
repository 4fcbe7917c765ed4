package wasmhost

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/tetratelabs/wazero/api"
)

// guestLogMessage is the wire form of a log record emitted by a guest
// integration through the log_message host function.
type guestLogMessage struct {
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Attrs   []guestLogAttr `json:"attrs,omitempty"`
}

type guestLogAttr struct {
	Key   string `json:"key"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// logMessage implements the log_message host function. The guest passes a
// packed ptr+len pointing at a JSON guestLogMessage.
func (e *Executor) logMessage(ctx context.Context, mod api.Module, stack []uint64) {
	ptr, length := unpackPtrLen(stack[0])

	data, ok := mod.Memory().Read(ptr, length)
	if !ok {
		e.logger.ErrorContext(ctx, "wasm guest log unreadable", "ptr", ptr, "len", length)
		return
	}

	var msg guestLogMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		e.logger.ErrorContext(ctx, "wasm guest log not JSON", "error", err)
		return
	}

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(msg.Level)); err != nil {
		e.logger.Warn("wasm guest used unknown log level", "level", msg.Level)
	}

	e.logger.LogAttrs(ctx, level, msg.Message, convertGuestAttrs(msg.Attrs)...)
}

func convertGuestAttrs(wire []guestLogAttr) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(wire))
	for _, a := range wire {
		attrs = append(attrs, convertGuestAttr(a))
	}
	return attrs
}

func convertGuestAttr(a guestLogAttr) slog.Attr {
	switch a.Type {
	case "string":
		return slog.String(a.Key, a.Value)
	case "int64":
		if v, err := strconv.ParseInt(a.Value, 10, 64); err == nil {
			return slog.Int64(a.Key, v)
		}
	case "bool":
		if v, err := strconv.ParseBool(a.Value); err == nil {
			return slog.Bool(a.Key, v)
		}
	case "float64":
		if v, err := strconv.ParseFloat(a.Value, 64); err == nil {
			return slog.Float64(a.Key, v)
		}
	}
	return slog.Any(a.Key, a.Value)
}
