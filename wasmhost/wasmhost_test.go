package wasmhost

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackPtrLenRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ptr    uint32
		length uint32
	}{
		{"zero", 0, 0},
		{"small", 16, 128},
		{"page boundary", 65536, 4096},
		{"max values", ^uint32(0), ^uint32(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ptr, length := unpackPtrLen(packPtrLen(tt.ptr, tt.length))
			assert.Equal(t, tt.ptr, ptr)
			assert.Equal(t, tt.length, length)
		})
	}
}

func TestConvertGuestAttr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		attr guestLogAttr
		want slog.Attr
	}{
		{"string", guestLogAttr{Key: "model", Type: "string", Value: "resnet50"}, slog.String("model", "resnet50")},
		{"int64", guestLogAttr{Key: "epochs", Type: "int64", Value: "42"}, slog.Int64("epochs", 42)},
		{"bool", guestLogAttr{Key: "resume", Type: "bool", Value: "true"}, slog.Bool("resume", true)},
		{"float64", guestLogAttr{Key: "lr", Type: "float64", Value: "0.01"}, slog.Float64("lr", 0.01)},
		{"bad int falls back to string", guestLogAttr{Key: "epochs", Type: "int64", Value: "many"}, slog.Any("epochs", "many")},
		{"unknown type falls back", guestLogAttr{Key: "k", Type: "blob", Value: "v"}, slog.Any("k", "v")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.want.Equal(convertGuestAttr(tt.attr)))
		})
	}
}
