package exporter

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voipms-sms-sync/pkg/models"
)

type recordingHandler struct {
	payloads []string
	code     int
	err      error
}

func (h *recordingHandler) Invoke(_ context.Context, payload string) (int, error) {
	h.payloads = append(h.payloads, payload)
	return h.code, h.err
}

func TestPrintExporter_Flush(t *testing.T) {
	tests := []struct {
		name     string
		payloads []string
		expected string
	}{
		{name: "empty", expected: "[]\n"},
		{name: "single", payloads: []string{`{"id":"1"}`}, expected: `[{"id":"1"}]` + "\n"},
		{name: "ordered, no trailing comma", payloads: []string{`{"id":"2"}`, `{"id":"1"}`}, expected: `[{"id":"2"},{"id":"1"}]` + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			e := NewPrintExporter(&out)
			for _, p := range tt.payloads {
				require.NoError(t, e.Deliver(context.Background(), models.Message{}, p))
			}

			require.NoError(t, e.Flush())
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestHandlerExporter_RoutesByDirection(t *testing.T) {
	in, out := &recordingHandler{}, &recordingHandler{}
	e := NewHandlerExporter(in, out)

	require.NoError(t, e.Deliver(context.Background(), models.Message{Direction: models.DirectionInbound}, "a"))
	require.NoError(t, e.Deliver(context.Background(), models.Message{Direction: models.DirectionOutbound}, "b"))
	require.NoError(t, e.Deliver(context.Background(), models.Message{Direction: models.DirectionInbound}, "c"))

	assert.Equal(t, []string{"a", "c"}, in.payloads)
	assert.Equal(t, []string{"b"}, out.payloads)
	assert.NoError(t, e.Flush())
}

func TestHandlerExporter_Failures(t *testing.T) {
	t.Run("non zero exit", func(t *testing.T) {
		e := NewHandlerExporter(&recordingHandler{code: 2}, nil)
		err := e.Deliver(context.Background(), models.Message{Direction: models.DirectionInbound}, "x")
		assert.Error(t, err)
	})

	t.Run("launch error", func(t *testing.T) {
		e := NewHandlerExporter(nil, &recordingHandler{code: -1, err: errors.New("boom")})
		err := e.Deliver(context.Background(), models.Message{Direction: models.DirectionOutbound}, "x")
		assert.EqualError(t, err, "boom")
	})

	t.Run("missing handler", func(t *testing.T) {
		e := NewHandlerExporter(nil, nil)
		err := e.Deliver(context.Background(), models.Message{Direction: models.DirectionOutbound}, "x")
		assert.Error(t, err)
	})
}
