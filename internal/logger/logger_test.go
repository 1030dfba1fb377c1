package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologAdapterWritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info(ComponentBatch, "slice done", map[string]interface{}{FieldSlice: "img_2"})

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "info", event["level"])
	assert.Equal(t, "batch", event["component"])
	assert.Equal(t, "img_2", event["slice"])
	assert.Equal(t, "slice done", event["message"])
}

func TestZerologAdapterError(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.InfoLevel)

	log.Error("report", errors.New("disk full"), nil)

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "error", event["level"])
	assert.Equal(t, "disk full", event["error"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.WarnLevel)

	log.Debug("x", "hidden", nil)
	log.Info("x", "hidden", nil)
	assert.Zero(t, buf.Len())

	log.Warning("x", "shown", nil)
	assert.NotZero(t, buf.Len())
}

func TestForRunTagsEveryEvent(t *testing.T) {
	var buf bytes.Buffer
	log := ForRun(NewZerolog(&buf, zerolog.InfoLevel), "abc")

	log.Info(ComponentBatch, "start", nil)
	log.With(map[string]interface{}{FieldSlice: "img_3"}).Warning(ComponentBatch, "slow", nil)

	dec := json.NewDecoder(&buf)
	for _, slice := range []interface{}{nil, "img_3"} {
		var event map[string]interface{}
		require.NoError(t, dec.Decode(&event))
		assert.Equal(t, "abc", event[FieldRun])
		assert.Equal(t, ComponentBatch, event["component"])
		assert.Equal(t, slice, event[FieldSlice])
	}
}

func TestNopSatisfiesLogger(t *testing.T) {
	var log Logger = Nop()
	assert.NotPanics(t, func() {
		ForRun(log, "x").Error(ComponentCLI, errors.New("ignored"), nil)
	})
}
