package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggedForwardsAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := &Recorder{}
	sink := Logged(rec, zap.New(core))

	sink.Notify(Success, "User added")
	sink.Notify(Error, "Mobile number must contain digits only")

	require.Equal(t, 1, rec.Count(Success))
	require.Equal(t, 1, rec.Count(Error))
	require.Equal(t, "User added", rec.Messages[0].Text)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, zapcore.InfoLevel, entries[0].Level)
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
	require.Equal(t, "error", entries[1].ContextMap()["level"])
}

func TestLoggedWithoutLoggerReturnsNext(t *testing.T) {
	rec := &Recorder{}
	sink := Logged(rec, nil)
	sink.Notify(Success, "ok")
	require.Len(t, rec.Messages, 1)
}

func TestDiscard(t *testing.T) {
	Discard.Notify(Error, "dropped")
}

func TestTeeSkipsNilSinks(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	sink := Tee(a, nil, b)
	sink.Notify(Success, "User deleted")
	require.Equal(t, a.Messages, b.Messages)
	require.Len(t, a.Messages, 1)
}
