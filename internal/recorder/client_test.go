package recorder_test

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/mouse-blink/codeeraser/internal/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func closedAddr(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

func TestDial_GivesUpAfterRetries(t *testing.T) {
	addr := closedAddr(t)

	_, err := recorder.Dial(context.Background(), addr, recorder.SessionConfig{}, zap.NewNop(),
		recorder.WithRetries(1), recorder.WithInitialInterval(time.Millisecond))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to "+addr)
}

func TestDial_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := recorder.Dial(ctx, closedAddr(t), recorder.SessionConfig{}, zap.NewNop(),
		recorder.WithInitialInterval(time.Millisecond))

	assert.Error(t, err)
}

func TestClient_CopyReplaysRecording(t *testing.T) {
	var out bytes.Buffer

	strategy := recorder.NewDefaultStrategy(&out, zap.NewNop())
	rs := startServer(t, strategy)

	stream := encodeStream(t, sampleConfig(), sampleEvents()...)
	dec := recorder.NewDecoder(bytes.NewReader(stream))

	cfg, err := dec.ReadConfig()
	require.NoError(t, err)

	client, err := recorder.Dial(context.Background(), rs.srv.Addr().String(), cfg, zap.NewNop())
	require.NoError(t, err)

	n, err := client.Copy(dec)
	require.NoError(t, err)
	assert.Equal(t, len(sampleEvents()), n)
	require.NoError(t, client.Close())

	require.NoError(t, rs.wait(t))

	assert.True(t, strategy.Ended())

	st, ok := strategy.Stats("mem")
	require.True(t, ok)
	assert.Equal(t, int64(64), st.Allocated)
	assert.Equal(t, int64(32), st.Freed)

	io, ok := strategy.Stats("io")
	require.True(t, ok)
	assert.Equal(t, int64(512), io.IOWrite)

	// clear-temporary-data precedes end-system in the recording
	_, ok = strategy.Value("str")
	assert.False(t, ok)

	require.Len(t, rs.srv.Sessions(), 1)
	assert.Equal(t, "out.csv", rs.srv.Sessions()[0].OutFileName)
	assert.Contains(t, out.String(), "TOTAL")
}
