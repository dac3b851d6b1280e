package recorder_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mouse-blink/codeeraser/internal/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleConfig() recorder.SessionConfig {
	return recorder.SessionConfig{
		BaseDir:               "/tmp/rec",
		OutFileName:           "out.csv",
		InstrumentJavaLib:     true,
		OutInterval:           5,
		PrintStatistics:       true,
		RegisterThreads:       true,
		ExcludeClasses:        "java.*",
		GroupAccountingType:   2,
		MainDefault:           1,
		AccountableResources:  []int32{0, 1, 2},
		DefaultGroupResources: []int32{1},
		Params:                map[string]string{"mode": "fast", "trace": "on"},
	}
}

func sampleEvents() []recorder.Event {
	threads := recorder.ThreadsInfo{Ticks: 1200, ThreadID: 7}
	data := recorder.ProcessData{
		System: recorder.Measurements{AvgLoad: 0.5, Load: 0.75, MinLoad: 0.1, MaxLoad: 0.9, MinMemUse: 10, MaxMemUse: 90, Status: 1},
		JVM:    recorder.Measurements{MemUse: 1024, IORead: 5, IOWrite: 6, SystemTime: 99},
	}

	return []recorder.Event{
		&recorder.EnterConfiguration{ID: "cfg-1"},
		&recorder.Enter{RecID: "mem", Now: 100, Threads: threads},
		&recorder.Exit{RecID: "mem", Now: 150, Threads: threads, Exclude: true},
		&recorder.FinishRecording{Now: 200, ThreadID: 7, CPUTime: map[int64]int64{7: 30, 1: 12}},
		&recorder.MemoryAllocated{RecID: "mem", ID: 3, Size: 64, ThreadID: 7},
		&recorder.MemoryFreedByRecID{RecID: "mem", Size: 32},
		&recorder.PrintStatistics{Data: data},
		&recorder.IO{RecID: "io", Caller: "java.net.Socket", Bytes: 512, StreamType: "NET", ThreadID: 7, Write: true},
		&recorder.StartRecording{Now: 1, ThreadID: 7, ThreadTicks: 2},
		&recorder.StopTimeRecording{Now: 300, Threads: threads},
		&recorder.Register{ThreadID: 7, NewID: 8, ThreadTicks: 4, Now: 5},
		&recorder.AssignToAll{RecID: "all", Enter: true, Now: 6, Threads: threads},
		&recorder.PrintCurrentState{Data: data},
		&recorder.NotifyTimer{ID: "t", Now: 7, ThreadID: 8, State: recorder.TimerResumeSuspend},
		&recorder.NotifyValue{ID: "d", Type: recorder.ValueDouble, Value: 2.5},
		&recorder.NotifyValue{ID: "f", Type: recorder.ValueFloat, Value: float32(1.25)},
		&recorder.NotifyValue{ID: "i", Type: recorder.ValueInt, Value: int32(-3)},
		&recorder.NotifyValue{ID: "l", Type: recorder.ValueLong, Value: int64(1 << 40)},
		&recorder.NotifyValue{ID: "c", Type: recorder.ValueChar, Value: uint16('x')},
		&recorder.NotifyValue{ID: "b", Type: recorder.ValueBoolean, Value: true},
		&recorder.NotifyValue{ID: "s", Type: recorder.ValueShort, Value: int16(-2)},
		&recorder.NotifyValue{ID: "y", Type: recorder.ValueByte, Value: int8(-1)},
		&recorder.NotifyValue{ID: "str", Type: recorder.ValueString, Value: "käse"},
		&recorder.ProgramRecordCreation{},
		&recorder.ClearTemporaryData{},
		&recorder.EndSystem{},
	}
}

func encodeStream(t *testing.T, cfg recorder.SessionConfig, events ...recorder.Event) []byte {
	t.Helper()

	var buf bytes.Buffer

	enc := recorder.NewEncoder(&buf)
	require.NoError(t, enc.WriteConfig(cfg))

	for _, ev := range events {
		require.NoError(t, enc.WriteEvent(ev))
	}

	require.NoError(t, enc.Flush())

	return buf.Bytes()
}

func TestCodec_RoundTrip(t *testing.T) {
	events := sampleEvents()
	dec := recorder.NewDecoder(bytes.NewReader(encodeStream(t, sampleConfig(), events...)))

	cfg, err := dec.ReadConfig()
	require.NoError(t, err)

	if diff := cmp.Diff(sampleConfig(), cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	for _, want := range events {
		got, err := dec.ReadEvent()
		require.NoError(t, err)

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s mismatch (-want +got):\n%s", want.Kind(), diff)
		}
	}

	_, err = dec.ReadEvent()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCodec_WireLayout(t *testing.T) {
	tests := []struct {
		name string
		ev   recorder.Event
		want []byte
	}{
		{
			name: "null string",
			ev:   &recorder.EnterConfiguration{},
			want: []byte{0, 0, 0, 0, 0, 0},
		},
		{
			name: "modified utf-8",
			ev:   &recorder.EnterConfiguration{ID: "a\x00"},
			want: []byte{0, 0, 0, 0, 0, 1, 0, 3, 'a', 0xc0, 0x80},
		},
		{
			name: "end system",
			ev:   &recorder.EndSystem{},
			want: []byte{0, 0, 0, 13},
		},
		{
			name: "memory freed",
			ev:   &recorder.MemoryFreedByRecID{RecID: "m", Size: 2},
			want: []byte{0, 0, 0, 5, 0, 1, 0, 1, 'm', 0, 0, 0, 0, 0, 0, 0, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			enc := recorder.NewEncoder(&buf)
			require.NoError(t, enc.WriteEvent(tt.ev))
			require.NoError(t, enc.Flush())

			assert.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestCodec_Errors(t *testing.T) {
	t.Run("unknown identification", func(t *testing.T) {
		dec := recorder.NewDecoder(bytes.NewReader([]byte{0, 0, 0, 6}))

		_, err := dec.ReadEvent()
		assert.ErrorIs(t, err, recorder.ErrUnknownEvent)
	})

	t.Run("truncated payload", func(t *testing.T) {
		dec := recorder.NewDecoder(bytes.NewReader([]byte{0, 0, 0, 5, 0, 1}))

		_, err := dec.ReadEvent()
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.False(t, errors.Is(err, io.EOF))
	})

	t.Run("truncated config", func(t *testing.T) {
		dec := recorder.NewDecoder(bytes.NewReader([]byte{0, 1, 0, 4, 'a'}))

		_, err := dec.ReadConfig()
		assert.Error(t, err)
	})

	t.Run("negative map size", func(t *testing.T) {
		stream := []byte{0, 0, 0, 3}
		stream = append(stream, make([]byte, 16)...)
		stream = append(stream, 0xff, 0xff, 0xff, 0xff)

		_, err := recorder.NewDecoder(bytes.NewReader(stream)).ReadEvent()
		assert.ErrorContains(t, err, "negative map size")
	})
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "end-system", recorder.KindEndSystem.String())
	assert.Equal(t, "memory-freed-by-recid", recorder.KindMemoryFreedByRecID.String())
	assert.Equal(t, "kind-6", recorder.Kind(6).String())
}
