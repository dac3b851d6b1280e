package recorder_test

import (
	"bytes"
	"testing"

	"github.com/mouse-blink/codeeraser/internal/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func apply(s recorder.Strategy, events ...recorder.Event) {
	for _, ev := range events {
		ev.Apply(s)
	}
}

func TestDefaultStrategy_Aggregates(t *testing.T) {
	var out bytes.Buffer

	s := recorder.NewDefaultStrategy(&out, zap.NewNop())
	threads := recorder.ThreadsInfo{ThreadID: 1}

	apply(s,
		&recorder.Enter{RecID: "db", Now: 10, Threads: threads},
		&recorder.MemoryAllocated{RecID: "db", ID: 1, Size: 128},
		&recorder.MemoryAllocated{RecID: "db", ID: 2, Size: 64},
		&recorder.MemoryFreedByRecID{RecID: "db", Size: 32},
		&recorder.IO{RecID: "db", Bytes: 100},
		&recorder.IO{RecID: "db", Bytes: 40, Write: true},
		&recorder.Exit{RecID: "db", Now: 25, Threads: threads},
		&recorder.Enter{RecID: "skip", Now: 1, Exclude: true},
	)

	st, ok := s.Stats("db")
	require.True(t, ok)
	assert.Equal(t, recorder.RecorderStats{
		Enters:     1,
		Exits:      1,
		Allocated:  192,
		Freed:      32,
		IORead:     100,
		IOWrite:    40,
		ActiveTime: 15,
	}, st)

	_, ok = s.Stats("skip")
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestDefaultStrategy_AssignAllTo(t *testing.T) {
	s := recorder.NewDefaultStrategy(&bytes.Buffer{}, zap.NewNop())

	apply(s,
		&recorder.AssignToAll{RecID: "all", Enter: true, Now: 100},
		&recorder.AssignToAll{RecID: "all", Now: 160},
		&recorder.AssignToAll{RecID: "never", Now: 5},
	)

	st, ok := s.Stats("all")
	require.True(t, ok)
	assert.Equal(t, int64(60), st.ActiveTime)
	assert.Zero(t, st.Enters)

	_, ok = s.Stats("never")
	assert.False(t, ok)
}

func TestDefaultStrategy_PrintStatistics(t *testing.T) {
	var out bytes.Buffer

	s := recorder.NewDefaultStrategy(&out, zap.NewNop())

	apply(s,
		&recorder.Enter{RecID: "b", Now: 1},
		&recorder.Enter{RecID: "a", Now: 1},
		&recorder.MemoryAllocated{RecID: "a", Size: 7},
		&recorder.PrintStatistics{Data: recorder.ProcessData{
			System: recorder.Measurements{Load: 0.5, AvgLoad: 0.25},
			JVM:    recorder.Measurements{MinMemUse: 10, MaxMemUse: 20},
		}},
	)

	text := out.String()
	assert.Contains(t, text, "RECORDER")
	assert.Contains(t, text, "IO WRITE")
	assert.Contains(t, text, "TOTAL")
	assert.Contains(t, text, "system load 0.50 (avg 0.25), jvm memory 10..20")

	out.Reset()
	apply(s, &recorder.PrintCurrentState{})
	assert.Contains(t, out.String(), "TOTAL")
}

func TestDefaultStrategy_TimersAndValues(t *testing.T) {
	s := recorder.NewDefaultStrategy(&bytes.Buffer{}, zap.NewNop())

	apply(s,
		&recorder.NotifyTimer{ID: "t", State: recorder.TimerStart},
		&recorder.NotifyTimer{ID: "t", State: recorder.TimerSuspend},
		&recorder.NotifyValue{ID: "v", Type: recorder.ValueInt, Value: int32(4)},
		&recorder.Enter{RecID: "open", Now: 1},
	)

	state, ok := s.Timer("t")
	require.True(t, ok)
	assert.Equal(t, recorder.TimerSuspend, state)

	v, ok := s.Value("v")
	require.True(t, ok)
	assert.Equal(t, int32(4), v)

	apply(s, &recorder.ClearTemporaryData{}, &recorder.Exit{RecID: "open", Now: 9})

	_, ok = s.Timer("t")
	assert.False(t, ok)

	_, ok = s.Value("v")
	assert.False(t, ok)

	st, _ := s.Stats("open")
	assert.Zero(t, st.ActiveTime)
	assert.Equal(t, 1, st.Exits)
}

func TestDefaultStrategy_EndSystem(t *testing.T) {
	s := recorder.NewDefaultStrategy(&bytes.Buffer{}, zap.NewNop())

	assert.False(t, s.Ended())

	apply(s, &recorder.ProgramRecordCreation{}, &recorder.EndSystem{})

	assert.True(t, s.Ended())
}
