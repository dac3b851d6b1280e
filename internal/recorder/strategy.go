package recorder

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Strategy receives the decoded events in arrival order.
type Strategy interface {
	EnterConfiguration(id string)
	Enter(recID string, now int64, threads ThreadsInfo, exclude bool)
	Exit(recID string, now int64, threads ThreadsInfo, exclude bool)
	FinishRecording(now, threadID int64, cpuTime map[int64]int64)
	MemoryAllocated(recID string, threadID, id, size int64)
	MemoryFreedByRecID(recID string, size int64)
	PrintStatistics(data ProcessData)
	ReadIO(recID, caller string, threadID int64, bytes int32, streamType string)
	WriteIO(recID, caller string, threadID int64, bytes int32, streamType string)
	StartRecording(now, threadID, threadTicks int64)
	StopTimeRecording(now int64, threads ThreadsInfo)
	EndSystem()
	Register(threadID, newID, threadTicks, now int64)
	AssignAllTo(recID string, enter bool, now int64, threads ThreadsInfo)
	PrintCurrentState(data ProcessData)
	NotifyTimer(id string, state TimerState, now, threadID int64)
	NotifyValueChange(id string, valueType ValueType, value any)
	NotifyProgramRecordCreation()
	ClearTemporaryData()
}

// RecorderStats aggregates the events of one recorder id.
type RecorderStats struct {
	Enters         int
	Exits          int
	Allocated      int64
	Freed          int64
	IORead         int64
	IOWrite        int64
	ActiveTime     int64
	Configurations int
}

// DefaultStrategy keeps per recorder id totals and prints them as a table
// when asked for statistics.
type DefaultStrategy struct {
	mu        sync.Mutex
	out       io.Writer
	log       *zap.Logger
	stats     map[string]*RecorderStats
	entered   map[string]int64
	timers    map[string]TimerState
	values    map[string]any
	config    string
	threads   map[int64]int64
	cpuTime   map[int64]int64
	recording bool
	ended     bool
}

// NewDefaultStrategy returns a DefaultStrategy printing to out.
func NewDefaultStrategy(out io.Writer, log *zap.Logger) *DefaultStrategy {
	s := &DefaultStrategy{out: out, log: log}
	s.reset()

	return s
}

func (s *DefaultStrategy) reset() {
	s.stats = make(map[string]*RecorderStats)
	s.entered = make(map[string]int64)
	s.timers = make(map[string]TimerState)
	s.values = make(map[string]any)
	s.threads = make(map[int64]int64)
}

func (s *DefaultStrategy) get(recID string) *RecorderStats {
	st, ok := s.stats[recID]
	if !ok {
		st = &RecorderStats{}
		s.stats[recID] = st
	}

	return st
}

// Stats returns a copy of the totals of recID.
func (s *DefaultStrategy) Stats(recID string) (RecorderStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[recID]
	if !ok {
		return RecorderStats{}, false
	}

	return *st, true
}

// Timer returns the last notified state of timer id.
func (s *DefaultStrategy) Timer(id string) (TimerState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.timers[id]

	return state, ok
}

// Value returns the last notified value of id.
func (s *DefaultStrategy) Value(id string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[id]

	return v, ok
}

// Ended reports whether end-system was applied.
func (s *DefaultStrategy) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ended
}

func (s *DefaultStrategy) EnterConfiguration(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config = id
	s.get(id).Configurations++
}

func (s *DefaultStrategy) Enter(recID string, now int64, _ ThreadsInfo, exclude bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exclude {
		return
	}

	s.get(recID).Enters++
	s.entered[recID] = now
}

func (s *DefaultStrategy) Exit(recID string, now int64, _ ThreadsInfo, exclude bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if exclude {
		return
	}

	st := s.get(recID)
	st.Exits++

	if start, ok := s.entered[recID]; ok {
		st.ActiveTime += now - start
		delete(s.entered, recID)
	}
}

func (s *DefaultStrategy) FinishRecording(_, _ int64, cpuTime map[int64]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recording = false
	s.cpuTime = cpuTime
}

func (s *DefaultStrategy) MemoryAllocated(recID string, _, _, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(recID).Allocated += size
}

func (s *DefaultStrategy) MemoryFreedByRecID(recID string, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(recID).Freed += size
}

// PrintStatistics writes the totals of every recorder id and the process
// measurements to the output.
func (s *DefaultStrategy) PrintStatistics(data ProcessData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprint(s.out, s.renderStatistics(data))
}

func (s *DefaultStrategy) renderStatistics(data ProcessData) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Recorder", "Enter", "Exit", "Allocated", "Freed", "IO Read", "IO Write"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
	})

	ids := lo.Keys(s.stats)
	sort.Strings(ids)

	var total RecorderStats

	for _, id := range ids {
		st := s.stats[id]
		table.Append([]string{
			id,
			fmt.Sprintf("%d", st.Enters),
			fmt.Sprintf("%d", st.Exits),
			fmt.Sprintf("%d", st.Allocated),
			fmt.Sprintf("%d", st.Freed),
			fmt.Sprintf("%d", st.IORead),
			fmt.Sprintf("%d", st.IOWrite),
		})

		total.Enters += st.Enters
		total.Exits += st.Exits
		total.Allocated += st.Allocated
		total.Freed += st.Freed
		total.IORead += st.IORead
		total.IOWrite += st.IOWrite
	}

	table.SetFooter([]string{
		"Total",
		fmt.Sprintf("%d", total.Enters),
		fmt.Sprintf("%d", total.Exits),
		fmt.Sprintf("%d", total.Allocated),
		fmt.Sprintf("%d", total.Freed),
		fmt.Sprintf("%d", total.IORead),
		fmt.Sprintf("%d", total.IOWrite),
	})
	table.Render()

	fmt.Fprintf(&tableBuffer, "system load %.2f (avg %.2f), jvm memory %d..%d\n",
		data.System.Load, data.System.AvgLoad, data.JVM.MinMemUse, data.JVM.MaxMemUse)

	return tableBuffer.String()
}

func (s *DefaultStrategy) ReadIO(recID, _ string, _ int64, bytes int32, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(recID).IORead += int64(bytes)
}

func (s *DefaultStrategy) WriteIO(recID, _ string, _ int64, bytes int32, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.get(recID).IOWrite += int64(bytes)
}

func (s *DefaultStrategy) StartRecording(_, _, _ int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recording = true
}

func (s *DefaultStrategy) StopTimeRecording(int64, ThreadsInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recording = false
}

func (s *DefaultStrategy) EndSystem() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ended = true
	s.log.Info("recording ended", zap.Int("recorders", len(s.stats)), zap.Int("threads", len(s.cpuTime)))
}

func (s *DefaultStrategy) Register(threadID, newID, _, _ int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threads[newID] = threadID
}

func (s *DefaultStrategy) AssignAllTo(recID string, enter bool, now int64, _ ThreadsInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if enter {
		s.entered[recID] = now
	} else if start, ok := s.entered[recID]; ok {
		s.get(recID).ActiveTime += now - start
		delete(s.entered, recID)
	}
}

func (s *DefaultStrategy) PrintCurrentState(data ProcessData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprint(s.out, s.renderStatistics(data))
}

func (s *DefaultStrategy) NotifyTimer(id string, state TimerState, _, _ int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timers[id] = state
}

func (s *DefaultStrategy) NotifyValueChange(id string, _ ValueType, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[id] = value
}

func (s *DefaultStrategy) NotifyProgramRecordCreation() {
	s.log.Debug("program record created")
}

func (s *DefaultStrategy) ClearTemporaryData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entered = make(map[string]int64)
	s.timers = make(map[string]TimerState)
	s.values = make(map[string]any)
}
