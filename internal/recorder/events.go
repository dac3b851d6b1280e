package recorder

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the identification code that precedes every event on the wire.
type Kind int32

// Identification codes. 6, 7 and 12 are unused.
const (
	KindEnterConfiguration    Kind = 0
	KindEnter                 Kind = 1
	KindExit                  Kind = 2
	KindFinishRecording       Kind = 3
	KindMemoryAllocated       Kind = 4
	KindMemoryFreedByRecID    Kind = 5
	KindPrintStatistics       Kind = 8
	KindIO                    Kind = 9
	KindStartRecording        Kind = 10
	KindStopTimeRecording     Kind = 11
	KindEndSystem             Kind = 13
	KindRegister              Kind = 14
	KindAssignToAll           Kind = 15
	KindPrintCurrentState     Kind = 16
	KindNotifyTimer           Kind = 17
	KindNotifyValue           Kind = 18
	KindProgramRecordCreation Kind = 19
	KindClearTemporaryData    Kind = 20
)

var kindNames = map[Kind]string{
	KindEnterConfiguration:    "enter-configuration",
	KindEnter:                 "enter",
	KindExit:                  "exit",
	KindFinishRecording:       "finish-recording",
	KindMemoryAllocated:       "memory-allocated",
	KindMemoryFreedByRecID:    "memory-freed-by-recid",
	KindPrintStatistics:       "print-statistics",
	KindIO:                    "io",
	KindStartRecording:        "start-recording",
	KindStopTimeRecording:     "stop-time-recording",
	KindEndSystem:             "end-system",
	KindRegister:              "register",
	KindAssignToAll:           "assign-to-all",
	KindPrintCurrentState:     "print-current-state",
	KindNotifyTimer:           "notify-timer",
	KindNotifyValue:           "notify-value",
	KindProgramRecordCreation: "program-record-creation",
	KindClearTemporaryData:    "clear-temporary-data",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "kind-" + strconv.Itoa(int(k))
}

// Event is one recording element. Apply dispatches it to the matching
// Strategy method.
type Event interface {
	Kind() Kind
	Apply(s Strategy)
	encode(e *Encoder)
	decode(d *Decoder)
}

// NewEvent returns a zero event of kind k.
func NewEvent(k Kind) (Event, error) {
	switch k {
	case KindEnterConfiguration:
		return &EnterConfiguration{}, nil
	case KindEnter:
		return &Enter{}, nil
	case KindExit:
		return &Exit{}, nil
	case KindFinishRecording:
		return &FinishRecording{}, nil
	case KindMemoryAllocated:
		return &MemoryAllocated{}, nil
	case KindMemoryFreedByRecID:
		return &MemoryFreedByRecID{}, nil
	case KindPrintStatistics:
		return &PrintStatistics{}, nil
	case KindIO:
		return &IO{}, nil
	case KindStartRecording:
		return &StartRecording{}, nil
	case KindStopTimeRecording:
		return &StopTimeRecording{}, nil
	case KindEndSystem:
		return &EndSystem{}, nil
	case KindRegister:
		return &Register{}, nil
	case KindAssignToAll:
		return &AssignToAll{}, nil
	case KindPrintCurrentState:
		return &PrintCurrentState{}, nil
	case KindNotifyTimer:
		return &NotifyTimer{}, nil
	case KindNotifyValue:
		return &NotifyValue{}, nil
	case KindProgramRecordCreation:
		return &ProgramRecordCreation{}, nil
	case KindClearTemporaryData:
		return &ClearTemporaryData{}, nil
	default:
		return nil, fmt.Errorf("%w: identification %d", ErrUnknownEvent, int32(k))
	}
}

// ThreadsInfo is the thread snapshot carried by enter and exit events.
type ThreadsInfo struct {
	Ticks    int64
	ThreadID int64
}

func (t ThreadsInfo) encode(e *Encoder) {
	e.writeInt64(t.Ticks)
	e.writeInt64(t.ThreadID)
}

func (t *ThreadsInfo) decode(d *Decoder) {
	t.Ticks = d.readInt64()
	t.ThreadID = d.readInt64()
}

// Measurements is one block of resource measurements.
type Measurements struct {
	AvgLoad    float64
	Load       float64
	MinLoad    float64
	MaxLoad    float64
	AvgMemUse  float64
	MemUse     float64
	MinMemUse  int64
	MaxMemUse  int64
	SystemTime int64
	IORead     int64
	IOWrite    int64
	Status     int32
}

func (m Measurements) encode(e *Encoder) {
	e.writeFloat64(m.AvgLoad)
	e.writeFloat64(m.Load)
	e.writeFloat64(m.MinLoad)
	e.writeFloat64(m.MaxLoad)
	e.writeFloat64(m.AvgMemUse)
	e.writeFloat64(m.MemUse)
	e.writeInt64(m.MinMemUse)
	e.writeInt64(m.MaxMemUse)
	e.writeInt64(m.SystemTime)
	e.writeInt64(m.IORead)
	e.writeInt64(m.IOWrite)
	e.writeInt32(m.Status)
}

func (m *Measurements) decode(d *Decoder) {
	m.AvgLoad = d.readFloat64()
	m.Load = d.readFloat64()
	m.MinLoad = d.readFloat64()
	m.MaxLoad = d.readFloat64()
	m.AvgMemUse = d.readFloat64()
	m.MemUse = d.readFloat64()
	m.MinMemUse = d.readInt64()
	m.MaxMemUse = d.readInt64()
	m.SystemTime = d.readInt64()
	m.IORead = d.readInt64()
	m.IOWrite = d.readInt64()
	m.Status = d.readInt32()
}

// ProcessData holds the system-wide and the JVM measurements.
type ProcessData struct {
	System Measurements
	JVM    Measurements
}

func (p ProcessData) encode(e *Encoder) {
	p.System.encode(e)
	p.JVM.encode(e)
}

func (p *ProcessData) decode(d *Decoder) {
	p.System.decode(d)
	p.JVM.decode(d)
}

// TimerState is the ordinal of a timer notification.
type TimerState int32

// Timer states.
const (
	TimerStart TimerState = iota
	TimerSuspend
	TimerResume
	TimerFinish
	TimerStartFinish
	TimerResumeSuspend
	TimerSuspendResume
)

// ValueType is the ordinal of the type of a notified value.
type ValueType int32

// Value types. The Go type of NotifyValue.Value follows the ordinal.
const (
	ValueDouble  ValueType = iota // float64
	ValueFloat                    // float32
	ValueInt                      // int32
	ValueLong                     // int64
	ValueChar                     // uint16
	ValueBoolean                  // bool
	ValueShort                    // int16
	ValueByte                     // int8
	ValueString                   // string
	ValueObject                   // string
)

// EnterConfiguration announces a configuration id.
type EnterConfiguration struct {
	ID string
}

func (*EnterConfiguration) Kind() Kind           { return KindEnterConfiguration }
func (ev *EnterConfiguration) Apply(s Strategy)  { s.EnterConfiguration(ev.ID) }
func (ev *EnterConfiguration) encode(e *Encoder) { e.writeString(ev.ID) }
func (ev *EnterConfiguration) decode(d *Decoder) { ev.ID = d.readString() }

// Enter records entering a monitored element.
type Enter struct {
	RecID   string
	Now     int64
	Threads ThreadsInfo
	Exclude bool
}

func (*Enter) Kind() Kind { return KindEnter }

func (ev *Enter) Apply(s Strategy) { s.Enter(ev.RecID, ev.Now, ev.Threads, ev.Exclude) }

func (ev *Enter) encode(e *Encoder) {
	e.writeString(ev.RecID)
	e.writeInt64(ev.Now)
	ev.Threads.encode(e)
	e.writeBool(ev.Exclude)
}

func (ev *Enter) decode(d *Decoder) {
	ev.RecID = d.readString()
	ev.Now = d.readInt64()
	ev.Threads.decode(d)
	ev.Exclude = d.readBool()
}

// Exit records leaving a monitored element.
type Exit struct {
	RecID   string
	Now     int64
	Threads ThreadsInfo
	Exclude bool
}

func (*Exit) Kind() Kind { return KindExit }

func (ev *Exit) Apply(s Strategy) { s.Exit(ev.RecID, ev.Now, ev.Threads, ev.Exclude) }

func (ev *Exit) encode(e *Encoder) {
	e.writeString(ev.RecID)
	e.writeInt64(ev.Now)
	ev.Threads.encode(e)
	e.writeBool(ev.Exclude)
}

func (ev *Exit) decode(d *Decoder) {
	ev.RecID = d.readString()
	ev.Now = d.readInt64()
	ev.Threads.decode(d)
	ev.Exclude = d.readBool()
}

// FinishRecording ends recording with the CPU time of every thread.
type FinishRecording struct {
	Now      int64
	ThreadID int64
	CPUTime  map[int64]int64
}

func (*FinishRecording) Kind() Kind { return KindFinishRecording }

func (ev *FinishRecording) Apply(s Strategy) { s.FinishRecording(ev.Now, ev.ThreadID, ev.CPUTime) }

func (ev *FinishRecording) encode(e *Encoder) {
	e.writeInt64(ev.Now)
	e.writeInt64(ev.ThreadID)
	e.writeLongMap(ev.CPUTime)
}

func (ev *FinishRecording) decode(d *Decoder) {
	ev.Now = d.readInt64()
	ev.ThreadID = d.readInt64()
	ev.CPUTime = d.readLongMap()
}

// MemoryAllocated records an allocation attributed to a recorder id.
type MemoryAllocated struct {
	RecID    string
	ID       int64
	Size     int64
	ThreadID int64
}

func (*MemoryAllocated) Kind() Kind { return KindMemoryAllocated }

func (ev *MemoryAllocated) Apply(s Strategy) {
	s.MemoryAllocated(ev.RecID, ev.ThreadID, ev.ID, ev.Size)
}

func (ev *MemoryAllocated) encode(e *Encoder) {
	e.writeString(ev.RecID)
	e.writeInt64(ev.ID)
	e.writeInt64(ev.Size)
	e.writeInt64(ev.ThreadID)
}

func (ev *MemoryAllocated) decode(d *Decoder) {
	ev.RecID = d.readString()
	ev.ID = d.readInt64()
	ev.Size = d.readInt64()
	ev.ThreadID = d.readInt64()
}

// MemoryFreedByRecID records memory released by a recorder id.
type MemoryFreedByRecID struct {
	RecID string
	Size  int64
}

func (*MemoryFreedByRecID) Kind() Kind { return KindMemoryFreedByRecID }

func (ev *MemoryFreedByRecID) Apply(s Strategy) { s.MemoryFreedByRecID(ev.RecID, ev.Size) }

func (ev *MemoryFreedByRecID) encode(e *Encoder) {
	e.writeString(ev.RecID)
	e.writeInt64(ev.Size)
}

func (ev *MemoryFreedByRecID) decode(d *Decoder) {
	ev.RecID = d.readString()
	ev.Size = d.readInt64()
}

// PrintStatistics asks the strategy to print its statistics.
type PrintStatistics struct {
	Data ProcessData
}

func (*PrintStatistics) Kind() Kind           { return KindPrintStatistics }
func (ev *PrintStatistics) Apply(s Strategy)  { s.PrintStatistics(ev.Data) }
func (ev *PrintStatistics) encode(e *Encoder) { ev.Data.encode(e) }
func (ev *PrintStatistics) decode(d *Decoder) { ev.Data.decode(d) }

// IO records bytes read or written on a stream.
type IO struct {
	RecID      string
	Caller     string
	Bytes      int32
	StreamType string
	ThreadID   int64
	Write      bool
}

func (*IO) Kind() Kind { return KindIO }

func (ev *IO) Apply(s Strategy) {
	if ev.Write {
		s.WriteIO(ev.RecID, ev.Caller, ev.ThreadID, ev.Bytes, ev.StreamType)
	} else {
		s.ReadIO(ev.RecID, ev.Caller, ev.ThreadID, ev.Bytes, ev.StreamType)
	}
}

func (ev *IO) encode(e *Encoder) {
	e.writeString(ev.RecID)
	e.writeString(ev.Caller)
	e.writeInt32(ev.Bytes)
	e.writeUTF(ev.StreamType)
	e.writeInt64(ev.ThreadID)
	e.writeBool(ev.Write)
}

func (ev *IO) decode(d *Decoder) {
	ev.RecID = d.readString()
	ev.Caller = d.readString()
	ev.Bytes = d.readInt32()
	ev.StreamType = d.readUTF()
	ev.ThreadID = d.readInt64()
	ev.Write = d.readBool()
}

// StartRecording starts recording on a thread.
type StartRecording struct {
	Now         int64
	ThreadID    int64
	ThreadTicks int64
}

func (*StartRecording) Kind() Kind { return KindStartRecording }

func (ev *StartRecording) Apply(s Strategy) { s.StartRecording(ev.Now, ev.ThreadID, ev.ThreadTicks) }

func (ev *StartRecording) encode(e *Encoder) {
	e.writeInt64(ev.Now)
	e.writeInt64(ev.ThreadID)
	e.writeInt64(ev.ThreadTicks)
}

func (ev *StartRecording) decode(d *Decoder) {
	ev.Now = d.readInt64()
	ev.ThreadID = d.readInt64()
	ev.ThreadTicks = d.readInt64()
}

// StopTimeRecording stops time recording.
type StopTimeRecording struct {
	Now     int64
	Threads ThreadsInfo
}

func (*StopTimeRecording) Kind() Kind { return KindStopTimeRecording }

func (ev *StopTimeRecording) Apply(s Strategy) { s.StopTimeRecording(ev.Now, ev.Threads) }

func (ev *StopTimeRecording) encode(e *Encoder) {
	e.writeInt64(ev.Now)
	ev.Threads.encode(e)
}

func (ev *StopTimeRecording) decode(d *Decoder) {
	ev.Now = d.readInt64()
	ev.Threads.decode(d)
}

// EndSystem ends the session. It has no payload.
type EndSystem struct{}

func (*EndSystem) Kind() Kind       { return KindEndSystem }
func (*EndSystem) Apply(s Strategy) { s.EndSystem() }
func (*EndSystem) encode(*Encoder)  {}
func (*EndSystem) decode(*Decoder)  {}

// Register registers a new thread.
type Register struct {
	ThreadID    int64
	NewID       int64
	ThreadTicks int64
	Now         int64
}

func (*Register) Kind() Kind { return KindRegister }

func (ev *Register) Apply(s Strategy) { s.Register(ev.ThreadID, ev.NewID, ev.ThreadTicks, ev.Now) }

func (ev *Register) encode(e *Encoder) {
	e.writeInt64(ev.ThreadID)
	e.writeInt64(ev.NewID)
	e.writeInt64(ev.ThreadTicks)
	e.writeInt64(ev.Now)
}

func (ev *Register) decode(d *Decoder) {
	ev.ThreadID = d.readInt64()
	ev.NewID = d.readInt64()
	ev.ThreadTicks = d.readInt64()
	ev.Now = d.readInt64()
}

// AssignToAll assigns the following measurements to every recorder.
type AssignToAll struct {
	RecID   string
	Enter   bool
	Now     int64
	Threads ThreadsInfo
}

func (*AssignToAll) Kind() Kind { return KindAssignToAll }

func (ev *AssignToAll) Apply(s Strategy) { s.AssignAllTo(ev.RecID, ev.Enter, ev.Now, ev.Threads) }

func (ev *AssignToAll) encode(e *Encoder) {
	e.writeString(ev.RecID)
	e.writeBool(ev.Enter)
	e.writeInt64(ev.Now)
	ev.Threads.encode(e)
}

func (ev *AssignToAll) decode(d *Decoder) {
	ev.RecID = d.readString()
	ev.Enter = d.readBool()
	ev.Now = d.readInt64()
	ev.Threads.decode(d)
}

// PrintCurrentState asks the strategy to print its current state.
type PrintCurrentState struct {
	Data ProcessData
}

func (*PrintCurrentState) Kind() Kind           { return KindPrintCurrentState }
func (ev *PrintCurrentState) Apply(s Strategy)  { s.PrintCurrentState(ev.Data) }
func (ev *PrintCurrentState) encode(e *Encoder) { ev.Data.encode(e) }
func (ev *PrintCurrentState) decode(d *Decoder) { ev.Data.decode(d) }

// NotifyTimer changes the state of a timer.
type NotifyTimer struct {
	ID       string
	Now      int64
	ThreadID int64
	State    TimerState
}

func (*NotifyTimer) Kind() Kind { return KindNotifyTimer }

func (ev *NotifyTimer) Apply(s Strategy) { s.NotifyTimer(ev.ID, ev.State, ev.Now, ev.ThreadID) }

func (ev *NotifyTimer) encode(e *Encoder) {
	e.writeString(ev.ID)
	e.writeInt64(ev.Now)
	e.writeInt64(ev.ThreadID)
	e.writeInt32(int32(ev.State))
}

func (ev *NotifyTimer) decode(d *Decoder) {
	ev.ID = d.readString()
	ev.Now = d.readInt64()
	ev.ThreadID = d.readInt64()
	ev.State = TimerState(d.readInt32())
}

// NotifyValue reports a changed value.
type NotifyValue struct {
	ID    string
	Type  ValueType
	Value any
}

func (*NotifyValue) Kind() Kind { return KindNotifyValue }

func (ev *NotifyValue) Apply(s Strategy) { s.NotifyValueChange(ev.ID, ev.Type, ev.Value) }

func (ev *NotifyValue) encode(e *Encoder) {
	e.writeString(ev.ID)
	e.writeInt32(int32(ev.Type))

	switch ev.Type {
	case ValueDouble:
		v, _ := ev.Value.(float64)
		e.writeFloat64(v)
	case ValueFloat:
		v, _ := ev.Value.(float32)
		e.writeInt32(int32(math.Float32bits(v)))
	case ValueInt:
		v, _ := ev.Value.(int32)
		e.writeInt32(v)
	case ValueLong:
		v, _ := ev.Value.(int64)
		e.writeInt64(v)
	case ValueChar:
		v, _ := ev.Value.(uint16)
		e.writeInt16(int16(v))
	case ValueBoolean:
		v, _ := ev.Value.(bool)
		e.writeBool(v)
	case ValueShort:
		v, _ := ev.Value.(int16)
		e.writeInt16(v)
	case ValueByte:
		v, _ := ev.Value.(int8)
		e.write([]byte{byte(v)})
	default:
		if ev.Value == nil {
			e.writeString("")
		} else {
			e.writeString(fmt.Sprint(ev.Value))
		}
	}
}

func (ev *NotifyValue) decode(d *Decoder) {
	ev.ID = d.readString()
	ev.Type = ValueType(d.readInt32())

	switch ev.Type {
	case ValueDouble:
		ev.Value = d.readFloat64()
	case ValueFloat:
		ev.Value = math.Float32frombits(uint32(d.readInt32()))
	case ValueInt:
		ev.Value = d.readInt32()
	case ValueLong:
		ev.Value = d.readInt64()
	case ValueChar:
		ev.Value = uint16(d.readInt16())
	case ValueBoolean:
		ev.Value = d.readBool()
	case ValueShort:
		ev.Value = d.readInt16()
	case ValueByte:
		ev.Value = int8(d.read(1)[0])
	case ValueString, ValueObject:
		ev.Value = d.readString()
	default:
		d.fail(fmt.Errorf("unknown value type %d", int32(ev.Type)))
	}
}

// ProgramRecordCreation notifies that the program record was created.
type ProgramRecordCreation struct{}

func (*ProgramRecordCreation) Kind() Kind       { return KindProgramRecordCreation }
func (*ProgramRecordCreation) Apply(s Strategy) { s.NotifyProgramRecordCreation() }
func (*ProgramRecordCreation) encode(*Encoder)  {}
func (*ProgramRecordCreation) decode(*Decoder)  {}

// ClearTemporaryData drops temporary data held by the strategy.
type ClearTemporaryData struct{}

func (*ClearTemporaryData) Kind() Kind       { return KindClearTemporaryData }
func (*ClearTemporaryData) Apply(s Strategy) { s.ClearTemporaryData() }
func (*ClearTemporaryData) encode(*Encoder)  {}
func (*ClearTemporaryData) decode(*Decoder)  {}
