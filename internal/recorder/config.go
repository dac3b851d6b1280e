package recorder

import (
	"sort"

	"github.com/samber/lo"
)

// SessionConfig is the part of the monitored program's configuration sent
// at the start of every connection.
type SessionConfig struct {
	BaseDir     string
	OutFileName string

	ConfigurationDetection bool
	InstrumentJavaLib      bool
	RetransformJavaLib     bool
	OutInterval            int32
	PrintStatistics        bool
	VariantContributions   bool
	InstrumentInstrumenter bool
	PruneAnnotations       bool
	MultiDistributeValues  bool
	MultiConsiderContained bool
	RegisterThreads        bool
	AccountExcluded        bool
	AllClassMembers        bool

	// ExcludeClasses is never null on the wire.
	ExcludeClasses string

	MemoryAccountingType int32
	GroupAccountingType  int32
	AnnotationSearchType int32
	MainDefault          int32

	AccountableResources  []int32
	DefaultGroupResources []int32
	SumResources          []int32

	// Params holds the parameters the monitored program did not recognize.
	Params map[string]string
}

func (c SessionConfig) encode(e *Encoder) {
	e.writeString(c.BaseDir)
	e.writeString(c.OutFileName)
	e.writeBool(c.ConfigurationDetection)
	e.writeBool(c.InstrumentJavaLib)
	e.writeBool(c.RetransformJavaLib)
	e.writeInt32(c.OutInterval)
	e.writeBool(c.PrintStatistics)
	e.writeBool(c.VariantContributions)
	e.writeBool(c.InstrumentInstrumenter)
	e.writeBool(c.PruneAnnotations)
	e.writeBool(c.MultiDistributeValues)
	e.writeBool(c.MultiConsiderContained)
	e.writeBool(c.RegisterThreads)
	e.writeBool(c.AccountExcluded)
	e.writeBool(c.AllClassMembers)
	e.writeUTF(c.ExcludeClasses)
	e.writeInt32(c.MemoryAccountingType)
	e.writeInt32(c.GroupAccountingType)
	e.writeInt32(c.AnnotationSearchType)
	e.writeInt32(c.MainDefault)
	e.writeInt32s(c.AccountableResources)
	e.writeInt32s(c.DefaultGroupResources)
	e.writeInt32s(c.SumResources)

	keys := lo.Keys(c.Params)
	sort.Strings(keys)

	e.writeInt32(int32(len(keys)))

	for _, k := range keys {
		e.writeString(k)
		e.writeString(c.Params[k])
	}
}

func (c *SessionConfig) decode(d *Decoder) {
	c.BaseDir = d.readString()
	c.OutFileName = d.readString()
	c.ConfigurationDetection = d.readBool()
	c.InstrumentJavaLib = d.readBool()
	c.RetransformJavaLib = d.readBool()
	c.OutInterval = d.readInt32()
	c.PrintStatistics = d.readBool()
	c.VariantContributions = d.readBool()
	c.InstrumentInstrumenter = d.readBool()
	c.PruneAnnotations = d.readBool()
	c.MultiDistributeValues = d.readBool()
	c.MultiConsiderContained = d.readBool()
	c.RegisterThreads = d.readBool()
	c.AccountExcluded = d.readBool()
	c.AllClassMembers = d.readBool()
	c.ExcludeClasses = d.readUTF()
	c.MemoryAccountingType = d.readInt32()
	c.GroupAccountingType = d.readInt32()
	c.AnnotationSearchType = d.readInt32()
	c.MainDefault = d.readInt32()
	c.AccountableResources = d.readInt32s()
	c.DefaultGroupResources = d.readInt32s()
	c.SumResources = d.readInt32s()

	n := d.readInt32()
	for i := int32(0); i < n && d.err == nil; i++ {
		if c.Params == nil {
			c.Params = make(map[string]string)
		}

		k := d.readString()
		c.Params[k] = d.readString()
	}
}
