package domain

import (
	"errors"
	"fmt"

	"github.com/mouse-blink/codeeraser/internal/classfile"
	"github.com/mouse-blink/codeeraser/internal/domain/editors"
	"go.uber.org/zap"
)

// DefaultPatchClass is the expression editor class patched by default.
const DefaultPatchClass = "javassist.expr.ExprEditor"

// Bodies patched in the expression editor.
const (
	loopBodyMethod = "loopBody"
	doitMethod     = "doit"
	doitDescriptor = "(Ljavassist/CtClass;Ljavassist/bytecode/MethodInfo;)Z"
)

// ErrMemberNotFound reports a field or method missing from a class.
var ErrMemberNotFound = errors.New("member not found")

// Patcher adds switches to the expression editor that let callers skip
// casts, instanceof checks and exception handlers.
type Patcher struct {
	log *zap.Logger
}

// NewPatcher returns a Patcher.
func NewPatcher(log *zap.Logger) *Patcher {
	return &Patcher{log: log}
}

// Patch adds the disable flags to c and guards the dispatch in loopBody
// and doit with them.
func (p *Patcher) Patch(c *LoadedClass) error {
	cf := c.File
	owner := c.InternalName()

	loopBody := cf.FindMethod(loopBodyMethod, "")
	if loopBody == nil {
		return fmt.Errorf("%s.%s: %w", c.Name, loopBodyMethod, ErrMemberNotFound)
	}

	doit := cf.FindMethod(doitMethod, doitDescriptor)
	if doit == nil {
		return fmt.Errorf("%s.%s%s: %w", c.Name, doitMethod, doitDescriptor, ErrMemberNotFound)
	}

	for _, name := range []string{editors.DisableInstanceof, editors.DisableCast, editors.DisableHandler} {
		if cf.FindField(name) != nil {
			return fmt.Errorf("%w: %s already declares %s", classfile.ErrCompile, c.Name, name)
		}

		if _, err := cf.AddField(classfile.AccPublic, name, "Z"); err != nil {
			return err
		}
	}

	opcodes := editors.NewOpcodePatch(owner)
	handlers := editors.NewHandlerPatch(owner)

	visitor := classfile.SiteVisitorFunc(func(site classfile.Site, edits *classfile.EditList) error {
		switch site.Method {
		case loopBody:
			return opcodes.Visit(site, edits)
		case doit:
			return handlers.Visit(site, edits)
		default:
			return nil
		}
	})

	if _, err := classfile.Instrument(cf, visitor); err != nil {
		return err
	}

	c.Dirty = true

	p.log.Info("patched expression editor",
		zap.String("class", c.Name), zap.Int("opcodeGuards", opcodes.Count()), zap.Int("handlerGuards", handlers.Count()))

	return nil
}
