package generate

import (
	"fmt"
	"strings"

	"github.com/apparentlymart/riscv-csr/ir"
)

// rustUintTypes maps the register widths we can represent to the Rust
// integer type of exactly that width.
var rustUintTypes = map[uint32]string{
	8:  "u8",
	16: "u16",
	32: "u32",
	64: "u64",
}

// resolveValueType returns the Rust type a register's accessor reads and
// writes, written relative to the block at path.
func resolveValueType(m *ir.IR, name string, r *ir.Register, path string) (string, error) {
	if r.Fieldset != "" {
		if _, ok := m.Fieldsets[r.Fieldset]; !ok {
			return "", &RenderError{
				Reason: ReasonDanglingFieldset,
				Item:   name,
				Detail: r.Fieldset,
			}
		}
		for _, seg := range strings.Split(r.Fieldset, ir.PathSep) {
			if !isRustIdent(seg) {
				return "", &RenderError{
					Reason: ReasonInvalidIdent,
					Item:   name,
					Detail: fmt.Sprintf("fieldset %s", r.Fieldset),
				}
			}
		}
		return ir.RelativePath(r.Fieldset, path), nil
	}

	ty, ok := rustUintTypes[r.BitSize]
	if !ok {
		return "", &RenderError{
			Reason: ReasonUnsupportedWidth,
			Item:   name,
			Detail: fmt.Sprintf("%d bits", r.BitSize),
		}
	}
	return ty, nil
}

// accessMarker returns the capability type that limits which of the Reg
// wrapper's methods are available.
func accessMarker(common string, name string, access ir.Access) (string, error) {
	switch access {
	case ir.Read:
		return common + "::R", nil
	case ir.Write:
		return common + "::W", nil
	case ir.ReadWrite:
		return common + "::RW", nil
	default:
		return "", &RenderError{
			Reason: ReasonInvalidAccess,
			Item:   name,
			Detail: string(access),
		}
	}
}
