// Package generate renders blocks of RISC-V control and status registers as
// Rust accessor functions.
//
// Each register becomes a const fn returning a Reg wrapper from the common
// module, parameterized by the register's value type, a marker type that
// knows the csrrs/csrrw instructions for that one CSR, and an access
// capability (R, W or RW) that decides which Reg methods exist.
package generate

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/apparentlymart/riscv-csr/ir"
)

// csrAccessor is everything needed to emit the Rust for one CSR.
type csrAccessor struct {
	FuncName  string
	TypeName  string
	Doc       string
	ValueType string
	Access    string
	Addr      csrAddr
}

// ReadAsm is the instruction template that copies the CSR into the output
// operand without setting any bits.
func (a *csrAccessor) ReadAsm() string {
	return fmt.Sprintf("csrrs {0}, %s, x0", a.Addr)
}

// WriteAsm is the instruction template that replaces the CSR with the input
// operand, discarding the old value.
func (a *csrAccessor) WriteAsm() string {
	return fmt.Sprintf("csrrw x0, %s, {0}", a.Addr)
}

// RenderCSRBlock renders every register in b, which lives at path, as a
// flat sequence of Rust items. If any item cannot be represented it returns
// a *RenderError and no output.
func RenderCSRBlock(opts *Options, m *ir.IR, b *ir.Block, path string) ([]byte, error) {
	common := opts.commonPath()
	logger := opts.logger()

	_, name := ir.SplitPath(path)
	logger.Printf("rendering csr block %s (%s) with %d items", path, makeIdentUnderscores(name), len(b.Items))

	var buf bytes.Buffer
	if opts != nil && opts.BlockDoc {
		writeDocLines(&buf, "//!", b.Description)
	}

	for _, item := range sortedItems(b.Items) {
		acc, err := synthesizeCSR(common, m, item, path)
		if err != nil {
			return nil, err
		}
		logger.Printf("%s: %s %s at %s as %s", acc.FuncName, item.Register.Access, acc.ValueType, acc.Addr, acc.TypeName)

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		acc.writeRust(&buf, common)
	}

	return buf.Bytes(), nil
}

func synthesizeCSR(common string, m *ir.IR, item ir.BlockItem, path string) (*csrAccessor, error) {
	switch {
	case !isRustIdent(item.Name):
		return nil, &RenderError{
			Reason: ReasonInvalidIdent,
			Item:   item.Name,
			Detail: fmt.Sprintf("%q", item.Name),
		}
	case item.Block != nil:
		return nil, &RenderError{
			Reason: ReasonNestedBlock,
			Item:   item.Name,
			Detail: item.Block.Path,
		}
	case item.Register == nil:
		return nil, &RenderError{
			Reason: ReasonEmptyItem,
			Item:   item.Name,
		}
	}
	r := item.Register

	valueTy, err := resolveValueType(m, item.Name, r, path)
	if err != nil {
		return nil, err
	}
	access, err := accessMarker(common, item.Name, r.Access)
	if err != nil {
		return nil, err
	}

	if item.Array != nil {
		return nil, &RenderError{
			Reason: ReasonRegisterArray,
			Item:   item.Name,
			Detail: fmt.Sprintf("%d elements", item.Array.Len),
		}
	}
	addr := csrAddr(item.ByteOffset)
	if !addr.valid() {
		return nil, &RenderError{
			Reason: ReasonAddressRange,
			Item:   item.Name,
			Detail: fmt.Sprintf("0x%x > 0x%x", item.ByteOffset, maxCSRAddr),
		}
	}

	return &csrAccessor{
		FuncName:  item.Name,
		TypeName:  csrTypeName(item.Name),
		Doc:       item.Description,
		ValueType: valueTy,
		Access:    access,
		Addr:      addr,
	}, nil
}

func (a *csrAccessor) writeRust(w io.Writer, common string) {
	writeDocLines(w, "///", a.Doc)
	fmt.Fprintf(w, "#[inline(always)]\n")
	fmt.Fprintf(w, "pub const fn %s() -> %s::Reg<%s, %s, %s> {\n", a.FuncName, common, a.ValueType, a.TypeName, a.Access)
	fmt.Fprintf(w, "    unsafe { %s::Reg::new() }\n", common)
	fmt.Fprintf(w, "}\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "#[allow(non_camel_case_types)]\n")
	fmt.Fprintf(w, "#[doc(hidden)]\n")
	fmt.Fprintf(w, "pub struct %s;\n", a.TypeName)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "impl %s::SealedCSR for %s {\n", common, a.TypeName)
	fmt.Fprintf(w, "    #[inline]\n")
	fmt.Fprintf(w, "    unsafe fn read_csr() -> usize {\n")
	fmt.Fprintf(w, "        let r: usize;\n")
	fmt.Fprintf(w, "        core::arch::asm!(%q, out(reg) r);\n", a.ReadAsm())
	fmt.Fprintf(w, "        r\n")
	fmt.Fprintf(w, "    }\n")
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "    #[inline]\n")
	fmt.Fprintf(w, "    unsafe fn write_csr(value: usize) {\n")
	fmt.Fprintf(w, "        core::arch::asm!(%q, in(reg) value);\n", a.WriteAsm())
	fmt.Fprintf(w, "    }\n")
	fmt.Fprintf(w, "}\n")
	fmt.Fprintf(w, "impl %s::CSR for %s {}\n", common, a.TypeName)
}

// writeDocLines writes text as a run of line comments with the given
// marker, one per line of text. Empty text writes nothing.
func writeDocLines(w io.Writer, marker string, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			fmt.Fprintf(w, "%s\n", marker)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", marker, line)
	}
}
