package generate

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/apparentlymart/riscv-csr/ir"
)

const blockPath = "chip::csr::Csr"

func testIR() *ir.IR {
	return &ir.IR{
		Fieldsets: map[string]*ir.Fieldset{
			"chip::regs::Mstatus": {BitSize: 64},
			"chip::bad-regs::Mip": {BitSize: 64},
		},
		Blocks: map[string]*ir.Block{},
	}
}

func reg(name string, offset uint32, bits uint32, access ir.Access) ir.BlockItem {
	return ir.BlockItem{
		Name:       name,
		ByteOffset: offset,
		Register: &ir.Register{
			BitSize: bits,
			Access:  access,
		},
	}
}

func TestRenderCSRBlockGolden(t *testing.T) {
	item := reg("mstatus", 0x300, 64, ir.ReadWrite)
	item.Description = "Machine status register\n\nGlobal interrupt enables."
	item.Register.Fieldset = "chip::regs::Mstatus"
	b := &ir.Block{Items: []ir.BlockItem{item}}

	got, err := RenderCSRBlock(nil, testIR(), b, blockPath)
	if err != nil {
		t.Fatalf("RenderCSRBlock failed: %s", err)
	}

	want := `/// Machine status register
///
/// Global interrupt enables.
#[inline(always)]
pub const fn mstatus() -> crate::common::Reg<super::regs::Mstatus, CSR_MSTATUS, crate::common::RW> {
    unsafe { crate::common::Reg::new() }
}

#[allow(non_camel_case_types)]
#[doc(hidden)]
pub struct CSR_MSTATUS;

impl crate::common::SealedCSR for CSR_MSTATUS {
    #[inline]
    unsafe fn read_csr() -> usize {
        let r: usize;
        core::arch::asm!("csrrs {0}, 0x300, x0", out(reg) r);
        r
    }

    #[inline]
    unsafe fn write_csr(value: usize) {
        core::arch::asm!("csrrw x0, 0x300, {0}", in(reg) value);
    }
}
impl crate::common::CSR for CSR_MSTATUS {}
`
	if string(got) != want {
		t.Errorf("wrong output\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderCSRBlockDeterministic(t *testing.T) {
	b := &ir.Block{Items: []ir.BlockItem{
		reg("mtvec", 0x305, 64, ir.ReadWrite),
		reg("mhartid", 0xf14, 64, ir.Read),
		reg("mie", 0x304, 64, ir.ReadWrite),
	}}

	first, err := RenderCSRBlock(nil, testIR(), b, blockPath)
	if err != nil {
		t.Fatalf("RenderCSRBlock failed: %s", err)
	}
	second, err := RenderCSRBlock(nil, testIR(), b, blockPath)
	if err != nil {
		t.Fatalf("RenderCSRBlock failed: %s", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("two renders differ\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestRenderCSRBlockOrder(t *testing.T) {
	b := &ir.Block{Items: []ir.BlockItem{
		reg("zeta", 0x340, 64, ir.ReadWrite),
		reg("mtvec", 0x305, 64, ir.ReadWrite),
		reg("alpha", 0x340, 64, ir.ReadWrite),
		reg("mie", 0x304, 64, ir.ReadWrite),
	}}

	got, err := RenderCSRBlock(nil, testIR(), b, blockPath)
	if err != nil {
		t.Fatalf("RenderCSRBlock failed: %s", err)
	}

	want := []string{"mie", "mtvec", "alpha", "zeta"}
	last := -1
	for _, name := range want {
		idx := bytes.Index(got, []byte("pub const fn "+name+"()"))
		if idx < 0 {
			t.Fatalf("no accessor for %s in output:\n%s", name, got)
		}
		if idx < last {
			t.Errorf("%s emitted out of order in output:\n%s", name, got)
		}
		last = idx
	}
}

func TestRenderCSRBlockAccess(t *testing.T) {
	tests := []struct {
		access ir.Access
		want   string
	}{
		{ir.Read, "crate::common::R>"},
		{ir.Write, "crate::common::W>"},
		{ir.ReadWrite, "crate::common::RW>"},
	}
	for _, tc := range tests {
		b := &ir.Block{Items: []ir.BlockItem{reg("mscratch", 0x340, 64, tc.access)}}
		got, err := RenderCSRBlock(nil, testIR(), b, blockPath)
		if err != nil {
			t.Fatalf("RenderCSRBlock(%s) failed: %s", tc.access, err)
		}
		if !bytes.Contains(got, []byte("CSR_MSCRATCH, "+tc.want)) {
			t.Errorf("RenderCSRBlock(%s) does not use %s:\n%s", tc.access, tc.want, got)
		}
	}
}

func TestRenderCSRBlockAddressEncoding(t *testing.T) {
	tests := []struct {
		offset uint32
		want   string
	}{
		{0x7c0, "0x7c0"},
		{2000, "0x7d0"},
		{0x1, "0x001"},
		{0x42, "0x042"},
		{0xfff, "0xfff"},
	}
	for _, tc := range tests {
		b := &ir.Block{Items: []ir.BlockItem{reg("custom", tc.offset, 32, ir.ReadWrite)}}
		got, err := RenderCSRBlock(nil, testIR(), b, blockPath)
		if err != nil {
			t.Fatalf("RenderCSRBlock(offset %d) failed: %s", tc.offset, err)
		}
		wantRead := `"csrrs {0}, ` + tc.want + `, x0"`
		wantWrite := `"csrrw x0, ` + tc.want + `, {0}"`
		if !bytes.Contains(got, []byte(wantRead)) {
			t.Errorf("offset %d: no %s in output:\n%s", tc.offset, wantRead, got)
		}
		if !bytes.Contains(got, []byte(wantWrite)) {
			t.Errorf("offset %d: no %s in output:\n%s", tc.offset, wantWrite, got)
		}
	}
}

func TestRenderCSRBlockRejects(t *testing.T) {
	array := reg("pmpcfg", 0x3a0, 32, ir.ReadWrite)
	array.Array = &ir.Array{Len: 4, Stride: 1}

	dangling := reg("mstatus", 0x300, 64, ir.ReadWrite)
	dangling.Register.Fieldset = "chip::regs::Missing"

	badFieldset := reg("mip", 0x344, 64, ir.ReadWrite)
	badFieldset.Register.Fieldset = "chip::bad-regs::Mip"

	tests := []struct {
		name string
		item ir.BlockItem
		want Reason
	}{
		{"hyphenated name", reg("mip-shadow", 0x300, 64, ir.Read), ReasonInvalidIdent},
		{"leading digit", reg("0cycle", 0x300, 64, ir.Read), ReasonInvalidIdent},
		{"space in name", reg("m status", 0x300, 64, ir.Read), ReasonInvalidIdent},
		{"empty name", reg("", 0x300, 64, ir.Read), ReasonInvalidIdent},
		{"fieldset path segment", badFieldset, ReasonInvalidIdent},
		{"array", array, ReasonRegisterArray},
		{"nested block", ir.BlockItem{Name: "debug", ByteOffset: 0x7b0, Block: &ir.BlockRef{Path: "chip::csr::Debug"}}, ReasonNestedBlock},
		{"dangling fieldset", dangling, ReasonDanglingFieldset},
		{"width", reg("odd", 0x300, 24, ir.Read), ReasonUnsupportedWidth},
		{"address", reg("far", 0x1000, 32, ir.Read), ReasonAddressRange},
		{"empty", ir.BlockItem{Name: "nothing", ByteOffset: 0x301}, ReasonEmptyItem},
		{"access", reg("weird", 0x300, 32, ir.Access("x")), ReasonInvalidAccess},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// A valid register first, to show no partial output survives.
			b := &ir.Block{Items: []ir.BlockItem{reg("mvendorid", 0x000, 32, ir.Read), tc.item}}
			got, err := RenderCSRBlock(nil, testIR(), b, blockPath)
			if err == nil {
				t.Fatalf("RenderCSRBlock succeeded; want %s\n%s", tc.want, got)
			}
			if got != nil {
				t.Errorf("RenderCSRBlock returned output alongside an error:\n%s", got)
			}
			var rerr *RenderError
			if !errors.As(err, &rerr) {
				t.Fatalf("error is %T; want *RenderError", err)
			}
			if rerr.Reason != tc.want || rerr.Item != tc.item.Name {
				t.Errorf("wrong error: %s", spew.Sdump(rerr))
			}
		})
	}
}

func TestRenderCSRBlockOptions(t *testing.T) {
	var trace bytes.Buffer
	opts := &Options{
		CommonPath: "crate::regs",
		BlockDoc:   true,
		Logger:     log.New(&trace, "", 0),
	}
	b := &ir.Block{
		Description: "Machine CSRs",
		Items:       []ir.BlockItem{reg("mtime", 0xc01, 64, ir.Read)},
	}

	got, err := RenderCSRBlock(opts, testIR(), b, blockPath)
	if err != nil {
		t.Fatalf("RenderCSRBlock failed: %s", err)
	}
	if !strings.HasPrefix(string(got), "//! Machine CSRs\n\n") {
		t.Errorf("block doc not leading the output:\n%s", got)
	}
	if !bytes.Contains(got, []byte("-> crate::regs::Reg<u64, CSR_MTIME, crate::regs::R>")) {
		t.Errorf("common path not applied:\n%s", got)
	}
	if !strings.Contains(trace.String(), "mtime: Read u64 at 0xc01 as CSR_MTIME") {
		t.Errorf("unexpected trace:\n%s", trace.String())
	}

	got, err = RenderCSRBlock(nil, testIR(), b, blockPath)
	if err != nil {
		t.Fatalf("RenderCSRBlock failed: %s", err)
	}
	if bytes.Contains(got, []byte("Machine CSRs")) {
		t.Errorf("block doc emitted without BlockDoc:\n%s", got)
	}
}
