// Package ir is the in-memory model of a register description: blocks of
// registers, the fieldsets that describe their bit layouts, and the paths
// that name them.
package ir

// IR is a complete register description. It is never modified once loaded.
type IR struct {
	Fieldsets map[string]*Fieldset
	Blocks    map[string]*Block
}

// Block is a named group of items sharing an address space. For CSR blocks
// the item offsets are CSR numbers rather than memory offsets.
type Block struct {
	Description string
	Items       []BlockItem
}

// BlockItem is one entry in a block. Exactly one of Register and Block is
// set.
type BlockItem struct {
	Name        string
	Description string
	ByteOffset  uint32
	Array       *Array // nil unless the item is replicated

	Register *Register
	Block    *BlockRef
}

type Register struct {
	BitSize uint32
	Access  Access

	// Fieldset is the path of the fieldset describing this register's bits,
	// or empty if the register is a plain integer.
	Fieldset string
}

// BlockRef is the payload of an item that nests another block.
type BlockRef struct {
	Path string
}

type Array struct {
	Len    uint32
	Stride uint32
}

type Fieldset struct {
	Description string
	BitSize     uint32
}
