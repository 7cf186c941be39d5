package generate

import (
	"io"
	"log"
)

// DefaultCommonPath is where the generated code expects to find the shared
// Reg wrapper and its capability traits when Options.CommonPath is unset.
const DefaultCommonPath = "crate::common"

type Options struct {
	// CommonPath qualifies references to the shared register wrapper
	// (Reg, R, W, RW, CSR, SealedCSR).
	CommonPath string

	// BlockDoc emits the block description as leading inner doc comments.
	// The rendered block is flat, so there is no module to attach it to
	// otherwise and it is dropped.
	BlockDoc bool

	// Logger receives a trace of per-register decisions. Nil discards it.
	Logger *log.Logger
}

func (o *Options) commonPath() string {
	if o == nil || o.CommonPath == "" {
		return DefaultCommonPath
	}
	return o.CommonPath
}

func (o *Options) logger() *log.Logger {
	if o == nil || o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}
