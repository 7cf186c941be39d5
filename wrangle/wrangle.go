package main

import (
	"flag"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/apparentlymart/riscv-csr/generate"
	"github.com/apparentlymart/riscv-csr/ir"
)

var outDir = flag.String("o", "generated/rust", "directory to write the generated Rust files into")
var commonPath = flag.String("common", generate.DefaultCommonPath, "Rust path of the module with Reg and the CSR traits")
var only = flag.String("block", "", "render only the block with this path")
var blockDoc = flag.Bool("blockdoc", false, "emit each block's description as a leading //! comment")
var dump = flag.Bool("dump", false, "dump the loaded register description (debugging use only)")
var verbose = flag.Bool("v", false, "log each register as it is rendered")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: wrangle [-o <dir>] [-common <path>] [-block <path>] [-blockdoc] [-dump] [-v] <registers.csr>")
	}

	regs, err := ir.LoadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("failed to load %s: %s", flag.Arg(0), err)
	}
	if *dump {
		spew.Dump(regs)
	}

	opts := &generate.Options{
		CommonPath: *commonPath,
		BlockDoc:   *blockDoc,
	}
	if *verbose {
		opts.Logger = log.New(os.Stderr, "render: ", 0)
	}

	if err := generateRustFragments(*outDir, regs, opts, *only); err != nil {
		log.Fatal(err)
	}
}
