package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apparentlymart/riscv-csr/generate"
	"github.com/apparentlymart/riscv-csr/ir"
)

// generateRustFragments renders each CSR block into its own file in dir. If
// only is set, just that block is rendered. Nothing further is written once
// a block fails to render.
func generateRustFragments(dir string, regs *ir.IR, opts *generate.Options, only string) error {
	paths := make([]string, 0, len(regs.Blocks))
	for path := range regs.Blocks {
		if only != "" && path != only {
			continue
		}
		paths = append(paths, path)
	}
	if only != "" && len(paths) == 0 {
		return fmt.Errorf("no block named %s", only)
	}
	sort.Strings(paths)

	owners := make(map[string]string, len(paths))
	for _, path := range paths {
		filename := rustFileName(path)
		if prev, exists := owners[filename]; exists {
			return fmt.Errorf("blocks %s and %s would both be written to %s", prev, path, filename)
		}
		owners[filename] = path
	}

	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return err
	}

	for _, path := range paths {
		src, err := generate.RenderCSRBlock(opts, regs, regs.Blocks[path], path)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}

		filename := filepath.Join(dir, rustFileName(path))
		if err := os.WriteFile(filename, src, 0o644); err != nil {
			return err
		}
		log.Printf("wrote %s (%d bytes)", filename, len(src))
	}

	return nil
}

// rustFileName turns a block path like "chip::csr::Csr" into "chip_csr_csr.rs".
func rustFileName(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, ir.PathSep, "_")) + ".rs"
}
