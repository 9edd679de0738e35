package asm

import "github.com/revaldinho/argus400/word"

// Result is the outcome of assembling one source file: the populated
// memory image (ready to load into a word.Memory or write out as
// hex/binary), the final symbol table (for listing output), and every
// diagnostic collected across both passes.
type Result struct {
	Image   [word.MemSize]uint32
	Symbols *SymbolTable
	Errors  *ErrorList
	Lines   []EmittedLine
}

// Assembler runs the full two-pass pipeline described in spec §4.3:
// macro expansion, then pass 1 (address assignment), then pass 2 (word
// emission). A fresh Assembler should be used per source file; it holds
// no state across calls to Assemble.
type Assembler struct{}

// NewAssembler returns a ready-to-use Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble runs the pipeline over source (named filename for
// diagnostics) and returns the assembled Result. Errors never abort
// assembly early: every pass runs to completion and all diagnostics are
// collected in Result.Errors (spec §7, §9).
func (a *Assembler) Assemble(filename, source string) *Result {
	errs := &ErrorList{}
	syms := NewSymbolTable()

	pp := NewPreprocessor()
	expanded := pp.Expand(filename, source)
	errs.Errors = append(errs.Errors, pp.Errors.Errors...)
	errs.Warnings = append(errs.Warnings, pp.Errors.Warnings...)

	addrs := pass1(filename, expanded, syms, errs)
	lines := pass2(filename, expanded, addrs, syms, errs)

	var image [word.MemSize]uint32
	for _, el := range lines {
		for i, w := range el.Words {
			addr := el.Addr + uint32(i)
			if addr < word.MemSize {
				image[addr] = w
			}
		}
	}

	return &Result{Image: image, Symbols: syms, Errors: errs, Lines: lines}
}
