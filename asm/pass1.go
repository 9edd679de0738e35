package asm

import "github.com/revaldinho/argus400/isa"

// pass1 walks the expanded source assigning addresses (spec §4.3.2). It
// returns the per-line address each instruction/directive line started
// at, for pass 2 to reuse.
func pass1(filename string, lines []string, syms *SymbolTable, errs *ErrorList) []uint32 {
	addrs := make([]uint32, len(lines))
	nextmem := uint32(0)

	for i, raw := range lines {
		l := parseLine(filename, i+1, raw)
		addrs[i] = nextmem

		inst := l.Inst
		if l.Label != "" && inst != "EQU" {
			syms.Define(l.Label, nextmem, l.Pos, errs)
		}

		switch {
		case inst == "":
			// blank/comment-only line
		case inst == "EQU":
			// `name EQU expr`: the symbol being bound is the line's label.
			v, err := EvalExpr(l.Operands, syms, nextmem+1)
			if err != nil {
				errs.AddError(NewError(l.Pos, ErrorUndefinedExpression, err.Error(), l.Raw))
				continue
			}
			if l.Label != "" {
				syms.Define(l.Label, v, l.Pos, errs)
			}
		case inst == "ORG":
			v, err := EvalExpr(l.Operands, syms, nextmem+1)
			if err != nil {
				errs.AddError(NewError(l.Pos, ErrorUndefinedExpression, err.Error(), l.Raw))
				continue
			}
			nextmem = v
			addrs[i] = nextmem
		case isDataDirective(inst):
			nextmem += uint32(directiveSize(inst, l.Operands))
		default:
			if _, ok := isa.Lookup(inst); ok {
				nextmem++
			}
			// unknown mnemonics are reported in pass 2 (spec §7).
		}
	}
	return addrs
}
