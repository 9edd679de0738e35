package asm

import "github.com/revaldinho/argus400/isa"

// EmittedLine records, for the listing formatter, what one source line
// produced: its starting address and the words it emitted.
type EmittedLine struct {
	Addr     uint32
	Words    []uint32
	Modified []bool // per-word: true if the instruction used M != 0
	Label    string
	Raw      string
}

// pass2 re-walks lines with the now-complete symbol table and emits
// words (spec §4.3.3).
func pass2(filename string, lines []string, addrs []uint32, syms *SymbolTable, errs *ErrorList) []EmittedLine {
	out := make([]EmittedLine, 0, len(lines))

	for i, raw := range lines {
		l := parseLine(filename, i+1, raw)
		addr := addrs[i]

		var words []uint32
		var modified []bool

		switch {
		case l.Inst == "" || l.Inst == "EQU":
			// nothing emitted

		case l.Inst == "ORG":
			// emits nothing; address bookkeeping already applied in pass 1

		case isDataDirective(l.Inst):
			words = emitDirective(l.Inst, l.Operands, syms)

		default:
			if _, ok := isa.Lookup(l.Inst); !ok {
				errs.AddError(NewError(l.Pos, ErrorUnknownMnemonic,
					"unrecognized instruction or macro "+l.Inst, l.Raw))
				continue
			}
			enc, err := encodeInstruction(l.Inst, l.Operands, syms, addr+1, errs, l.Pos, l.Raw)
			if err != nil {
				errs.AddError(NewError(l.Pos, ErrorUndefinedExpression,
					"illegal or undefined register name or expression", l.Raw))
				words = []uint32{0}
				modified = []bool{false}
			} else {
				words = []uint32{enc.Word}
				modified = []bool{enc.Modified}
			}
		}

		if len(words) > 0 {
			out = append(out, EmittedLine{
				Addr: addr, Words: words, Modified: modified,
				Label: l.Label, Raw: l.Raw,
			})
		}
	}
	return out
}

// emitDirective produces the word sequence for a data directive (spec §4.3.2).
func emitDirective(inst, operands string, syms *SymbolTable) []uint32 {
	switch inst {
	case "WORD":
		fields := splitTopLevelComma(operands)
		out := make([]uint32, 0, len(fields))
		for _, f := range fields {
			v, err := EvalExpr(f, syms, 0)
			if err != nil {
				v = 0
			}
			out = append(out, v)
		}
		return out
	case "BYTE":
		fields := splitTopLevelComma(operands)
		vals := make([]uint32, 0, len(fields))
		for _, f := range fields {
			v, err := EvalExpr(f, syms, 0)
			if err != nil {
				v = 0
			}
			vals = append(vals, v)
		}
		return emitBytes(vals)
	case "STRING":
		return emitString(parseStringChunks(operands))
	case "BSTRING":
		return emitPackedString([]byte(parseStringChunks(operands)))
	case "PBSTRING":
		s := []byte(parseStringChunks(operands))
		prefixed := append([]byte{byte(len(s) & 0xFF)}, s...)
		return emitPackedString(prefixed)
	}
	return nil
}
