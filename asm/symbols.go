package asm

import "github.com/revaldinho/argus400/word"

// Symbol is one entry of the assembler's symbol table (spec §3).
type Symbol struct {
	Name  string
	Value uint32
	Pos   Position
}

// SymbolTable maps identifiers to 24-bit values. It is pre-seeded with
// r0..r7 and mutated only during pass 1; pass 2 only reads it. Labels
// and EQU entries share this one namespace, and a second definition of
// either is a fatal assembler error (spec §3, §4.3.2). Grounded on the
// teacher's parser.SymbolTable, simplified: two-pass assembly is a
// closed fixed point (spec §8), so no forward-reference/relocation
// bookkeeping is needed here.
type SymbolTable struct {
	symbols map[string]*Symbol
}

// NewSymbolTable returns a table pre-seeded with r0=0, r1..r7=0x1001..0x1007.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{symbols: make(map[string]*Symbol)}
	for i := 0; i <= 7; i++ {
		st.symbols[regName(i)] = &Symbol{Name: regName(i), Value: word.AccAddr(i)}
	}
	return st
}

func regName(i int) string {
	return "r" + string(rune('0'+i))
}

// Define binds name to value at pos. Redefining an existing symbol
// (including the pre-seeded register names) is reported as an
// ErrorSymbolRedefinition and the original binding is kept.
func (st *SymbolTable) Define(name string, value uint32, pos Position, errs *ErrorList) {
	if existing, ok := st.symbols[name]; ok {
		errs.AddError(NewError(pos, ErrorSymbolRedefinition,
			"symbol \""+name+"\" redefined (first defined at "+existing.Pos.String()+")", name))
		return
	}
	st.symbols[name] = &Symbol{Name: name, Value: value, Pos: pos}
}

// Get returns the value bound to name, or ok=false if undefined.
func (st *SymbolTable) Get(name string) (uint32, bool) {
	sym, ok := st.symbols[name]
	if !ok {
		return 0, false
	}
	return sym.Value, true
}

// All returns every symbol currently defined (used by listing output).
func (st *SymbolTable) All() map[string]*Symbol {
	return st.symbols
}
