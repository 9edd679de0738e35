// Package isa is the opcode table for the Argus 400/500 instruction set
// (component C2): mnemonic-to-opcode mapping for both the Argus 400 and
// Argus 500 names, and the per-model timing table.
package isa

// Opcode is one of the 32 five-bit operation codes (spec §3 bits 9..5,
// §4.2). Numeric values below are fixed by the historical source
// (original_source/argus400/src/a400asm.py's op list) and must not move.
type Opcode uint8

const (
	LD     Opcode = 0x00 // ld / ldx
	LDM    Opcode = 0x01 // ldm / nlx
	ADD    Opcode = 0x02
	SUB    Opcode = 0x03
	LDC    Opcode = 0x04
	LDMC   Opcode = 0x05 // ldmc / lmc
	ADDC   Opcode = 0x06 // addc / adc
	SUBC   Opcode = 0x07 // subc / sbc
	STO    Opcode = 0x08
	STOM   Opcode = 0x09 // stom / stn
	MADD   Opcode = 0x0A // madd / ads
	MSUB   Opcode = 0x0B // msub / ssb
	SWAP   Opcode = 0x0C // swap / exc
	AND    Opcode = 0x0D
	XOR    Opcode = 0x0E // xor / neq
	OR     Opcode = 0x0F // or / orf
	JPZ    Opcode = 0x10 // jpz / jze
	JPNZ   Opcode = 0x11 // jpnz / jnz
	JPGE   Opcode = 0x12 // jpge / jge
	JPLT   Opcode = 0x13 // jplt / jlt
	JPOVR  Opcode = 0x14 // jpovr / ovr
	JPBUSY Opcode = 0x15 // jpbusy / jbs
	OUT    Opcode = 0x16
	JP     Opcode = 0x17 // jp / jcs
	ASR    Opcode = 0x18 // asr / sra
	ASL    Opcode = 0x19 // asl / sla
	LSR    Opcode = 0x1A // lsr / srl
	ROL    Opcode = 0x1B // rol / slc
	HALT   Opcode = 0x1C // halt / sll
	NONE1D Opcode = 0x1D // none1d / slv
	MUL    Opcode = 0x1E // mul / mpy
	DIV    Opcode = 0x1F
)

// OpcodeCount is the number of defined opcodes.
const OpcodeCount = 32

// Name400 is the canonical Argus 400 mnemonic for each opcode, used by
// the assembler and by listing/trace output.
var Name400 = [OpcodeCount]string{
	LD: "ld", LDM: "ldm", ADD: "add", SUB: "sub",
	LDC: "ldc", LDMC: "ldmc", ADDC: "addc", SUBC: "subc",
	STO: "sto", STOM: "stom", MADD: "madd", MSUB: "msub",
	SWAP: "swap", AND: "and", XOR: "xor", OR: "or",
	JPZ: "jpz", JPNZ: "jpnz", JPGE: "jpge", JPLT: "jplt",
	JPOVR: "jpovr", JPBUSY: "jpbusy", OUT: "out", JP: "jp",
	ASR: "asr", ASL: "asl", LSR: "lsr", ROL: "rol",
	HALT: "halt", NONE1D: "none1d", MUL: "mul", DIV: "div",
}

// Name500 is the Argus 500 alias mnemonic for each opcode.
var Name500 = [OpcodeCount]string{
	LD: "ldx", LDM: "nlx", ADD: "add", SUB: "sub",
	LDC: "ldc", LDMC: "lmc", ADDC: "adc", SUBC: "sbc",
	STO: "sto", STOM: "stn", MADD: "ads", MSUB: "ssb",
	SWAP: "exc", AND: "and", XOR: "neq", OR: "orf",
	JPZ: "jze", JPNZ: "jnz", JPGE: "jge", JPLT: "jlt",
	JPOVR: "ovr", JPBUSY: "jbs", OUT: "out", JP: "jcs",
	ASR: "sra", ASL: "sla", LSR: "srl", ROL: "slc",
	HALT: "sll", NONE1D: "slv", MUL: "mpy", DIV: "div",
}

// mnemonics maps every accepted spelling (both 400 and 500 names) to its
// opcode, built once from Name400/Name500 above.
var mnemonics = func() map[string]Opcode {
	m := make(map[string]Opcode, OpcodeCount*2)
	for op := Opcode(0); op < OpcodeCount; op++ {
		m[Name400[op]] = op
		m[Name500[op]] = op
	}
	return m
}()

// Lookup resolves a mnemonic (in either the Argus 400 or Argus 500
// spelling) to its opcode. The assembler resolves every mnemonic through
// it, so source may use either spelling; the emulator decodes numeric
// opcodes and does not call it.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := mnemonics[mnemonic]
	return op, ok
}

// CanBeUnaryAddressing reports whether op accepts the single-operand
// <expr>[!rN] syntax (spec §4.3.3) in addition to the rX, <expr>[!rN]
// form; the operand count on the line decides which form applies.
func CanBeUnaryAddressing(op Opcode) bool {
	return op == JP || op == JPOVR
}

// IsImmediateShortcutEligible reports whether op is one of the four
// opcodes for which a "#" operand prefix substitutes the c-suffixed
// opcode (ld->ldc, ldm->ldmc, add->addc, sub->subc).
func IsImmediateShortcutEligible(op Opcode) bool {
	switch op {
	case LD, LDM, ADD, SUB:
		return true
	}
	return false
}

// ImmediateVariant returns the c-suffixed opcode for the four opcodes
// eligible for the "#" immediate shortcut.
func ImmediateVariant(op Opcode) Opcode {
	switch op {
	case LD:
		return LDC
	case LDM:
		return LDMC
	case ADD:
		return ADDC
	case SUB:
		return SUBC
	}
	return op
}

// IsShift reports whether op is one of the shift-family opcodes (asr,
// asl, lsr, rol, sll, slv) whose operand doubles as a shift distance —
// used by the timing table's per-bit shift adjustment.
func IsShift(op Opcode) bool {
	return op >= ASR && op <= NONE1D
}
