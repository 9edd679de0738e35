package emu

import (
	"fmt"

	"github.com/revaldinho/argus400/isa"
	"github.com/revaldinho/argus400/word"
)

// Header is the exact column header spec §6 specifies for the listing
// line format.
const Header = "PC   : Mem    : Instr  Reg Adr   (Mod) : C O :   R1     R2     R3     R4     R5     R6     R7   :    Q"

// writeTraceLine reproduces the historical trace row: `PC : word :
// mnemonic rX, N (rM) : C O : r1..r7 : Q` (spec §4.4 step 5). The
// Argus 400 mnemonic is used regardless of Machine, so a single
// dialect keeps trace output comparable across runs.
func (c *CPU) writeTraceLine(instrWord uint32, op isa.Opcode, x int, n uint32, mod int, accAddr uint32) {
	modStr := "    "
	if mod > 0 {
		modStr = fmt.Sprintf("(r%d)", mod)
	}
	instrStr := fmt.Sprintf("%-6s", isa.Name400[op])
	opregStr := fmt.Sprintf("r%d, %06x %s", x, n, modStr)

	regs := make([]string, 7)
	for i := 1; i <= 7; i++ {
		regs[i-1] = fmt.Sprintf("%06x", uint32(c.Mem.Read(word.AccAddr(i)))&word.Mask24)
	}

	carry := uint32(c.Mem.Read(word.AddrC)) & 1
	ovr := 0
	if c.Overflow {
		ovr = 1
	}

	fmt.Fprintf(c.Trace, "%04x : %06x : %s %s : %d %d : %s : %06x\n",
		c.PC, instrWord, instrStr, opregStr, carry, ovr, joinRegs(regs), uint32(c.Mem.Read(word.AddrQ))&word.Mask24)
}

func joinRegs(regs []string) string {
	out := regs[0]
	for _, r := range regs[1:] {
		out += " " + r
	}
	return out
}
