package asm

import (
	"fmt"
	"strings"

	"github.com/revaldinho/argus400/isa"
)

// EncodedInstruction is the outcome of encoding one instruction line:
// the packed word plus whether the instruction used modified addressing
// (needed downstream by the timing table).
type EncodedInstruction struct {
	Word     uint32
	Modified bool
}

// encodeInstruction packs mnemonic/operands into a 24-bit instruction
// word per spec §4.3.3's `N[23:10] opcode[9:5] X[4:2] M[1:0]` layout.
// syms and pc are used to evaluate the operand expression(s).
func encodeInstruction(mnemonic, operands string, syms *SymbolTable, pc uint32, errs *ErrorList, pos Position, raw string) (EncodedInstruction, error) {
	op, ok := isa.Lookup(mnemonic)
	if !ok {
		return EncodedInstruction{}, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}

	var (
		exprText string
		mod      int
		x        int
	)

	fields := splitTopLevelComma(operands)

	switch {
	case op == isa.HALT:
		// no operands

	case isa.CanBeUnaryAddressing(op) && len(fields) == 1:
		of := parseOperandField(fields[0])
		exprText = of.ExprText
		mod = of.Modifier

	default:
		if len(fields) != 2 {
			return EncodedInstruction{}, fmt.Errorf("wrong number of operands for %s", mnemonic)
		}
		regField := strings.TrimSpace(fields[0])
		xn, err := parseRegister(regField)
		if err != nil {
			return EncodedInstruction{}, err
		}
		x = xn

		operandText := strings.TrimSpace(fields[1])
		if strings.HasPrefix(operandText, "#") {
			if isa.IsImmediateShortcutEligible(op) {
				op = isa.ImmediateVariant(op)
			}
			operandText = operandText[1:]
		}
		of := parseOperandField(operandText)
		exprText = of.ExprText
		mod = of.Modifier
	}

	var n uint32
	if exprText != "" {
		v, err := EvalExpr(exprText, syms, pc)
		if err != nil {
			return EncodedInstruction{}, err
		}
		n = v
	}

	// Operand expression beyond 14 bits is silently truncated (spec
	// §4.3.3: "documented, not repaired").
	word := (n&0x3FFF)<<10 | uint32(op)<<5 | uint32(x)<<2 | uint32(mod)
	return EncodedInstruction{Word: word, Modified: mod != 0}, nil
}

func parseRegister(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || (s[0] != 'r' && s[0] != 'R') {
		return 0, fmt.Errorf("expected register operand, got %q", s)
	}
	n := 0
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("expected register operand, got %q", s)
		}
		n = n*10 + int(c-'0')
	}
	if n < 0 || n > 7 {
		return 0, fmt.Errorf("register number out of range 0..7: %q", s)
	}
	return n, nil
}
