package emu

import (
	"github.com/revaldinho/argus400/isa"
	"github.com/revaldinho/argus400/word"
)

// dispatch executes the opcode decoded at pcAtFetch, per the table in
// spec §4.4. effOperand is the already-modified operand address; mod is
// the raw M field (also the shift distance's "no modifier" case for
// shift opcodes, which have no modifier semantics of their own).
func (c *CPU) dispatch(op isa.Opcode, x int, effOperand uint32, mod int, accAddr uint32, pcAtFetch uint32) {
	mem := c.Mem

	switch op {
	case isa.LD:
		mem.Write(accAddr, mem.Read(effOperand))

	case isa.LDM:
		raw := -int64(mem.Read(effOperand))
		c.writeWithCarry(accAddr, raw)

	case isa.ADD:
		acc := int64(mem.Read(accAddr))
		operand := int64(mem.Read(effOperand))
		raw := acc + operand
		c.writeWithCarry(accAddr, raw)
		c.updateAddOverflow(int32(acc), int32(operand), raw)

	case isa.SUB:
		acc := int64(mem.Read(accAddr))
		operand := int64(mem.Read(effOperand))
		raw := acc - operand
		c.writeWithCarry(accAddr, raw)
		c.updateSubOverflow(int32(acc), int32(operand), raw)

	case isa.LDC:
		mem.Write(accAddr, word.Mask(effOperand))

	case isa.LDMC:
		raw := -int64(effOperand)
		c.writeWithCarry(accAddr, raw)

	case isa.ADDC:
		acc := int64(mem.Read(accAddr))
		raw := acc + int64(effOperand)
		c.writeWithCarry(accAddr, raw)
		c.updateAddOverflow(int32(acc), int32(effOperand), raw)

	case isa.SUBC:
		acc := int64(mem.Read(accAddr))
		raw := acc - int64(effOperand)
		c.writeWithCarry(accAddr, raw)
		c.updateSubOverflow(int32(acc), int32(effOperand), raw)

	case isa.STO:
		mem.Write(effOperand, mem.Read(accAddr))

	case isa.STOM:
		raw := -int64(mem.Read(accAddr))
		c.writeWithCarry(effOperand, raw)

	case isa.MADD:
		operand := int64(mem.Read(effOperand))
		acc := int64(mem.Read(accAddr))
		raw := operand + acc
		c.writeWithCarry(effOperand, raw)
		c.updateAddOverflow(int32(acc), int32(operand), raw)

	case isa.MSUB:
		acc := int64(mem.Read(accAddr))
		operand := int64(mem.Read(effOperand))
		raw := acc - operand
		c.writeWithCarry(effOperand, raw)
		c.updateSubOverflow(int32(acc), int32(operand), raw)

	case isa.SWAP:
		tmp := mem.Read(effOperand)
		mem.Write(effOperand, mem.Read(accAddr))
		mem.Write(accAddr, tmp)

	case isa.AND:
		mem.Write(accAddr, mem.Read(accAddr)&mem.Read(effOperand))

	case isa.XOR:
		mem.Write(accAddr, mem.Read(accAddr)^mem.Read(effOperand))

	case isa.OR:
		mem.Write(accAddr, mem.Read(accAddr)|mem.Read(effOperand))

	case isa.JPZ:
		if mem.Read(accAddr) == 0 {
			if effOperand == pcAtFetch {
				c.halt()
				return
			}
			c.PC = effOperand
		}

	case isa.JPNZ:
		if mem.Read(accAddr) != 0 {
			c.PC = effOperand
		}

	case isa.JPGE:
		if uint32(mem.Read(accAddr))&word.SignBit24 == 0 {
			c.PC = effOperand
		}

	case isa.JPLT:
		if uint32(mem.Read(accAddr))&word.SignBit24 != 0 {
			c.PC = effOperand
		}

	case isa.JPOVR:
		if c.Overflow {
			c.PC = effOperand
			c.Overflow = false
		}

	case isa.JPBUSY:
		if c.Busy&(1<<uint(effOperand)) != 0 {
			c.PC = effOperand
		}

	case isa.JP:
		c.PC = uint32(mem.Read(effOperand))

	case isa.ASR:
		c.shiftAsr(accAddr, effOperand)

	case isa.ASL:
		result := uint64(mem.Read(accAddr)) << (effOperand & 0x1F)
		mem.Write(accAddr, word.Mask(uint32(result)))

	case isa.LSR:
		c.shiftLsr(accAddr, effOperand)

	case isa.ROL:
		c.rotateLeft(accAddr, effOperand)

	case isa.HALT:
		c.halt()

	case isa.NONE1D:
		if c.Machine != Machine500 {
			c.fault("opcode none1d (slv) is only implemented on the Argus 500")
			return
		}
		// No-op on the Argus 500 (reserved, never documented further).

	case isa.MUL:
		c.mul(accAddr, effOperand)

	case isa.DIV:
		c.div(accAddr, effOperand)

	case isa.OUT:
		c.out(accAddr, effOperand)

	default:
		c.fault("unidentified opcode")
	}
}

// writeWithCarry stores raw (already computed, possibly wider than 24
// bits or negative) into addr masked to 24 bits, and sets C to whether
// bit 24 of the raw infinite-precision result was set (spec §8
// invariant: "C equals (raw_result >> 24) & 1 using infinite-precision
// arithmetic").
func (c *CPU) writeWithCarry(addr uint32, raw int64) {
	c.Mem.Write(addr, word.Mask(uint32(raw)))
	carry := uint32(0)
	if raw&0x1000000 != 0 {
		carry = 1
	}
	c.Mem.Write(word.AddrC, word.Word(carry))
}

// updateAddOverflow sets the sticky overflow latch when signed 24-bit
// operands of like sign produce a result of the opposite sign (spec
// §4.4 "Signed-overflow rules").
func (c *CPU) updateAddOverflow(acc, operand int32, raw int64) {
	signAcc := signBit24(uint32(acc))
	signOperand := signBit24(uint32(operand))
	signResult := signBit24(uint32(raw))
	if signAcc == signOperand && signResult != signAcc {
		c.Overflow = true
	}
}

// updateSubOverflow sets the latch when signed operands of opposite
// sign produce a result whose sign disagrees with the minuend's.
func (c *CPU) updateSubOverflow(acc, operand int32, raw int64) {
	signAcc := signBit24(uint32(acc))
	signOperand := signBit24(uint32(operand))
	signResult := signBit24(uint32(raw))
	if signAcc != signOperand && signResult != signAcc {
		c.Overflow = true
	}
}

func signBit24(v uint32) uint32 {
	return (v >> 23) & 1
}

// shiftAsr performs the arithmetic right shift of the 48-bit (X:Q) pair
// described in spec §4.4 and §9, sign-extended to 80 bits so that
// shift distances up to 31 still produce the correct sign fill.
func (c *CPU) shiftAsr(accAddr uint32, effOperand uint32) {
	acc := uint64(c.Mem.Read(accAddr)) & word.Mask24
	q := uint64(c.Mem.Read(word.AddrQ)) & word.Mask24

	var signHalf uint64
	if acc&word.SignBit24 != 0 {
		signHalf = 0xFFFF // 16 bits of ones, repeated across both halves below
	}

	// double is the 80-bit value signExt(32):acc(24):q(24), represented
	// as two 64-bit halves so a shift distance up to 31 bits never needs
	// to look past bit 78.
	lo := q | acc<<24 | signHalf<<48
	hi := signHalf

	shift := effOperand & 0x1F
	var shifted uint64
	if shift == 0 {
		shifted = lo
	} else {
		shifted = (lo >> shift) | (hi << (64 - shift))
	}

	newQ := uint32(shifted & 0xFFFFFF)
	newAcc := uint32((shifted >> 24) & 0xFFFFFF)

	c.Mem.Write(word.AddrQ, word.Mask(newQ))
	c.Mem.Write(accAddr, word.Mask(newAcc))
}

// shiftLsr performs the logical right shift of the 48-bit (X:Q) pair.
func (c *CPU) shiftLsr(accAddr uint32, effOperand uint32) {
	acc := uint64(c.Mem.Read(accAddr)) & word.Mask24
	q := uint64(c.Mem.Read(word.AddrQ)) & word.Mask24
	double := acc<<24 | q
	result := double >> (effOperand & 0x1F)
	c.Mem.Write(word.AddrQ, word.Mask(uint32(result&0xFFFFFF)))
	c.Mem.Write(accAddr, word.Mask(uint32((result>>24)&0xFFFFFF)))
}

// rotateLeft rotates the accumulator left by effOperand&0x1F bits,
// using the historical "tripled word" trick (spec §4.4): X is
// conceptually repeated three times end to end so any shift distance
// up to 31 bits still yields a correct 24-bit rotation.
func (c *CPU) rotateLeft(accAddr uint32, effOperand uint32) {
	acc := uint32(c.Mem.Read(accAddr)) & word.Mask24
	d := (effOperand & 0x1F) % 24
	var result uint32
	if d == 0 {
		result = acc
	} else {
		result = ((acc << d) | (acc >> (24 - d))) & word.Mask24
	}
	c.Mem.Write(accAddr, word.Mask(result))
}

// mul implements the 24x24-bit multiply: the low 23 bits of the
// unsigned product go to Q, the high 24 bits go to X. Overflow uses the
// relaxed rule spec §9 offers in place of the source's documented
// "compares sign_result != 0 for same-signed operands" bug: the high 24
// bits are nonzero with a sign that contradicts the sign the product
// should have, given the signs of the two original operands.
func (c *CPU) mul(accAddr uint32, effOperand uint32) {
	operand := uint64(c.Mem.Read(effOperand)) & word.Mask24
	acc := uint64(c.Mem.Read(accAddr)) & word.Mask24
	signOperand := signBit24(uint32(operand))
	signAcc := signBit24(uint32(acc))

	result := operand * acc
	lo := uint32(result & 0x7FFFFF)
	hi := uint32((result >> 23) & 0xFFFFFF)
	c.Mem.Write(word.AddrQ, word.Mask(lo))
	c.Mem.Write(accAddr, word.Mask(hi))

	expectedSign := signAcc ^ signOperand // 0 = like signs -> positive, 1 = unlike -> negative
	if hi != 0 && signBit24(hi) != expectedSign {
		c.Overflow = true
	}
}

// div implements the 48-bit-dividend divide: (X<<23 + Q) / mem[operand],
// quotient to Q, remainder to X. Division by zero is a fatal trap (spec
// §8 "boundary behaviors": "must be reported as a fatal trap").
func (c *CPU) div(accAddr uint32, effOperand uint32) {
	divisor := uint64(c.Mem.Read(effOperand)) & word.Mask24
	if divisor == 0 {
		c.fault("division by zero")
		return
	}
	dividend := uint64(c.Mem.Read(accAddr))<<23 + uint64(c.Mem.Read(word.AddrQ))
	quotient := dividend / divisor
	remainder := dividend % divisor

	c.Mem.Write(word.AddrQ, word.Mask(uint32(quotient&0xFFFFFF)))
	c.Mem.Write(accAddr, word.Mask(uint32(remainder)))
}

// out sinks one byte to the console when effOperand is the console
// port (0x0010); effOperand 0 to accumulator 0 is the Argus 500-style
// halt (spec §4.4, §6). When a trace is active, console bytes are held
// in consoleBuf until FlushConsole writes them out, so they don't
// interleave with the trace stream; with no trace, bytes go straight to
// Console.
func (c *CPU) out(accAddr uint32, effOperand uint32) {
	if effOperand == 0x0010 {
		b := byte(uint32(c.Mem.Read(accAddr)) % 127)
		if c.Trace != nil {
			c.consoleBuf = append(c.consoleBuf, b)
		} else if c.Console != nil {
			c.Console.Write([]byte{b})
		}
		return
	}
	if effOperand == 0 && accAddr == word.AddrZ {
		c.halt()
	}
}
