package emu

import (
	"fmt"
	"io"

	"github.com/revaldinho/argus400/isa"
	"github.com/revaldinho/argus400/word"
)

// Fault reports a decode fault or unimplemented-opcode condition (spec
// §4.4 "Failure semantics"). Step records it on CPU.Err when the CPU
// enters the Faulted state; it stays readable there after the run stops.
type Fault struct {
	PC      uint32
	Message string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%04x: %s", f.PC, f.Message)
}

// CPU is one Argus machine instance: the address space, program
// counter, overflow latch and busy-flag register, and the bookkeeping
// needed to reproduce the historical trace and timing report.
type CPU struct {
	Mem *word.Memory
	PC  uint32

	Busy      uint32 // bit-per-device pending flags; nothing in this system ever sets a bit
	Overflow  bool   // sticky latch, cleared only by a taken jpovr
	InstrCount int
	State     State
	Err       *Fault

	Machine Machine
	Timers  []float64 // one accumulator per isa model column

	Trace   io.Writer // nil disables trace-line emission
	Console io.Writer // nil discards console output

	consoleBuf []byte // held while Trace != nil, written to Console by FlushConsole
}

// NewCPU returns a CPU ready to run: PC at the default start address,
// state Running, overflow latch clear (spec §4.4 "State machine").
func NewCPU(mem *word.Memory, machine Machine) *CPU {
	return &CPU{
		Mem:     mem,
		PC:      word.AddrStart,
		State:   Running,
		Machine: machine,
		Timers:  make([]float64, len(isa.ModelNames)),
	}
}

// Run steps the CPU until it leaves the Running state.
func (c *CPU) Run() {
	for c.State == Running {
		c.Step()
	}
}

// Step executes exactly one fetch/decode/execute cycle (spec §4.4,
// steps 1-8). It is a no-op once the CPU has left the Running state.
func (c *CPU) Step() {
	if c.State != Running {
		return
	}
	c.InstrCount++

	instrWord := uint32(c.Mem.Read(c.PC)) & word.Mask24
	n := (instrWord >> 10) & 0x3FFF
	opcode := isa.Opcode((instrWord >> 5) & 0x1F)
	x := int((instrWord >> 2) & 0x7)
	mod := int(instrWord & 0x3)

	accAddr := accumulatorAddr(x, opcode)

	var effOperand uint32
	if mod > 0 {
		effOperand = (uint32(c.Mem.Read(word.AddrInput+uint32(mod))) + n) & word.Mask24
	} else {
		effOperand = n
	}

	if effOperand == accAddr && effOperand != 0 {
		c.fault(fmt.Sprintf("decode fault: operand and accumulator addresses collide at %04x", effOperand))
		return
	}

	if c.Trace != nil {
		c.writeTraceLine(instrWord, opcode, x, n, mod, accAddr)
	}

	pcAtFetch := c.PC
	c.PC++

	if c.Machine == Machine500 {
		cost := isa.Cost(opcode, effOperand, mod != 0)
		for i := range c.Timers {
			c.Timers[i] += cost[i]
		}
	}

	c.dispatch(opcode, x, effOperand, mod, accAddr, pcAtFetch)
}

// accumulatorAddr implements spec §3's effective-accumulator-address
// rule, including the jpbusy exception: X == 0 normally reads/writes Z,
// but jpbusy treats X == 0 as a real accumulator address.
func accumulatorAddr(x int, op isa.Opcode) uint32 {
	if x == 0 && op != isa.JPBUSY {
		return word.AddrZ
	}
	return word.AddrInput + uint32(x)
}

func (c *CPU) fault(msg string) {
	c.State = Faulted
	c.Err = &Fault{PC: c.PC, Message: msg}
}

func (c *CPU) halt() {
	c.State = Halted
}

// FlushConsole writes out any console bytes held while a trace was
// active (spec §4.4: "buffered if listing is on and flushed at halt").
// Callers printing a trace should call this once after the run stops
// and after printing the halt/fault status line, matching the
// historical tool's "status line, then joined console output" order.
// With no trace active, out already writes bytes immediately and this
// is a no-op.
func (c *CPU) FlushConsole() {
	if len(c.consoleBuf) == 0 || c.Console == nil {
		return
	}
	c.Console.Write(c.consoleBuf)
	c.consoleBuf = nil
}
