// Package emu is the Argus 400/500 instruction-set emulator (component
// C4): the fetch/decode/execute loop, ALU and shift-unit semantics, and
// the per-model timing accumulator.
package emu

// State is one of the CPU's run states.
type State int

const (
	// Running is the only state in which Step advances execution.
	Running State = iota
	// Halted is reached by any of the documented halt conditions.
	Halted
	// Faulted is reached by a decode fault or an unimplemented opcode.
	Faulted
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Halted:
		return "Halted"
	case Faulted:
		return "Faulted"
	}
	return "Unknown"
}

// Machine selects which historical Argus variant is being emulated.
// It gates two things only: whether the slv opcode (0x1D under its
// Argus 500 alias) is legal, and whether the five-model
// timing accumulator runs. It is independent of isa.Model, which always
// indexes all five timing columns regardless of Machine (spec §6: the
// emulator's timing report compares all models, not just the selected
// one).
type Machine int

const (
	Machine100 Machine = iota
	Machine400
	Machine500
)
