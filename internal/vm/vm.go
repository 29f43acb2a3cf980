// Package vm implements the CHIP-8 execution engine.
//
// The engine owns all machine state: registers, stack, main memory, display
// and key state. It is driven by the host calling Cycle with the elapsed wall
// clock time, which executes instructions at the configured clock speed and
// decrements the timers at a fixed 60 Hz rate independent of it.
//
// The engine is not safe for concurrent use, a host with multiple goroutines
// has to serialize all calls.
package vm

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/registers"
	"github.com/retroenv/chip8vm/internal/stack"
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultClockSpeed is the default CPU clock speed in Hz.
	DefaultClockSpeed = 700.0
	// TimerRate is the fixed rate of the delay and sound timers in Hz.
	TimerRate = 60.0
	// KeyCount is the number of keys of the hex keypad.
	KeyCount = 16
)

// State is the execution state of the virtual machine.
type State uint8

const (
	// Running executes one instruction per elapsed cycle period.
	Running State = iota
	// AwaitingKey stalls execution until a key is pressed.
	AwaitingKey
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Option configures a virtual machine.
type Option func(*VM)

// WithRandom sets the source of random bytes used by the random instruction.
func WithRandom(random func() uint8) Option {
	return func(v *VM) {
		v.random = random
	}
}

// pendingKey marks the register that receives the next pressed key.
type pendingKey struct {
	register instruction.Register
	set      bool
}

// VM is a CHIP-8 virtual machine.
type VM struct {
	logger *log.Logger
	random func() uint8

	registers registers.Registers
	stack     stack.Stack
	memory    *memory.Memory
	display   display.Display

	keys    [KeyCount]bool
	pending pendingKey

	cyclePeriod      time.Duration
	sinceCycle       time.Duration
	timerPeriod      time.Duration
	sinceTimer       time.Duration
	soundWarningDone bool

	err error // fatal error that halted the machine
}

// New returns a virtual machine with the program image loaded at the program
// start address, running at the given clock speed in Hz.
func New(logger *log.Logger, program []byte, clockSpeed float64, options ...Option) (*VM, error) {
	cyclePeriod, err := CyclePeriod(clockSpeed)
	if err != nil {
		return nil, err
	}
	timerPeriod, err := CyclePeriod(TimerRate)
	if err != nil {
		return nil, fmt.Errorf("calculating timer period: %w", err)
	}

	if len(program) > memory.ProgramSize {
		logger.Warn("Program is larger than the program memory and will be truncated",
			log.Int("size", len(program)),
			log.Int("max_size", memory.ProgramSize))
	}

	v := &VM{
		logger:      logger,
		random:      randomByte,
		memory:      memory.New(program),
		cyclePeriod: cyclePeriod,
		timerPeriod: timerPeriod,
	}
	for _, option := range options {
		option(v)
	}
	return v, nil
}

// CyclePeriod returns the period of the given frequency in Hz, rounded to
// whole microseconds. Frequencies that do not result in a period of at least
// one microsecond return ErrInvalidClockSpeed.
func CyclePeriod(hz float64) (time.Duration, error) {
	if hz <= 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
		return 0, fmt.Errorf("%w: %g Hz", ErrInvalidClockSpeed, hz)
	}
	micros := math.Round(1e6 / hz)
	if micros < 1 {
		return 0, fmt.Errorf("%w: %g Hz", ErrInvalidClockSpeed, hz)
	}
	return time.Duration(micros) * time.Microsecond, nil
}

func randomByte() uint8 {
	return uint8(rand.UintN(256))
}

// Cycle advances the virtual machine by the elapsed wall clock time. It
// executes one instruction for every whole cycle period that passed, a cycle
// that passes while awaiting a key press is consumed without executing.
// Timers are decremented once for every whole 60 Hz period that passed.
// Fractions of a period are carried over to the next call.
// A returned error is fatal, every following call returns the same error.
func (v *VM) Cycle(elapsed time.Duration) error {
	if v.err != nil {
		return v.err
	}
	if elapsed < 0 {
		elapsed = 0
	}

	v.sinceCycle += elapsed
	v.sinceTimer += elapsed

	for v.sinceCycle >= v.cyclePeriod {
		v.sinceCycle -= v.cyclePeriod
		if err := v.Step(); err != nil {
			return err
		}
	}

	for v.sinceTimer >= v.timerPeriod {
		v.sinceTimer -= v.timerPeriod
		v.registers.TickTimers()
	}
	return nil
}

// Step fetches, decodes and executes a single instruction. It does nothing
// while awaiting a key press.
func (v *VM) Step() error {
	if v.err != nil {
		return v.err
	}
	if v.pending.set {
		return nil
	}

	address := v.memory.ProgramCounter()
	opcode, ok := v.memory.FetchOpcode()
	if !ok {
		v.err = &ExecutionError{Address: address, Err: ErrProgramExhausted}
		return v.err
	}

	ins := instruction.Decode(opcode)
	v.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Hex("opcode", opcode),
		log.Stringer("instruction", ins))

	if err := v.execute(ins); err != nil {
		v.err = &ExecutionError{
			Address:     address,
			Opcode:      opcode,
			Instruction: ins,
			Err:         err,
		}
		return v.err
	}
	return nil
}

// UpdateKey sets the pressed state of a key. Pressing a key while awaiting
// a key press stores the key code in the awaiting register and resumes
// execution.
func (v *VM) UpdateKey(code uint8, pressed bool) error {
	if code >= KeyCount {
		return fmt.Errorf("%w: 0x%X", ErrInvalidKey, code)
	}

	v.keys[code] = pressed
	if !pressed || !v.pending.set {
		return nil
	}

	if err := v.registers.Write(v.pending.register, code); err != nil {
		return fmt.Errorf("storing pressed key: %w", err)
	}
	v.logger.Debug("Key press resumed execution",
		log.Hex("key", code),
		log.Hex("register", uint8(v.pending.register)))
	v.pending = pendingKey{}
	return nil
}

// State returns the current execution state.
func (v *VM) State() State {
	if v.pending.set {
		return AwaitingKey
	}
	return Running
}

// AwaitingRegister returns the register that receives the next key press,
// if execution is stalled awaiting a key press.
func (v *VM) AwaitingRegister() (instruction.Register, bool) {
	return v.pending.register, v.pending.set
}

// Err returns the fatal error that halted the machine, if any.
func (v *VM) Err() error {
	return v.err
}

// Display returns a snapshot of the display cells, row major with
// display.Width columns and display.Height rows, each cell being 0 or 1.
func (v *VM) Display() []byte {
	return v.display.Buffer()
}

// CopyDisplay copies the display cells into dst, avoiding an allocation per frame.
func (v *VM) CopyDisplay(dst []byte) int {
	return v.display.CopyTo(dst)
}

// Registers returns a copy of the register file.
func (v *VM) Registers() registers.Registers {
	return v.registers
}

// ProgramCounter returns the address of the next instruction to execute.
func (v *VM) ProgramCounter() uint16 {
	return v.memory.ProgramCounter()
}

// ProgramLength returns the number of opcodes of the loaded program image.
func (v *VM) ProgramLength() int {
	return v.memory.ProgramLength()
}
