// Package disasm writes a listing of a scanned CHIP-8 program image.
//
// Every opcode of the program image is output with its assembler code and
// the decoded instruction. The program start and all jump, call and data
// reference destinations inside the program get a label line.
package disasm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	startNaming = "Start"
	dataNaming  = "_data_%04x"
	labelNaming = "_label_%04x"
	subNaming   = "_sub_%04x"
)

// Disasm writes program listings.
type Disasm struct {
	logger  *log.Logger
	options options.Listing

	jumpDestinations set.Set[uint16]
	callDestinations set.Set[uint16]
	dataReferences   set.Set[uint16]
}

// New returns a listing writer.
func New(logger *log.Logger, opts options.Listing) *Disasm {
	return &Disasm{
		logger:           logger,
		options:          opts,
		jumpDestinations: set.New[uint16](),
		callDestinations: set.New[uint16](),
		dataReferences:   set.New[uint16](),
	}
}

// Process writes the listing of the scan entries to the writer.
// The instruction following a skip instruction is indented as it executes
// conditionally. An unconditional jump or return is followed by an empty line.
func (d *Disasm) Process(writer io.Writer, entries []vm.ScanEntry) error {
	d.collectDestinations(entries)

	w := bufio.NewWriter(writer)
	var unknown int
	var conditional bool

	for _, entry := range entries {
		if label := d.label(entry.Address); label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		ins := entry.Instruction
		if ins.Op == instruction.Unknown {
			unknown++
		}
		if _, err := fmt.Fprintln(w, d.line(entry, conditional)); err != nil {
			return fmt.Errorf("writing instruction: %w", err)
		}

		if !conditional && (ins.IsJump() || ins.IsReturn()) {
			if _, err := fmt.Fprintln(w); err != nil {
				return fmt.Errorf("writing instruction: %w", err)
			}
		}

		name, ok := Mnemonic(entry.Opcode)
		conditional = ok && IsSkip(name)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	d.logger.Debug("Program listing written",
		log.Int("opcodes", len(entries)),
		log.Int("unknown", unknown),
		log.Int("labels", len(d.jumpDestinations)+len(d.callDestinations)+len(d.dataReferences)))
	return nil
}

// collectDestinations records all jump, call and data reference targets that
// address an opcode of the scanned range.
func (d *Disasm) collectDestinations(entries []vm.ScanEntry) {
	if len(entries) == 0 {
		return
	}
	first := entries[0].Address
	last := entries[len(entries)-1].Address

	for _, entry := range entries {
		ins := entry.Instruction
		target := uint16(ins.Address)
		if target < first || target > last || (target-first)%memory.OpcodeSize != 0 {
			continue
		}

		switch {
		case ins.IsCall():
			d.callDestinations.Add(target)
		case ins.IsJump():
			d.jumpDestinations.Add(target)
		case ins.IsDataReference():
			d.dataReferences.Add(target)
		}
	}
}

func (d *Disasm) label(address uint16) string {
	switch {
	case address == memory.ProgramStart:
		return startNaming
	case d.callDestinations.Contains(address):
		return fmt.Sprintf(subNaming, address)
	case d.jumpDestinations.Contains(address):
		return fmt.Sprintf(labelNaming, address)
	case d.dataReferences.Contains(address):
		return fmt.Sprintf(dataNaming, address)
	default:
		return ""
	}
}

// targetLabel returns the label of the address operand of the instruction,
// if the operand addresses a labeled opcode.
func (d *Disasm) targetLabel(ins instruction.Instruction) string {
	if !ins.IsCall() && !ins.IsJump() && !ins.IsDataReference() {
		return ""
	}
	return d.label(uint16(ins.Address))
}

func (d *Disasm) line(entry vm.ScanEntry, conditional bool) string {
	code := Code(entry.Opcode, entry.Instruction)
	if label := d.targetLabel(entry.Instruction); label != "" {
		name, _ := Mnemonic(entry.Opcode)
		if entry.Instruction.IsDataReference() {
			code = fmt.Sprintf("%s I, %s", name, label)
		} else {
			code = fmt.Sprintf("%s %s", name, label)
		}
	}

	indent := "  "
	if conditional {
		indent = "    "
	}
	line := fmt.Sprintf("%s%-24s ; %s", indent, code, entry.Instruction)
	if d.options.HexComments {
		line += fmt.Sprintf(" $%04X", entry.Opcode)
	}
	if d.options.OffsetComments {
		line = fmt.Sprintf("%04X %s", entry.Address, line)
	}
	return line
}
