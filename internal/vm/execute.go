package vm

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/instruction"
	"github.com/retroenv/chip8vm/internal/memory"
)

// execute runs a decoded instruction against the machine state.
func (v *VM) execute(ins instruction.Instruction) error {
	switch ins.Op {
	case instruction.NoOp:
		return nil

	case instruction.ClearScreen:
		v.display.Clear()
		return nil

	case instruction.Return:
		address, err := v.stack.Pop()
		if err != nil {
			return err
		}
		return v.memory.SetProgramCounter(address)

	case instruction.Jump:
		return v.memory.SetProgramCounter(uint16(ins.Address))

	case instruction.Call:
		if err := v.stack.Push(v.memory.ProgramCounter()); err != nil {
			return err
		}
		return v.memory.SetProgramCounter(uint16(ins.Address))

	case instruction.JumpFromOffset:
		offset, err := v.registers.Read(0)
		if err != nil {
			return err
		}
		return v.memory.SetProgramCounter(uint16(offset) + uint16(ins.Address))

	case instruction.SkipIfEqualData, instruction.SkipIfNotEqualData,
		instruction.SkipIfEqualRegister, instruction.SkipIfNotEqualRegister:
		return v.executeCompareSkip(ins)

	case instruction.SkipIfPressed, instruction.SkipIfNotPressed:
		return v.executeKeySkip(ins)

	case instruction.LoadData:
		return v.registers.Write(ins.X, uint8(ins.Data))

	case instruction.AddData:
		value, err := v.registers.Read(ins.X)
		if err != nil {
			return err
		}
		return v.registers.Write(ins.X, value+uint8(ins.Data))

	case instruction.LoadRegister, instruction.Or, instruction.And, instruction.Xor,
		instruction.Add, instruction.Sub, instruction.NegatedSub:
		return v.executeArithmetic(ins)

	case instruction.ShiftRight, instruction.ShiftLeft:
		return v.executeShift(ins)

	case instruction.SetAddressRegister:
		v.registers.I = uint16(ins.Address)
		return nil

	case instruction.Random:
		return v.registers.Write(ins.X, v.random()&uint8(ins.Data))

	case instruction.Draw:
		return v.executeDraw(ins)

	case instruction.AwaitKeyPress:
		if _, err := v.registers.Read(ins.X); err != nil {
			return err
		}
		v.pending = pendingKey{register: ins.X, set: true}
		return nil

	case instruction.SetRegisterFromDelay, instruction.SetDelayFromRegister,
		instruction.SetSoundFromRegister:
		return v.executeTimer(ins)

	case instruction.AddAddressRegister, instruction.LoadSprite, instruction.StoreBCD,
		instruction.StoreRegisters, instruction.ReadRegisters:
		return v.executeAddressRegister(ins)

	case instruction.Unknown:
		return fmt.Errorf("%w: 0x%04X", ErrUnknownOpcode, ins.Raw)

	default:
		return fmt.Errorf("%w: unhandled instruction %s", ErrUnknownOpcode, ins.Op)
	}
}

// readPair returns the values of the X and Y registers of an instruction.
func (v *VM) readPair(ins instruction.Instruction) (uint8, uint8, error) {
	x, err := v.registers.Read(ins.X)
	if err != nil {
		return 0, 0, err
	}
	y, err := v.registers.Read(ins.Y)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func (v *VM) executeCompareSkip(ins instruction.Instruction) error {
	x, err := v.registers.Read(ins.X)
	if err != nil {
		return err
	}

	var skip bool
	switch ins.Op {
	case instruction.SkipIfEqualData:
		skip = x == uint8(ins.Data)
	case instruction.SkipIfNotEqualData:
		skip = x != uint8(ins.Data)
	default:
		y, err := v.registers.Read(ins.Y)
		if err != nil {
			return err
		}
		if ins.Op == instruction.SkipIfEqualRegister {
			skip = x == y
		} else {
			skip = x != y
		}
	}

	if skip {
		v.memory.SkipInstruction()
	}
	return nil
}

func (v *VM) executeKeySkip(ins instruction.Instruction) error {
	key, err := v.registers.Read(ins.X)
	if err != nil {
		return err
	}
	if key >= KeyCount {
		return fmt.Errorf("%w: 0x%X in V%X", ErrInvalidKey, key, uint8(ins.X))
	}

	pressed := v.keys[key]
	if pressed == (ins.Op == instruction.SkipIfPressed) {
		v.memory.SkipInstruction()
	}
	return nil
}

// executeArithmetic handles the 8xyn register to register operations. The
// flag register is written before the destination register, a destination
// of VF therefore ends up holding the result.
func (v *VM) executeArithmetic(ins instruction.Instruction) error {
	x, y, err := v.readPair(ins)
	if err != nil {
		return err
	}

	var result uint8
	switch ins.Op {
	case instruction.LoadRegister:
		result = y
	case instruction.Or:
		result = x | y
	case instruction.And:
		result = x & y
	case instruction.Xor:
		result = x ^ y

	case instruction.Add:
		sum := uint16(x) + uint16(y)
		if err := v.setFlag(sum > 0xFF); err != nil {
			return err
		}
		result = uint8(sum)

	case instruction.Sub:
		if err := v.setFlag(x > y); err != nil {
			return err
		}
		result = x - y

	case instruction.NegatedSub:
		if err := v.setFlag(y > x); err != nil {
			return err
		}
		result = y - x
	}

	return v.registers.Write(ins.X, result)
}

// executeShift shifts the X register, the flag register receives the bit
// shifted out.
func (v *VM) executeShift(ins instruction.Instruction) error {
	x, err := v.registers.Read(ins.X)
	if err != nil {
		return err
	}

	var flag, result uint8
	if ins.Op == instruction.ShiftRight {
		flag, result = x&0x01, x>>1
	} else {
		flag, result = x>>7, x<<1
	}

	if err := v.registers.Write(instruction.FlagRegister, flag); err != nil {
		return err
	}
	return v.registers.Write(ins.X, result)
}

func (v *VM) executeDraw(ins instruction.Instruction) error {
	x, y, err := v.readPair(ins)
	if err != nil {
		return err
	}

	start := v.registers.I
	sprite, err := v.memory.Slice(start, start+uint16(ins.Data))
	if err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}

	collision := v.display.Draw(x, y, sprite)
	return v.setFlag(collision)
}

func (v *VM) executeTimer(ins instruction.Instruction) error {
	switch ins.Op {
	case instruction.SetRegisterFromDelay:
		return v.registers.Write(ins.X, v.registers.DelayTimer)

	case instruction.SetDelayFromRegister:
		value, err := v.registers.Read(ins.X)
		if err != nil {
			return err
		}
		v.registers.DelayTimer = value
		return nil

	default: // SetSoundFromRegister
		// sound output is not supported, the sound timer is never set
		if !v.soundWarningDone {
			v.soundWarningDone = true
			v.logger.Warn("Sound is not supported, ignoring sound timer")
		}
		return nil
	}
}

// executeAddressRegister handles the instructions operating on the address register I.
func (v *VM) executeAddressRegister(ins instruction.Instruction) error {
	x, err := v.registers.Read(ins.X)
	if err != nil {
		return err
	}
	base := v.registers.I

	switch ins.Op {
	case instruction.AddAddressRegister:
		v.registers.I += uint16(x)
		return nil

	case instruction.LoadSprite:
		v.registers.I = memory.FontAddress(x)
		return nil

	case instruction.StoreBCD:
		digits := [3]uint8{x / 100 % 10, x / 10 % 10, x % 10}
		for i, digit := range digits {
			if err := v.memory.Write(base+uint16(i), digit); err != nil {
				return err
			}
		}
		return nil

	case instruction.StoreRegisters:
		for reg := instruction.Register(0); reg <= ins.X; reg++ {
			value, err := v.registers.Read(reg)
			if err != nil {
				return err
			}
			if err := v.memory.Write(base+uint16(reg), value); err != nil {
				return err
			}
		}
		return nil

	default: // ReadRegisters
		for reg := instruction.Register(0); reg <= ins.X; reg++ {
			value, err := v.memory.Load(base + uint16(reg))
			if err != nil {
				return err
			}
			if err := v.registers.Write(reg, value); err != nil {
				return err
			}
		}
		return nil
	}
}

func (v *VM) setFlag(set bool) error {
	var flag uint8
	if set {
		flag = 1
	}
	return v.registers.Write(instruction.FlagRegister, flag)
}
