package isa

// Word is a single 32-bit ReTI instruction.
type Word uint32

// Class is the instruction class held in bits 31-30.
type Class int

//go:generate go tool stringer -linecomment -type=Class
const (
	CLASS_COMPUTE = Class(0) // COMPUTE
	CLASS_LOAD    = Class(1) // LOAD
	CLASS_STORE   = Class(2) // STORE
	CLASS_JUMP    = Class(3) // JUMP
)

// Operand is the source of a COMPUTE operand.
type Operand int

const (
	OPERAND_IMMEDIATE = Operand(0) // Sign extended immediate.
	OPERAND_MEMORY    = Operand(1) // Memory word at the operand address.
	OPERAND_REGISTER  = Operand(2) // Register (OS variant only).
)

// Mode is the addressing mode of a LOAD or STORE.
type Mode int

const (
	MODE_DIRECT    = Mode(0) // mem[addr]
	MODE_INDEXED   = Mode(1) // mem[reg + offset]
	MODE_IMMEDIATE = Mode(2) // LOADI
	MODE_INVALID   = Mode(3) // Unassigned encoding.

	MODE_MOVE = MODE_IMMEDIATE // STORE encoding of MOVE S D.
)

// JumpKind separates jumps from the OS variant's INT and RTI.
type JumpKind int

const (
	JUMP_KIND_JUMP    = JumpKind(0)
	JUMP_KIND_INT     = JumpKind(1)
	JUMP_KIND_RTI     = JumpKind(2)
	JUMP_KIND_INVALID = JumpKind(3)
)

// Cond is the three flag JUMP condition mask.
type Cond int

const (
	COND_NEVER  = Cond(0b000) // NOP
	COND_GT     = Cond(0b001) // ACC > 0
	COND_EQ     = Cond(0b010) // ACC = 0
	COND_GE     = Cond(0b011)
	COND_LT     = Cond(0b100) // ACC < 0
	COND_NE     = Cond(0b101)
	COND_LE     = Cond(0b110)
	COND_ALWAYS = Cond(0b111)
)

var condSuffix = [8]string{"", ">", "=", ">=", "<", "!=", "<=", ""}

// Suffix returns the canonical mnemonic suffix of the condition.
func (cond Cond) Suffix() string {
	return condSuffix[cond&0x7]
}

// Holds evaluates the condition against the accumulator.
func (cond Cond) Holds(acc int32) bool {
	switch {
	case acc > 0:
		return cond&COND_GT != 0
	case acc == 0:
		return cond&COND_EQ != 0
	default:
		return cond&COND_LT != 0
	}
}

// Class returns the instruction class.
func (w Word) Class() Class {
	return Class((w >> 30) & 0x3)
}

func (isa *Isa) reg(w Word, shift int) Reg {
	return Reg((uint32(w) >> shift) & ((1 << isa.regBits) - 1))
}

func (isa *Isa) put(reg Reg, shift int) uint32 {
	return (uint32(reg) & ((1 << isa.regBits) - 1)) << shift
}

// ComputeDecode decodes a COMPUTE word. For OPERAND_REGISTER the source
// register code is returned in arg.
func (isa *Isa) ComputeDecode(w Word) (op Operand, fn Func, d Reg, arg uint32) {
	fn = Func((w >> 26) & 0x7)
	d = isa.reg(w, isa.dShift)
	arg = uint32(w) & isa.ImmMask()

	switch {
	case isa.rBit != 0 && (w>>isa.rBit)&1 == 1:
		op = OPERAND_REGISTER
		arg = uint32(isa.reg(w, isa.rShift))
	case (w>>29)&1 == 1:
		op = OPERAND_MEMORY
	default:
		op = OPERAND_IMMEDIATE
	}

	return
}

// LoadDecode decodes a LOAD word. For MODE_INDEXED s is the index register.
func (isa *Isa) LoadDecode(w Word) (mode Mode, s, d Reg, arg uint32) {
	d = isa.reg(w, isa.dShift)
	arg = uint32(w) & isa.ImmMask()

	switch (w >> 28) & 0x3 {
	case 0b00:
		mode = MODE_DIRECT
	case 0b01:
		mode = MODE_INDEXED
		s = REG_IN1
		if isa.Variant == VARIANT_OS {
			s = isa.reg(w, isa.sShift)
		}
	case 0b10:
		mode = MODE_INVALID
		if isa.Variant == VARIANT_TI {
			mode = MODE_INDEXED
			s = REG_IN2
		}
	case 0b11:
		mode = MODE_IMMEDIATE
	}

	return
}

// StoreDecode decodes a STORE word. s is the register stored (or moved), d
// is the index register for MODE_INDEXED, or the destination of MODE_MOVE.
func (isa *Isa) StoreDecode(w Word) (mode Mode, s, d Reg, arg uint32) {
	s = isa.reg(w, isa.sShift)
	d = isa.reg(w, isa.dShift)
	arg = uint32(w) & isa.ImmMask()

	bits := (w >> 28) & 0x3
	if isa.Variant == VARIANT_TI && bits != 0b11 {
		s = REG_ACC
	}

	switch bits {
	case 0b00:
		mode = MODE_DIRECT
	case 0b01:
		mode = MODE_INDEXED
		if isa.Variant == VARIANT_TI {
			d = REG_IN1
		}
	case 0b10:
		mode = MODE_INVALID
		if isa.Variant == VARIANT_TI {
			mode = MODE_INDEXED
			d = REG_IN2
		}
	case 0b11:
		mode = MODE_MOVE
	}

	return
}

// JumpDecode decodes a JUMP word.
func (isa *Isa) JumpDecode(w Word) (kind JumpKind, cond Cond, arg uint32) {
	cond = Cond((w >> 27) & 0x7)
	arg = uint32(w) & isa.ImmMask()
	if isa.kindBits {
		kind = JumpKind((w >> 25) & 0x3)
	}
	return
}

// MakeCompute creates a COMPUTE instruction.
func (isa *Isa) MakeCompute(op Operand, fn Func, d Reg, arg uint32) Word {
	word := uint32(CLASS_COMPUTE)<<30 | (uint32(fn)&0x7)<<26 | isa.put(d, isa.dShift)
	switch op {
	case OPERAND_MEMORY:
		word |= 1<<29 | (arg & isa.ImmMask())
	case OPERAND_REGISTER:
		word |= 1<<isa.rBit | isa.put(Reg(arg), isa.rShift)
	default:
		word |= arg & isa.ImmMask()
	}
	return Word(word)
}

// MakeLoad creates a LOAD instruction. For the TI variant the index
// register of MODE_INDEXED must be IN1 or IN2.
func (isa *Isa) MakeLoad(mode Mode, s, d Reg, arg uint32) Word {
	word := uint32(CLASS_LOAD)<<30 | isa.put(d, isa.dShift) | (arg & isa.ImmMask())
	switch mode {
	case MODE_IMMEDIATE:
		word |= 0b11 << 28
	case MODE_INDEXED:
		if isa.Variant == VARIANT_TI {
			if s == REG_IN2 {
				word |= 0b10 << 28
			} else {
				word |= 0b01 << 28
			}
		} else {
			word |= 0b01<<28 | isa.put(s, isa.sShift)
		}
	}
	return Word(word)
}

// MakeStore creates a STORE instruction. See StoreDecode for s and d.
func (isa *Isa) MakeStore(mode Mode, s, d Reg, arg uint32) Word {
	word := uint32(CLASS_STORE) << 30
	os := isa.Variant == VARIANT_OS
	switch mode {
	case MODE_DIRECT:
		word |= arg & isa.ImmMask()
		if os {
			word |= isa.put(s, isa.sShift)
		}
	case MODE_INDEXED:
		word |= arg & isa.ImmMask()
		switch {
		case os:
			word |= 0b01<<28 | isa.put(s, isa.sShift) | isa.put(d, isa.dShift)
		case d == REG_IN2:
			word |= 0b10 << 28
		default:
			word |= 0b01 << 28
		}
	case MODE_MOVE:
		word |= 0b11<<28 | isa.put(s, isa.sShift) | isa.put(d, isa.dShift)
	}
	return Word(word)
}

// MakeJump creates a JUMP, NOP, INT or RTI instruction.
func (isa *Isa) MakeJump(kind JumpKind, cond Cond, arg uint32) Word {
	word := uint32(CLASS_JUMP) << 30
	switch kind {
	case JUMP_KIND_INT:
		word |= uint32(JUMP_KIND_INT)<<25 | (arg & isa.ImmMask())
	case JUMP_KIND_RTI:
		word |= uint32(JUMP_KIND_RTI) << 25
	default:
		word |= (uint32(cond) & 0x7) << 27
		if cond != COND_NEVER {
			word |= arg & isa.ImmMask()
		}
	}
	return Word(word)
}
