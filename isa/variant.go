package isa

// Variant selects one of the two ReTI instruction sets.
type Variant int

//go:generate go tool stringer -linecomment -type=Variant
const (
	VARIANT_TI = Variant(0) // ti
	VARIANT_OS = Variant(1) // os
)

// Reg is a register code as encoded in the register fields.
type Reg int

//go:generate go tool stringer -linecomment -type=Reg
const (
	REG_PC  = Reg(0) // PC
	REG_IN1 = Reg(1) // IN1
	REG_IN2 = Reg(2) // IN2
	REG_ACC = Reg(3) // ACC
	REG_SP  = Reg(4) // SP
	REG_BAF = Reg(5) // BAF
	REG_CS  = Reg(6) // CS
	REG_DS  = Reg(7) // DS
)

// Func is a COMPUTE function code.
type Func int

//go:generate go tool stringer -linecomment -type=Func
const (
	FUNC_MUL   = Func(0) // MUL
	FUNC_DIV   = Func(1) // DIV
	FUNC_SUB   = Func(2) // SUB
	FUNC_ADD   = Func(3) // ADD
	FUNC_XNOR  = Func(4) // XNOR
	FUNC_OR    = Func(5) // OR
	FUNC_AND   = Func(6) // AND
	FUNC_MOD   = Func(7) // MOD
)

// Isa holds the variant specific tables shared by the codec and the CPU.
type Isa struct {
	Variant   Variant
	Registers []Reg  // Addressable registers, indexed by code.
	Funcs     []Func // Valid COMPUTE functions.
	ImmBits   int    // Width of the operand field.

	regBits  int  // Width of a register field.
	dShift   int  // Destination register field position.
	sShift   int  // Source register field position.
	rShift   int  // Register operand field position (COMPUTE D S).
	rBit     uint // Register operand flag (OS COMPUTE).
	kindBits bool // JUMP carries an INT/RTI kind field.
}

var isaTI = &Isa{
	Variant:   VARIANT_TI,
	Registers: []Reg{REG_PC, REG_IN1, REG_IN2, REG_ACC},
	Funcs:     []Func{FUNC_SUB, FUNC_ADD, FUNC_XNOR, FUNC_OR, FUNC_AND},
	ImmBits:   24,
	regBits:   2,
	dShift:    24,
	sShift:    26,
}

var isaOS = &Isa{
	Variant: VARIANT_OS,
	Registers: []Reg{REG_PC, REG_IN1, REG_IN2, REG_ACC,
		REG_SP, REG_BAF, REG_CS, REG_DS},
	Funcs: []Func{FUNC_MUL, FUNC_DIV, FUNC_SUB, FUNC_ADD,
		FUNC_XNOR, FUNC_OR, FUNC_AND, FUNC_MOD},
	ImmBits:  22,
	regBits:  3,
	dShift:   22,
	sShift:   25,
	rShift:   19,
	rBit:     25,
	kindBits: true,
}

// Isa returns the tables for the variant.
func (v Variant) Isa() *Isa {
	if v == VARIANT_OS {
		return isaOS
	}
	return isaTI
}

// HasRegister returns true if the register is addressable in this variant.
func (isa *Isa) HasRegister(reg Reg) bool {
	return reg >= 0 && int(reg) < len(isa.Registers)
}

// HasFunc returns true if the COMPUTE function exists in this variant.
func (isa *Isa) HasFunc(fn Func) bool {
	for _, have := range isa.Funcs {
		if have == fn {
			return true
		}
	}
	return false
}

// ImmMask is the mask of the operand field.
func (isa *Isa) ImmMask() uint32 {
	return (uint32(1) << isa.ImmBits) - 1
}

// SignExtend interprets an operand field as two's-complement.
func (isa *Isa) SignExtend(arg uint32) int32 {
	shift := 32 - isa.ImmBits
	return int32(arg<<shift) >> shift
}
