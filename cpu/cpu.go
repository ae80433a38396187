package cpu

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/reti/device"
	"github.com/ezrec/reti/isa"
)

// MASK_32 is the full register width.
const MASK_32 = 0xffff_ffff

// Cpu is the simulation context of a ReTI processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Isa      *isa.Isa      // Instruction set variant.
	Register [8]uint32     // Register file, indexed by isa.Reg.
	Ir       isa.Word      // Last fetched instruction.
	Code     []isa.Word    // Executable words.
	Memory   device.Device // Data address space.

	Stack       Stack    // INT return addresses.
	Vectors     []uint32 // Interrupt vector table.
	InInterrupt bool     // Set while an INT has not returned.

	Ticks  int      // Retired instruction counter.
	Writes []uint32 // Memory addresses written by the last instruction.

	next uint32 // PC after the current instruction.
}

// NewCpu creates a CPU executing code against memory.
func NewCpu(set *isa.Isa, code []isa.Word, memory device.Device) (cpu *Cpu) {
	cpu = &Cpu{
		Isa:    set,
		Code:   code,
		Memory: memory,
		Stack:  Stack{Limit: STACK_LIMIT},
	}

	return
}

// String returns the register file as text.
func (cpu *Cpu) String() (text string) {
	for _, reg := range cpu.Isa.Registers {
		val := cpu.Register[reg]
		text += fmt.Sprintf("% 5s: %04X_%04X %d\n", reg.String(), val>>16, val&0xffff, cpu.GetRegister(reg))
	}

	return
}

// GetRegister returns a register value. PC is unsigned, all other registers
// are two's-complement.
func (cpu *Cpu) GetRegister(reg isa.Reg) (value int64) {
	if !cpu.Isa.HasRegister(reg) {
		return
	}

	if reg == isa.REG_PC {
		return int64(cpu.Register[reg])
	}

	return int64(int32(cpu.Register[reg]))
}

// SetRegister sets a register, masked to 32 bits.
func (cpu *Cpu) SetRegister(reg isa.Reg, value int64) (err error) {
	if !cpu.Isa.HasRegister(reg) {
		err = ErrRegisterInvalid
		return
	}

	cpu.Register[reg] = uint32(value & MASK_32)
	return
}

// ReadMemory reads a data word.
func (cpu *Cpu) ReadMemory(addr uint32) uint32 {
	if cpu.Memory == nil {
		return 0
	}
	return cpu.Memory.Read(addr)
}

// WriteMemory writes a data word, returning false if it was rejected.
func (cpu *Cpu) WriteMemory(addr uint32, value uint32) bool {
	if cpu.Memory == nil {
		return false
	}
	return cpu.Memory.Write(addr, value)
}

// Base returns the address of Code[0]. On the OS variant this is the code
// segment register, so moving CS relocates the program.
func (cpu *Cpu) Base() uint32 {
	if cpu.Isa.Variant == isa.VARIANT_OS {
		return cpu.Register[isa.REG_CS]
	}
	return CODE_BASE
}

// CodeIndex converts an address into an index into Code.
func (cpu *Cpu) CodeIndex(pc uint32) (index int, ok bool) {
	offset := pc - cpu.Base()
	if uint64(offset) >= uint64(len(cpu.Code)) {
		return
	}

	return int(offset), true
}

// Fetch returns the word at PC.
func (cpu *Cpu) Fetch() (word isa.Word, err error) {
	pc := cpu.Register[isa.REG_PC]

	index, ok := cpu.CodeIndex(pc)
	if !ok {
		err = ErrPcRange
		return
	}

	if cpu.Isa.Variant == isa.VARIANT_OS {
		word = isa.Word(cpu.ReadMemory(pc))
	} else {
		word = cpu.Code[index]
	}

	return
}

// Step fetches and executes one instruction.
func (cpu *Cpu) Step() (err error) {
	word, err := cpu.Fetch()
	if err != nil {
		return
	}

	cpu.Ir = word
	err = cpu.Execute(word)
	if err != nil {
		return
	}

	cpu.Ticks++

	return
}

// Execute runs a single instruction word at the current PC.
func (cpu *Cpu) Execute(word isa.Word) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(word), err)
		}
	}()

	pc := cpu.Register[isa.REG_PC]

	if cpu.Verbose {
		logrus.WithFields(logrus.Fields{
			"pc":   pc,
			"word": fmt.Sprintf("0x%08x", uint32(word)),
			"acc":  int32(cpu.Register[isa.REG_ACC]),
		}).Debug("cpu step")
	}

	cpu.next = pc + 1
	cpu.Writes = cpu.Writes[:0]

	switch word.Class() {
	case isa.CLASS_COMPUTE:
		err = cpu.compute(word)
	case isa.CLASS_LOAD:
		err = cpu.load(word)
	case isa.CLASS_STORE:
		err = cpu.store(word)
	case isa.CLASS_JUMP:
		err = cpu.jump(word, pc)
	}

	if err != nil {
		return
	}

	cpu.Register[isa.REG_PC] = cpu.next

	return
}

// set writes a register. A write to PC replaces the sequential advance.
func (cpu *Cpu) set(reg isa.Reg, value uint32) {
	if reg == isa.REG_PC {
		cpu.next = value
		return
	}
	cpu.Register[reg] = value
}

// direct returns the data address of a direct operand. OS variant direct
// addresses are relative to the segment held in DS.
func (cpu *Cpu) direct(arg uint32) uint32 {
	if cpu.Isa.Variant == isa.VARIANT_OS {
		return (cpu.Register[isa.REG_DS] & SEGMENT_MASK) | arg
	}
	return arg
}

func (cpu *Cpu) indexed(reg isa.Reg, arg uint32) uint32 {
	return cpu.Register[reg] + uint32(cpu.Isa.SignExtend(arg))
}

func (cpu *Cpu) read(addr uint32) uint32 {
	return cpu.ReadMemory(addr)
}

func (cpu *Cpu) write(addr uint32, value uint32) {
	cpu.Writes = append(cpu.Writes, addr)
	if !cpu.WriteMemory(addr, value) && cpu.Verbose {
		logrus.WithFields(logrus.Fields{
			"addr":  fmt.Sprintf("0x%08x", addr),
			"value": value,
		}).Debug("cpu write rejected")
	}
}

// alu combines two operands. Division by zero yields -1, the remainder of
// a division by zero is the dividend, and overflow wraps.
func alu(fn isa.Func, a, b int32) (result int32) {
	switch fn {
	case isa.FUNC_MUL:
		result = a * b
	case isa.FUNC_DIV:
		switch {
		case b == 0:
			result = -1
		case a == math.MinInt32 && b == -1:
			result = a
		default:
			result = a / b
		}
	case isa.FUNC_MOD:
		switch {
		case b == 0:
			result = a
		case b == -1:
			result = 0
		default:
			result = a % b
		}
	case isa.FUNC_SUB:
		result = a - b
	case isa.FUNC_ADD:
		result = a + b
	case isa.FUNC_XNOR:
		result = ^(a ^ b)
	case isa.FUNC_OR:
		result = a | b
	case isa.FUNC_AND:
		result = a & b
	}
	return
}

// operand returns the second COMPUTE operand.
func (cpu *Cpu) operand(op isa.Operand, arg uint32) uint32 {
	switch op {
	case isa.OPERAND_MEMORY:
		return cpu.read(cpu.direct(arg))
	case isa.OPERAND_REGISTER:
		return cpu.Register[arg]
	default:
		return uint32(cpu.Isa.SignExtend(arg))
	}
}

func (cpu *Cpu) compute(word isa.Word) (err error) {
	op, fn, d, arg := cpu.Isa.ComputeDecode(word)
	if !cpu.Isa.HasFunc(fn) {
		err = ErrInstructionInvalid
		return
	}

	value := cpu.operand(op, arg)
	result := alu(fn, int32(cpu.Register[d]), int32(value))
	cpu.set(d, uint32(result))

	return
}

func (cpu *Cpu) load(word isa.Word) (err error) {
	mode, s, d, arg := cpu.Isa.LoadDecode(word)

	switch mode {
	case isa.MODE_DIRECT:
		cpu.set(d, cpu.read(cpu.direct(arg)))
	case isa.MODE_INDEXED:
		cpu.set(d, cpu.read(cpu.indexed(s, arg)))
	case isa.MODE_IMMEDIATE:
		cpu.set(d, uint32(cpu.Isa.SignExtend(arg)))
	default:
		err = ErrInstructionInvalid
	}

	return
}

func (cpu *Cpu) store(word isa.Word) (err error) {
	mode, s, d, arg := cpu.Isa.StoreDecode(word)

	switch mode {
	case isa.MODE_DIRECT:
		cpu.write(cpu.direct(arg), cpu.Register[s])
	case isa.MODE_INDEXED:
		cpu.write(cpu.indexed(d, arg), cpu.Register[s])
	case isa.MODE_MOVE:
		cpu.set(d, cpu.Register[s])
	default:
		err = ErrInstructionInvalid
	}

	return
}

func (cpu *Cpu) jump(word isa.Word, pc uint32) (err error) {
	kind, cond, arg := cpu.Isa.JumpDecode(word)

	switch kind {
	case isa.JUMP_KIND_JUMP:
		if cond.Holds(int32(cpu.Register[isa.REG_ACC])) {
			cpu.next = pc + uint32(cpu.Isa.SignExtend(arg))
		}
	case isa.JUMP_KIND_INT:
		if uint64(arg) >= uint64(len(cpu.Vectors)) {
			err = ErrVectorInvalid
			return
		}
		if cpu.Stack.Full() {
			err = ErrStackFull
			return
		}
		cpu.Stack.Push(pc + 1)
		cpu.InInterrupt = true
		cpu.next = cpu.Vectors[arg]
	case isa.JUMP_KIND_RTI:
		ret, ok := cpu.Stack.Pop()
		if !ok {
			break
		}
		cpu.next = ret
		cpu.InInterrupt = !cpu.Stack.Empty()
	default:
		err = ErrInstructionInvalid
	}

	return
}

// ReturnAddress is the address following the current instruction.
func (cpu *Cpu) ReturnAddress() uint32 {
	return cpu.Register[isa.REG_PC] + 1
}

// NextPc predicts the PC after the current instruction without executing
// it. Memory is only read when the instruction loads PC from memory.
func (cpu *Cpu) NextPc() (next uint32, err error) {
	pc := cpu.Register[isa.REG_PC]
	next = pc + 1

	word, err := cpu.Fetch()
	if err != nil {
		return
	}

	switch word.Class() {
	case isa.CLASS_COMPUTE:
		op, fn, d, arg := cpu.Isa.ComputeDecode(word)
		if d == isa.REG_PC && cpu.Isa.HasFunc(fn) {
			next = uint32(alu(fn, int32(pc), int32(cpu.peekOperand(op, arg))))
		}
	case isa.CLASS_LOAD:
		mode, s, d, arg := cpu.Isa.LoadDecode(word)
		if d != isa.REG_PC {
			break
		}
		switch mode {
		case isa.MODE_DIRECT:
			next = cpu.peek(cpu.direct(arg))
		case isa.MODE_INDEXED:
			next = cpu.peek(cpu.indexed(s, arg))
		case isa.MODE_IMMEDIATE:
			next = uint32(cpu.Isa.SignExtend(arg))
		}
	case isa.CLASS_STORE:
		mode, s, d, _ := cpu.Isa.StoreDecode(word)
		if mode == isa.MODE_MOVE && d == isa.REG_PC {
			next = cpu.Register[s]
		}
	case isa.CLASS_JUMP:
		kind, cond, arg := cpu.Isa.JumpDecode(word)
		switch kind {
		case isa.JUMP_KIND_JUMP:
			if cond.Holds(int32(cpu.Register[isa.REG_ACC])) {
				next = pc + uint32(cpu.Isa.SignExtend(arg))
			}
		case isa.JUMP_KIND_INT:
			if uint64(arg) < uint64(len(cpu.Vectors)) {
				next = cpu.Vectors[arg]
			}
		case isa.JUMP_KIND_RTI:
			if ret, ok := cpu.Stack.Peek(); ok {
				next = ret
			}
		}
	}

	return
}

// peek reads memory for a prediction. UART registers are not read, as
// reading them consumes input.
func (cpu *Cpu) peek(addr uint32) uint32 {
	if cpu.Isa.Variant == isa.VARIANT_OS && addr&device.ARENA_MASK == device.ARENA_UART {
		return 0
	}
	return cpu.read(addr)
}

func (cpu *Cpu) peekOperand(op isa.Operand, arg uint32) uint32 {
	if op == isa.OPERAND_MEMORY {
		return cpu.peek(cpu.direct(arg))
	}
	return cpu.operand(op, arg)
}

// IsCallInstruction reports whether the current instruction is call-like:
// a COMPUTE, LOAD or MOVE writing PC, a JUMP whose target is not the
// following address, or an OS variant INT.
func (cpu *Cpu) IsCallInstruction() bool {
	word, err := cpu.Fetch()
	if err != nil {
		return false
	}

	switch word.Class() {
	case isa.CLASS_COMPUTE:
		_, fn, d, _ := cpu.Isa.ComputeDecode(word)
		return d == isa.REG_PC && cpu.Isa.HasFunc(fn)
	case isa.CLASS_LOAD:
		_, _, d, _ := cpu.Isa.LoadDecode(word)
		return d == isa.REG_PC
	case isa.CLASS_STORE:
		mode, _, d, _ := cpu.Isa.StoreDecode(word)
		return mode == isa.MODE_MOVE && d == isa.REG_PC
	}

	kind, _, _ := cpu.Isa.JumpDecode(word)
	switch kind {
	case isa.JUMP_KIND_INT:
		return true
	case isa.JUMP_KIND_RTI:
		return false
	}

	next, err := cpu.NextPc()
	if err != nil {
		return false
	}

	return next != cpu.ReturnAddress()
}
