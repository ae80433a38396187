package isa

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// INVALID_INSTRUCTION is the mnemonic decoded from an unassigned encoding.
const INVALID_INSTRUCTION = "invalid instruction"

// Config selects the variant and display radix of a Codec.
type Config struct {
	Variant Variant
	Radix   Radix
}

// Codec encodes token lists into words, and decodes words into mnemonics.
type Codec struct {
	*Isa
	Radix Radix // Radix used by Decode for operands and fields.
}

// NewCodec creates a codec for the configured variant.
func NewCodec(cfg Config) *Codec {
	return &Codec{
		Isa:   cfg.Variant.Isa(),
		Radix: cfg.Radix,
	}
}

// Field explains one bit field of a decoded word.
type Field struct {
	Name  string // Field name.
	Bits  string // Bit range, high-low.
	Value uint32 // Raw field value.
	Text  string // Meaning of the value.
}

// Instruction is a decoded word.
type Instruction struct {
	Word     Word
	Mnemonic string
	Operands []string
	Fields   []Field
}

// Valid returns false for words with an unassigned encoding.
func (in Instruction) Valid() bool {
	return in.Mnemonic != INVALID_INSTRUCTION
}

// Tokens returns the mnemonic followed by the operands.
func (in Instruction) Tokens() []string {
	return append([]string{in.Mnemonic}, in.Operands...)
}

// String returns the assembly text of the instruction.
func (in Instruction) String() string {
	return strings.Join(in.Tokens(), " ")
}

var funcNames = map[string]Func{
	"MUL":   FUNC_MUL,
	"DIV":   FUNC_DIV,
	"SUB":   FUNC_SUB,
	"ADD":   FUNC_ADD,
	"XNOR":  FUNC_XNOR,
	"OR":    FUNC_OR,
	"AND":   FUNC_AND,
	"MOD":   FUNC_MOD,
}

// condMap maps every accepted condition spelling, after normalize(), to
// its condition mask.
var condMap = map[string]Cond{
	"":    COND_ALWAYS,
	">":   COND_GT,
	"GT":  COND_GT,
	"=":   COND_EQ,
	"==":  COND_EQ,
	"EQ":  COND_EQ,
	"<":   COND_LT,
	"LT":  COND_LT,
	">=":  COND_GE,
	"≥":   COND_GE,
	"GE":  COND_GE,
	"GEQ": COND_GE,
	"<=":  COND_LE,
	"≤":   COND_LE,
	"LE":  COND_LE,
	"LEQ": COND_LE,
	"!=":  COND_NE,
	"≠":   COND_NE,
	"<>":  COND_NE,
	"NE":  COND_NE,
	"NEQ": COND_NE,
}

// normalize composes the token (so '=' followed by U+0338 becomes '≠') and
// upper cases it.
func normalize(token string) string {
	return cases.Upper(language.Und).String(norm.NFC.String(token))
}

// ParseCond parses a condition spelling, such as ">=", "geq" or "≥".
func ParseCond(text string) (cond Cond, ok bool) {
	cond, ok = condMap[normalize(text)]
	return
}

// EncodeStatus encodes tokens, reporting failures as a status and message
// instead of an error.
func (cd *Codec) EncodeStatus(tokens []string) (status Status, word Word, message string) {
	word, err := cd.Encode(tokens)
	if err != nil {
		return StatusOf(err), 0, err.Error()
	}
	return STATUS_OK, word, ""
}

// Encode encodes a mnemonic and its operands into an instruction word.
func (cd *Codec) Encode(tokens []string) (word Word, err error) {
	if len(tokens) == 0 {
		err = &ErrEncode{Status: STATUS_MNEMONIC, Err: ErrEmpty}
		return
	}

	mnemonic := normalize(tokens[0])
	args := tokens[1:]
	os := cd.Variant == VARIANT_OS

	switch {
	case mnemonic == "NOP":
		err = cd.arity(mnemonic, args, 0)
		word = cd.MakeJump(JUMP_KIND_JUMP, COND_NEVER, 0)
	case os && mnemonic == "INT":
		err = cd.arity(mnemonic, args, 1)
		if err != nil {
			return
		}
		var arg uint32
		arg, err = cd.unsigned(args[0])
		word = cd.MakeJump(JUMP_KIND_INT, COND_NEVER, arg)
	case os && mnemonic == "RTI":
		err = cd.arity(mnemonic, args, 0)
		word = cd.MakeJump(JUMP_KIND_RTI, COND_NEVER, 0)
	case strings.HasPrefix(mnemonic, "JUMP"):
		word, err = cd.encodeJump(mnemonic, args)
	case mnemonic == "MOVE":
		err = cd.arity(mnemonic, args, 2)
		if err != nil {
			return
		}
		var s, d Reg
		s, err = cd.register(args[0])
		if err != nil {
			return
		}
		d, err = cd.register(args[1])
		word = cd.MakeStore(MODE_MOVE, s, d, 0)
	case strings.HasPrefix(mnemonic, "LOAD"):
		word, err = cd.encodeLoad(mnemonic, args)
	case strings.HasPrefix(mnemonic, "STORE"):
		word, err = cd.encodeStore(mnemonic, args)
	default:
		word, err = cd.encodeCompute(mnemonic, args)
	}

	if err != nil {
		word = 0
	}

	return
}

func (cd *Codec) arity(mnemonic string, args []string, count int) (err error) {
	if len(args) != count {
		err = &ErrEncode{Status: STATUS_ARITY, Token: mnemonic, Err: ErrOperandCount}
	}
	return
}

func (cd *Codec) unknown(mnemonic string) error {
	return &ErrEncode{Status: STATUS_MNEMONIC, Token: mnemonic, Err: ErrMnemonicUnknown}
}

// LookupRegister finds a register of the variant by name.
func (cd *Codec) LookupRegister(name string) (reg Reg, ok bool) {
	name = normalize(name)
	for _, reg = range cd.Registers {
		if reg.String() == name {
			ok = true
			return
		}
	}
	return
}

func (cd *Codec) register(token string) (reg Reg, err error) {
	reg, ok := cd.LookupRegister(token)
	if !ok {
		err = &ErrEncode{Status: STATUS_REGISTER, Token: token, Err: ErrRegisterInvalid}
	}
	return
}

func (cd *Codec) number(token string) (value int64, err error) {
	value, err = ParseNumber(token)
	if err != nil {
		err = &ErrEncode{Status: STATUS_NUMBER, Token: token, Err: err}
	}
	return
}

// signed parses an operand used as a two's-complement value. Values up to
// the unsigned field maximum are accepted as their bit pattern.
func (cd *Codec) signed(token string) (arg uint32, err error) {
	value, err := cd.number(token)
	if err != nil {
		return
	}
	low := -(int64(1) << (cd.ImmBits - 1))
	high := int64(1)<<cd.ImmBits - 1
	if value < low || value > high {
		err = &ErrEncode{Status: STATUS_RANGE, Token: token, Err: ErrNumberRange}
		return
	}
	arg = uint32(value) & cd.ImmMask()
	return
}

// unsigned parses an operand used as an address or vector number.
func (cd *Codec) unsigned(token string) (arg uint32, err error) {
	value, err := cd.number(token)
	if err != nil {
		return
	}
	if value < 0 || value > int64(cd.ImmMask()) {
		err = &ErrEncode{Status: STATUS_RANGE, Token: token, Err: ErrNumberRange}
		return
	}
	arg = uint32(value)
	return
}

func (cd *Codec) encodeJump(mnemonic string, args []string) (word Word, err error) {
	suffix := strings.TrimPrefix(mnemonic, "JUMP")

	// JUMP >= 3 is accepted as JUMP>= 3.
	if suffix == "" && len(args) == 2 {
		if _, ok := condMap[normalize(args[0])]; ok {
			suffix = normalize(args[0])
			args = args[1:]
		}
	}

	cond, ok := condMap[suffix]
	if !ok {
		err = cd.unknown(mnemonic)
		return
	}

	err = cd.arity(mnemonic, args, 1)
	if err != nil {
		return
	}

	arg, err := cd.signed(args[0])
	if err != nil {
		return
	}

	word = cd.MakeJump(JUMP_KIND_JUMP, cond, arg)
	return
}

func (cd *Codec) encodeLoad(mnemonic string, args []string) (word Word, err error) {
	var s, d Reg
	var arg uint32

	suffix := strings.TrimPrefix(mnemonic, "LOAD")
	os := cd.Variant == VARIANT_OS

	switch {
	case suffix == "" || suffix == "I":
		err = cd.arity(mnemonic, args, 2)
		if err != nil {
			return
		}
		d, err = cd.register(args[0])
		if err != nil {
			return
		}
		if suffix == "I" {
			arg, err = cd.signed(args[1])
			word = cd.MakeLoad(MODE_IMMEDIATE, 0, d, arg)
		} else {
			arg, err = cd.unsigned(args[1])
			word = cd.MakeLoad(MODE_DIRECT, 0, d, arg)
		}
	case !os && (suffix == "IN1" || suffix == "IN2"):
		err = cd.arity(mnemonic, args, 2)
		if err != nil {
			return
		}
		s = REG_IN1
		if suffix == "IN2" {
			s = REG_IN2
		}
		d, err = cd.register(args[0])
		if err != nil {
			return
		}
		arg, err = cd.signed(args[1])
		word = cd.MakeLoad(MODE_INDEXED, s, d, arg)
	case os && suffix == "IN":
		err = cd.arity(mnemonic, args, 3)
		if err != nil {
			return
		}
		s, err = cd.register(args[0])
		if err != nil {
			return
		}
		d, err = cd.register(args[1])
		if err != nil {
			return
		}
		arg, err = cd.signed(args[2])
		word = cd.MakeLoad(MODE_INDEXED, s, d, arg)
	default:
		err = cd.unknown(mnemonic)
	}

	return
}

func (cd *Codec) encodeStore(mnemonic string, args []string) (word Word, err error) {
	var s, d Reg
	var arg uint32

	suffix := strings.TrimPrefix(mnemonic, "STORE")
	os := cd.Variant == VARIANT_OS

	switch {
	case !os && suffix == "":
		err = cd.arity(mnemonic, args, 1)
		if err != nil {
			return
		}
		arg, err = cd.unsigned(args[0])
		word = cd.MakeStore(MODE_DIRECT, REG_ACC, 0, arg)
	case !os && (suffix == "IN1" || suffix == "IN2"):
		err = cd.arity(mnemonic, args, 1)
		if err != nil {
			return
		}
		d = REG_IN1
		if suffix == "IN2" {
			d = REG_IN2
		}
		arg, err = cd.signed(args[0])
		word = cd.MakeStore(MODE_INDEXED, REG_ACC, d, arg)
	case os && suffix == "":
		err = cd.arity(mnemonic, args, 2)
		if err != nil {
			return
		}
		s, err = cd.register(args[0])
		if err != nil {
			return
		}
		arg, err = cd.unsigned(args[1])
		word = cd.MakeStore(MODE_DIRECT, s, 0, arg)
	case os && suffix == "IN":
		err = cd.arity(mnemonic, args, 3)
		if err != nil {
			return
		}
		d, err = cd.register(args[0])
		if err != nil {
			return
		}
		s, err = cd.register(args[1])
		if err != nil {
			return
		}
		arg, err = cd.signed(args[2])
		word = cd.MakeStore(MODE_INDEXED, s, d, arg)
	default:
		err = cd.unknown(mnemonic)
	}

	return
}

// lookupFunc matches NAME (memory or register operand) and NAMEI
// (immediate operand) mnemonics.
func (cd *Codec) lookupFunc(mnemonic string) (fn Func, op Operand, ok bool) {
	op = OPERAND_MEMORY
	fn, ok = funcNames[mnemonic]
	if !ok && strings.HasSuffix(mnemonic, "I") {
		op = OPERAND_IMMEDIATE
		fn, ok = funcNames[strings.TrimSuffix(mnemonic, "I")]
	}
	if ok && !cd.HasFunc(fn) {
		ok = false
	}
	return
}

func (cd *Codec) encodeCompute(mnemonic string, args []string) (word Word, err error) {
	fn, op, ok := cd.lookupFunc(mnemonic)
	if !ok {
		err = cd.unknown(mnemonic)
		return
	}

	err = cd.arity(mnemonic, args, 2)
	if err != nil {
		return
	}

	d, err := cd.register(args[0])
	if err != nil {
		return
	}

	var arg uint32
	switch op {
	case OPERAND_IMMEDIATE:
		arg, err = cd.signed(args[1])
	default:
		if s, isReg := cd.LookupRegister(args[1]); isReg && cd.Variant == VARIANT_OS {
			op = OPERAND_REGISTER
			arg = uint32(s)
		} else {
			arg, err = cd.unsigned(args[1])
		}
	}
	if err != nil {
		return
	}

	word = cd.MakeCompute(op, fn, d, arg)
	return
}

func bits(high, low int) string {
	if high == low {
		return fmt.Sprintf("%d", high)
	}
	return fmt.Sprintf("%d-%d", high, low)
}

func (cd *Codec) field(in *Instruction, name string, high, low int, text string) {
	value := (uint32(in.Word) >> low) & ((uint32(1) << (high - low + 1)) - 1)
	in.Fields = append(in.Fields, Field{
		Name:  name,
		Bits:  bits(high, low),
		Value: value,
		Text:  text,
	})
}

func (cd *Codec) regField(in *Instruction, name string, shift int, reg Reg) {
	cd.field(in, name, shift+cd.regBits-1, shift, reg.String())
}

func (cd *Codec) immField(in *Instruction, text string) {
	cd.field(in, "i", cd.ImmBits-1, 0, text)
}

func (cd *Codec) invalid(in *Instruction) {
	in.Mnemonic = INVALID_INSTRUCTION
	in.Operands = nil
}

// Decode explains an instruction word. Decode never fails; words with an
// unassigned encoding have the INVALID_INSTRUCTION mnemonic.
func (cd *Codec) Decode(w Word) (in Instruction) {
	in.Word = w

	class := w.Class()
	cd.field(&in, "class", 31, 30, class.String())

	switch class {
	case CLASS_COMPUTE:
		cd.decodeCompute(&in)
	case CLASS_LOAD:
		cd.decodeLoad(&in)
	case CLASS_STORE:
		cd.decodeStore(&in)
	case CLASS_JUMP:
		cd.decodeJump(&in)
	default:
		cd.invalid(&in)
	}

	return
}

func (cd *Codec) decodeCompute(in *Instruction) {
	op, fn, d, arg := cd.ComputeDecode(in.Word)
	if !cd.HasFunc(fn) {
		cd.field(in, "F", 28, 26, INVALID_INSTRUCTION)
		cd.invalid(in)
		return
	}

	name := fn.String()
	switch op {
	case OPERAND_IMMEDIATE:
		cd.field(in, "M", 29, 29, "immediate")
		in.Mnemonic = name + "I"
		in.Operands = []string{d.String(), cd.Radix.FormatSigned(int64(cd.SignExtend(arg)))}
	case OPERAND_MEMORY:
		cd.field(in, "M", 29, 29, "memory")
		in.Mnemonic = name
		in.Operands = []string{d.String(), cd.Radix.FormatUnsigned(uint64(arg))}
	case OPERAND_REGISTER:
		cd.field(in, "R", int(cd.rBit), int(cd.rBit), "register")
		in.Mnemonic = name
		in.Operands = []string{d.String(), Reg(arg).String()}
	}

	cd.field(in, "F", 28, 26, name)
	cd.regField(in, "D", cd.dShift, d)
	if op == OPERAND_REGISTER {
		cd.regField(in, "S", cd.rShift, Reg(arg))
	} else {
		cd.immField(in, in.Operands[1])
	}
}

func (cd *Codec) decodeLoad(in *Instruction) {
	mode, s, d, arg := cd.LoadDecode(in.Word)

	switch mode {
	case MODE_DIRECT:
		cd.field(in, "mode", 29, 28, "direct")
		in.Mnemonic = "LOAD"
		in.Operands = []string{d.String(), cd.Radix.FormatUnsigned(uint64(arg))}
	case MODE_INDEXED:
		cd.field(in, "mode", 29, 28, "indexed by "+s.String())
		offset := cd.Radix.FormatSigned(int64(cd.SignExtend(arg)))
		if cd.Variant == VARIANT_TI {
			in.Mnemonic = "LOAD" + s.String()
			in.Operands = []string{d.String(), offset}
		} else {
			in.Mnemonic = "LOADIN"
			in.Operands = []string{s.String(), d.String(), offset}
			cd.regField(in, "S", cd.sShift, s)
		}
	case MODE_IMMEDIATE:
		cd.field(in, "mode", 29, 28, "immediate")
		in.Mnemonic = "LOADI"
		in.Operands = []string{d.String(), cd.Radix.FormatSigned(int64(cd.SignExtend(arg)))}
	default:
		cd.field(in, "mode", 29, 28, INVALID_INSTRUCTION)
		cd.invalid(in)
		return
	}

	cd.regField(in, "D", cd.dShift, d)
	cd.immField(in, in.Operands[len(in.Operands)-1])
}

func (cd *Codec) decodeStore(in *Instruction) {
	mode, s, d, arg := cd.StoreDecode(in.Word)
	os := cd.Variant == VARIANT_OS

	switch mode {
	case MODE_DIRECT:
		cd.field(in, "mode", 29, 28, "direct")
		in.Mnemonic = "STORE"
		addr := cd.Radix.FormatUnsigned(uint64(arg))
		if os {
			in.Operands = []string{s.String(), addr}
			cd.regField(in, "S", cd.sShift, s)
		} else {
			in.Operands = []string{addr}
		}
		cd.immField(in, addr)
	case MODE_INDEXED:
		cd.field(in, "mode", 29, 28, "indexed by "+d.String())
		offset := cd.Radix.FormatSigned(int64(cd.SignExtend(arg)))
		if os {
			in.Mnemonic = "STOREIN"
			in.Operands = []string{d.String(), s.String(), offset}
			cd.regField(in, "S", cd.sShift, s)
			cd.regField(in, "D", cd.dShift, d)
		} else {
			in.Mnemonic = "STORE" + d.String()
			in.Operands = []string{offset}
		}
		cd.immField(in, offset)
	case MODE_MOVE:
		cd.field(in, "mode", 29, 28, "move")
		in.Mnemonic = "MOVE"
		in.Operands = []string{s.String(), d.String()}
		cd.regField(in, "S", cd.sShift, s)
		cd.regField(in, "D", cd.dShift, d)
	default:
		cd.field(in, "mode", 29, 28, INVALID_INSTRUCTION)
		cd.invalid(in)
	}
}

func (cd *Codec) decodeJump(in *Instruction) {
	kind, cond, arg := cd.JumpDecode(in.Word)

	if cd.kindBits {
		switch kind {
		case JUMP_KIND_INT:
			cd.field(in, "kind", 26, 25, "interrupt")
			in.Mnemonic = "INT"
			in.Operands = []string{cd.Radix.FormatUnsigned(uint64(arg))}
			cd.immField(in, in.Operands[0])
			return
		case JUMP_KIND_RTI:
			cd.field(in, "kind", 26, 25, "return from interrupt")
			in.Mnemonic = "RTI"
			return
		case JUMP_KIND_INVALID:
			cd.field(in, "kind", 26, 25, INVALID_INSTRUCTION)
			cd.invalid(in)
			return
		}
		cd.field(in, "kind", 26, 25, "jump")
	}

	if cond == COND_NEVER {
		cd.field(in, "condition", 29, 27, "never")
		in.Mnemonic = "NOP"
		return
	}

	text := "ACC " + cond.Suffix() + " 0"
	if cond == COND_ALWAYS {
		text = "always"
	}
	cd.field(in, "condition", 29, 27, text)
	in.Mnemonic = "JUMP" + cond.Suffix()
	in.Operands = []string{cd.Radix.FormatSigned(int64(cd.SignExtend(arg)))}
	cd.immField(in, in.Operands[0])
}
