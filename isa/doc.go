// Package isa implements the instruction codec for the ReTI teaching CPU.
//
// Two instruction-set variants are supported. The basic TI variant has the
// registers PC, IN1, IN2 and ACC with 24-bit operands. The OS variant adds
// SP, BAF, CS and DS, widens the register fields to three bits, narrows the
// operand to 22 bits, and adds MUL/DIV/MOD, register-register arithmetic,
// INT and RTI.
//
// Every instruction is a single 32-bit word. The two high bits select the
// class (COMPUTE, LOAD, STORE, JUMP); the layout of the remaining bits
// depends on the variant, which is carried explicitly by an *Isa value.
package isa
