// Package cpu implements the ReTI processor core and its program loader.
//
// The Cpu retires one instruction per Step: it fetches the word at PC,
// dispatches on the instruction class and writes back registers or memory.
// PC advances by one unless the instruction wrote PC itself, a JUMP
// condition held, or an OS variant INT/RTI replaced it. The TI variant
// executes from a separate read-only code region and addresses a flat
// data RAM; the OS variant fetches from an EPROM on a device.Bus and adds
// DS-relative addressing and an interrupt return stack.
//
// The Assembler turns source text into a Program of words with
// line/instruction maps, and Load builds a ready to run Image from the
// main program, an optional interrupt service routine and an initial
// data segment.
package cpu
