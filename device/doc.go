// Package device provides the word addressed memory devices of the ReTI
// machine: static RAM, a read-only EPROM holding the program, and a
// memory-mapped UART. The OS variant combines them on a Bus, selected by
// the two high bits of the address.
package device
