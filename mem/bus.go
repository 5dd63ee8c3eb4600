// Package mem provides the flat memory address space a Cpu operates on.
//
// In the NES, there are 2 Buses. One has 64 kB, responsible for CPU, memory,
// audio and cartridge (0x0000-0xffff). The other has 8 (?) kB, responsible for
// graphics (0x2000-0x3fff?). This emulator only models the first: a single
// flat 64 KiB address space with no mirroring, no mapper, and no
// memory-mapped peripherals.
package mem

// Size is the total number of addressable bytes.
const Size = 64 * 1024

// A Bus is the central (global) object that connects multiple 'hardware'
// components together, enabling communication between them. One or more
// components (structs) can be connected to a Bus by means of a pointer;
// e.g. Cpu.Bus = &Bus{}.
type Bus struct {
	// no divisions/mirroring of memory; this is the whole address space
	FakeRam [Size]byte // 64 kB, zeroed on init
}

// CPU     MEM     APU     CART
//  |       |       |       |
//  |       |0000   |4000   |4020
//  |       |07ff   |4017   |ffff
//  |------------------------------------ BUS 1

// Write stores data at addr. addr is 2 bytes (16 bits) wide.
func (b *Bus) Write(addr uint16, data byte) {
	b.FakeRam[addr] = data
}

// Read returns the byte at addr. readonly exists for parity with hardware
// buses that have read side effects (PPU/APU registers); this Bus has none,
// so it is always ignored.
func (b *Bus) Read(addr uint16, readonly bool) byte { return b.FakeRam[addr] }

// Reset zeroes the entire address space. Used between emulator runs; the
// origin and any breakpoints live on the Cpu, not here.
func (b *Bus) Reset() {
	b.FakeRam = [Size]byte{}
}
