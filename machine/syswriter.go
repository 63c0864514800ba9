//go:build noos

package machine

import (
	"embedded/mmio"
	"unsafe"
)

// UARTBase is the physical address of the PL011 used as failsafe console. The
// default matches QEMU's virt board.
var UARTBase uintptr = 0x0900_0000

const txFull = 1 << 5 // UARTFR.TXFF

type uartRegisters struct {
	dr mmio.U32
	_  [5]mmio.U32
	fr mmio.U32
}

// Writes to the PL011 data register, polling until there's room in the FIFO.
// Needs neither interrupts nor the heap, so it's usable from exception context
// and in early boot.
//
//go:nowritebarrierrec
//go:nosplit
func DefaultWrite(fd int, p []byte) int {
	regs := (*uartRegisters)(unsafe.Pointer(UARTBase))
	for _, b := range p {
		if b == '\n' {
			putc(regs, '\r')
		}
		putc(regs, b)
	}
	return len(p)
}

//go:nosplit
func putc(regs *uartRegisters, b byte) {
	for regs.fr.Load()&txFull != 0 {
		// wait
	}
	regs.dr.Store(uint32(b))
}

type defaultWriter int

const DefaultWriter defaultWriter = 0

func (v defaultWriter) Write(p []byte) (int, error) {
	return DefaultWrite(int(v), p), nil
}
