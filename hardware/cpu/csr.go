// This file is part of GopherRV.
//
// GopherRV is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherRV is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherRV.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import (
	"fmt"

	"github.com/gopherrv/gopherrv/logger"
)

// Addresses of the implemented CSRs.
const (
	AddrMStatus = 0x300
	AddrMIE     = 0x304
	AddrMTVec   = 0x305
	AddrMEPC    = 0x341
	AddrMCause  = 0x342
	AddrMIP     = 0x344
)

// Bit definitions for the mstatus and mie/mip registers.
const (
	MStatusMIE = uint32(0x008) // global machine interrupt enable

	MIPCycleTimer = uint32(0x080) // bit 7
	MIPRealTime   = uint32(0x800) // bit 11
)

// Trap cause values. The high bit marks an interrupt.
const (
	CauseCycleTimer = uint32(0x80000007)
	CauseRealTime   = uint32(0x8000000b)
)

// CSR is the machine-mode control and status register file. A dense
// structure with named fields rather than a general mapping; the CSR set
// is small and fixed and the named fields make the trap invariants locally
// checkable.
//
// Note that there is no field for mip. The pending register is derived
// from the timer pending lines at the moment it is sampled; the Read()
// function takes the current line state as an argument.
type CSR struct {
	MStatus uint32
	MIE     uint32
	MTVec   uint32
	MEPC    uint32
	MCause  uint32
}

// Reset all CSRs to zero.
func (csr *CSR) Reset() {
	csr.MStatus = 0
	csr.MIE = 0
	csr.MTVec = 0
	csr.MEPC = 0
	csr.MCause = 0
}

func (csr *CSR) String() string {
	return fmt.Sprintf("mstatus=%08x mie=%08x mtvec=%08x mepc=%08x mcause=%08x",
		csr.MStatus, csr.MIE, csr.MTVec, csr.MEPC, csr.MCause)
}

// Read the CSR at the given address. The mip argument is the current state
// of the interrupt pending lines. Unimplemented CSRs read as zero.
func (csr *CSR) Read(address uint32, mip uint32) uint32 {
	switch address {
	case AddrMStatus:
		return csr.MStatus
	case AddrMIE:
		return csr.MIE
	case AddrMTVec:
		return csr.MTVec
	case AddrMEPC:
		return csr.MEPC
	case AddrMCause:
		return csr.MCause
	case AddrMIP:
		return mip
	}
	return 0
}

// Write the CSR at the given address. Writes to mip and to unimplemented
// CSRs are silently accepted and discarded; mip is derived state and the
// device pending bits can only be cleared at the device.
func (csr *CSR) Write(address uint32, value uint32) {
	switch address {
	case AddrMStatus:
		csr.MStatus = value
	case AddrMIE:
		csr.MIE = value
	case AddrMTVec:
		csr.MTVec = value
	case AddrMEPC:
		csr.MEPC = value
	case AddrMCause:
		csr.MCause = value
	case AddrMIP:
		// derived from device state. discarded
	default:
		logger.Logf("cpu", "write to unimplemented csr %#03x discarded", address)
	}
}
