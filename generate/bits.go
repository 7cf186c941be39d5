package generate

import (
	"fmt"
)

// maxCSRAddr is the largest number that fits the 12-bit csr field of the
// Zicsr instructions.
const maxCSRAddr = 0xfff

// csrAddr is a CSR number, which formats as the three-digit immediate the
// csrrs/csrrw assembler syntax expects.
type csrAddr uint32

func (a csrAddr) String() string {
	return fmt.Sprintf("0x%03x", uint32(a))
}

func (a csrAddr) valid() bool {
	return a <= maxCSRAddr
}
