package ir

import (
	"fmt"
	"strings"
)

// Access is the access mode a register declares, spelled as it appears in
// register tables.
type Access string

const (
	Read      Access = "r"
	Write     Access = "w"
	ReadWrite Access = "rw"
)

func ParseAccess(s string) (Access, error) {
	switch a := Access(strings.ToLower(strings.TrimSpace(s))); a {
	case Read, Write, ReadWrite:
		return a, nil
	default:
		return "", fmt.Errorf("invalid access mode %q (want r, w, or rw)", s)
	}
}

func (a Access) CanRead() bool {
	return a == Read || a == ReadWrite
}

func (a Access) CanWrite() bool {
	return a == Write || a == ReadWrite
}

func (a Access) String() string {
	switch a {
	case Read:
		return "Read"
	case Write:
		return "Write"
	case ReadWrite:
		return "ReadWrite"
	default:
		return fmt.Sprintf("Access(%q)", string(a))
	}
}
