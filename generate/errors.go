package generate

import (
	"fmt"
)

// Reason classifies why a block could not be rendered.
type Reason int

const (
	ReasonUnsupportedWidth Reason = iota + 1
	ReasonRegisterArray
	ReasonNestedBlock
	ReasonDanglingFieldset
	ReasonAddressRange
	ReasonEmptyItem
	ReasonInvalidAccess
	ReasonInvalidIdent
)

func (r Reason) String() string {
	switch r {
	case ReasonUnsupportedWidth:
		return "unsupported register width"
	case ReasonRegisterArray:
		return "register array for csr is not supported"
	case ReasonNestedBlock:
		return "block inside csr is not supported"
	case ReasonDanglingFieldset:
		return "fieldset not found"
	case ReasonAddressRange:
		return "csr address out of range"
	case ReasonEmptyItem:
		return "item has neither register nor block"
	case ReasonInvalidAccess:
		return "invalid access mode"
	case ReasonInvalidIdent:
		return "not a valid identifier"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// RenderError is returned when an item in a CSR block cannot be represented.
// No output is produced for a block that has any such item.
type RenderError struct {
	Reason Reason
	Item   string // name of the offending block item
	Detail string
}

func (e *RenderError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Item, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Item, e.Reason, e.Detail)
}
