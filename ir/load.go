package ir

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineSize is the longest line Load accepts, descriptions included.
const maxLineSize = 1 << 20

// LoadFile reads a register table from the given file. See Load for the
// format.
func LoadFile(filename string) (*IR, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return Load(r)
}

// Load reads a register table. Each non-empty line is one declaration, with
// an optional quoted description at the end and "#" starting a comment:
//
//	fieldset <path> <bits> "<description>"
//	block    <path> "<description>"
//	reg      <name> <offset> <bits> <r|w|rw> <fieldset-path|-> [array=<len>:<stride>] "<description>"
//	sub      <name> <offset> <block-path> "<description>"
//
// reg and sub lines belong to the most recent block line. A literal \n in a
// description becomes a line break.
func Load(r io.Reader) (*IR, error) {
	ret := &IR{
		Fieldsets: make(map[string]*Fieldset),
		Blocks:    make(map[string]*Block),
	}

	var cur *Block
	lineNum := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineSize)
	for sc.Scan() {
		lineNum++
		fields, desc, err := splitLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(fields) == 0 {
			continue
		}

		switch kw, args := fields[0], fields[1:]; kw {
		case "fieldset":
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: fieldset wants a path and a bit size", lineNum)
			}
			if _, exists := ret.Fieldsets[args[0]]; exists {
				return nil, fmt.Errorf("line %d: duplicate fieldset %s", lineNum, args[0])
			}
			bits, err := parseBits(args[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			ret.Fieldsets[args[0]] = &Fieldset{
				Description: desc,
				BitSize:     bits,
			}

		case "block":
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: block wants exactly one path", lineNum)
			}
			if _, exists := ret.Blocks[args[0]]; exists {
				return nil, fmt.Errorf("line %d: duplicate block %s", lineNum, args[0])
			}
			cur = &Block{Description: desc}
			ret.Blocks[args[0]] = cur

		case "reg", "sub":
			if cur == nil {
				return nil, fmt.Errorf("line %d: %s before any block", lineNum, kw)
			}
			var item BlockItem
			if kw == "reg" {
				item, err = parseRegItem(args)
			} else {
				item, err = parseSubItem(args)
			}
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			item.Description = desc
			cur.Items = append(cur.Items, item)

		default:
			return nil, fmt.Errorf("line %d: unknown declaration %q", lineNum, kw)
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
	}
	return ret, nil
}

func parseRegItem(args []string) (BlockItem, error) {
	if len(args) != 5 && len(args) != 6 {
		return BlockItem{}, errors.New("reg wants name, offset, bits, access, fieldset and an optional array")
	}
	offset, err := parseOffset(args[1])
	if err != nil {
		return BlockItem{}, err
	}
	bits, err := parseBits(args[2])
	if err != nil {
		return BlockItem{}, err
	}
	access, err := ParseAccess(args[3])
	if err != nil {
		return BlockItem{}, err
	}
	reg := &Register{
		BitSize: bits,
		Access:  access,
	}
	if args[4] != "-" {
		reg.Fieldset = args[4]
	}

	item := BlockItem{
		Name:       args[0],
		ByteOffset: offset,
		Register:   reg,
	}
	if len(args) == 6 {
		item.Array, err = parseArraySpec(args[5])
		if err != nil {
			return BlockItem{}, err
		}
	}
	return item, nil
}

func parseSubItem(args []string) (BlockItem, error) {
	if len(args) != 3 {
		return BlockItem{}, errors.New("sub wants name, offset and block path")
	}
	offset, err := parseOffset(args[1])
	if err != nil {
		return BlockItem{}, err
	}
	return BlockItem{
		Name:       args[0],
		ByteOffset: offset,
		Block:      &BlockRef{Path: args[2]},
	}, nil
}

// parseArraySpec deals with "array=<len>:<stride>".
func parseArraySpec(raw string) (*Array, error) {
	key, val := partition(raw, "=")
	if key != "array" || val == "" {
		return nil, fmt.Errorf("invalid array spec %q", raw)
	}
	rawLen, rawStride := partition(val, ":")
	n, err := strconv.ParseUint(rawLen, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid array length in %q", raw)
	}
	stride, err := strconv.ParseUint(rawStride, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid array stride in %q", raw)
	}
	return &Array{Len: uint32(n), Stride: uint32(stride)}, nil
}

func parseOffset(raw string) (uint32, error) {
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", raw)
	}
	return uint32(v), nil
}

func parseBits(raw string) (uint32, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid bit size %q", raw)
	}
	return uint32(v), nil
}

// splitLine separates a line into its whitespace-separated fields and its
// trailing quoted description, if any.
func splitLine(line string) (fields []string, desc string, err error) {
	quot := strings.IndexRune(line, '"')
	if quot < 0 {
		return strings.Fields(trimComments(line)), "", nil
	}
	head := line[:quot]
	if strings.IndexByte(head, '#') >= 0 {
		// The quote is inside a comment.
		return strings.Fields(trimComments(head)), "", nil
	}
	rest := line[quot+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return nil, "", errors.New("unterminated description")
	}
	if tail := strings.TrimSpace(trimComments(rest[end+1:])); tail != "" {
		return nil, "", fmt.Errorf("unexpected %q after description", tail)
	}
	desc = strings.ReplaceAll(rest[:end], `\n`, "\n")
	return strings.Fields(head), desc, nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}
