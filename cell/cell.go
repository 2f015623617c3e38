package cell

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the datatype held by a Cell.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBlank
	KindLogic
	KindInteger
	KindDecimal
	KindText
	KindWord
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void!"
	case KindBlank:
		return "blank!"
	case KindLogic:
		return "logic!"
	case KindInteger:
		return "integer!"
	case KindDecimal:
		return "decimal!"
	case KindText:
		return "text!"
	case KindWord:
		return "word!"
	case KindBlock:
		return "block!"
	default:
		return "unknown!"
	}
}

// KindFromName maps a datatype name as written in spec blocks
// ("integer!", "text!") to its Kind. Reports false for unknown names.
func KindFromName(name string) (Kind, bool) {
	switch name {
	case "void!":
		return KindVoid, true
	case "blank!", "none!":
		return KindBlank, true
	case "logic!":
		return KindLogic, true
	case "integer!":
		return KindInteger, true
	case "decimal!", "float!":
		return KindDecimal, true
	case "text!", "string!":
		return KindText, true
	case "word!":
		return KindWord, true
	case "block!":
		return KindBlock, true
	}
	return KindVoid, false
}

// Cell is the runtime's raw value representation: a small tagged union.
// Cells are plain values; copying a Cell copies its payload header, with
// text and block payloads shared by reference the way the runtime shares
// series.
type Cell struct {
	Kind Kind
	I    int64
	F    float64
	S    string
	L    []Cell
}

// Void returns the void cell.
func Void() Cell { return Cell{Kind: KindVoid} }

// Blank returns the blank cell.
func Blank() Cell { return Cell{Kind: KindBlank} }

// Logic builds a logic! cell.
func Logic(b bool) Cell {
	c := Cell{Kind: KindLogic}
	if b {
		c.I = 1
	}
	return c
}

// Integer builds an integer! cell.
func Integer(i int64) Cell { return Cell{Kind: KindInteger, I: i} }

// Decimal builds a decimal! cell.
func Decimal(f float64) Cell { return Cell{Kind: KindDecimal, F: f} }

// Text builds a text! cell.
func Text(s string) Cell { return Cell{Kind: KindText, S: s} }

// Word builds a word! cell.
func Word(s string) Cell { return Cell{Kind: KindWord, S: s} }

// Block builds a block! cell from the given items.
func Block(items ...Cell) Cell { return Cell{Kind: KindBlock, L: items} }

// Bool reports the logic! payload. Meaningful only for KindLogic.
func (c Cell) Bool() bool { return c.I != 0 }

// IsVoid reports whether the cell is void.
func (c Cell) IsVoid() bool { return c.Kind == KindVoid }

// Mold renders the cell in the runtime's literal notation.
func (c Cell) Mold() string {
	switch c.Kind {
	case KindVoid:
		return ""
	case KindBlank:
		return "_"
	case KindLogic:
		if c.Bool() {
			return "true"
		}
		return "false"
	case KindInteger:
		return strconv.FormatInt(c.I, 10)
	case KindDecimal:
		return strconv.FormatFloat(c.F, 'g', -1, 64)
	case KindText:
		return strconv.Quote(c.S)
	case KindWord:
		return c.S
	case KindBlock:
		parts := make([]string, len(c.L))
		for i, item := range c.L {
			parts[i] = item.Mold()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprintf("#[unknown %d]", c.Kind)
	}
}

func (c Cell) String() string { return c.Mold() }
