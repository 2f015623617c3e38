package spec

import (
	"strings"

	"github.com/wippyai/ren-bridge/cell"
	"github.com/wippyai/ren-bridge/errors"
)

// Param describes one parameter of a native function spec: its word and
// the cell datatypes it accepts. An empty Kinds list accepts any type.
type Param struct {
	Name  string
	Kinds []cell.Kind
}

// Accepts reports whether the parameter admits an argument of kind k.
func (p Param) Accepts(k cell.Kind) bool {
	if len(p.Kinds) == 0 {
		return true
	}
	for _, want := range p.Kinds {
		if want == k {
			return true
		}
	}
	return false
}

// Block is an ordered parameter specification as written in the
// runtime's spec notation, e.g. "a [integer!] b [integer!]". The
// runtime uses it for documentation and argument validation; this layer
// uses it to cross-check the introspected Go signature.
type Block struct {
	Source string
	Params []Param
}

// Arity returns the number of declared parameters.
func (b Block) Arity() int { return len(b.Params) }

// Parse reads a spec block. The grammar is a flat sequence of
// parameter words, each optionally followed by a type block listing
// accepted datatypes:
//
//	name
//	name [type! type! ...]
//
// Unknown datatype names and malformed type blocks are parse errors.
func Parse(source string) (Block, error) {
	b := Block{Source: source}
	toks, err := tokenize(source)
	if err != nil {
		return Block{}, err
	}

	i := 0
	for i < len(toks) {
		tok := toks[i]
		if tok == "[" || tok == "]" {
			return Block{}, errors.ParseFailed("spec block",
				errors.InvalidInput(errors.PhaseParse, "type block without a preceding parameter word"))
		}
		param := Param{Name: tok}
		i++

		if i < len(toks) && toks[i] == "[" {
			i++
			for i < len(toks) && toks[i] != "]" {
				kind, ok := cell.KindFromName(toks[i])
				if !ok {
					return Block{}, errors.New(errors.PhaseParse, errors.KindInvalidData).
						Path(param.Name).
						Detail("unknown datatype %q", toks[i]).
						Build()
				}
				param.Kinds = append(param.Kinds, kind)
				i++
			}
			if i == len(toks) {
				return Block{}, errors.ParseFailed("spec block",
					errors.InvalidInput(errors.PhaseParse, "unterminated type block"))
			}
			i++ // consume "]"
		}

		b.Params = append(b.Params, param)
	}

	return b, nil
}

// Mold renders the block back in spec notation.
func (b Block) Mold() string {
	var sb strings.Builder
	for i, p := range b.Params {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Name)
		if len(p.Kinds) > 0 {
			sb.WriteString(" [")
			for j, k := range p.Kinds {
				if j > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(k.String())
			}
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

func tokenize(source string) ([]string, error) {
	var toks []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}

	for _, r := range source {
		switch {
		case r == '[' || r == ']':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks, nil
}
