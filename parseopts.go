package calculator

import (
	"strconv"
	"unicode"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	eofopt struct {
		ws string
	}
	simplifyopt struct{}
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// wseof is a string containing the whitespace characters that end the
	// expression.
	wseof string
	// simplify indicates that the parsed expression is simplified.
	simplify bool
}

// StopOn tells the parser to treat a list of whitespace characters as ending
// the expression. Whitespace does not end an expression where one is
// incomplete, e.g. following an operator or inside brackets or bars. The rest
// of the input is left unread so that another call to Parse can continue it.
//
// StopOn overrides the effect of any previous StopOn in the parsing options,
// including in presets. With no arguments, StopOn produces the default
// termination behavior, which is to parse to EOF. Panics if any rune is not
// whitespace.
func StopOn(chars ...rune) ParseOption {
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("calculator: cannot stop on " + strconv.QuoteRune(r))
		}
		if !have(r) {
			v = append(v, r)
		}
	}
	return &eofopt{ws: string(v)}
}

func (o *eofopt) parseOption(p parsectx) parsectx {
	p.wseof = o.ws
	return p
}

// Simplified tells the parser to return the simplified expression.
func Simplified() ParseOption {
	return simplifyopt{}
}

func (simplifyopt) parseOption(p parsectx) parsectx {
	p.simplify = true
	return p
}

// ParsingPreset creates a parsing preset that may be more efficient when using
// the same non-default parsing options for many calls to Parse. A preset
// panics when it would change any option from the default, but it is safe to
// apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.wseof != "" || p.simplify {
		panic("calculator: preset applied to non-default parse config")
	}
	return *o
}
