// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import (
	"fmt"
	"unicode"
)

// parseAnalysisTree parses a raw pattern into the analysis tree without any
// rewriting or normalization, so alternation branches and quantifier nesting
// survive exactly as a backtracking engine would execute them. Constructs the
// analyzer does not model, backreferences and lookaround among them, are
// parse errors and surface as an unsafe verdict.
func parseAnalysisTree(pattern string) (*node, error) {
	p := &treeParser{src: []rune(pattern)}

	root, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.src) {
		return nil, fmt.Errorf("%w: unmatched %q at offset %d", ErrInvalidSyntax, p.src[p.pos], p.pos)
	}

	return root, nil
}

// treeParser is a recursive-descent parser over pattern runes.
type treeParser struct {
	src []rune
	pos int
	// fold is sticky once an "i" inline flag is seen; folding more widely
	// only grows leading-rune sets, which keeps the analysis conservative.
	fold bool
}

func (p *treeParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *treeParser) peek() rune {
	return p.src[p.pos]
}

// parseAlternate parses "|"-separated branches.
func (p *treeParser) parseAlternate() (*node, error) {
	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}

	if p.eof() || p.peek() != '|' {
		return first, nil
	}

	branches := []*node{first}
	for !p.eof() && p.peek() == '|' {
		p.pos++

		branch, err := p.parseConcat()
		if err != nil {
			return nil, err
		}

		branches = append(branches, branch)
	}

	return &node{kind: nodeAlternate, subs: branches}, nil
}

// parseConcat parses a run of quantified atoms up to "|", ")", or the end.
func (p *treeParser) parseConcat() (*node, error) {
	var parts []*node
	for !p.eof() && p.peek() != '|' && p.peek() != ')' {
		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}

		atom, err = p.parseQuantifiers(atom)
		if err != nil {
			return nil, err
		}

		parts = append(parts, atom)
	}

	if len(parts) == 1 {
		return parts[0], nil
	}

	return &node{kind: nodeConcat, subs: parts}, nil
}

// parseQuantifiers wraps an atom in any trailing quantifiers. A "?" after a
// quantifier (lazy mode) wraps again as an optional, which does not change
// the analysis. A "{" that does not form a valid bound is left for the next
// atom as a literal brace.
func (p *treeParser) parseQuantifiers(atom *node) (*node, error) {
	for !p.eof() {
		var min, max int
		switch p.peek() {
		case '*':
			min, max = 0, -1
			p.pos++
		case '+':
			min, max = 1, -1
			p.pos++
		case '?':
			min, max = 0, 1
			p.pos++
		case '{':
			var ok bool
			var err error
			min, max, ok, err = p.parseBounds()
			if err != nil {
				return nil, err
			}
			if !ok {
				return atom, nil
			}
		default:
			return atom, nil
		}

		if atom.kind == nodeZeroWidth {
			return nil, fmt.Errorf("%w: quantifier on zero-width assertion at offset %d", ErrInvalidSyntax, p.pos)
		}

		atom = &node{kind: nodeQuantified, subs: []*node{atom}, min: min, max: max}
	}

	return atom, nil
}

// parseBounds parses "{m}", "{m,}", or "{m,n}" starting at "{". It reports
// ok=false without consuming anything when the braces do not form a bound.
func (p *treeParser) parseBounds() (min, max int, ok bool, err error) {
	start := p.pos
	p.pos++ // '{'

	min, digits := p.parseInt()
	if digits == 0 {
		p.pos = start
		return 0, 0, false, nil
	}

	max = min
	if !p.eof() && p.peek() == ',' {
		p.pos++
		max = -1
		if n, d := p.parseInt(); d > 0 {
			max = n
		}
	}

	if p.eof() || p.peek() != '}' {
		p.pos = start
		return 0, 0, false, nil
	}
	p.pos++

	if max >= 0 && min > max {
		return 0, 0, false, fmt.Errorf("%w: inverted repeat bounds at offset %d", ErrInvalidSyntax, start)
	}

	return min, max, true, nil
}

// parseInt consumes a decimal run, saturating well above repeatCeiling.
func (p *treeParser) parseInt() (value, digits int) {
	const saturate = 1 << 20
	for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
		if value < saturate {
			value = value*10 + int(p.peek()-'0')
		}
		digits++
		p.pos++
	}

	return value, digits
}

// parseAtom parses one literal, class, group, escape, or anchor.
func (p *treeParser) parseAtom() (*node, error) {
	switch r := p.peek(); r {
	case '(':
		return p.parseGroup()

	case '[':
		return p.parseCharClass()

	case '\\':
		return p.parseEscape()

	case '.':
		p.pos++
		return &node{kind: nodeAnyChar}, nil

	case '^', '$':
		p.pos++
		return &node{kind: nodeZeroWidth}, nil

	case '*', '+', '?':
		return nil, fmt.Errorf("%w: quantifier %q with no preceding atom at offset %d", ErrInvalidSyntax, r, p.pos)

	default:
		p.pos++
		return &node{kind: nodeLiteral, lit: r, folded: p.fold}, nil
	}
}

// parseGroup parses "(...)" variants. Lookaround, atomic, and conditional
// groups are outside the modeled dialect and fail the parse.
func (p *treeParser) parseGroup() (*node, error) {
	start := p.pos
	p.pos++ // '('

	if !p.eof() && p.peek() == '?' {
		p.pos++
		if err := p.parseGroupPrefix(start); err != nil {
			return nil, err
		}

		// Flag-only groups like "(?i)" close immediately.
		if !p.eof() && p.peek() == ')' {
			p.pos++
			return &node{kind: nodeZeroWidth}, nil
		}
	}

	body, err := p.parseAlternate()
	if err != nil {
		return nil, err
	}

	if p.eof() || p.peek() != ')' {
		return nil, fmt.Errorf("%w: unclosed group at offset %d", ErrInvalidSyntax, start)
	}
	p.pos++

	return &node{kind: nodeGroup, subs: []*node{body}}, nil
}

// parseGroupPrefix consumes the construct between "(?" and the group body:
// ":" for non-capturing, "P<name>" or "<name>" for named captures, and
// inline flag runs ending in ":" or ")".
func (p *treeParser) parseGroupPrefix(start int) error {
	if p.eof() {
		return fmt.Errorf("%w: unclosed group at offset %d", ErrInvalidSyntax, start)
	}

	switch p.peek() {
	case ':':
		p.pos++
		return nil

	case 'P':
		p.pos++
		if p.eof() || p.peek() != '<' {
			return fmt.Errorf("%w: malformed named group at offset %d", ErrInvalidSyntax, start)
		}
		return p.parseGroupName(start)

	case '<':
		if p.pos+1 < len(p.src) && (p.src[p.pos+1] == '=' || p.src[p.pos+1] == '!') {
			return fmt.Errorf("%w: lookbehind is not supported at offset %d", ErrInvalidSyntax, start)
		}
		return p.parseGroupName(start)

	case '=', '!':
		return fmt.Errorf("%w: lookahead is not supported at offset %d", ErrInvalidSyntax, start)

	case '>':
		return fmt.Errorf("%w: atomic group is not supported at offset %d", ErrInvalidSyntax, start)

	case '(':
		return fmt.Errorf("%w: conditional group is not supported at offset %d", ErrInvalidSyntax, start)
	}

	return p.parseGroupFlags(start)
}

// parseGroupName consumes "<name>" and validates the name characters.
func (p *treeParser) parseGroupName(start int) error {
	p.pos++ // '<'

	nameLen := 0
	for !p.eof() && p.peek() != '>' {
		r := p.peek()
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: invalid group name character %q at offset %d", ErrInvalidSyntax, r, p.pos)
		}
		nameLen++
		p.pos++
	}

	if p.eof() || nameLen == 0 {
		return fmt.Errorf("%w: malformed named group at offset %d", ErrInvalidSyntax, start)
	}
	p.pos++ // '>'

	return nil
}

// parseGroupFlags consumes an inline flag run like "i", "im", or "i-s",
// stopping before the closing ":" or ")".
func (p *treeParser) parseGroupFlags(start int) error {
	negated := false
	for !p.eof() {
		switch r := p.peek(); r {
		case 'i':
			if !negated {
				p.fold = true
			}
			p.pos++
		case 'm', 's', 'U':
			p.pos++
		case '-':
			negated = true
			p.pos++
		case ':':
			p.pos++
			return nil
		case ')':
			return nil
		default:
			return fmt.Errorf("%w: unknown group flag %q at offset %d", ErrInvalidSyntax, r, p.pos)
		}
	}

	return fmt.Errorf("%w: unclosed group at offset %d", ErrInvalidSyntax, start)
}

// Shorthand class rune ranges.
var (
	digitRunes = runeSet{'0', '9'}
	spaceRunes = runeSet{'\t', '\r', ' ', ' '}
	wordRunes  = runeSet{'0', '9', 'A', 'Z', '_', '_', 'a', 'z'}
)

// parseEscape parses "\x" sequences outside a character class.
func (p *treeParser) parseEscape() (*node, error) {
	start := p.pos
	p.pos++ // '\'

	if p.eof() {
		return nil, fmt.Errorf("%w: trailing backslash at offset %d", ErrInvalidSyntax, start)
	}

	r := p.peek()
	p.pos++

	switch r {
	case 'd':
		return &node{kind: nodeCharClass, set: digitRunes}, nil
	case 's':
		return &node{kind: nodeCharClass, set: spaceRunes}, nil
	case 'w':
		return &node{kind: nodeCharClass, set: wordRunes}, nil
	case 'D', 'S', 'W':
		// Negated shorthand over-approximates to every rune.
		return &node{kind: nodeCharClass, set: fullRuneSet}, nil
	case 'b', 'B', 'A', 'z', 'Z':
		return &node{kind: nodeZeroWidth}, nil
	case 'p', 'P':
		return nil, fmt.Errorf("%w: unicode property class is not supported at offset %d", ErrInvalidSyntax, start)
	case 'Q', 'E', 'G':
		return nil, fmt.Errorf("%w: unsupported escape %q at offset %d", ErrInvalidSyntax, r, start)
	case 'x':
		lit, err := p.parseHexEscape(start)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeLiteral, lit: lit, folded: p.fold}, nil
	}

	if r >= '1' && r <= '9' {
		return nil, fmt.Errorf("%w: backreference is not supported at offset %d", ErrInvalidSyntax, start)
	}

	return &node{kind: nodeLiteral, lit: controlEscape(r), folded: p.fold}, nil
}

// parseHexEscape parses "\xhh" or "\x{h...}" after the "x" was consumed.
func (p *treeParser) parseHexEscape(start int) (rune, error) {
	braced := !p.eof() && p.peek() == '{'
	if braced {
		p.pos++
	}

	var value rune
	digits := 0
	for !p.eof() {
		d, ok := hexDigit(p.peek())
		if !ok {
			break
		}
		value = value<<4 | d
		digits++
		p.pos++

		if value > unicode.MaxRune || (!braced && digits == 2) {
			break
		}
	}

	if value > unicode.MaxRune || digits == 0 || (braced && (p.eof() || p.peek() != '}')) || (!braced && digits != 2) {
		return 0, fmt.Errorf("%w: malformed hex escape at offset %d", ErrInvalidSyntax, start)
	}
	if braced {
		p.pos++
	}

	return value, nil
}

func hexDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	}

	return 0, false
}

// controlEscape maps escape letters to their control runes; any other rune
// escapes to itself.
func controlEscape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case 'a':
		return '\a'
	case '0':
		return 0
	}

	return r
}

// parseCharClass parses a "[...]" bracket expression. Negated classes
// over-approximate to every rune so first-rune comparisons stay conservative.
func (p *treeParser) parseCharClass() (*node, error) {
	start := p.pos
	p.pos++ // '['

	negated := false
	if !p.eof() && p.peek() == '^' {
		negated = true
		p.pos++
	}

	var set runeSet
	first := true
	for {
		if p.eof() {
			return nil, fmt.Errorf("%w: unclosed character class at offset %d", ErrInvalidSyntax, start)
		}

		r := p.peek()
		if r == ']' && !first {
			p.pos++
			break
		}
		first = false

		lo, classSet, err := p.parseClassItem(start)
		if err != nil {
			return nil, err
		}
		if classSet != nil {
			set = append(set, classSet...)
			continue
		}

		hi := lo
		if p.pos+1 < len(p.src) && p.peek() == '-' && p.src[p.pos+1] != ']' {
			p.pos++
			hi, classSet, err = p.parseClassItem(start)
			if err != nil {
				return nil, err
			}
			if classSet != nil || lo > hi {
				return nil, fmt.Errorf("%w: invalid class range at offset %d", ErrInvalidSyntax, start)
			}
		}

		set = append(set, lo, hi)
	}

	if negated {
		set = fullRuneSet
	}

	return &node{kind: nodeCharClass, set: set}, nil
}

// parseClassItem parses one class member: a literal rune, an escape, or a
// shorthand class. Exactly one of the return values is meaningful.
func (p *treeParser) parseClassItem(start int) (rune, runeSet, error) {
	r := p.peek()
	p.pos++

	if r != '\\' {
		return r, nil, nil
	}

	if p.eof() {
		return 0, nil, fmt.Errorf("%w: unclosed character class at offset %d", ErrInvalidSyntax, start)
	}

	e := p.peek()
	p.pos++

	switch e {
	case 'd':
		return 0, digitRunes, nil
	case 's':
		return 0, spaceRunes, nil
	case 'w':
		return 0, wordRunes, nil
	case 'D', 'S', 'W':
		return 0, fullRuneSet, nil
	case 'p', 'P':
		return 0, nil, fmt.Errorf("%w: unicode property class is not supported at offset %d", ErrInvalidSyntax, start)
	case 'x':
		lit, err := p.parseHexEscape(start)
		if err != nil {
			return 0, nil, err
		}
		return lit, nil, nil
	case 'b':
		return '\b', nil, nil
	}

	return controlEscape(e), nil, nil
}
