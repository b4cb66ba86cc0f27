package config

import "fmt"

// syntaxError is the low-level parse failure raised by the scanning state
// machine; Parse wraps it into a ParserError carrying the "Could not parse
// property key" prefix required by the ABI.
type syntaxError struct {
	offset  int
	message string
}

func (e *syntaxError) Error() string {
	return e.message
}

// eof is the sentinel scanChar returns past the end of the key, mirroring
// the original parser's use of the NUL character.
const eof = rune(0)

// parseState tracks the in-progress part stack and cursor position for a
// single Parse call.
type parseState struct {
	key     string
	stack   []*Part
	current *Part
	cursor  int
	root    *Part

	lastCursor int
	lastDepth  int
}

// Parse validates the syntactic form of a property key and returns its part
// tree. On any grammar violation it returns a *ParserError carrying the
// offset and cause of the failure.
func Parse(key string) (*Part, error) {
	st := &parseState{key: key, lastCursor: -1}

	if err := st.run(); err != nil {
		if se, ok := err.(*syntaxError); ok {
			return nil, &ParserError{
				Offset:  se.offset,
				Message: fmt.Sprintf("Could not parse property key, error at index %d", se.offset),
				Cause:   se,
			}
		}
		return nil, err
	}

	return st.root, nil
}

func (st *parseState) run() error {
	st.pushPart(KindRoot)
	st.root = st.current
	st.pushPart(KindLiteral)

	for st.cursor < len(st.key) || st.current != nil {
		deferredPush := false

		c, err := st.scanChar(true)
		if err != nil {
			return err
		}

		switch c {
		case '$':
			ahead := st.peekAhead()
			if ahead == '{' {
				st.startPlaceholderPart()
			} else {
				return &syntaxError{st.cursor, "Unexpected '$', placeholders require brackets"}
			}
		case '{':
			st.startOverridePart()
		case '.':
			deferredPush = true
			if err := st.endCurrentPart(); err != nil {
				return err
			}
		case '}', eof:
			if err := st.endCurrentPart(); err != nil {
				return err
			}
		default:
			if err := st.consumeCharacter(c); err != nil {
				return err
			}
		}

		if deferredPush {
			st.pushPart(KindLiteral)
		}
	}

	return nil
}

// scanChar returns the character at the cursor, or eof past the end of the
// key. When doStateCheck is true it first verifies that either the cursor
// or the part stack depth changed since the last check, guarding against a
// parser logic bug causing an infinite loop.
func (st *parseState) scanChar(doStateCheck bool) (rune, error) {
	if doStateCheck {
		depth := len(st.stack)
		stateUnchanged := st.lastCursor >= st.cursor && st.lastDepth == depth
		st.lastCursor = st.cursor
		st.lastDepth = depth

		if stateUnchanged {
			return 0, &syntaxError{st.cursor, "Parser logic error, infinite loop detected"}
		}
	}

	if st.cursor < len(st.key) {
		return rune(st.key[st.cursor]), nil
	}
	return eof, nil
}

func (st *parseState) peekAhead() rune {
	next := st.cursor + 1
	if next < len(st.key) {
		return rune(st.key[next])
	}
	return eof
}

func (st *parseState) peekBehind() rune {
	prev := st.cursor - 1
	if prev >= 0 {
		return rune(st.key[prev])
	}
	return eof
}

func (st *parseState) advance() {
	st.cursor++
}

// pushPart begins tracking a new part, moving any part already in progress
// onto the stack to be finished later.
func (st *parseState) pushPart(kind Kind) {
	if st.current != nil {
		st.stack = append(st.stack, st.current)
	}
	st.current = &Part{Kind: kind, Start: st.cursor}
}

// popPart closes the current part, attaching it as a child of whatever part
// was in progress before it.
func (st *parseState) popPart() {
	child := st.current
	child.End = st.cursor
	child.Raw = st.key[child.Start:child.End]

	if len(st.stack) > 0 {
		parent := st.stack[len(st.stack)-1]
		st.stack = st.stack[:len(st.stack)-1]
		parent.Children = append(parent.Children, child)
		st.current = parent
	} else {
		st.current = nil
	}
}

// startPlaceholderPart and startOverridePart first open a literal when the
// part in progress is a WHOLE, so a placeholder or override that begins an
// override/placeholder interior can still be followed by a '.' separator.
func (st *parseState) startPlaceholderPart() {
	if st.current.Kind == KindWhole {
		st.pushPart(KindLiteral)
	}
	st.pushPart(KindPlaceholder)
	st.advance()
	st.advance()
	st.pushPart(KindWhole)
}

func (st *parseState) startOverridePart() {
	if st.current.Kind == KindWhole {
		st.pushPart(KindLiteral)
	}
	st.pushPart(KindOverride)
	st.advance()
	st.pushPart(KindWhole)
}

// endCurrentPart validates and closes the part in progress when a
// delimiter ('.', '}') or end-of-string is reached.
func (st *parseState) endCurrentPart() error {
	partType := st.current.Kind
	partEnd := st.cursor
	partStart := st.current.Start

	c, err := st.scanChar(false)
	if err != nil {
		return err
	}

	switch c {
	case '.':
		if partType != KindLiteral || partEnd-partStart < 1 {
			return &syntaxError{partEnd, "Unexpected end of property part"}
		}
		st.advance()
		st.popPart()

	case '}':
		emptySize := 0

		switch partType {
		case KindPlaceholder:
			emptySize++
			fallthrough
		case KindOverride:
			emptySize++
			st.advance()
			fallthrough
		case KindLiteral, KindWhole:
			if partEnd-partStart <= emptySize {
				return &syntaxError{partEnd, "Property part cannot be blank"}
			}
		case KindRoot:
			return &syntaxError{partEnd, "Unexpected '}'"}
		}

		st.popPart()

	case eof:
		switch partType {
		case KindLiteral, KindWhole, KindRoot:
			if partEnd-partStart <= 0 {
				return &syntaxError{partEnd - 1, "Unexpected end of property part"}
			}
		case KindOverride, KindPlaceholder:
			return &syntaxError{partEnd - 1, "Unexpected end of property part, expected '}'"}
		}

		st.popPart()
	}

	return nil
}

// consumeCharacter advances past a single character of a literal part,
// validating hyphen/underscore placement and rejecting unsupported
// characters.
func (st *parseState) consumeCharacter(c rune) error {
	if c == '-' || c == '_' {
		name := "underscore"
		if c == '-' {
			name = "hyphen"
		}

		if !isAlnum(st.peekAhead()) || !isAlnum(st.peekBehind()) {
			return &syntaxError{st.cursor, fmt.Sprintf("Unexpected '%c', illegal use of %s", c, name)}
		}

		st.advance()
		return nil
	}

	if isAlnum(c) {
		if st.current.Kind != KindLiteral {
			st.pushPart(KindLiteral)
			st.advance()
		} else {
			st.advance()
		}
		return nil
	}

	return &syntaxError{st.cursor, fmt.Sprintf("Unsupported character '%c' in property key", c)}
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
