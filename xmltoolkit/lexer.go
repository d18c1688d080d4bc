package xmltoolkit

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// XMLError reports a lexical or structural problem found while parsing,
// with the position it was found at.
type XMLError struct {
	Line       int
	Column     int
	ByteOffset int
	Message    string
}

func (e *XMLError) Error() string {
	return fmt.Sprintf("xmltoolkit: %d:%d (byte %d): %s", e.Line, e.Column, e.ByteOffset, e.Message)
}

// tokenKind enumerates the raw lexical tokens produced by the scanner,
// prior to any namespace resolution or tree construction.
type tokenKind int

const (
	tokStartTag tokenKind = iota
	tokEndTag
	tokText
	tokCData
	tokComment
	tokProcInst
	tokEOF
)

type rawAttr struct {
	qname string
	value string
}

type token struct {
	kind        tokenKind
	qname       string // start/end tag name
	attrs       []rawAttr
	selfClosing bool
	text        string // text / comment content
	piTarget    string
	piData      string
	line, col   int
	offset      int
}

// lexer is a hand-written scanner over a UTF-8 XML byte stream. It
// tracks line/column/byte position for diagnostics, matching the
// bit-by-bit position bookkeeping style used elsewhere in this module
// for streaming formats.
type lexer struct {
	src       string
	pos       int
	line, col int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, pos: 0, line: 1, col: 1}
}

func (l *lexer) errorf(format string, args ...any) error {
	return &XMLError{Line: l.line, Column: l.col, ByteOffset: l.pos, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) eof() bool { return l.pos >= len(l.src) }

func (l *lexer) peekByte() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) hasPrefix(p string) bool {
	return strings.HasPrefix(l.src[l.pos:], p)
}

func (l *lexer) skip(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// next returns the next raw token, or a tokEOF token once the input is
// exhausted. DOCTYPE declarations are skipped silently rather than
// surfaced as tokens: no DTD validation is performed, but a DOCTYPE is
// tolerated wherever it appears before the document element.
func (l *lexer) next() (token, error) {
	for {
		if l.eof() {
			return token{kind: tokEOF, line: l.line, col: l.col, offset: l.pos}, nil
		}

		if l.peekByte() != '<' {
			return l.lexText()
		}

		switch {
		case l.hasPrefix("<!--"):
			return l.lexComment()
		case l.hasPrefix("<![CDATA["):
			return l.lexCDATA()
		case l.hasPrefix("<?"):
			return l.lexProcInst()
		case l.hasPrefix("<!DOCTYPE") || l.hasPrefix("<!doctype"):
			if err := l.skipDoctype(); err != nil {
				return token{}, err
			}
			continue
		case l.hasPrefix("</"):
			return l.lexEndTag()
		default:
			return l.lexStartTag()
		}
	}
}

// skipDoctype consumes a DOCTYPE declaration, including any bracketed
// internal subset, without interpreting it.
func (l *lexer) skipDoctype() error {
	depth := 0
	for !l.eof() {
		switch l.peekByte() {
		case '[':
			depth++
		case ']':
			depth--
		case '>':
			if depth <= 0 {
				l.advance()
				return nil
			}
		}
		l.advance()
	}
	return l.errorf("unterminated DOCTYPE declaration")
}

func (l *lexer) lexText() (token, error) {
	line, col, offset := l.line, l.col, l.pos
	var b strings.Builder
	for !l.eof() && l.peekByte() != '<' {
		if l.hasPrefix("&") {
			ch, err := l.lexEntity()
			if err != nil {
				return token{}, err
			}
			b.WriteRune(ch)
			continue
		}
		b.WriteByte(l.advance())
	}
	return token{kind: tokText, text: b.String(), line: line, col: col, offset: offset}, nil
}

func (l *lexer) lexEntity() (rune, error) {
	start := l.pos
	l.advance() // '&'
	semi := strings.IndexByte(l.src[l.pos:], ';')
	if semi < 0 {
		return 0, l.errorf("unterminated entity reference")
	}
	name := l.src[l.pos : l.pos+semi]
	for i := 0; i < semi+1; i++ {
		l.advance()
	}
	switch name {
	case "amp":
		return '&', nil
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "apos":
		return '\'', nil
	case "quot":
		return '"', nil
	}
	if strings.HasPrefix(name, "#x") || strings.HasPrefix(name, "#X") {
		var v rune
		if _, err := fmt.Sscanf(name[2:], "%x", &v); err != nil {
			return 0, l.errorf("invalid character reference %q", l.src[start:l.pos])
		}
		return v, nil
	}
	if strings.HasPrefix(name, "#") {
		var v rune
		if _, err := fmt.Sscanf(name[1:], "%d", &v); err != nil {
			return 0, l.errorf("invalid character reference %q", l.src[start:l.pos])
		}
		return v, nil
	}
	return 0, l.errorf("unknown entity reference %q", name)
}

func (l *lexer) lexComment() (token, error) {
	line, col, offset := l.line, l.col, l.pos
	l.skip(4) // "<!--"
	start := l.pos
	rel := strings.Index(l.src[start:], "--")
	if rel < 0 {
		return token{}, l.errorf("unterminated comment")
	}
	// "--" may not appear inside a comment's content at all, so its first
	// occurrence must be the "-->" terminator.
	end := start + rel
	if !strings.HasPrefix(l.src[end:], "-->") {
		return token{}, l.errorf("comment must not contain \"--\"")
	}
	text := l.src[start:end]
	l.skip(end - start + 3)
	return token{kind: tokComment, text: text, line: line, col: col, offset: offset}, nil
}

func (l *lexer) lexCDATA() (token, error) {
	line, col, offset := l.line, l.col, l.pos
	l.skip(9) // "<![CDATA["
	end := strings.Index(l.src[l.pos:], "]]>")
	if end < 0 {
		return token{}, l.errorf("unterminated CDATA section")
	}
	text := l.src[l.pos : l.pos+end]
	l.skip(end + 3)
	return token{kind: tokCData, text: text, line: line, col: col, offset: offset}, nil
}

func (l *lexer) lexProcInst() (token, error) {
	line, col, offset := l.line, l.col, l.pos
	l.skip(2) // "<?"
	end := strings.Index(l.src[l.pos:], "?>")
	if end < 0 {
		return token{}, l.errorf("unterminated processing instruction")
	}
	body := l.src[l.pos : l.pos+end]
	l.skip(end + 2)
	target := body
	data := ""
	if i := strings.IndexAny(body, " \t\r\n"); i >= 0 {
		target = body[:i]
		data = strings.TrimLeft(body[i:], " \t\r\n")
	}
	return token{kind: tokProcInst, piTarget: target, piData: data, line: line, col: col, offset: offset}, nil
}

func (l *lexer) lexEndTag() (token, error) {
	line, col, offset := l.line, l.col, l.pos
	l.skip(2) // "</"
	name, err := l.lexName()
	if err != nil {
		return token{}, err
	}
	l.skipWhitespace()
	if l.eof() || l.peekByte() != '>' {
		return token{}, l.errorf("malformed end tag for %q", name)
	}
	l.advance()
	return token{kind: tokEndTag, qname: name, line: line, col: col, offset: offset}, nil
}

func (l *lexer) lexStartTag() (token, error) {
	line, col, offset := l.line, l.col, l.pos
	l.advance() // '<'
	name, err := l.lexName()
	if err != nil {
		return token{}, err
	}
	var attrs []rawAttr
	for {
		l.skipWhitespace()
		if l.eof() {
			return token{}, l.errorf("unterminated start tag for %q", name)
		}
		if l.peekByte() == '/' {
			l.advance()
			if l.eof() || l.peekByte() != '>' {
				return token{}, l.errorf("malformed self-closing tag for %q", name)
			}
			l.advance()
			return token{kind: tokStartTag, qname: name, attrs: attrs, selfClosing: true, line: line, col: col, offset: offset}, nil
		}
		if l.peekByte() == '>' {
			l.advance()
			return token{kind: tokStartTag, qname: name, attrs: attrs, line: line, col: col, offset: offset}, nil
		}
		attrName, err := l.lexName()
		if err != nil {
			return token{}, err
		}
		l.skipWhitespace()
		if l.eof() || l.peekByte() != '=' {
			return token{}, l.errorf("expected '=' after attribute name %q", attrName)
		}
		l.advance()
		l.skipWhitespace()
		val, err := l.lexAttrValue()
		if err != nil {
			return token{}, err
		}
		attrs = append(attrs, rawAttr{qname: attrName, value: val})
	}
}

func (l *lexer) lexAttrValue() (string, error) {
	if l.eof() || (l.peekByte() != '"' && l.peekByte() != '\'') {
		return "", l.errorf("expected quoted attribute value")
	}
	quote := l.advance()
	var b strings.Builder
	for {
		if l.eof() {
			return "", l.errorf("unterminated attribute value")
		}
		if l.peekByte() == quote {
			l.advance()
			return b.String(), nil
		}
		if l.peekByte() == '&' {
			ch, err := l.lexEntity()
			if err != nil {
				return "", err
			}
			b.WriteRune(ch)
			continue
		}
		c := l.advance()
		if c == '\t' || c == '\n' || c == '\r' {
			b.WriteByte(' ')
		} else {
			b.WriteByte(c)
		}
	}
}

func (l *lexer) lexName() (string, error) {
	start := l.pos
	if l.eof() {
		return "", l.errorf("expected a name")
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if !isNameStartChar(r) {
		return "", l.errorf("invalid name start character %q", r)
	}
	for i := 0; i < size; i++ {
		l.advance()
	}
	for !l.eof() {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isNameChar(r) {
			break
		}
		for i := 0; i < size; i++ {
			l.advance()
		}
	}
	return l.src[start:l.pos], nil
}

func (l *lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peekByte() {
		case ' ', '\t', '\n', '\r':
			l.advance()
		default:
			return
		}
	}
}

// isNameStartChar follows the XML 1.0 NameStartChar production closely
// enough for a byte-mode/ASCII-heavy toolkit, delegating Unicode-letter
// classification to unicode.IsLetter.
func isNameStartChar(r rune) bool {
	return r == ':' || r == '_' || unicode.IsLetter(r)
}

// isNameChar follows the XML 1.0 NameChar production.
func isNameChar(r rune) bool {
	return isNameStartChar(r) || r == '-' || r == '.' || unicode.IsDigit(r) || unicode.IsMark(r)
}

func splitQName(qname string) (prefix, local string) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}
