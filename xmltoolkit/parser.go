package xmltoolkit

import (
	"fmt"
	"strings"
)

// ParseOptions configures the tree-building parser. The zero value
// matches this toolkit's documented defaults: comments, processing
// instructions, and CDATA sections are all kept distinct by default;
// whitespace-only text is dropped by default. Each field therefore
// names the deviation from that default, not the feature itself, so
// ParseOptions{} alone is the spec-conformant configuration.
type ParseOptions struct {
	// DropComments discards comment nodes during parsing instead of
	// keeping them in the tree.
	DropComments bool
	// DropProcInst discards processing-instruction nodes during parsing
	// (the XML declaration is never represented as a ProcInst node
	// regardless of this option; see Document.HasXMLDecl).
	DropProcInst bool
	// PreserveWhitespace keeps text nodes that are entirely whitespace;
	// otherwise they're dropped, which is this toolkit's default (common
	// for pretty-printed input where insignificant whitespace would
	// otherwise clutter the tree).
	PreserveWhitespace bool
	// FoldCData merges CDATA section content into the surrounding text
	// instead of keeping it as a distinct KindCData node.
	FoldCData bool
}

type nsScope struct {
	prefixToURI map[string]string
}

// Parse builds a Document from src according to opts.
func Parse(src string, opts ParseOptions) (*Document, error) {
	lx := newLexer(src)
	doc := NewDocument()

	var elemStack []NodeRef
	var nsStack []nsScope
	nsStack = append(nsStack, nsScope{prefixToURI: map[string]string{"xml": "http://www.w3.org/XML/1998/namespace"}})

	currentParent := func() NodeRef {
		if len(elemStack) == 0 {
			return doc.DocumentNode()
		}
		return elemStack[len(elemStack)-1]
	}

	resolve := func(prefix string) (string, bool) {
		for i := len(nsStack) - 1; i >= 0; i-- {
			if uri, ok := nsStack[i].prefixToURI[prefix]; ok {
				return uri, true
			}
		}
		return "", false
	}

	// appendText appends text under parent, merging into the parent's
	// trailing Text child if there is one instead of starting a new node
	// (so a CDATA section folded into plain text joins its neighbour
	// rather than leaving an internal split with no source meaning).
	appendText := func(parent NodeRef, text string, tok token) {
		p := doc.Node(parent)
		if len(p.Children) > 0 {
			last := doc.Node(p.Children[len(p.Children)-1])
			if last.Kind == KindText {
				last.Text += text
				return
			}
		}
		ref := doc.NewText(text)
		stampPos(doc, ref, tok)
		doc.AppendChild(parent, ref)
	}

	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			if len(elemStack) != 0 {
				return nil, &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: "unexpected end of input, unclosed element"}
			}
			return doc, nil

		case tokText:
			if opts.PreserveWhitespace || strings.TrimSpace(tok.text) != "" {
				appendText(currentParent(), tok.text, tok)
			}

		case tokCData:
			if opts.FoldCData {
				appendText(currentParent(), tok.text, tok)
			} else {
				ref := doc.NewCData(tok.text)
				stampPos(doc, ref, tok)
				doc.AppendChild(currentParent(), ref)
			}

		case tokComment:
			if opts.DropComments {
				continue
			}
			ref := doc.NewComment(tok.text)
			stampPos(doc, ref, tok)
			doc.AppendChild(currentParent(), ref)

		case tokProcInst:
			if tok.piTarget == "xml" {
				version, encoding, standalone := parseXMLDecl(tok.piData)
				doc.HasXMLDecl = true
				doc.XMLVersion = version
				doc.Encoding = encoding
				doc.Standalone = standalone
				continue
			}
			if opts.DropProcInst {
				continue
			}
			ref := doc.NewProcInst(tok.piTarget, tok.piData)
			stampPos(doc, ref, tok)
			doc.AppendChild(currentParent(), ref)

		case tokEndTag:
			if len(elemStack) == 0 {
				return nil, &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("end tag %q with no matching start tag", tok.qname)}
			}
			top := elemStack[len(elemStack)-1]
			topNode := doc.Node(top)
			if topNode.QName() != tok.qname {
				return nil, &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("mismatched end tag: expected %q, got %q", topNode.QName(), tok.qname)}
			}
			elemStack = elemStack[:len(elemStack)-1]
			nsStack = nsStack[:len(nsStack)-1]

		case tokStartTag:
			prefix, local := splitQName(tok.qname)

			scope := nsScope{prefixToURI: map[string]string{}}
			var realAttrs []rawAttr
			for _, a := range tok.attrs {
				aPrefix, aLocal := splitQName(a.qname)
				switch {
				case a.qname == "xmlns":
					scope.prefixToURI[""] = a.value
				case aPrefix == "xmlns":
					scope.prefixToURI[aLocal] = a.value
				default:
					realAttrs = append(realAttrs, rawAttr{qname: a.qname, value: a.value})
					_ = aPrefix
					_ = aLocal
				}
			}
			nsStack = append(nsStack, scope)

			var elemURI string
			if prefix == "" {
				elemURI, _ = resolve("")
			} else {
				uri, ok := resolve(prefix)
				if !ok {
					return nil, &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("unbound namespace prefix %q", prefix)}
				}
				elemURI = uri
			}

			ref := doc.NewElement(prefix, local, elemURI)
			n := doc.Node(ref)
			stampPos(doc, ref, tok)

			for p, uri := range scope.prefixToURI {
				n.Namespaces = append(n.Namespaces, NamespaceDecl{Prefix: p, URI: uri})
			}

			for _, a := range realAttrs {
				aPrefix, aLocal := splitQName(a.qname)
				aURI := ""
				if aPrefix != "" {
					uri, ok := resolve(aPrefix)
					if !ok {
						return nil, &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("unbound namespace prefix %q on attribute %q", aPrefix, a.qname)}
					}
					aURI = uri
				}
				n.Attrs = append(n.Attrs, Attribute{Prefix: aPrefix, Local: aLocal, NamespURI: aURI, Value: a.value})
			}

			doc.AppendChild(currentParent(), ref)

			if tok.selfClosing {
				nsStack = nsStack[:len(nsStack)-1]
			} else {
				elemStack = append(elemStack, ref)
			}
		}
	}
}

func stampPos(doc *Document, ref NodeRef, tok token) {
	n := doc.Node(ref)
	n.Line, n.Column, n.ByteOffset = tok.line, tok.col, tok.offset
}

// parseXMLDecl extracts version, encoding, and standalone from an <?xml
// ...?> declaration's raw PI data (everything after "xml ").
func parseXMLDecl(data string) (version, encoding, standalone string) {
	attrs := parseDeclAttrs(data)
	return attrs["version"], attrs["encoding"], attrs["standalone"]
}

// parseDeclAttrs tokenizes a run of name="value" (or name='value') pairs
// as they appear in an XML or text declaration.
func parseDeclAttrs(data string) map[string]string {
	attrs := map[string]string{}
	i, n := 0, len(data)
	isSpace := func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

	for i < n {
		for i < n && isSpace(data[i]) {
			i++
		}
		start := i
		for i < n && data[i] != '=' && !isSpace(data[i]) {
			i++
		}
		name := data[start:i]
		for i < n && isSpace(data[i]) {
			i++
		}
		if i >= n || data[i] != '=' {
			break
		}
		i++
		for i < n && isSpace(data[i]) {
			i++
		}
		if i >= n || (data[i] != '"' && data[i] != '\'') {
			break
		}
		quote := data[i]
		i++
		valStart := i
		for i < n && data[i] != quote {
			i++
		}
		if name != "" {
			attrs[name] = data[valStart:i]
		}
		if i < n {
			i++
		}
	}
	return attrs
}
