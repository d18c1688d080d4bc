package xmltoolkit

import "fmt"

// Handler receives streaming parse events, SAX-style, without ever
// materializing a full Document in memory. Any method may be nil; nil
// methods are simply not called.
type Handler struct {
	StartElement    func(qname string, namespURI string, attrs []Attribute) error
	EndElement      func(qname string) error
	Characters      func(text string) error
	CData           func(text string) error
	Comment         func(text string) error
	ProcInst        func(target, data string) error
	XMLDeclaration  func(version, encoding, standalone string) error
}

// ParseSAX scans src and fires handler callbacks as tokens are
// recognised, without building a Document. Namespace resolution is
// applied exactly as in Parse, so StartElement and attribute namespace
// URIs are fully resolved by the time the callback fires.
func ParseSAX(src string, handler Handler) error {
	lx := newLexer(src)

	var elemNames []string
	var nsStack []nsScope
	nsStack = append(nsStack, nsScope{prefixToURI: map[string]string{"xml": "http://www.w3.org/XML/1998/namespace"}})

	resolve := func(prefix string) (string, bool) {
		for i := len(nsStack) - 1; i >= 0; i-- {
			if uri, ok := nsStack[i].prefixToURI[prefix]; ok {
				return uri, true
			}
		}
		return "", false
	}

	for {
		tok, err := lx.next()
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokEOF:
			if len(elemNames) != 0 {
				return &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: "unexpected end of input, unclosed element"}
			}
			return nil

		case tokText:
			if handler.Characters != nil {
				if err := handler.Characters(tok.text); err != nil {
					return err
				}
			}

		case tokCData:
			if handler.CData != nil {
				if err := handler.CData(tok.text); err != nil {
					return err
				}
			}

		case tokComment:
			if handler.Comment != nil {
				if err := handler.Comment(tok.text); err != nil {
					return err
				}
			}

		case tokProcInst:
			if tok.piTarget == "xml" {
				version, encoding, standalone := parseXMLDecl(tok.piData)
				if handler.XMLDeclaration != nil {
					if err := handler.XMLDeclaration(version, encoding, standalone); err != nil {
						return err
					}
				}
				continue
			}
			if handler.ProcInst != nil {
				if err := handler.ProcInst(tok.piTarget, tok.piData); err != nil {
					return err
				}
			}

		case tokEndTag:
			if len(elemNames) == 0 {
				return &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("end tag %q with no matching start tag", tok.qname)}
			}
			top := elemNames[len(elemNames)-1]
			if top != tok.qname {
				return &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("mismatched end tag: expected %q, got %q", top, tok.qname)}
			}
			elemNames = elemNames[:len(elemNames)-1]
			nsStack = nsStack[:len(nsStack)-1]
			if handler.EndElement != nil {
				if err := handler.EndElement(tok.qname); err != nil {
					return err
				}
			}

		case tokStartTag:
			prefix, _ := splitQName(tok.qname)

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
					realAttrs = append(realAttrs, a)
				}
			}
			nsStack = append(nsStack, scope)

			var elemURI string
			if prefix != "" {
				uri, ok := resolve(prefix)
				if !ok {
					return &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("unbound namespace prefix %q", prefix)}
				}
				elemURI = uri
			} else {
				elemURI, _ = resolve("")
			}

			attrs := make([]Attribute, 0, len(realAttrs))
			for _, a := range realAttrs {
				aPrefix, aLocal := splitQName(a.qname)
				aURI := ""
				if aPrefix != "" {
					uri, ok := resolve(aPrefix)
					if !ok {
						return &XMLError{Line: tok.line, Column: tok.col, ByteOffset: tok.offset, Message: fmt.Sprintf("unbound namespace prefix %q on attribute %q", aPrefix, a.qname)}
					}
					aURI = uri
				}
				attrs = append(attrs, Attribute{Prefix: aPrefix, Local: aLocal, NamespURI: aURI, Value: a.value})
			}

			if handler.StartElement != nil {
				if err := handler.StartElement(tok.qname, elemURI, attrs); err != nil {
					return err
				}
			}

			if tok.selfClosing {
				nsStack = nsStack[:len(nsStack)-1]
				if handler.EndElement != nil {
					if err := handler.EndElement(tok.qname); err != nil {
						return err
					}
				}
			} else {
				elemNames = append(elemNames, tok.qname)
			}
		}
	}
}
