package xmltoolkit

import "strings"

// SerializeOptions configures tree-to-text output. The zero value emits
// a leading XML declaration (when the document carries an XMLVersion)
// and self-closes empty elements, matching this toolkit's defaults.
type SerializeOptions struct {
	// Indent, if non-empty, is repeated once per depth level to
	// pretty-print output; an empty string disables indentation (output
	// is written with no added whitespace, byte for byte what the tree
	// describes).
	Indent string
	// Newline is written between pretty-printed lines; it defaults to
	// "\n" when empty. Ignored when Indent is empty.
	Newline string
	// OmitDeclaration skips the leading <?xml ...?> declaration that
	// Serialize would otherwise emit from the Document's
	// XMLVersion/Encoding/Standalone fields. A document with no
	// XMLVersion (one built programmatically rather than parsed) never
	// gets a declaration, regardless of this option.
	OmitDeclaration bool
	// NoSelfClose writes empty elements as <x></x> instead of the
	// default <x/>.
	NoSelfClose bool
}

// Serialize renders the subtree rooted at ref back to XML text.
func Serialize(doc *Document, ref NodeRef, opts SerializeOptions) string {
	newline := opts.Newline
	if newline == "" {
		newline = "\n"
	}

	var b strings.Builder
	// Per this toolkit's declaration semantics, a declaration is only
	// emitted when the document actually carries version information
	// (normally because it was parsed from one); a document built
	// programmatically with no XMLVersion set gets no synthesized
	// declaration even though OmitDeclaration defaults to false.
	if !opts.OmitDeclaration && doc.XMLVersion != "" {
		b.WriteString(`<?xml version="`)
		b.WriteString(doc.XMLVersion)
		b.WriteByte('"')
		if doc.Encoding != "" {
			b.WriteString(` encoding="`)
			b.WriteString(doc.Encoding)
			b.WriteByte('"')
		}
		if doc.Standalone != "" {
			b.WriteString(` standalone="`)
			b.WriteString(doc.Standalone)
			b.WriteByte('"')
		}
		b.WriteString(`?>`)
		if opts.Indent != "" {
			b.WriteString(newline)
		}
	}
	serializeNode(&b, doc, ref, opts, 0, newline)
	return b.String()
}

func serializeNode(b *strings.Builder, doc *Document, ref NodeRef, opts SerializeOptions, depth int, newline string) {
	n := doc.Node(ref)
	switch n.Kind {
	case KindDocument:
		for i, child := range n.Children {
			if i > 0 && opts.Indent != "" {
				b.WriteString(newline)
			}
			serializeNode(b, doc, child, opts, depth, newline)
		}

	case KindText:
		b.WriteString(escapeText(n.Text))

	case KindCData:
		b.WriteString("<![CDATA[")
		b.WriteString(n.Text)
		b.WriteString("]]>")

	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")

	case KindProcInst:
		b.WriteString("<?")
		b.WriteString(n.Target)
		if n.Text != "" {
			b.WriteByte(' ')
			b.WriteString(n.Text)
		}
		b.WriteString("?>")

	case KindElement:
		// The caller has already written this element's leading indent.
		indent := strings.Repeat(opts.Indent, depth)
		b.WriteByte('<')
		b.WriteString(n.QName())
		for _, ns := range n.Namespaces {
			b.WriteByte(' ')
			if ns.Prefix == "" {
				b.WriteString("xmlns")
			} else {
				b.WriteString("xmlns:")
				b.WriteString(ns.Prefix)
			}
			b.WriteString(`="`)
			b.WriteString(escapeAttr(ns.URI))
			b.WriteByte('"')
		}
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.QName())
			b.WriteString(`="`)
			b.WriteString(escapeAttr(a.Value))
			b.WriteByte('"')
		}
		if len(n.Children) == 0 {
			if opts.NoSelfClose {
				b.WriteString("></")
				b.WriteString(n.QName())
				b.WriteByte('>')
			} else {
				b.WriteString("/>")
			}
			return
		}
		b.WriteByte('>')
		multiline := opts.Indent != "" && hasElementChild(doc, n)
		for _, child := range n.Children {
			if multiline {
				b.WriteString(newline)
				b.WriteString(strings.Repeat(opts.Indent, depth+1))
				serializeNode(b, doc, child, opts, depth+1, newline)
			} else {
				serializeNode(b, doc, child, opts, 0, newline)
			}
		}
		if multiline {
			b.WriteString(newline)
			b.WriteString(indent)
		}
		b.WriteString("</")
		b.WriteString(n.QName())
		b.WriteByte('>')
	}
}

func hasElementChild(doc *Document, n *Node) bool {
	for _, c := range n.Children {
		if doc.Node(c).Kind == KindElement {
			return true
		}
	}
	return false
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", `"`, "&quot;", "\t", "&#9;", "\n", "&#10;", "\r", "&#13;")
	return r.Replace(s)
}
