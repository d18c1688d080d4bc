// Package c14n implements W3C Exclusive XML Canonicalization (Exclusive
// C14N, https://www.w3.org/TR/xml-exc-c14n/) over an xmltoolkit.Document.
//
// The core algorithm — tracking which namespace declarations are
// "visibly utilized" at each scope via a pair of stacks, one for
// declared names and one for already-rendered names — is adapted from
// how canonicalizers built on Go's encoding/xml stream tokens (see
// DESIGN.md); here it walks a Document tree instead of a raw token
// stream, since this toolkit's parser is not built on encoding/xml.
package c14n

import (
	"sort"
	"strings"

	"github.com/F-O-T/libraries-sub003/xmltoolkit"
)

// Options configures canonicalization. The zero value selects Exclusive
// C14N, this package's namesake mode.
type Options struct {
	// Inclusive switches to plain (non-exclusive) Canonical XML, where
	// every element emits every ancestor namespace declaration currently
	// in scope rather than only those it visibly utilizes.
	Inclusive bool
	// WithComments includes comment nodes in the output; by default they
	// are dropped.
	WithComments bool
	// InclusiveNamespacePrefixes lists prefixes that should always be
	// rendered on the root element regardless of visible utilization,
	// per the Exclusive C14N InclusiveNamespaces PrefixList feature. Only
	// meaningful when Inclusive is false.
	InclusiveNamespacePrefixes []string
}

type nsMap map[string]string

type nsStack []nsMap

func (s *nsStack) push(m nsMap) { *s = append(*s, m) }
func (s *nsStack) pop()         { *s = (*s)[:len(*s)-1] }

// get searches innermost-first, returning the first binding found.
func (s nsStack) get(name string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if uri, ok := s[i][name]; ok {
			return uri, true
		}
	}
	return "", false
}

// all merges every scope into one map, innermost winning.
func (s nsStack) all() nsMap {
	out := nsMap{}
	for _, m := range s {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// Canonicalize renders the subtree rooted at ref (normally an element)
// in canonical form.
func Canonicalize(doc *xmltoolkit.Document, ref xmltoolkit.NodeRef, opts Options) ([]byte, error) {
	var b strings.Builder
	var known nsStack
	var rendered nsStack
	known.push(nsMap{"xml": "http://www.w3.org/XML/1998/namespace"})
	rendered.push(nsMap{})

	inclusive := map[string]bool{}
	for _, p := range opts.InclusiveNamespacePrefixes {
		inclusive[p] = true
	}

	var walk func(n xmltoolkit.NodeRef, isRoot bool)
	walk = func(n xmltoolkit.NodeRef, isRoot bool) {
		node := doc.Node(n)
		switch node.Kind {
		case xmltoolkit.KindText, xmltoolkit.KindCData:
			// C14N has no CDATA section in its output: a CDATA section's
			// content is normalized into ordinary escaped character data.
			b.WriteString(escapeText(node.Text))

		case xmltoolkit.KindComment:
			if opts.WithComments {
				b.WriteString("<!--")
				b.WriteString(node.Text)
				b.WriteString("-->")
			}

		case xmltoolkit.KindProcInst:
			if node.Target == "xml" {
				return
			}
			b.WriteString("<?")
			b.WriteString(node.Target)
			if node.Text != "" {
				b.WriteByte(' ')
				b.WriteString(node.Text)
			}
			b.WriteString("?>")

		case xmltoolkit.KindElement:
			declared := nsMap{}
			visiblyUsed := map[string]bool{nsKeyFor(node.Prefix): true}
			for _, ns := range node.Namespaces {
				declared[ns.Prefix] = ns.URI
			}
			for _, a := range node.Attrs {
				if a.Prefix != "" {
					visiblyUsed[a.Prefix] = true
				}
			}
			if isRoot {
				for p := range inclusive {
					visiblyUsed[p] = true
				}
			}

			previousDefault, _ := known.get("")
			known.push(declared)

			// Plain (non-exclusive) Canonical XML renders every ancestor
			// declaration in scope regardless of visible utilization;
			// Exclusive C14N additionally gates on it.
			toRender := map[string]bool{}
			for name, uri := range known.all() {
				if name == "" && uri == "" {
					_, wasVisiblyUsed := visiblyUsed[""]
					declaredValue, wasDeclared := declared[""]
					_, wasRendered := rendered.get("")
					if (opts.Inclusive || wasVisiblyUsed) && (!wasDeclared || declaredValue != previousDefault) && wasRendered {
						toRender[""] = true
					}
					continue
				}
				_, wasVisiblyUsed := visiblyUsed[name]
				renderedValue, wasRendered := rendered.get(name)
				if (opts.Inclusive || wasVisiblyUsed) && (!wasRendered || renderedValue != uri) {
					toRender[name] = true
				}
			}

			type nsAttr struct{ prefix, uri string }
			var nsAttrs []nsAttr
			newlyRendered := nsMap{}
			for name := range toRender {
				uri, _ := known.get(name)
				newlyRendered[name] = uri
				nsAttrs = append(nsAttrs, nsAttr{prefix: name, uri: uri})
			}
			rendered.push(newlyRendered)

			sort.Slice(nsAttrs, func(i, j int) bool { return nsAttrs[i].prefix < nsAttrs[j].prefix })

			attrs := append([]xmltoolkit.Attribute(nil), node.Attrs...)
			sort.Slice(attrs, func(i, j int) bool {
				if attrs[i].NamespURI != attrs[j].NamespURI {
					return attrs[i].NamespURI < attrs[j].NamespURI
				}
				return attrs[i].Local < attrs[j].Local
			})

			b.WriteByte('<')
			b.WriteString(node.QName())
			for _, ns := range nsAttrs {
				b.WriteByte(' ')
				if ns.prefix == "" {
					b.WriteString("xmlns")
				} else {
					b.WriteString("xmlns:")
					b.WriteString(ns.prefix)
				}
				b.WriteString(`="`)
				b.WriteString(escapeAttr(ns.uri))
				b.WriteByte('"')
			}
			for _, a := range attrs {
				b.WriteByte(' ')
				b.WriteString(a.QName())
				b.WriteString(`="`)
				b.WriteString(escapeAttr(a.Value))
				b.WriteByte('"')
			}
			b.WriteByte('>')

			for _, child := range node.Children {
				walk(child, false)
			}

			b.WriteString("</")
			b.WriteString(node.QName())
			b.WriteByte('>')

			known.pop()
			rendered.pop()
		}
	}

	walk(ref, true)
	return []byte(b.String()), nil
}

func nsKeyFor(prefix string) string { return prefix }

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\r", "&#xD;")
	return r.Replace(s)
}

func escapeAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		`"`, "&quot;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	)
	return r.Replace(s)
}
