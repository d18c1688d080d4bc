// Package xmltoolkit is a zero-dependency XML toolkit: a DOM parser and
// serializer, a streaming SAX-style parser, an XPath 1.0 subset engine
// (see the xpath subpackage), and Exclusive XML Canonicalization (see
// the c14n subpackage).
//
// Nodes live in a Document-owned arena and are referenced by index
// rather than by pointer cycles, so a Document (and everything in it)
// can be garbage collected as a single unit and cloned cheaply.
package xmltoolkit

import "fmt"

// Kind tags the variant of a Node, in place of a class hierarchy.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindComment
	KindProcInst
	KindCData
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "Document"
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindProcInst:
		return "ProcInst"
	case KindCData:
		return "CData"
	default:
		return "Unknown"
	}
}

// NodeRef is an index into a Document's node arena. Index 0 is the
// implicit document node; NilRef refers to no node.
type NodeRef int

const NilRef NodeRef = -1

// Attribute is a single attribute on an element, with its namespace URI
// already resolved (empty if the attribute is unprefixed or in no
// namespace).
type Attribute struct {
	Prefix    string
	Local     string
	NamespURI string
	Value     string
}

// QName returns the attribute's qualified name as written (prefix:local
// or just local).
func (a Attribute) QName() string {
	if a.Prefix == "" {
		return a.Local
	}
	return a.Prefix + ":" + a.Local
}

// NamespaceDecl is an xmlns or xmlns:prefix declaration carried by an
// element.
type NamespaceDecl struct {
	Prefix string // "" for the default namespace
	URI    string
}

// Node is a single DOM node. Which fields are meaningful depends on
// Kind:
//   - KindElement: Prefix, Local, NamespURI, Attrs, Namespaces, Children
//   - KindText: Text
//   - KindCData: Text (the CDATA section's literal content)
//   - KindComment: Text
//   - KindProcInst: Target, Text (instruction data)
//   - KindDocument: Children (root-level nodes, at most one Element)
type Node struct {
	Kind Kind

	Prefix    string
	Local     string
	NamespURI string

	Attrs      []Attribute
	Namespaces []NamespaceDecl

	Target string
	Text   string

	Parent   NodeRef
	Children []NodeRef

	// Line, Column, and ByteOffset record where this node began in the
	// source, for error reporting; zero if synthesized programmatically.
	Line, Column, ByteOffset int
}

// QName returns the node's qualified name as written (prefix:local or
// just local). Only meaningful for KindElement.
func (n *Node) QName() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// Attr looks up an attribute by local name and namespace URI (use "" for
// no namespace / unprefixed).
func (n *Node) Attr(namespURI, local string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Local == local && a.NamespURI == namespURI {
			return a.Value, true
		}
	}
	return "", false
}

// Document owns the node arena for a parsed or constructed XML tree.
type Document struct {
	nodes []Node
	root  NodeRef // the single top-level Element, or NilRef

	// HasXMLDecl reports whether the source carried a leading <?xml ...?>
	// declaration. XMLVersion, Encoding, and Standalone are only
	// meaningful when it's true; Standalone is "yes", "no", or ""
	// (attribute omitted).
	HasXMLDecl bool
	XMLVersion string
	Encoding   string
	Standalone string
}

// NewDocument returns an empty document with just the implicit document
// node (index 0).
func NewDocument() *Document {
	d := &Document{root: NilRef}
	d.nodes = append(d.nodes, Node{Kind: KindDocument, Parent: NilRef, Line: 1, Column: 1})
	return d
}

// DocumentNode returns the ref of the implicit top-level document node.
func (d *Document) DocumentNode() NodeRef { return 0 }

// Root returns the document's single root Element, or NilRef if none has
// been set yet.
func (d *Document) Root() NodeRef { return d.root }

// Node returns a pointer into the arena for ref. Panics if ref is out of
// range, matching the stdlib convention of panicking on programmer error
// rather than a recoverable condition.
func (d *Document) Node(ref NodeRef) *Node {
	if ref < 0 || int(ref) >= len(d.nodes) {
		panic(fmt.Sprintf("xmltoolkit: node ref %d out of range (len=%d)", ref, len(d.nodes)))
	}
	return &d.nodes[ref]
}

// NewElement appends a new, unattached element node to the arena and
// returns its ref. Use AppendChild to attach it under a parent.
func (d *Document) NewElement(prefix, local, namespURI string) NodeRef {
	ref := NodeRef(len(d.nodes))
	d.nodes = append(d.nodes, Node{
		Kind:      KindElement,
		Prefix:    prefix,
		Local:     local,
		NamespURI: namespURI,
		Parent:    NilRef,
	})
	return ref
}

// NewText appends a new text node and returns its ref.
func (d *Document) NewText(text string) NodeRef {
	ref := NodeRef(len(d.nodes))
	d.nodes = append(d.nodes, Node{Kind: KindText, Text: text, Parent: NilRef})
	return ref
}

// NewComment appends a new comment node and returns its ref.
func (d *Document) NewComment(text string) NodeRef {
	ref := NodeRef(len(d.nodes))
	d.nodes = append(d.nodes, Node{Kind: KindComment, Text: text, Parent: NilRef})
	return ref
}

// NewCData appends a new CDATA section node and returns its ref.
func (d *Document) NewCData(text string) NodeRef {
	ref := NodeRef(len(d.nodes))
	d.nodes = append(d.nodes, Node{Kind: KindCData, Text: text, Parent: NilRef})
	return ref
}

// NewProcInst appends a new processing-instruction node and returns its ref.
func (d *Document) NewProcInst(target, data string) NodeRef {
	ref := NodeRef(len(d.nodes))
	d.nodes = append(d.nodes, Node{Kind: KindProcInst, Target: target, Text: data, Parent: NilRef})
	return ref
}

// AppendChild attaches child under parent, updating both nodes'
// bookkeeping. If parent is the document node and child is a
// KindElement, it also becomes the document root (only one is allowed;
// AppendChild panics if a root already exists).
func (d *Document) AppendChild(parent, child NodeRef) {
	p := d.Node(parent)
	c := d.Node(child)
	if c.Parent != NilRef {
		panic("xmltoolkit: node already has a parent")
	}
	if parent == d.DocumentNode() && c.Kind == KindElement {
		if d.root != NilRef {
			panic("xmltoolkit: document already has a root element")
		}
		d.root = child
	}
	p.Children = append(p.Children, child)
	c.Parent = parent
}

// RemoveChild detaches child from its parent's children list. It is a
// no-op if child has no parent or isn't found among the parent's
// children.
func (d *Document) RemoveChild(child NodeRef) {
	c := d.Node(child)
	if c.Parent == NilRef {
		return
	}
	p := d.Node(c.Parent)
	for i, ref := range p.Children {
		if ref == child {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	if child == d.root {
		d.root = NilRef
	}
	c.Parent = NilRef
}

// SetAttr sets (or replaces) an attribute on an element node.
func (d *Document) SetAttr(ref NodeRef, prefix, local, namespURI, value string) {
	n := d.Node(ref)
	for i := range n.Attrs {
		if n.Attrs[i].Local == local && n.Attrs[i].NamespURI == namespURI {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attribute{Prefix: prefix, Local: local, NamespURI: namespURI, Value: value})
}

// RemoveAttr removes an attribute by local name and namespace URI.
func (d *Document) RemoveAttr(ref NodeRef, namespURI, local string) {
	n := d.Node(ref)
	for i := range n.Attrs {
		if n.Attrs[i].Local == local && n.Attrs[i].NamespURI == namespURI {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// Clone returns a deep copy of the document, with all node refs
// preserved (the arena is copied slice-for-slice).
func (d *Document) Clone() *Document {
	clone := &Document{
		nodes:      make([]Node, len(d.nodes)),
		root:       d.root,
		HasXMLDecl: d.HasXMLDecl,
		XMLVersion: d.XMLVersion,
		Encoding:   d.Encoding,
		Standalone: d.Standalone,
	}
	for i, n := range d.nodes {
		nc := n
		nc.Attrs = append([]Attribute(nil), n.Attrs...)
		nc.Namespaces = append([]NamespaceDecl(nil), n.Namespaces...)
		nc.Children = append([]NodeRef(nil), n.Children...)
		clone.nodes[i] = nc
	}
	return clone
}

// Walk visits start and every descendant in document order, calling
// visit(ref) for each. Traversal stops early if visit returns false.
func (d *Document) Walk(start NodeRef, visit func(NodeRef) bool) {
	if !visit(start) {
		return
	}
	for _, child := range d.Node(start).Children {
		d.Walk(child, visit)
	}
}
