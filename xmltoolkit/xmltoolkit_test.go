package xmltoolkit

import (
	"strings"
	"testing"
)

func TestParseSimpleElement(t *testing.T) {
	doc, err := Parse(`<root a="1" b="2">hello</root>`, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Node(doc.Root())
	if root.Local != "root" {
		t.Fatalf("expected local name root, got %s", root.Local)
	}
	if v, ok := root.Attr("", "a"); !ok || v != "1" {
		t.Fatalf("expected attr a=1, got %q ok=%v", v, ok)
	}
	if len(root.Children) != 1 || doc.Node(root.Children[0]).Kind != KindText {
		t.Fatalf("expected single text child")
	}
	if doc.Node(root.Children[0]).Text != "hello" {
		t.Fatalf("unexpected text: %q", doc.Node(root.Children[0]).Text)
	}
}

func TestParseNamespaceResolution(t *testing.T) {
	// Default namespace applies to root and unprefixed children; a
	// prefixed child resolves against its own binding.
	src := `<root xmlns="urn:default" xmlns:x="urn:x"><child/><x:other/></root>`
	doc, err := Parse(src, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Node(doc.Root())
	if root.NamespURI != "urn:default" {
		t.Fatalf("expected root in urn:default, got %q", root.NamespURI)
	}
	child := doc.Node(root.Children[0])
	if child.NamespURI != "urn:default" {
		t.Fatalf("expected child to inherit default namespace, got %q", child.NamespURI)
	}
	other := doc.Node(root.Children[1])
	if other.NamespURI != "urn:x" {
		t.Fatalf("expected other in urn:x, got %q", other.NamespURI)
	}
}

func TestParseUnboundPrefixErrors(t *testing.T) {
	_, err := Parse(`<x:root/>`, ParseOptions{})
	if err == nil {
		t.Fatal("expected error for unbound prefix")
	}
}

func TestParseMismatchedEndTag(t *testing.T) {
	_, err := Parse(`<a><b></a></b>`, ParseOptions{})
	if err == nil {
		t.Fatal("expected error for mismatched end tag")
	}
}

func TestParseSelfClosingAndEntities(t *testing.T) {
	doc, err := Parse(`<root><br/><note>A &amp; B &lt; C</note></root>`, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Node(doc.Root())
	br := doc.Node(root.Children[0])
	if br.Local != "br" || len(br.Children) != 0 {
		t.Fatalf("expected empty br element")
	}
	note := doc.Node(root.Children[1])
	text := doc.Node(note.Children[0])
	if text.Text != "A & B < C" {
		t.Fatalf("expected decoded entities, got %q", text.Text)
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	src := `<root a="1"><child>text</child></root>`
	doc, err := Parse(src, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Serialize(doc, doc.Root(), SerializeOptions{})

	doc2, err := Parse(out, ParseOptions{})
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	out2 := Serialize(doc2, doc2.Root(), SerializeOptions{})
	if out != out2 {
		t.Fatalf("serialize(parse(serialize(x))) != serialize(x):\n%q\n%q", out, out2)
	}
}

func TestSAXMirrorsDOMEvents(t *testing.T) {
	src := `<root><a x="1">hi</a><b/></root>`
	doc, err := Parse(src, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var saxStarts []string
	var saxEnds []string
	var saxText []string
	err = ParseSAX(src, Handler{
		StartElement: func(qname, uri string, attrs []Attribute) error {
			saxStarts = append(saxStarts, qname)
			return nil
		},
		EndElement: func(qname string) error {
			saxEnds = append(saxEnds, qname)
			return nil
		},
		Characters: func(text string) error {
			if strings.TrimSpace(text) != "" {
				saxText = append(saxText, text)
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("ParseSAX: %v", err)
	}

	var domStarts []string
	doc.Walk(doc.Root(), func(r NodeRef) bool {
		if doc.Node(r).Kind == KindElement {
			domStarts = append(domStarts, doc.Node(r).QName())
		}
		return true
	})

	if len(saxStarts) != len(domStarts) {
		t.Fatalf("SAX start count %d != DOM element count %d", len(saxStarts), len(domStarts))
	}
	if len(saxEnds) != len(saxStarts) {
		t.Fatalf("every start should have a matching end: %d starts, %d ends", len(saxStarts), len(saxEnds))
	}
	if len(saxText) != 1 || saxText[0] != "hi" {
		t.Fatalf("expected single text event 'hi', got %v", saxText)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	doc, err := Parse(`<root a="1"/>`, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	clone := doc.Clone()
	clone.SetAttr(clone.Root(), "", "a", "", "2")
	if v, _ := doc.Node(doc.Root()).Attr("", "a"); v != "1" {
		t.Fatalf("mutating clone affected original: %s", v)
	}
	if v, _ := clone.Node(clone.Root()).Attr("", "a"); v != "2" {
		t.Fatalf("expected clone attr to be 2, got %s", v)
	}
}

func TestParseKeepsCDataAsDistinctNode(t *testing.T) {
	doc, err := Parse(`<root><![CDATA[a < b & c]]></root>`, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Node(doc.Root())
	if len(root.Children) != 1 {
		t.Fatalf("expected single CDATA child, got %d children", len(root.Children))
	}
	cdata := doc.Node(root.Children[0])
	if cdata.Kind != KindCData {
		t.Fatalf("expected KindCData, got %v", cdata.Kind)
	}
	if cdata.Text != "a < b & c" {
		t.Fatalf("unexpected CDATA text: %q", cdata.Text)
	}
}

func TestParseFoldCDataMergesIntoAdjacentText(t *testing.T) {
	doc, err := Parse(`<root>before <![CDATA[middle]]> after</root>`, ParseOptions{FoldCData: true})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Node(doc.Root())
	if len(root.Children) != 1 {
		t.Fatalf("expected CDATA folded into a single text node, got %d children", len(root.Children))
	}
	text := doc.Node(root.Children[0])
	if text.Kind != KindText {
		t.Fatalf("expected KindText, got %v", text.Kind)
	}
	if text.Text != "before middle after" {
		t.Fatalf("unexpected folded text: %q", text.Text)
	}
}

func TestParseOptionsZeroValueKeepsCommentsAndPIsDropsWhitespace(t *testing.T) {
	src := "<root>\n  <!--c--><?pi d?>\n  <a/>\n</root>"
	doc, err := Parse(src, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var kinds []Kind
	for _, ref := range doc.Node(doc.Root()).Children {
		kinds = append(kinds, doc.Node(ref).Kind)
	}
	want := []Kind{KindComment, KindProcInst, KindElement}
	if len(kinds) != len(want) {
		t.Fatalf("expected %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, kinds)
		}
	}
}

func TestParseXMLDeclarationPopulatesDocumentFields(t *testing.T) {
	src := `<?xml version="1.1" encoding="ISO-8859-1" standalone="no"?><root/>`
	doc, err := Parse(src, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !doc.HasXMLDecl {
		t.Fatal("expected HasXMLDecl true")
	}
	if doc.XMLVersion != "1.1" || doc.Encoding != "ISO-8859-1" || doc.Standalone != "no" {
		t.Fatalf("unexpected decl fields: version=%q encoding=%q standalone=%q", doc.XMLVersion, doc.Encoding, doc.Standalone)
	}
	if len(doc.Node(doc.DocumentNode()).Children) != 1 {
		t.Fatalf("declaration must not become a ProcInst child")
	}
}

func TestSerializeRoundTripsDeclarationFields(t *testing.T) {
	src := `<?xml version="1.1" encoding="ISO-8859-1" standalone="yes"?><root/>`
	doc, err := Parse(src, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Serialize(doc, doc.Root(), SerializeOptions{})
	want := `<?xml version="1.1" encoding="ISO-8859-1" standalone="yes"?><root/>`
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestSerializeOmitsDeclarationWhenDocumentHasNone(t *testing.T) {
	doc, err := Parse(`<root/>`, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := Serialize(doc, doc.Root(), SerializeOptions{})
	if out != `<root/>` {
		t.Fatalf("expected no synthesized declaration, got %q", out)
	}
}

func TestSerializeNoSelfCloseAndCData(t *testing.T) {
	doc := NewDocument()
	root := doc.NewElement("", "root", "")
	doc.AppendChild(doc.DocumentNode(), root)
	cdata := doc.NewCData("a<b")
	doc.AppendChild(root, cdata)

	out := Serialize(doc, doc.Root(), SerializeOptions{OmitDeclaration: true, NoSelfClose: true})
	if out != `<root><![CDATA[a<b]]></root>` {
		t.Fatalf("unexpected output: %q", out)
	}

	empty := NewDocument()
	emptyRoot := empty.NewElement("", "empty", "")
	empty.AppendChild(empty.DocumentNode(), emptyRoot)
	outEmpty := Serialize(empty, empty.Root(), SerializeOptions{OmitDeclaration: true, NoSelfClose: true})
	if outEmpty != `<empty></empty>` {
		t.Fatalf("expected non-self-closing empty element, got %q", outEmpty)
	}
}

func TestSAXEmitsCDataAndXMLDeclaration(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-8" standalone="no"?><root><![CDATA[raw]]></root>`
	var cdata []string
	var declVersion, declEncoding, declStandalone string
	err := ParseSAX(src, Handler{
		CData: func(text string) error {
			cdata = append(cdata, text)
			return nil
		},
		XMLDeclaration: func(version, encoding, standalone string) error {
			declVersion, declEncoding, declStandalone = version, encoding, standalone
			return nil
		},
	})
	if err != nil {
		t.Fatalf("ParseSAX: %v", err)
	}
	if len(cdata) != 1 || cdata[0] != "raw" {
		t.Fatalf("expected one CData event with 'raw', got %v", cdata)
	}
	if declVersion != "1.0" || declEncoding != "UTF-8" || declStandalone != "no" {
		t.Fatalf("unexpected declaration event: %q %q %q", declVersion, declEncoding, declStandalone)
	}
}

func TestRemoveChildDetaches(t *testing.T) {
	doc, err := Parse(`<root><a/><b/></root>`, ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	root := doc.Root()
	firstChild := doc.Node(root).Children[0]
	doc.RemoveChild(firstChild)
	if len(doc.Node(root).Children) != 1 {
		t.Fatalf("expected 1 remaining child, got %d", len(doc.Node(root).Children))
	}
	if doc.Node(firstChild).Parent != NilRef {
		t.Fatalf("expected detached node to have no parent")
	}
}
