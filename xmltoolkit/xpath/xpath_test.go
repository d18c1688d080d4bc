package xpath

import (
	"testing"

	"github.com/F-O-T/libraries-sub003/xmltoolkit"
)

func mustParse(t *testing.T, src string) *xmltoolkit.Document {
	t.Helper()
	doc, err := xmltoolkit.Parse(src, xmltoolkit.ParseOptions{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestChildAndDescendantAxes(t *testing.T) {
	doc := mustParse(t, `<root><a><b/></a><a><b/></a></root>`)

	childExpr, err := Compile("/root/a")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	matches, err := childExpr.Evaluate(doc, Context{}, doc.DocumentNode())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 <a> matches, got %d", len(matches))
	}

	descExpr, err := Compile("//b")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	matches, err = descExpr.Evaluate(doc, Context{}, doc.DocumentNode())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 <b> descendant matches, got %d", len(matches))
	}
}

func TestAttributeAxisAndNamespaceContext(t *testing.T) {
	doc := mustParse(t, `<root xmlns:ns="urn:example"><ns:item ns:id="7"/></root>`)

	expr, err := Compile("/root/ns:item/@ns:id")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	texts, err := expr.Texts(doc, Context{Namespaces: map[string]string{"ns": "urn:example"}}, doc.DocumentNode())
	if err != nil {
		t.Fatalf("Texts: %v", err)
	}
	if len(texts) != 1 || texts[0] != "7" {
		t.Fatalf("expected [\"7\"], got %v", texts)
	}

	// Without the namespace binding in the Context, the prefix can't be
	// resolved and the step matches nothing.
	empty, err := expr.Evaluate(doc, Context{}, doc.DocumentNode())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no matches without namespace binding, got %d", len(empty))
	}
}

func TestPositionPredicate(t *testing.T) {
	doc := mustParse(t, `<root><item>first</item><item>second</item><item>third</item></root>`)
	expr, err := Compile("/root/item[2]/text()")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	texts, err := expr.Texts(doc, Context{}, doc.DocumentNode())
	if err != nil {
		t.Fatalf("Texts: %v", err)
	}
	if len(texts) != 1 || texts[0] != "second" {
		t.Fatalf("expected [\"second\"], got %v", texts)
	}
}

func TestAttributeEqualsPredicate(t *testing.T) {
	doc := mustParse(t, `<root><item id="a">1</item><item id="b">2</item></root>`)
	expr, err := Compile(`/root/item[@id='b']/text()`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	texts, err := expr.Texts(doc, Context{}, doc.DocumentNode())
	if err != nil {
		t.Fatalf("Texts: %v", err)
	}
	if len(texts) != 1 || texts[0] != "2" {
		t.Fatalf("expected [\"2\"], got %v", texts)
	}
}

func TestFirstReturnsFalseOnNoMatch(t *testing.T) {
	doc := mustParse(t, `<root/>`)
	expr, err := Compile("/root/missing")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	_, ok, err := expr.First(doc, Context{}, doc.DocumentNode())
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if ok {
		t.Fatal("expected no match")
	}
}

func TestCompileRejectsEmptyExpression(t *testing.T) {
	if _, err := Compile(""); err == nil {
		t.Fatal("expected error for empty expression")
	}
}
