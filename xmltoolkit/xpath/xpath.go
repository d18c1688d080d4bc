// Package xpath implements a subset of XPath 1.0 location paths over an
// xmltoolkit.Document: child and descendant axes, the wildcard and
// named node tests, the attribute axis, the text() node test, and
// predicates that are either a 1-based position or an
// attribute-equality test.
//
// Full XPath 1.0 (node-set functions, arithmetic, unions) and later
// versions are out of scope; see xmltoolkit's package docs.
package xpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/F-O-T/libraries-sub003/xmltoolkit"
)

// ErrInvalidExpression is returned by Compile for a malformed path.
var ErrInvalidExpression = errors.New("xpath: invalid expression")

// Context supplies the prefix-to-namespace-URI bindings used to resolve
// prefixed node tests in the expression (independent of whatever
// bindings were in scope at parse time in the source document).
type Context struct {
	Namespaces map[string]string
}

// resolve looks up prefix against the context's bindings. An empty
// prefix resolves only if the caller bound a default namespace
// explicitly (Namespaces[""]); otherwise ok is false, signalling
// callers that no default namespace is in play for this context.
func (c Context) resolve(prefix string) (string, bool) {
	if prefix == "" {
		uri, ok := c.Namespaces[""]
		return uri, ok
	}
	uri, ok := c.Namespaces[prefix]
	return uri, ok
}

type axis int

const (
	axisChild axis = iota
	axisDescendantOrSelf
	axisAttribute
)

type predicateKind int

const (
	predNone predicateKind = iota
	predPosition
	predAttrEquals
)

type step struct {
	axis     axis
	wildcard bool
	textTest bool
	prefix   string
	local    string

	predKind  predicateKind
	predPos   int
	predAttr  string
	predValue string
}

// Expr is a compiled location path.
type Expr struct {
	absolute bool
	steps    []step
}

// Compile parses an XPath location path such as "/root/ns:child[2]" or
// "//item[@id='7']/text()".
func Compile(expr string) (*Expr, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	e := &Expr{}
	rest := trimmed
	if strings.HasPrefix(rest, "/") {
		e.absolute = true
		rest = rest[1:]
	}

	for _, raw := range splitSteps(rest) {
		if raw.text == "" {
			return nil, fmt.Errorf("%w: empty step in %q", ErrInvalidExpression, expr)
		}
		st, err := compileStep(raw.text, raw.descendant)
		if err != nil {
			return nil, err
		}
		e.steps = append(e.steps, st)
	}
	return e, nil
}

type rawStep struct {
	text       string
	descendant bool
}

// splitSteps splits on '/', treating a doubled slash as marking the
// following step as reachable via the descendant-or-self axis.
func splitSteps(expr string) []rawStep {
	segments := strings.Split(expr, "/")
	var out []rawStep
	descendant := false
	for _, seg := range segments {
		if seg == "" {
			descendant = true
			continue
		}
		out = append(out, rawStep{text: seg, descendant: descendant})
		descendant = false
	}
	return out
}

func compileStep(text string, descendant bool) (step, error) {
	st := step{axis: axisChild}
	if descendant {
		st.axis = axisDescendantOrSelf
	}

	body := text
	predStart := strings.IndexByte(body, '[')
	if predStart >= 0 {
		if !strings.HasSuffix(body, "]") {
			return step{}, fmt.Errorf("%w: unterminated predicate in %q", ErrInvalidExpression, text)
		}
		predText := body[predStart+1 : len(body)-1]
		if err := applyPredicate(&st, predText); err != nil {
			return step{}, err
		}
		body = body[:predStart]
	}

	switch {
	case body == "text()":
		st.textTest = true
	case body == "*":
		st.wildcard = true
	case strings.HasPrefix(body, "@"):
		st.axis = axisAttribute
		name := body[1:]
		if name == "*" {
			st.wildcard = true
		} else {
			st.prefix, st.local = splitQName(name)
		}
	default:
		st.prefix, st.local = splitQName(body)
		if st.local == "" {
			return step{}, fmt.Errorf("%w: empty node test in %q", ErrInvalidExpression, text)
		}
	}
	return st, nil
}

func applyPredicate(st *step, predText string) error {
	predText = strings.TrimSpace(predText)
	if pos, err := strconv.Atoi(predText); err == nil {
		st.predKind = predPosition
		st.predPos = pos
		return nil
	}
	if strings.HasPrefix(predText, "@") {
		eq := strings.Index(predText, "=")
		if eq < 0 {
			return fmt.Errorf("%w: malformed predicate %q", ErrInvalidExpression, predText)
		}
		attrName := strings.TrimSpace(predText[1:eq])
		value := strings.TrimSpace(predText[eq+1:])
		value = strings.Trim(value, `'"`)
		st.predKind = predAttrEquals
		st.predAttr = attrName
		st.predValue = value
		return nil
	}
	return fmt.Errorf("%w: unsupported predicate %q", ErrInvalidExpression, predText)
}

func splitQName(qname string) (prefix, local string) {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return qname[:i], qname[i+1:]
	}
	return "", qname
}

// result is either an element/text/comment/pi node, or a synthetic
// attribute hit identified by its owner element and attribute index.
type result struct {
	node    xmltoolkit.NodeRef
	isAttr  bool
	attrIdx int
}

// Evaluate runs the compiled path starting at start (typically
// doc.DocumentNode() for an absolute path, or any element for a
// relative one) and returns the matching element/text/comment/pi node
// refs. Attribute-axis results cannot be represented as a NodeRef and
// are reported only through their string value via Evaluate's sibling,
// Texts.
func (e *Expr) Evaluate(doc *xmltoolkit.Document, ctx Context, start xmltoolkit.NodeRef) ([]xmltoolkit.NodeRef, error) {
	results, err := e.run(doc, ctx, start)
	if err != nil {
		return nil, err
	}
	var out []xmltoolkit.NodeRef
	for _, r := range results {
		if !r.isAttr {
			out = append(out, r.node)
		}
	}
	return out, nil
}

// First returns the first matching node, if any.
func (e *Expr) First(doc *xmltoolkit.Document, ctx Context, start xmltoolkit.NodeRef) (xmltoolkit.NodeRef, bool, error) {
	all, err := e.Evaluate(doc, ctx, start)
	if err != nil {
		return 0, false, err
	}
	if len(all) == 0 {
		return 0, false, nil
	}
	return all[0], true, nil
}

// Texts returns the string value of every match: a text node's text, an
// attribute's value, or an element's concatenated descendant text.
func (e *Expr) Texts(doc *xmltoolkit.Document, ctx Context, start xmltoolkit.NodeRef) ([]string, error) {
	results, err := e.run(doc, ctx, start)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, r := range results {
		if r.isAttr {
			out = append(out, doc.Node(r.node).Attrs[r.attrIdx].Value)
			continue
		}
		out = append(out, stringValue(doc, r.node))
	}
	return out, nil
}

func stringValue(doc *xmltoolkit.Document, ref xmltoolkit.NodeRef) string {
	n := doc.Node(ref)
	switch n.Kind {
	case xmltoolkit.KindText, xmltoolkit.KindCData, xmltoolkit.KindComment, xmltoolkit.KindProcInst:
		return n.Text
	case xmltoolkit.KindElement:
		var b strings.Builder
		doc.Walk(ref, func(r xmltoolkit.NodeRef) bool {
			k := doc.Node(r).Kind
			if k == xmltoolkit.KindText || k == xmltoolkit.KindCData {
				b.WriteString(doc.Node(r).Text)
			}
			return true
		})
		return b.String()
	default:
		return ""
	}
}

func (e *Expr) run(doc *xmltoolkit.Document, ctx Context, start xmltoolkit.NodeRef) ([]result, error) {
	current := []result{{node: start}}
	for _, st := range e.steps {
		next, err := applyStep(doc, ctx, st, current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func applyStep(doc *xmltoolkit.Document, ctx Context, st step, in []result) ([]result, error) {
	var out []result
	for _, r := range in {
		if r.isAttr {
			continue
		}
		if st.axis == axisAttribute {
			matched := matchAttributesOf(doc, ctx, st, r.node)
			out = append(out, matched...)
			continue
		}
		candidates := collectCandidates(doc, st.axis, r.node)
		matched := filterByTest(doc, ctx, st, candidates)
		matched, err := filterByPredicate(doc, st, matched)
		if err != nil {
			return nil, err
		}
		out = append(out, matched...)
	}
	return dedupeResults(out), nil
}

// dedupeResults drops repeat hits of the same node (or the same
// attribute of the same node), keeping first-seen order, since a
// branching path (e.g. two descendant steps) can otherwise reach the
// same node more than once.
func dedupeResults(in []result) []result {
	seen := make(map[result]bool, len(in))
	out := make([]result, 0, len(in))
	for _, r := range in {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	return out
}

// matchAttributesOf evaluates the attribute axis against owner (the
// current context node), since an element's attributes aren't part of
// its Children list.
func matchAttributesOf(doc *xmltoolkit.Document, ctx Context, st step, owner xmltoolkit.NodeRef) []result {
	n := doc.Node(owner)
	if n.Kind != xmltoolkit.KindElement {
		return nil
	}
	var out []result
	for i, a := range n.Attrs {
		if !st.wildcard {
			if st.prefix == "" {
				// Unprefixed attributes are never in a default namespace,
				// regardless of any default binding in ctx.
				if a.Local != st.local || a.NamespURI != "" {
					continue
				}
			} else {
				wantURI, ok := ctx.resolve(st.prefix)
				if !ok || a.Local != st.local || a.NamespURI != wantURI {
					continue
				}
			}
		}
		out = append(out, result{node: owner, isAttr: true, attrIdx: i})
	}
	return out
}

func collectCandidates(doc *xmltoolkit.Document, ax axis, parent xmltoolkit.NodeRef) []xmltoolkit.NodeRef {
	switch ax {
	case axisChild:
		return doc.Node(parent).Children
	case axisDescendantOrSelf:
		var out []xmltoolkit.NodeRef
		doc.Walk(parent, func(r xmltoolkit.NodeRef) bool {
			if r != parent {
				out = append(out, r)
			}
			return true
		})
		return out
	default:
		return nil
	}
}

func filterByTest(doc *xmltoolkit.Document, ctx Context, st step, candidates []xmltoolkit.NodeRef) []result {
	var out []result
	for _, ref := range candidates {
		n := doc.Node(ref)
		if st.textTest {
			// XPath 1.0's data model has no separate CDATA node type: a
			// CDATA section is just a text node whose content happened to
			// be written inside "<![CDATA[...]]>".
			if n.Kind == xmltoolkit.KindText || n.Kind == xmltoolkit.KindCData {
				out = append(out, result{node: ref})
			}
			continue
		}
		if n.Kind != xmltoolkit.KindElement {
			continue
		}
		if st.wildcard {
			out = append(out, result{node: ref})
			continue
		}
		if st.prefix == "" {
			// An unprefixed test matches an element's local name whether
			// or not it carries an inherited default namespace, unless the
			// caller's Context pins one explicitly.
			if wantURI, ok := ctx.resolve(""); ok {
				if n.Local == st.local && n.NamespURI == wantURI {
					out = append(out, result{node: ref})
				}
			} else if n.Local == st.local {
				out = append(out, result{node: ref})
			}
			continue
		}
		wantURI, ok := ctx.resolve(st.prefix)
		if !ok {
			continue
		}
		if n.Local == st.local && n.NamespURI == wantURI {
			out = append(out, result{node: ref})
		}
	}
	return out
}

func filterByPredicate(doc *xmltoolkit.Document, st step, matched []result) ([]result, error) {
	switch st.predKind {
	case predNone:
		return matched, nil
	case predPosition:
		if st.predPos < 1 || st.predPos > len(matched) {
			return nil, nil
		}
		return []result{matched[st.predPos-1]}, nil
	case predAttrEquals:
		var out []result
		for _, r := range matched {
			n := doc.Node(r.node)
			if v, ok := n.Attr("", st.predAttr); ok && v == st.predValue {
				out = append(out, r)
			}
		}
		return out, nil
	default:
		return matched, nil
	}
}
