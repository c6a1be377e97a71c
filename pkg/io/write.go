package io

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// GraphML and yEd namespaces used when a document has no stored header.
const (
	NamespaceGraphML = "http://graphml.graphdrawing.org/xmlns"
	NamespaceYEd     = "http://www.yworks.com/xml/graphml"
)

// WriteGraphML encodes doc as yEd GraphML and writes it to w.
//
// The document is validated first; nothing is written to w if validation
// fails. Stored node payloads are re-emitted with the fill colour and
// font size patched from the node's style.
func WriteGraphML(doc *graph.Document, w io.Writer) error {
	if err := Validate(doc); err != nil {
		return err
	}
	x, err := encode(doc)
	if err != nil {
		return err
	}
	x.Indent(2)
	if _, err := x.WriteTo(w); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportGraphML writes doc to the file at path. The file is written to a
// temporary sibling first and renamed into place, so path either keeps its
// previous content or holds the complete new document.
func ExportGraphML(doc *graph.Document, path string) (err error) {
	if err := Validate(doc); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := WriteGraphML(doc, tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Validate checks the structural invariants the writer relies on: node
// identifiers are unique, and every edge connects nodes within the subtree
// of the graph that holds it.
func Validate(doc *graph.Document) error {
	if doc == nil || doc.Root == nil || doc.Root.Graph == nil {
		return gerrors.New(gerrors.ErrCodeMalformedDocument, "document has no root graph")
	}
	seen := make(map[string]graph.Path)
	if err := validateEdges(doc.Root.Graph, nil); err != nil {
		return err
	}
	for path, n := range doc.Walk() {
		if prev, dup := seen[n.ID]; dup {
			return gerrors.New(gerrors.ErrCodeMalformedDocument,
				"node id %s also used at %s", n.ID, prev).WithPath(path)
		}
		seen[n.ID] = path
		if n.Graph != nil {
			if err := validateEdges(n.Graph, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateEdges(g *graph.Graph, path graph.Path) error {
	if len(g.Edges) == 0 {
		return nil
	}
	scope := g.Scope()
	for _, e := range g.Edges {
		for _, end := range []string{e.Source, e.Target} {
			if _, ok := scope[end]; !ok {
				return gerrors.New(gerrors.ErrCodeMalformedDocument,
					"edge %s references node %s outside its graph", e.ID, end).WithPath(path)
			}
		}
	}
	return nil
}

// encode builds the XML tree of doc.
func encode(doc *graph.Document) (*etree.Document, error) {
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="no"`)
	root, styleKey, err := decodeHeader(doc.Header)
	if err != nil {
		return nil, err
	}
	x.SetRoot(root)

	type frame struct {
		parent *etree.Element
		owner  *graph.Node
	}
	stack := []frame{{root, doc.Root}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g := cur.owner.Graph

		ge := cur.parent.CreateElement("graph")
		ge.CreateAttr("edgedefault", "directed")
		ge.CreateAttr("id", g.ID)
		for _, n := range g.Nodes {
			ne := ge.CreateElement("node")
			ne.CreateAttr("id", n.ID)
			if n.IsGroup() {
				ne.CreateAttr("yfiles.foldertype", "group")
			}
			if err := writeNodeData(ne, n, styleKey); err != nil {
				return nil, err
			}
			if n.IsGroup() {
				stack = append(stack, frame{ne, n})
			}
		}
		for _, e := range g.Edges {
			ee := ge.CreateElement("edge")
			ee.CreateAttr("id", e.ID)
			ee.CreateAttr("source", e.Source)
			ee.CreateAttr("target", e.Target)
			datas, err := decodeData(e.Data)
			if err != nil {
				return nil, fmt.Errorf("edge %s: %w", e.ID, err)
			}
			for _, d := range datas {
				ee.AddChild(d)
			}
		}
	}
	return x, nil
}

// writeNodeData appends the node's payload to ne, patched with its current
// style.
func writeNodeData(ne *etree.Element, n *graph.Node, styleKey string) error {
	datas, err := decodeData(n.Data)
	if err != nil {
		return fmt.Errorf("node %s: %w", n.ID, err)
	}
	style := findStyle(datas)
	if style == nil {
		d := synthesizeStyle(n, styleKey)
		datas = append(datas, d)
		style = findStyle([]*etree.Element{d})
	}

	fill := style.SelectElement("Fill")
	if fill == nil {
		fill = style.CreateElement("y:Fill")
	}
	fill.CreateAttr("color", n.Style.Fill)

	label := style.SelectElement("NodeLabel")
	if label == nil {
		label = style.CreateElement("y:NodeLabel")
		label.SetText(n.Style.Label)
	}
	label.CreateAttr("fontSize", strconv.Itoa(n.Style.FontSize))

	for _, d := range datas {
		ne.AddChild(d)
	}
	return nil
}

// synthesizeStyle builds a minimal yEd style block for a node that has no
// stored payload.
func synthesizeStyle(n *graph.Node, styleKey string) *etree.Element {
	d := etree.NewElement("data")
	d.CreateAttr("key", styleKey)
	var style *etree.Element
	if n.IsGroup() {
		realizers := d.CreateElement("y:ProxyAutoBoundsNode").CreateElement("y:Realizers")
		realizers.CreateAttr("active", "0")
		style = realizers.CreateElement("y:GroupNode")
	} else {
		style = d.CreateElement("y:ShapeNode")
	}
	fill := style.CreateElement("y:Fill")
	fill.CreateAttr("color", n.Style.Fill)
	fill.CreateAttr("transparent", "false")
	label := style.CreateElement("y:NodeLabel")
	label.SetText(n.Style.Label)
	return d
}
