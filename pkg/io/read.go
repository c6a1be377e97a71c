package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

// ReadGraphML decodes a yEd GraphML document from r.
//
// Node styles are resolved and classified while reading, so a document that
// returns without error can be diffed without further checks. ReadGraphML
// does not close r.
func ReadGraphML(r io.Reader) (*graph.Document, error) {
	x := etree.NewDocument()
	if _, err := x.ReadFrom(r); err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeMalformedDocument, err, "parse graphml")
	}
	root := x.SelectElement("graphml")
	if root == nil {
		return nil, gerrors.New(gerrors.ErrCodeMalformedDocument, "no <graphml> element")
	}
	top := root.SelectElement("graph")
	if top == nil {
		return nil, gerrors.New(gerrors.ErrCodeMalformedDocument, "no <graph> element")
	}

	doc := graph.New(top.SelectAttrValue("id", ""))
	header, err := encodeHeader(root)
	if err != nil {
		return nil, err
	}
	doc.Header = header

	type frame struct {
		el    *etree.Element
		owner *graph.Node
		path  graph.Path
	}
	stack := []frame{{top, doc.Root, nil}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g := cur.owner.Graph

		for _, ne := range cur.el.SelectElements("node") {
			n, err := readNode(ne, cur.path)
			if err != nil {
				return nil, err
			}
			g.AddNode(n)
			if sub := ne.SelectElement("graph"); sub != nil {
				n.Graph = graph.NewGraph(sub.SelectAttrValue("id", graph.GraphID(n.ID)))
				stack = append(stack, frame{sub, n, cur.path.Child(n.Label())})
			}
		}
		for _, ee := range cur.el.SelectElements("edge") {
			e, err := readEdge(ee)
			if err != nil {
				return nil, withPath(err, cur.path)
			}
			g.AddEdge(e)
		}
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ImportGraphML reads the GraphML file at path.
func ImportGraphML(path string) (*graph.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, gerrors.Wrap(gerrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	doc, err := ReadGraphML(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

func readNode(ne *etree.Element, parent graph.Path) (*graph.Node, error) {
	id := ne.SelectAttrValue("id", "")
	if id == "" {
		return nil, gerrors.New(gerrors.ErrCodeMalformedDocument, "node without id").WithPath(parent)
	}
	datas := ne.SelectElements("data")
	style := findStyle(datas)
	if style == nil {
		return nil, gerrors.New(gerrors.ErrCodeMalformedDocument,
			"node %s has no ShapeNode or GroupNode style", id).WithPath(parent)
	}

	n := &graph.Node{ID: id}
	label := style.SelectElement("NodeLabel")
	if label == nil {
		return nil, gerrors.New(gerrors.ErrCodeMalformedDocument, "node %s has no label", id).WithPath(parent)
	}
	n.Style.Label = strings.TrimSpace(label.Text())
	path := parent.Child(n.Style.Label)

	n.Style.FontSize = graph.DefaultFontSize
	if fs := label.SelectAttrValue("fontSize", ""); fs != "" {
		size, err := strconv.Atoi(fs)
		if err != nil {
			return nil, gerrors.New(gerrors.ErrCodeMalformedDocument,
				"node %s has invalid font size %q", id, fs).WithPath(path)
		}
		n.Style.FontSize = size
	}

	if fill := style.SelectElement("Fill"); fill != nil {
		n.Style.Fill = fill.SelectAttrValue("color", "")
	}
	class, err := graph.ClassifyFill(n.Style.Fill)
	if err != nil {
		return nil, withPath(err, path)
	}
	n.Class = class

	if n.Data, err = encodeData(datas); err != nil {
		return nil, err
	}
	return n, nil
}

func readEdge(ee *etree.Element) (graph.Edge, error) {
	e := graph.Edge{
		ID:     ee.SelectAttrValue("id", ""),
		Source: ee.SelectAttrValue("source", ""),
		Target: ee.SelectAttrValue("target", ""),
	}
	if e.Source == "" || e.Target == "" {
		return e, gerrors.New(gerrors.ErrCodeMalformedDocument, "edge %q lacks source or target", e.ID)
	}
	data, err := encodeData(ee.SelectElements("data"))
	if err != nil {
		return e, err
	}
	e.Data = data
	return e, nil
}

// findStyle returns the element holding a node's fill and label.
func findStyle(datas []*etree.Element) *etree.Element {
	for _, d := range datas {
		if g := d.FindElement("./ProxyAutoBoundsNode/Realizers/GroupNode"); g != nil {
			return g
		}
		if s := d.SelectElement("ShapeNode"); s != nil {
			return s
		}
	}
	return nil
}

// withPath attaches a label path to a coded error.
func withPath(err error, path graph.Path) error {
	var e *gerrors.Error
	if errors.As(err, &e) {
		return e.WithPath(path)
	}
	return err
}
