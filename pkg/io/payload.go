package io

import (
	"fmt"

	"github.com/beevik/etree"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

// encodeData serializes <data> elements into an opaque payload.
func encodeData(datas []*etree.Element) ([]byte, error) {
	if len(datas) == 0 {
		return nil, nil
	}
	frag := etree.NewDocument()
	for _, d := range datas {
		frag.AddChild(d.Copy())
	}
	b, err := frag.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return b, nil
}

// decodeData parses a payload produced by encodeData. The returned
// elements are detached copies owned by the caller.
func decodeData(b []byte) ([]*etree.Element, error) {
	if len(b) == 0 {
		return nil, nil
	}
	frag := etree.NewDocument()
	if err := frag.ReadFromBytes(b); err != nil {
		return nil, gerrors.Wrap(gerrors.ErrCodeMalformedDocument, err, "decode payload")
	}
	var out []*etree.Element
	for _, d := range frag.ChildElements() {
		out = append(out, d.Copy())
	}
	return out, nil
}

// encodeHeader stores the <graphml> element without its graphs.
func encodeHeader(root *etree.Element) ([]byte, error) {
	h := root.Copy()
	for _, g := range h.SelectElements("graph") {
		h.RemoveChild(g)
	}
	frag := etree.NewDocument()
	frag.SetRoot(h)
	b, err := frag.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("encode header: %w", err)
	}
	return b, nil
}

// decodeHeader rebuilds the <graphml> element from a stored header, or
// synthesizes one, and returns the id of the key that node styles are
// stored under.
func decodeHeader(b []byte) (*etree.Element, string, error) {
	var root *etree.Element
	if len(b) > 0 {
		frag := etree.NewDocument()
		if err := frag.ReadFromBytes(b); err != nil {
			return nil, "", gerrors.Wrap(gerrors.ErrCodeMalformedDocument, err, "decode header")
		}
		root = frag.SelectElement("graphml")
	}
	if root == nil {
		root = etree.NewElement("graphml")
		root.CreateAttr("xmlns", NamespaceGraphML)
		root.CreateAttr("xmlns:y", NamespaceYEd)
	}

	ids := make(map[string]bool)
	for _, k := range root.SelectElements("key") {
		id := k.SelectAttrValue("id", "")
		ids[id] = true
		if k.SelectAttrValue("for", "") == "node" && k.SelectAttrValue("yfiles.type", "") == "nodegraphics" {
			return root, id, nil
		}
	}
	id := "d0"
	for i := 1; ids[id]; i++ {
		id = fmt.Sprintf("d%d", i)
	}
	k := etree.NewElement("key")
	k.CreateAttr("for", "node")
	k.CreateAttr("id", id)
	k.CreateAttr("yfiles.type", "nodegraphics")
	root.AddChild(k)
	return root, id, nil
}
