package graph

import (
	"fmt"
	"strconv"
	"strings"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

// IDSeparator joins the segments of a hierarchical identifier.
const IDSeparator = "::"

// Segment prefixes used by the producer.
const (
	nodePrefix = "n"
	edgePrefix = "e"
)

// ID is a parsed hierarchical node identifier: one positional index per
// nesting level, outermost first.
type ID []int

// ParseID parses an identifier of the form "n0::n3::n1".
func ParseID(s string) (ID, error) {
	if s == "" {
		return nil, gerrors.New(gerrors.ErrCodeMalformedDocument, "empty node id")
	}
	parts := strings.Split(s, IDSeparator)
	id := make(ID, len(parts))
	for i, p := range parts {
		seg, ok := parseSegment(p, nodePrefix)
		if !ok {
			return nil, gerrors.New(gerrors.ErrCodeMalformedDocument, "malformed node id %q", s)
		}
		id[i] = seg
	}
	return id, nil
}

// String renders the identifier in wire form.
func (id ID) String() string {
	parts := make([]string, len(id))
	for i, seg := range id {
		parts[i] = nodePrefix + strconv.Itoa(seg)
	}
	return strings.Join(parts, IDSeparator)
}

// Parent returns the identifier of the enclosing node (empty at top level).
func (id ID) Parent() ID {
	if len(id) == 0 {
		return nil
	}
	return id[:len(id)-1:len(id)-1]
}

// Last returns the trailing segment, or -1 for an empty identifier.
func (id ID) Last() int {
	if len(id) == 0 {
		return -1
	}
	return id[len(id)-1]
}

// Child returns a new identifier extending id with seg.
func (id ID) Child(seg int) ID {
	out := make(ID, len(id)+1)
	copy(out, id)
	out[len(id)] = seg
	return out
}

// ChildID formats the identifier of segment seg under the node parentID.
// An empty parentID denotes the document root.
func ChildID(parentID string, seg int) string {
	if parentID == "" {
		return fmt.Sprintf("%s%d", nodePrefix, seg)
	}
	return fmt.Sprintf("%s%s%s%d", parentID, IDSeparator, nodePrefix, seg)
}

// EdgeID formats edge number seq for a graph owned by ownerID (empty for the
// top-level graph).
func EdgeID(ownerID string, seq int) string {
	if ownerID == "" {
		return fmt.Sprintf("%s%d", edgePrefix, seq)
	}
	return fmt.Sprintf("%s%s%s%d", ownerID, IDSeparator, edgePrefix, seq)
}

// GraphID formats the wire identifier of the child graph of ownerID.
func GraphID(ownerID string) string { return ownerID + ":" }

// lastSegment extracts the trailing numeric segment of a node or edge
// identifier carrying the given prefix.
func lastSegment(s, prefix string) (int, bool) {
	if i := strings.LastIndex(s, IDSeparator); i >= 0 {
		s = s[i+len(IDSeparator):]
	}
	return parseSegment(s, prefix)
}

func parseSegment(s, prefix string) (int, bool) {
	if !strings.HasPrefix(s, prefix) || len(s) == len(prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(s[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
