package graph

import (
	"fmt"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
)

// Outcome classifies the result of resolving a label path.
type Outcome int

// Resolution outcomes.
const (
	Absent Outcome = iota
	Found
	Ambiguous
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case Ambiguous:
		return "ambiguous"
	default:
		return "absent"
	}
}

// Resolution is the result of [Find].
type Resolution struct {
	Outcome Outcome

	// Node is the resolved node. For an empty path it is the document root.
	// For an Ambiguous outcome it is the node reached by following the first
	// match at every level, and may be nil.
	Node *Node

	// At is the path prefix whose last level had more than one match, and
	// Matches the number of siblings sharing that label. Both are set only
	// for Ambiguous outcomes (for the first ambiguous level).
	At      Path
	Matches int
}

// Find resolves path against d by walking the forest level by level and
// matching labels (case-sensitive). An empty path resolves to the root.
// A path that does not match, or continues past a leaf, is Absent.
//
// When some level holds more than one sibling with the wanted label, Find
// keeps descending through the first match and reports Ambiguous.
func Find(d *Document, path Path) Resolution {
	if len(path) == 0 {
		return Resolution{Outcome: Found, Node: d.Root}
	}
	var res Resolution
	cur := d.Root
	for depth, label := range path {
		if cur.Graph == nil {
			cur = nil
			break
		}
		var first *Node
		matches := 0
		for _, c := range cur.Graph.Nodes {
			if c.Style.Label == label {
				if first == nil {
					first = c
				}
				matches++
			}
		}
		if matches > 1 && res.Outcome != Ambiguous {
			res.Outcome = Ambiguous
			res.At = append(Path(nil), path[:depth+1]...)
			res.Matches = matches
		}
		cur = first
		if cur == nil {
			break
		}
	}
	res.Node = cur
	if res.Outcome != Ambiguous {
		if cur == nil {
			res.Outcome = Absent
		} else {
			res.Outcome = Found
		}
	}
	return res
}

// AmbiguityPolicy decides how [Document.Lookup] treats ambiguous paths.
type AmbiguityPolicy int

// Ambiguity policies. The zero value is the strict policy.
const (
	// AmbiguityError fails with an AMBIGUOUS_LABEL error.
	AmbiguityError AmbiguityPolicy = iota
	// AmbiguityFirst follows the first match and reports a [Warning].
	AmbiguityFirst
)

// String returns the configuration name of the policy.
func (p AmbiguityPolicy) String() string {
	if p == AmbiguityFirst {
		return "first"
	}
	return "error"
}

// ParseAmbiguityPolicy converts "error" or "first".
func ParseAmbiguityPolicy(s string) (AmbiguityPolicy, error) {
	switch s {
	case "", "error":
		return AmbiguityError, nil
	case "first":
		return AmbiguityFirst, nil
	}
	return 0, gerrors.New(gerrors.ErrCodeInvalidConfig, "unknown ambiguity policy %q (want error or first)", s)
}

// Warning records a recoverable problem, such as an ambiguous label that was
// resolved to its first match.
type Warning struct {
	Path    Path
	Matches int
}

func (w Warning) String() string {
	return fmt.Sprintf("%d siblings share the label path %s; using the first", w.Matches, w.Path)
}

// Lookup resolves path and applies policy to ambiguous outcomes. It returns
// the resolved node (nil when absent), a warning when an ambiguity was
// tolerated, and an error when it was not.
func (d *Document) Lookup(path Path, policy AmbiguityPolicy) (*Node, *Warning, error) {
	res := Find(d, path)
	switch res.Outcome {
	case Found:
		return res.Node, nil, nil
	case Ambiguous:
		if policy == AmbiguityFirst {
			return res.Node, &Warning{Path: res.At, Matches: res.Matches}, nil
		}
		return nil, nil, gerrors.New(gerrors.ErrCodeAmbiguousLabel,
			"%d sibling nodes share this label", res.Matches).WithPath(res.At)
	}
	return nil, nil, nil
}
