// Package io reads and writes contact maps in yEd GraphML.
//
// # Overview
//
// A contact map file is a GraphML document whose nodes carry yEd graphics
// extensions. Group nodes (species, components with states) hold a nested
// <graph>. The engine only needs three things per node, all taken from the
// node's style block:
//
//   - the label text (y:NodeLabel)
//   - the fill colour (y:Fill@color), which is classified once on read
//   - the label font size (y:NodeLabel@fontSize)
//
// The style block is the first y:ShapeNode of the node's <data> elements, or
// for group nodes the first y:GroupNode under
// y:ProxyAutoBoundsNode/y:Realizers:
//
//	<node id="n0" yfiles.foldertype="group">
//	  <data key="d6">
//	    <y:ProxyAutoBoundsNode>
//	      <y:Realizers active="0">
//	        <y:GroupNode>
//	          <y:Fill color="#D2D2D2" transparent="false"/>
//	          <y:NodeLabel fontSize="12">EGFR</y:NodeLabel>
//	        </y:GroupNode>
//	      </y:Realizers>
//	    </y:ProxyAutoBoundsNode>
//	  </data>
//	  <graph edgedefault="directed" id="n0:">
//	    ...
//	  </graph>
//	</node>
//
// # Round-trip
//
// Everything the engine does not interpret is kept opaque: the <data>
// elements of nodes and edges are stored verbatim in [graph.Node.Data] and
// [graph.Edge.Data], and the <graphml> element with its <key> declarations
// in [graph.Document.Header]. On write the stored payload is re-emitted with
// only the fill colour and font size patched. Nodes without a payload
// (documents built in code) get a minimal synthesized style block.
//
// # Validation
//
// [ReadGraphML] rejects documents with a node lacking a style block, a fill
// colour outside the three known classes, duplicate node identifiers, or an
// edge whose endpoint lies outside the edge's graph. [WriteGraphML] runs the
// same structural checks before writing anything. All failures are
// MALFORMED_DOCUMENT or UNKNOWN_COLOR_CLASS errors from pkg/errors carrying
// the label path of the offending node.
package io
