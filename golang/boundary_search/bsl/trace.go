package bsl

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

//TraceNode describes one descent: the cell that was split and what its orthants produced.
//Parent is -1 for the root descent of a repeat.
type TraceNode struct {
	TraceNodeId int       `json:"id"`
	Parent      int       `json:"parent"`
	Depth       int       `json:"depth"`
	Bounds      Box       `json:"bounds"`
	Points      int       `json:"points"`
	Positive    []Orthant `json:"positive"`
	Negative    []Orthant `json:"negative"`
	Estimated   int       `json:"estimated"`
	Emitted     int       `json:"emitted"`
	Truncated   int       `json:"truncated"`
	Children    []int     `json:"children"`
}

//GraphDescription returns the description of a trace node for rendering as a graph.
func (node TraceNode) GraphDescription() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintln("#", node.Points))
	sb.WriteString(fmt.Sprintln("id: ", node.TraceNodeId, " depth: ", node.Depth))
	for dim := range node.Bounds.Min {
		sb.WriteString(fmt.Sprintf("x_%d in [%6.4f, %6.4f]\n", dim, node.Bounds.Min[dim], node.Bounds.Max[dim]))
	}
	sb.WriteString(fmt.Sprintln("pure+: ", node.Positive))
	sb.WriteString(fmt.Sprintln("pure-: ", node.Negative))
	sb.WriteString(fmt.Sprintf("points: %d adjacent, %d estimated", node.Emitted, node.Estimated))
	if node.Truncated > 0 {
		sb.WriteString(fmt.Sprintf("\ntruncated: %d", node.Truncated))
	}
	return sb.String()
}

//Trace is the recorded descent tree of a boundary search, stored in an array.
type Trace struct {
	Nodes []TraceNode `json:"nodes"`
}

func (t *Trace) open(parent, depth int, box Box, points int) int {
	id := len(t.Nodes)
	t.Nodes = append(t.Nodes, TraceNode{TraceNodeId: id, Parent: parent, Depth: depth, Bounds: box, Points: points})
	if parent >= 0 {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	}
	return id
}

//Roots returns the ids of the root descents, one per repeat.
func (t Trace) Roots() []int {
	roots := make([]int, 0)
	for _, node := range t.Nodes {
		if node.Parent < 0 {
			roots = append(roots, node.TraceNodeId)
		}
	}
	return roots
}

func recurrentDraw(g *cgraph.Graph, trace Trace, nodeNumber int, parentNode *cgraph.Node) {
	node := trace.Nodes[nodeNumber]
	currentNode, err := g.CreateNode(fmt.Sprint(node.TraceNodeId))
	HandleError(err)

	if parentNode != nil {
		_, err := g.CreateEdge("", parentNode, currentNode)
		HandleError(err)
	}

	currentNode.Set("label", node.GraphDescription())
	if len(node.Children) == 0 {
		currentNode.Set("shape", "box")
	}
	for _, child := range node.Children {
		recurrentDraw(g, trace, child, currentNode)
	}
}

//DrawGraph builds a graphviz graph of the descent tree.
func (t Trace) DrawGraph() (*graphviz.Graphviz, *cgraph.Graph) {
	graphViz := graphviz.New()
	graph, err := graphViz.Graph()
	HandleError(err)

	for _, root := range t.Roots() {
		recurrentDraw(graph, t, root, nil)
	}
	return graphViz, graph
}

//Render writes the descent tree to fileName in the given format: "svg", "png" or "jpg".
func (t Trace) Render(fileName, figureType string) error {
	format, ok := map[string]graphviz.Format{
		"png": graphviz.PNG,
		"svg": graphviz.SVG,
		"jpg": graphviz.JPG,
	}[figureType]
	if !ok {
		return fmt.Errorf("bsl: unknown figure type %q: %w", figureType, ErrInvalidConfig)
	}
	if len(t.Nodes) == 0 {
		return fmt.Errorf("bsl: empty trace: %w", ErrEmptyDataset)
	}

	graphViz, graph := t.DrawGraph()
	defer func() {
		HandleError(graph.Close())
		graphViz.Close()
	}()
	return graphViz.RenderFilename(graph, format, fileName)
}
