package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/Alekasndr/graphedit/pkg/graph"
)

func TestParseFile(t *testing.T) {
	snap, err := ParseFile("testdata/triangle.hcl", Variables{"spacing": cty.NumberIntVal(200)})
	require.NoError(t, err)

	require.Len(t, snap.Nodes, 3)
	assert.Equal(t, graph.Node{ID: "A", Type: "default", Position: graph.Position{X: 100, Y: 100}, Data: graph.NodeData{Label: "Alpha"}}, snap.Nodes[0])
	assert.Equal(t, graph.Node{ID: "B", Type: "default", Position: graph.Position{X: 400, Y: 150}, Data: graph.NodeData{Label: "BETA"}}, snap.Nodes[1])
	assert.Equal(t, graph.Node{ID: "C", Type: "output", Data: graph.NodeData{Label: "Node C"}}, snap.Nodes[2])

	require.Len(t, snap.Edges, 4)
	assert.Equal(t, 2.0, *snap.Edges[0].Data.Weight)
	assert.Equal(t, "2", *snap.Edges[0].Label)
	assert.Nil(t, snap.Edges[3].Data.Weight)
	assert.Nil(t, snap.Edges[3].Label)

	p, ok := graph.ShortestPath(snap, "A", "C")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C"}, p.Nodes)
	assert.Equal(t, 5.0, p.Distance)
}

func TestParseFile_MissingVariable(t *testing.T) {
	_, err := ParseFile("testdata/triangle.hcl", nil)
	assert.Error(t, err)
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile("testdata/missing.hcl", nil)
	assert.Error(t, err)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			name:    "syntax error",
			src:     `node "1" {`,
			wantMsg: "failed to parse",
		},
		{
			name:    "unknown block",
			src:     `group "g" {}`,
			wantMsg: "failed to decode",
		},
		{
			name:    "missing label attribute",
			src:     `node "1" { x = 1 }`,
			wantMsg: "failed to decode",
		},
		{
			name:    "unknown attribute",
			src: `
node "1" {
  label  = "a"
  colour = "red"
}`,
			wantMsg: "failed to decode",
		},
		{
			name: "duplicate node id",
			src: `
node "1" { label = "a" }
node "1" { label = "b" }`,
			wantMsg: "Duplicate node",
		},
		{
			name: "duplicate label after trimming",
			src: `
node "1" { label = "a" }
node "2" { label = " a " }`,
			wantMsg: `Label "a" already exists`,
		},
		{
			name:    "blank label",
			src:     `node "1" { label = "   " }`,
			wantMsg: "Empty label",
		},
		{
			name: "dangling edge",
			src: `
node "1" { label = "a" }
edge "e" {
  source = "1"
  target = "2"
}`,
			wantMsg: "Unknown node",
		},
		{
			name: "duplicate edge id",
			src: `
node "1" { label = "a" }
edge "e" {
  source = "1"
  target = "1"
}
edge "e" {
  source = "1"
  target = "1"
}`,
			wantMsg: "Duplicate edge",
		},
		{
			name: "negative weight",
			src: `
node "1" { label = "a" }
edge "e" {
  source = "1"
  target = "1"
  weight = -1
}`,
			wantMsg: "non-negative",
		},
		{
			name: "string weight",
			src: `
node "1" { label = "a" }
edge "e" {
  source = "1"
  target = "1"
  weight = "heavy"
}`,
			wantMsg: "Invalid weight",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src), "test.hcl", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	snap, err := Parse([]byte("# nothing yet\n"), "empty.hcl", nil)
	require.NoError(t, err)
	assert.Empty(t, snap.Nodes)
	assert.Empty(t, snap.Edges)
}

func TestParse_NullWeight(t *testing.T) {
	snap, err := Parse([]byte(`
node "1" { label = "a" }
edge "e" {
  source = "1"
  target = "1"
  weight = null
}`), "null.hcl", nil)
	require.NoError(t, err)
	require.Len(t, snap.Edges, 1)
	assert.Nil(t, snap.Edges[0].Data.Weight)
}
