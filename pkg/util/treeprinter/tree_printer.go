// Copyright 2017 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package treeprinter

import (
	"fmt"
	"strings"
)

const (
	edgeLinkChr = "│"
	edgeMidChr  = "├──"
	edgeLastChr = "└──"
)

// Node is a handle associated with a specific depth in a tree. See below for
// sample usage.
type Node struct {
	tree *tree
	idx  int
}

type tree struct {
	nodes []treeNode
}

type treeNode struct {
	text     string
	children []int
}

// New creates a tree printer and returns a sentinel node reference which
// should be used to add the root. Sample usage:
//
//	tp := New()
//	root := tp.Child("root")
//	root.Child("child-1")
//	root.Child("child-2").Child("grandchild")
//	root.Child("child-3")
//
//	fmt.Print(tp.String())
//
// Output:
//
//	root
//	 ├── child-1
//	 ├── child-2
//	 │    └── grandchild
//	 └── child-3
func New() Node {
	t := &tree{nodes: []treeNode{{}}}
	return Node{tree: t, idx: 0}
}

// Child adds a node as a child of the given node.
func (n Node) Child(text string) Node {
	t := n.tree
	t.nodes = append(t.nodes, treeNode{text: text})
	idx := len(t.nodes) - 1
	t.nodes[n.idx].children = append(t.nodes[n.idx].children, idx)
	return Node{tree: t, idx: idx}
}

// Childf adds a node as a child of the given node.
func (n Node) Childf(format string, args ...interface{}) Node {
	return n.Child(fmt.Sprintf(format, args...))
}

// String returns the tree as a string, one node per line.
func (n Node) String() string {
	var buf strings.Builder
	t := n.tree
	if n.idx == 0 {
		for _, c := range t.nodes[0].children {
			t.format(&buf, c, "", "")
		}
	} else {
		t.format(&buf, n.idx, "", "")
	}
	return buf.String()
}

// format writes node idx with the given first-line prefix; child lines are
// indented by childPrefix.
func (t *tree) format(buf *strings.Builder, idx int, prefix, childPrefix string) {
	buf.WriteString(prefix)
	buf.WriteString(t.nodes[idx].text)
	buf.WriteByte('\n')
	children := t.nodes[idx].children
	for i, c := range children {
		if i == len(children)-1 {
			t.format(buf, c, childPrefix+" "+edgeLastChr+" ", childPrefix+"     ")
		} else {
			t.format(buf, c, childPrefix+" "+edgeMidChr+" ", childPrefix+" "+edgeLinkChr+"   ")
		}
	}
}
