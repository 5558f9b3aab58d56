// Copyright 2024 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package rowtype

import (
	"fmt"

	"github.com/geophile/sql-layer-sub008/pkg/sql/cat"
	"github.com/geophile/sql-layer-sub008/pkg/util/treeprinter"
)

// Label names an attribute of an Explainer.
type Label string

// Labels of the attributes produced by the row type variants.
const (
	LabelTableSchema          Label = "table schema"
	LabelTableName            Label = "table name"
	LabelIndexName            Label = "index name"
	LabelSpatialDimensions    Label = "spatial dimensions"
	LabelFirstSpatialArgument Label = "first spatial argument"
	LabelLayout               Label = "layout"
	LabelParentType           Label = "parent type"
	LabelChildType            Label = "child type"
	LabelLeftType             Label = "left type"
	LabelRightType            Label = "right type"
	LabelBranchTable          Label = "branch table"
	LabelExpression           Label = "expression"
	LabelBaseType             Label = "base type"
	LabelGroupingFields       Label = "grouping fields"
	LabelAggregate            Label = "aggregate"
	LabelType                 Label = "type"
)

// Attribute is one labeled property of an Explainer. Exactly one of Value and
// Child is set.
type Attribute struct {
	Label Label
	Value string
	Child *Explainer
}

// Explainer is a structural description of a row type, used by plan output
// and diagnostics. A label may occur several times, e.g. once per
// expression of a projection.
type Explainer struct {
	Name       string
	Attributes []Attribute
}

func newExplainer(name string) *Explainer {
	return &Explainer{Name: name}
}

func (e *Explainer) addf(label Label, format string, args ...interface{}) {
	e.Attributes = append(e.Attributes, Attribute{Label: label, Value: fmt.Sprintf(format, args...)})
}

func (e *Explainer) addChild(label Label, child *Explainer) {
	e.Attributes = append(e.Attributes, Attribute{Label: label, Child: child})
}

func (e *Explainer) addTable(t cat.Table) {
	name := t.Name()
	e.addf(LabelTableSchema, "%s", name.Schema)
	e.addf(LabelTableName, "%s", name.Table)
}

// Get returns the attributes with the given label, in order.
func (e *Explainer) Get(label Label) []Attribute {
	var res []Attribute
	for _, a := range e.Attributes {
		if a.Label == label {
			res = append(res, a)
		}
	}
	return res
}

// Format adds the explainer as a child of tp.
func (e *Explainer) Format(tp treeprinter.Node) {
	n := tp.Child(e.Name)
	for _, a := range e.Attributes {
		if a.Child != nil {
			a.Child.Format(n.Child(string(a.Label)))
		} else {
			n.Childf("%s: %s", a.Label, a.Value)
		}
	}
}

func (e *Explainer) String() string {
	tp := treeprinter.New()
	e.Format(tp)
	return tp.String()
}

// FormatExplain renders the structure of a row type as a tree.
func FormatExplain(rt RowType) string {
	return rt.Explain().String()
}
