package style

import "github.com/tesselate/compiler/internal/estree"

func m(name string, v estree.Value) estree.Member {
	return estree.Member{Name: name, Value: v}
}

func obj(typ string, start, end int, fields ...estree.Member) estree.Value {
	members := make([]estree.Member, 0, len(fields)+3)
	members = append(members, m("type", estree.NewString(typ)))
	members = append(members, fields...)
	members = append(members,
		m("start", estree.NewNumber(float64(start))),
		m("end", estree.NewNumber(float64(end))),
	)
	return estree.NewObject(members...)
}

// ChildrenValue converts a Sheet's top-level Rule/Atrule nodes into an
// estree.Value array, the shape internal/component embeds as
// StyleSheet.children.
func ChildrenValue(nodes []Node) estree.Value {
	items := make([]estree.Value, len(nodes))
	for i, n := range nodes {
		items[i] = valueOf(n)
	}
	return estree.NewArray(items...)
}

// ContentValue converts Content into the `{ start, end, styles }` shape
// the spec's StyleSheet.content slot expects (spec §3).
func ContentValue(c Content) estree.Value {
	return estree.NewObject(
		m("start", estree.NewNumber(float64(c.Start))),
		m("end", estree.NewNumber(float64(c.End))),
		m("styles", estree.NewString(c.Styles)),
	)
}

func valueOf(n Node) estree.Value {
	switch v := n.(type) {
	case *Rule:
		return v.toValue()
	case *Atrule:
		return v.toValue()
	case *Declaration:
		return v.toValue()
	default:
		return estree.Null()
	}
}

func (r *Rule) toValue() estree.Value {
	return obj("Rule", r.Start_, r.End_,
		m("prelude", estree.NewString(r.Prelude)),
		m("selector", selectorListValue(r.Selector)),
		m("block", ChildrenValue(r.Block)),
	)
}

func (a *Atrule) toValue() estree.Value {
	var block estree.Value
	if a.Block != nil {
		block = ChildrenValue(a.Block)
	}
	return obj("Atrule", a.Start_, a.End_,
		m("name", estree.NewString(a.Name)),
		m("prelude", estree.NewString(a.Prelude)),
		m("block", block),
	)
}

func (d *Declaration) toValue() estree.Value {
	return obj("Declaration", d.Start_, d.End_,
		m("property", estree.NewString(d.Property)),
		m("value", estree.NewString(d.Value)),
		m("important", estree.NewBool(d.Important)),
	)
}

func selectorListValue(sl SelectorList) estree.Value {
	complexes := make([]estree.Value, len(sl.Children))
	for i, c := range sl.Children {
		complexes[i] = complexSelectorValue(c)
	}
	return estree.NewArray(complexes...)
}

func complexSelectorValue(cs ComplexSelector) estree.Value {
	rels := make([]estree.Value, len(cs.Children))
	for i, r := range cs.Children {
		rels[i] = relativeSelectorValue(r)
	}
	return estree.NewObject(m("selectors", estree.NewArray(rels...)))
}

func relativeSelectorValue(rs RelativeSelector) estree.Value {
	simples := make([]estree.Value, len(rs.Selectors))
	for i, s := range rs.Selectors {
		simples[i] = simpleSelectorValue(s)
	}
	return estree.NewObject(
		m("combinator", estree.NewString(rs.Combinator)),
		m("selectors", estree.NewArray(simples...)),
	)
}

func simpleSelectorValue(s SimpleSelector) estree.Value {
	return obj(simpleSelectorKindName(s.Kind), s.Start, s.End,
		m("name", estree.NewString(s.Name)),
		m("args", estree.NewString(s.Args)),
	)
}

func simpleSelectorKindName(k SimpleSelectorKind) string {
	switch k {
	case KindType:
		return "TypeSelector"
	case KindId:
		return "IdSelector"
	case KindClass:
		return "ClassSelector"
	case KindAttribute:
		return "AttributeSelector"
	case KindPseudoClass:
		return "PseudoClassSelector"
	case KindPseudoElement:
		return "PseudoElementSelector"
	case KindNesting:
		return "NestingSelector"
	default:
		return "Selector"
	}
}
