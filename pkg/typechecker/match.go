package typechecker

import "github.com/ZaydH/cis561/pkg/ast"

// inferTypecase binds each alternative's name to the alternative's type for
// the duration of its block. The binding is declared, so the block cannot
// widen it. A name already bound in the unit may only be narrowed.
//
// A name bound by every alternative stays defined after the typecase with the
// LCA of the alternatives' types, matching the initialized set the
// alternatives join to.
func (c *Checker) inferTypecase(s *ast.TypecaseStatement) error {
	if _, err := c.inferExpression(s.Subject); err != nil {
		return err
	}
	symbols := c.currentUnit().symbols
	var (
		order  []string
		joined = make(map[string]*Class)
		counts = make(map[string]int)
		alts   int
	)
	for _, alt := range s.Alternatives {
		if alt == nil {
			continue
		}
		alts++
		typ, err := c.resolveTypeName(alt, alt.TypeName)
		if err != nil {
			return err
		}
		if typ == c.registry.NothingClass() {
			return c.fail(UnknownType, alt, alt.TypeName, "cannot match on %s", NothingName)
		}
		key := Local(alt.Binding)
		if prev, ok := symbols.Lookup(key); ok && prev.Type != nil && !c.registry.IsSubtype(typ, prev.Type) {
			return c.fail(TypeMismatch, alt, alt.Binding, "alternative %s cannot narrow %s of type %s",
				typ.Name(), alt.Binding, prev.Type.Name())
		}
		restore := symbols.Bind(key, typ)
		err = c.inferBlock(alt.Body)
		restore()
		if err != nil {
			return err
		}
		if _, seen := joined[alt.Binding]; !seen {
			order = append(order, alt.Binding)
		}
		joined[alt.Binding] = c.registry.LeastCommonAncestor(joined[alt.Binding], typ)
		counts[alt.Binding]++
	}
	for _, name := range order {
		if counts[name] != alts {
			continue
		}
		if _, err := c.bindSymbol(s, Local(name), joined[name], nil); err != nil {
			return err
		}
	}
	return nil
}
