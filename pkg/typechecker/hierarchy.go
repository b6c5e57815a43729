package typechecker

import (
	"errors"

	"github.com/ZaydH/cis561/pkg/ast"
)

// declareClasses registers every class definition and its methods. Names are
// not resolved yet, so classes may refer to each other in any order.
func (c *Checker) declareClasses(program *ast.Program) error {
	for _, def := range program.Classes {
		if def == nil {
			continue
		}
		class := newClass(def.Name, def.SuperClass)
		class.Definition = def
		class.Constructor = &Method{
			Name:           def.Name,
			ReturnTypeName: def.Name,
			ReturnType:     class,
			Body:           def.Constructor,
			Owner:          class,
			Params:         declareParams(def.Params),
		}
		if err := c.registry.Declare(class); err != nil {
			return err
		}
		for _, mdef := range def.Methods {
			if mdef == nil {
				continue
			}
			method := &Method{
				Name:           mdef.Name,
				Params:         declareParams(mdef.Params),
				ReturnTypeName: mdef.ReturnType,
				Body:           mdef.Body,
				Definition:     mdef,
			}
			if mdef.Name == def.Name {
				method.Owner = class
				return methodError(DuplicateMethod, method, "method %s clashes with the constructor", mdef.Name)
			}
			if !class.addMethod(method) {
				method.Owner = class
				return methodError(DuplicateMethod, method, "method %s is declared more than once", mdef.Name)
			}
		}
	}
	return nil
}

func declareParams(defs []*ast.Parameter) []*Param {
	params := make([]*Param, 0, len(defs))
	for _, def := range defs {
		if def == nil {
			continue
		}
		params = append(params, &Param{Name: def.Name, TypeName: def.TypeName})
	}
	return params
}

// resolveClasses links every user class to its super class and resolves the
// parameter and return type names of its constructor and methods.
func (c *Checker) resolveClasses() error {
	for _, class := range c.registry.UserClasses() {
		superName := class.SuperName
		if superName == "" {
			superName = ObjectName
		}
		super, ok := c.registry.Lookup(superName)
		if !ok {
			return classError(UnknownType, class, "super class %q is not defined", superName)
		}
		class.Super = super
		if err := c.resolveParams(class.Constructor); err != nil {
			return err
		}
		for _, method := range class.Methods() {
			if err := c.resolveParams(method); err != nil {
				return err
			}
			if err := c.resolveReturnType(method); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Checker) resolveParams(method *Method) error {
	seen := make(map[string]struct{}, len(method.Params))
	for _, param := range method.Params {
		if _, dup := seen[param.Name]; dup {
			err := methodError(DuplicateParameter, method, "parameter %s is declared more than once", param.Name)
			err.Symbol = param.Name
			return err
		}
		seen[param.Name] = struct{}{}
		typ, err := c.registry.Resolve(param.TypeName)
		if err != nil {
			return locate(err, method, param.Name)
		}
		if typ == c.registry.NothingClass() {
			err := methodError(InvalidParameterType, method, "parameter %s cannot have type %s", param.Name, NothingName)
			err.Symbol = param.Name
			return err
		}
		param.Type = typ
	}
	return nil
}

func (c *Checker) resolveReturnType(method *Method) error {
	if method.ReturnTypeName == "" {
		method.ReturnType = c.registry.NothingClass()
		return nil
	}
	typ, err := c.registry.Resolve(method.ReturnTypeName)
	if err != nil {
		return locate(err, method, "")
	}
	method.ReturnType = typ
	return nil
}

// locate fills in where an error from the registry happened.
func locate(err error, method *Method, symbol string) error {
	var typeErr *Error
	if !errors.As(err, &typeErr) {
		return err
	}
	if method.Owner != nil {
		typeErr.Class = method.Owner.Name()
	}
	typeErr.Method = method.DisplayName()
	if symbol != "" {
		typeErr.Symbol = symbol
	}
	return typeErr
}

// checkCycles walks each class's super chain. A chain that comes back to the
// class it started from is a cycle through that class.
func (c *Checker) checkCycles() error {
	for _, class := range c.registry.UserClasses() {
		var visited []*Class
		for cur := class.Super; cur != nil; cur = cur.Super {
			if cur == class {
				return classError(CyclicInheritance, class, "class %s inherits from itself", class.Name())
			}
			if containsClass(visited, cur) {
				break
			}
			visited = append(visited, cur)
		}
	}
	return nil
}

func containsClass(classes []*Class, target *Class) bool {
	for _, class := range classes {
		if class == target {
			return true
		}
	}
	return false
}

// checkCovariance requires an overriding method to return a subtype of the
// return type of the method it overrides.
func (c *Checker) checkCovariance() error {
	for _, class := range c.registry.UserClasses() {
		if class.Super == nil {
			continue
		}
		for _, method := range class.Methods() {
			inherited, ok := class.Super.LookupMethod(method.Name)
			if !ok {
				continue
			}
			if !c.registry.IsSubtype(method.ReturnType, inherited.ReturnType) {
				err := methodError(InheritedMethodReturnTypeError, method,
					"return type %s is not a subtype of %s.%s's return type %s",
					method.ReturnType.Name(), inherited.Owner.Name(), inherited.Name, inherited.ReturnType.Name())
				err.Symbol = method.Name
				return err
			}
		}
	}
	return nil
}

// checkFieldInheritance runs after inference: a field a subclass shares with
// its super class must keep a type the super class accepts.
func (c *Checker) checkFieldInheritance() error {
	for _, class := range c.registry.UserClasses() {
		super := class.Super
		if super == nil || super.IsBuiltin() {
			continue
		}
		for _, inherited := range super.Fields() {
			field, ok := class.Field(inherited.Name)
			if !ok {
				continue
			}
			if !c.registry.IsSubtype(field.Type, inherited.Type) {
				err := classError(TypeMismatch, class, "field %s has type %s, which is not a subtype of %s.%s's type %s",
					field.Name, typeName(field.Type), super.Name(), inherited.Name, typeName(inherited.Type))
				err.Symbol = field.Name
				return err
			}
		}
	}
	return nil
}

// typeName renders a possibly unresolved type.
func typeName(typ *Class) string {
	if typ == nil {
		return "<unresolved>"
	}
	return typ.Name()
}
