package typechecker

import "fmt"

const (
	ObjectName  = "Object"
	IntName     = "Int"
	StringName  = "String"
	BoolName    = "Bool"
	NothingName = "Nothing"
)

// Registry owns every class of one compilation run. It is built with the
// built-in classes already registered; user classes are added by Declare.
type Registry struct {
	classes map[string]*Class
	order   []*Class
	nothing *Class
}

// NewRegistry returns a registry holding the built-in classes and Nothing.
func NewRegistry() *Registry {
	r := &Registry{classes: make(map[string]*Class)}
	r.nothing = newClass(NothingName, "")
	r.nothing.builtin = true
	registerBuiltins(r)
	return r
}

// Declare adds a user class. Names must be unique across built-ins, user
// classes and Nothing.
func (r *Registry) Declare(class *Class) error {
	if class == nil {
		return fmt.Errorf("typechecker: cannot declare nil class")
	}
	if class.name == NothingName {
		return classError(DuplicateClass, class, "class name %s is reserved", NothingName)
	}
	if existing, ok := r.classes[class.name]; ok {
		if existing.builtin {
			return classError(DuplicateClass, class, "class %s redefines a built-in class", class.name)
		}
		return classError(DuplicateClass, class, "class %s is declared more than once", class.name)
	}
	r.classes[class.name] = class
	r.order = append(r.order, class)
	return nil
}

// Resolve maps a class name to its class. Nothing resolves to the no-value
// sentinel.
func (r *Registry) Resolve(name string) (*Class, error) {
	if name == NothingName {
		return r.nothing, nil
	}
	if class, ok := r.classes[name]; ok {
		return class, nil
	}
	return nil, &Error{Kind: UnknownType, Symbol: name, Message: fmt.Sprintf("unknown class %q", name)}
}

// Lookup is Resolve without the error and without Nothing.
func (r *Registry) Lookup(name string) (*Class, bool) {
	class, ok := r.classes[name]
	return class, ok
}

// ObjectClass returns the root of the lattice.
func (r *Registry) ObjectClass() *Class { return r.classes[ObjectName] }

// IntClass returns the built-in Int.
func (r *Registry) IntClass() *Class { return r.classes[IntName] }

// StringClass returns the built-in String.
func (r *Registry) StringClass() *Class { return r.classes[StringName] }

// BoolClass returns the built-in Bool.
func (r *Registry) BoolClass() *Class { return r.classes[BoolName] }

// NothingClass returns the no-value sentinel, which is not in the lattice.
func (r *Registry) NothingClass() *Class { return r.nothing }

func (r *Registry) owns(class *Class) bool {
	return class == r.nothing || r.classes[class.name] == class
}

// Classes returns built-ins followed by user classes in declaration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, len(r.order))
	copy(out, r.order)
	return out
}

// UserClasses returns the declared user classes in declaration order.
func (r *Registry) UserClasses() []*Class {
	var out []*Class
	for _, class := range r.order {
		if !class.builtin {
			out = append(out, class)
		}
	}
	return out
}

// IsSubtype reports whether b is a or one of a's ancestors. An unresolved
// (nil) a is a subtype of everything; Nothing is a subtype only of itself.
func (r *Registry) IsSubtype(a, b *Class) bool {
	if a == nil {
		return true
	}
	if b == nil {
		return false
	}
	if a == r.nothing || b == r.nothing {
		return a == b
	}
	for _, ancestor := range r.ancestry(a) {
		if ancestor == b {
			return true
		}
	}
	return false
}

// LeastCommonAncestor returns the most specific class that both a and b
// extend. A nil operand is the unresolved type and yields the other operand.
// The result is nil when exactly one operand is Nothing.
func (r *Registry) LeastCommonAncestor(a, b *Class) *Class {
	if a == nil {
		return b
	}
	if b == nil || a == b {
		return a
	}
	if a == r.nothing || b == r.nothing {
		return nil
	}
	chainA := rootFirst(r.ancestry(a))
	chainB := rootFirst(r.ancestry(b))
	var common *Class
	for i := 0; i < len(chainA) && i < len(chainB); i++ {
		if chainA[i] != chainB[i] {
			break
		}
		common = chainA[i]
	}
	if common == nil {
		return r.ObjectClass()
	}
	return common
}

// ancestry lists class, its super, its super's super and so on. The walk
// stops if the chain revisits a class so that it is safe to call before the
// cycle check has run.
func (r *Registry) ancestry(class *Class) []*Class {
	var chain []*Class
	seen := make(map[*Class]struct{})
	for cur := class; cur != nil; cur = cur.Super {
		if _, loop := seen[cur]; loop {
			break
		}
		seen[cur] = struct{}{}
		chain = append(chain, cur)
	}
	return chain
}

func rootFirst(chain []*Class) []*Class {
	out := make([]*Class, len(chain))
	for i, class := range chain {
		out[len(chain)-1-i] = class
	}
	return out
}
