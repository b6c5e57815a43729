package typechecker

import "github.com/ZaydH/cis561/pkg/ast"

// Class is a node of the subtype lattice. Built-ins and user classes share
// the representation; the no-value sentinel Nothing is also a *Class but is
// never part of the Object hierarchy.
type Class struct {
	name string

	// SuperName is the declared super class; empty means Object.
	SuperName string
	Super     *Class

	Constructor *Method
	Definition  *ast.ClassDefinition

	methods     map[string]*Method
	methodOrder []string
	fields      map[string]*Field
	fieldOrder  []string
	builtin     bool
}

func newClass(name, superName string) *Class {
	return &Class{
		name:      name,
		SuperName: superName,
		methods:   make(map[string]*Method),
		fields:    make(map[string]*Field),
	}
}

func (c *Class) Name() string { return c.name }

func (c *Class) String() string { return c.name }

// IsBuiltin reports whether the class was registered by NewRegistry.
func (c *Class) IsBuiltin() bool { return c.builtin }

func (c *Class) addMethod(method *Method) bool {
	if _, exists := c.OwnMethod(method.Name); exists {
		return false
	}
	method.Owner = c
	c.methods[method.Name] = method
	c.methodOrder = append(c.methodOrder, method.Name)
	return true
}

// OwnMethod returns a method declared directly on the class.
func (c *Class) OwnMethod(name string) (*Method, bool) {
	method, ok := c.methods[name]
	return method, ok
}

// LookupMethod finds a method on the class or the nearest ancestor that
// declares it.
func (c *Class) LookupMethod(name string) (*Method, bool) {
	seen := make(map[*Class]struct{})
	for cur := c; cur != nil; cur = cur.Super {
		if _, loop := seen[cur]; loop {
			break
		}
		seen[cur] = struct{}{}
		if method, ok := cur.OwnMethod(name); ok {
			return method, true
		}
	}
	return nil, false
}

// Methods returns the class's own methods in declaration order.
func (c *Class) Methods() []*Method {
	out := make([]*Method, 0, len(c.methodOrder))
	for _, name := range c.methodOrder {
		out = append(out, c.methods[name])
	}
	return out
}

func (c *Class) addField(name string) *Field {
	if field, ok := c.fields[name]; ok {
		return field
	}
	field := &Field{Name: name}
	c.fields[name] = field
	c.fieldOrder = append(c.fieldOrder, name)
	return field
}

// Field returns an entry of the class's field table. The table is complete
// once initialization analysis has run.
func (c *Class) Field(name string) (*Field, bool) {
	field, ok := c.fields[name]
	return field, ok
}

// Fields returns the field table in registration order.
func (c *Class) Fields() []*Field {
	out := make([]*Field, 0, len(c.fieldOrder))
	for _, name := range c.fieldOrder {
		out = append(out, c.fields[name])
	}
	return out
}

// Method is a method or a constructor. A constructor's Name equals its
// owner's name and its ReturnType is the owner.
type Method struct {
	Name           string
	Params         []*Param
	ReturnTypeName string
	ReturnType     *Class
	Body           *ast.BlockStatement
	Owner          *Class
	Definition     *ast.MethodDefinition
}

func (m *Method) IsConstructor() bool {
	return m.Owner != nil && m.Name == m.Owner.name
}

// DisplayName is the name used in diagnostics and traces.
func (m *Method) DisplayName() string {
	if m.IsConstructor() {
		return "<constructor>"
	}
	return m.Name
}

type Param struct {
	Name     string
	TypeName string
	Type     *Class
}

// Field is a member of a class's field table. Type is unresolved until the
// owner's constructor has been inferred.
type Field struct {
	Name string
	Type *Class
}
