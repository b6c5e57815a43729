package typechecker

// builtinMethod describes a method pre-populated on a built-in class. The
// operator methods take at most one argument so that binary operators can be
// checked as ordinary calls on the left operand.
type builtinMethod struct {
	name    string
	params  []string
	returns string
}

var builtinClasses = []struct {
	name    string
	super   string
	methods []builtinMethod
}{
	{
		name:    ObjectName,
		methods: []builtinMethod{
			{name: "EQUALS", params: []string{ObjectName}, returns: BoolName},
			{name: "PRINT", returns: NothingName},
			{name: "STR", returns: StringName},
		},
	},
	{
		name:    IntName,
		super:   ObjectName,
		methods: []builtinMethod{
			{name: "ADD", params: []string{IntName}, returns: IntName},
			{name: "MINUS", params: []string{IntName}, returns: IntName},
			{name: "TIMES", params: []string{IntName}, returns: IntName},
			{name: "DIVIDE", params: []string{IntName}, returns: IntName},
			{name: "EQUALS", params: []string{ObjectName}, returns: BoolName},
			{name: "ATMOST", params: []string{IntName}, returns: BoolName},
			{name: "LESS", params: []string{IntName}, returns: BoolName},
			{name: "ATLEAST", params: []string{IntName}, returns: BoolName},
			{name: "MORE", params: []string{IntName}, returns: BoolName},
			{name: "STR", returns: StringName},
		},
	},
	{
		name:    StringName,
		super:   ObjectName,
		methods: []builtinMethod{
			{name: "ADD", params: []string{StringName}, returns: StringName},
			{name: "EQUALS", params: []string{ObjectName}, returns: BoolName},
			{name: "ATMOST", params: []string{StringName}, returns: BoolName},
			{name: "LESS", params: []string{StringName}, returns: BoolName},
			{name: "ATLEAST", params: []string{StringName}, returns: BoolName},
			{name: "MORE", params: []string{StringName}, returns: BoolName},
			{name: "STR", returns: StringName},
		},
	},
	{
		name:    BoolName,
		super:   ObjectName,
		methods: []builtinMethod{
			{name: "EQUALS", params: []string{ObjectName}, returns: BoolName},
			{name: "AND", params: []string{BoolName}, returns: BoolName},
			{name: "OR", params: []string{BoolName}, returns: BoolName},
			{name: "STR", returns: StringName},
		},
	},
}

// registerBuiltins installs Object, Int, String and Bool. Classes are
// registered before any method is resolved because Object's methods refer to
// Bool and String.
func registerBuiltins(r *Registry) {
	for _, spec := range builtinClasses {
		class := newClass(spec.name, spec.super)
		class.builtin = true
		class.Constructor = &Method{Name: spec.name, ReturnTypeName: spec.name, ReturnType: class, Owner: class}
		r.classes[spec.name] = class
		r.order = append(r.order, class)
	}
	for _, spec := range builtinClasses {
		class := r.classes[spec.name]
		if spec.super != "" {
			class.Super = r.classes[spec.super]
		}
		for _, m := range spec.methods {
			method := &Method{Name: m.name, ReturnTypeName: m.returns}
			method.ReturnType = r.mustResolve(m.returns)
			for _, typeName := range m.params {
				method.Params = append(method.Params, &Param{
					Name:     "other",
					TypeName: typeName,
					Type:     r.mustResolve(typeName),
				})
			}
			class.addMethod(method)
		}
	}
}

func (r *Registry) mustResolve(name string) *Class {
	class, err := r.Resolve(name)
	if err != nil {
		panic(err)
	}
	return class
}

