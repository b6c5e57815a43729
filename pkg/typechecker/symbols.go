package typechecker

import "sort"

// SymbolKey distinguishes a local or parameter from a field of the same name.
type SymbolKey struct {
	Name    string
	IsField bool
}

// Local and FieldKey build the two kinds of key.
func Local(name string) SymbolKey    { return SymbolKey{Name: name} }
func FieldKey(name string) SymbolKey { return SymbolKey{Name: name, IsField: true} }

func (k SymbolKey) String() string {
	if k.IsField {
		return "this." + k.Name
	}
	return k.Name
}

// Symbol is a name bound to its inferred type. Type only ever widens.
// Declared is set by a parameter or a type ascription and caps Type.
type Symbol struct {
	Key      SymbolKey
	Type     *Class
	Declared *Class
}

// SymbolTable holds the bindings of one inference unit. It is marked dirty
// whenever a binding changes so the unit can be re-run to a fixed point.
type SymbolTable struct {
	symbols map[SymbolKey]*Symbol
	dirty   bool
}

// NewSymbolTable returns an empty, clean table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[SymbolKey]*Symbol)}
}

func (t *SymbolTable) Lookup(key SymbolKey) (*Symbol, bool) {
	sym, ok := t.symbols[key]
	return sym, ok
}

// Define creates a binding. Creating a binding counts as a change.
func (t *SymbolTable) Define(key SymbolKey, typ, declared *Class) *Symbol {
	sym := &Symbol{Key: key, Type: typ, Declared: declared}
	t.symbols[key] = sym
	t.dirty = true
	return sym
}

// Update replaces a symbol's type, marking the table dirty on change.
func (t *SymbolTable) Update(sym *Symbol, typ *Class) {
	if sym.Type == typ {
		return
	}
	sym.Type = typ
	t.dirty = true
}

// Bind shadows key with a fresh declared binding and returns a function that
// restores whatever was bound before. Neither step marks the table dirty.
func (t *SymbolTable) Bind(key SymbolKey, typ *Class) (restore func()) {
	prev, had := t.symbols[key]
	t.symbols[key] = &Symbol{Key: key, Type: typ, Declared: typ}
	return func() {
		if had {
			t.symbols[key] = prev
			return
		}
		delete(t.symbols, key)
	}
}

// Dirty reports whether any binding changed since the last ClearDirty.
func (t *SymbolTable) Dirty() bool { return t.dirty }

func (t *SymbolTable) ClearDirty() { t.dirty = false }

// Fields returns the field bindings sorted by name.
func (t *SymbolTable) Fields() []*Symbol {
	var out []*Symbol
	for key, sym := range t.symbols {
		if key.IsField {
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Name < out[j].Key.Name })
	return out
}
