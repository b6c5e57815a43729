package typechecker

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
)

// InitializedSet is the set of names assigned on every path reaching a
// program point. Branches work on clones and are joined by intersection.
type InitializedSet struct {
	keys *set.Set[SymbolKey]
}

// NewInitializedSet returns a set holding keys.
func NewInitializedSet(keys ...SymbolKey) *InitializedSet {
	s := &InitializedSet{keys: set.New[SymbolKey](len(keys))}
	s.keys.InsertSlice(keys)
	return s
}

// Add marks key as initialized.
func (s *InitializedSet) Add(key SymbolKey) {
	s.keys.Insert(key)
}

func (s *InitializedSet) Contains(key SymbolKey) bool {
	return s.keys.Contains(key)
}

// Len counts locals and fields together.
func (s *InitializedSet) Len() int {
	return s.keys.Size()
}

// Clone returns an independent copy for a branch.
func (s *InitializedSet) Clone() *InitializedSet {
	return &InitializedSet{keys: s.keys.Copy()}
}

// UnionWith adds every key of other.
func (s *InitializedSet) UnionWith(other *InitializedSet) {
	s.keys.InsertSlice(other.keys.Slice())
}

// IntersectWith drops every key that other lacks.
func (s *InitializedSet) IntersectWith(other *InitializedSet) {
	for _, key := range s.keys.Slice() {
		if !other.keys.Contains(key) {
			s.keys.Remove(key)
		}
	}
}

// Fields returns the names of the field keys, sorted.
func (s *InitializedSet) Fields() []string {
	var names []string
	for _, key := range s.keys.Slice() {
		if key.IsField {
			names = append(names, key.Name)
		}
	}
	sort.Strings(names)
	return names
}
