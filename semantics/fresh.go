package semantics

import "github.com/fumisaitou/blisp/types"

// freshSupply hands out type variables with monotonically increasing
// ids, shared across an entire Elaborate call so ids stay unique.
type freshSupply struct{ next int }

func (f *freshSupply) tvar(name string) *types.TVar {
	f.next++
	return &types.TVar{ID: f.next, Name: name}
}

func (f *freshSupply) rigid(name string) *types.TVar {
	v := f.tvar(name)
	v.Rigid = true
	return v
}
