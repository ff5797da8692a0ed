package galleria

import (
	"reflect"
)

// Queries iterate every entity holding all of the requested component types.
// The Map callback returns false to stop iteration early. Pointers handed to
// the callback stay valid for the lifetime of the component.
type Query1[A any] struct{ ecs *Ecs }
type Query2[A, B any] struct{ ecs *Ecs }
type Query3[A, B, C any] struct{ ecs *Ecs }
type Query4[A, B, C, D any] struct{ ecs *Ecs }

func MakeQuery1[A any](cmd *Commands) Query1[A]             { return Query1[A]{ecs: cmd.app.ecs} }
func MakeQuery2[A, B any](cmd *Commands) Query2[A, B]       { return Query2[A, B]{ecs: cmd.app.ecs} }
func MakeQuery3[A, B, C any](cmd *Commands) Query3[A, B, C] { return Query3[A, B, C]{ecs: cmd.app.ecs} }
func MakeQuery4[A, B, C, D any](cmd *Commands) Query4[A, B, C, D] {
	return Query4[A, B, C, D]{ecs: cmd.app.ecs}
}

func componentType[A any]() reflect.Type {
	var a A
	return reflect.TypeOf(a)
}

func (q Query1[A]) Map(m func(EntityId, *A) bool) {
	table := q.ecs.table(componentType[A]())
	for eid, ptr := range table {
		if !m(eid, ptr.Interface().(*A)) {
			return
		}
	}
}

func (q Query2[A, B]) Map(m func(EntityId, *A, *B) bool) {
	ta := q.ecs.table(componentType[A]())
	tb := q.ecs.table(componentType[B]())
	if len(tb) < len(ta) {
		for eid, pb := range tb {
			pa, ok := ta[eid]
			if !ok {
				continue
			}
			if !m(eid, pa.Interface().(*A), pb.Interface().(*B)) {
				return
			}
		}
		return
	}
	for eid, pa := range ta {
		pb, ok := tb[eid]
		if !ok {
			continue
		}
		if !m(eid, pa.Interface().(*A), pb.Interface().(*B)) {
			return
		}
	}
}

func (q Query3[A, B, C]) Map(m func(EntityId, *A, *B, *C) bool) {
	ta := q.ecs.table(componentType[A]())
	tb := q.ecs.table(componentType[B]())
	tc := q.ecs.table(componentType[C]())
	for eid, pa := range ta {
		pb, ok := tb[eid]
		if !ok {
			continue
		}
		pc, ok := tc[eid]
		if !ok {
			continue
		}
		if !m(eid, pa.Interface().(*A), pb.Interface().(*B), pc.Interface().(*C)) {
			return
		}
	}
}

func (q Query4[A, B, C, D]) Map(m func(EntityId, *A, *B, *C, *D) bool) {
	ta := q.ecs.table(componentType[A]())
	tb := q.ecs.table(componentType[B]())
	tc := q.ecs.table(componentType[C]())
	td := q.ecs.table(componentType[D]())
	for eid, pa := range ta {
		pb, ok := tb[eid]
		if !ok {
			continue
		}
		pc, ok := tc[eid]
		if !ok {
			continue
		}
		pd, ok := td[eid]
		if !ok {
			continue
		}
		if !m(eid, pa.Interface().(*A), pb.Interface().(*B), pc.Interface().(*C), pd.Interface().(*D)) {
			return
		}
	}
}
