package galleria

import (
	"fmt"
	"reflect"
	"sync"
)

type EntityId uint64

type set[T comparable] = map[T]struct{}

// Ecs stores components in per-type tables keyed by entity id. Tables hold
// pointers to the component structs so queries can hand out stable *T values
// that systems mutate in place.
type Ecs struct {
	idLock    sync.Mutex
	idCounter EntityId

	tables   map[reflect.Type]map[EntityId]reflect.Value
	entities map[EntityId]set[reflect.Type]
}

func MakeEcs() Ecs {
	return Ecs{
		tables:   make(map[reflect.Type]map[EntityId]reflect.Value),
		entities: make(map[EntityId]set[reflect.Type]),
	}
}

func (ecs *Ecs) nextEntityId() EntityId {
	ecs.idLock.Lock()
	defer ecs.idLock.Unlock()

	id := ecs.idCounter
	ecs.idCounter += 1
	return id
}

func (ecs *Ecs) addEntity(components ...any) EntityId {
	return ecs.insertEntity(ecs.nextEntityId(), components...)
}

func (ecs *Ecs) insertEntity(entityId EntityId, components ...any) EntityId {
	if _, ok := ecs.entities[entityId]; !ok {
		ecs.entities[entityId] = make(set[reflect.Type])
	}
	ecs.addComponents(entityId, components...)
	return entityId
}

func (ecs *Ecs) addComponents(entityId EntityId, components ...any) {
	types, ok := ecs.entities[entityId]
	if !ok {
		// Entity was removed before the command buffer flushed; drop silently.
		return
	}

	for _, component := range components {
		compType, ptr := normalizeComponent(component)
		table, ok := ecs.tables[compType]
		if !ok {
			table = make(map[EntityId]reflect.Value)
			ecs.tables[compType] = table
		}
		table[entityId] = ptr
		types[compType] = struct{}{}
	}
}

func (ecs *Ecs) removeComponents(entityId EntityId, components ...any) {
	types, ok := ecs.entities[entityId]
	if !ok {
		return
	}

	for _, component := range components {
		compType, _ := normalizeComponent(component)
		if table, ok := ecs.tables[compType]; ok {
			delete(table, entityId)
		}
		delete(types, compType)
	}
}

func (ecs *Ecs) removeEntity(entityId EntityId) {
	types, ok := ecs.entities[entityId]
	if !ok {
		return
	}

	for compType := range types {
		delete(ecs.tables[compType], entityId)
	}
	delete(ecs.entities, entityId)
}

func (ecs *Ecs) componentPtr(entityId EntityId, compType reflect.Type) (reflect.Value, bool) {
	table, ok := ecs.tables[compType]
	if !ok {
		return reflect.Value{}, false
	}
	ptr, ok := table[entityId]
	return ptr, ok
}

func (ecs *Ecs) table(compType reflect.Type) map[EntityId]reflect.Value {
	return ecs.tables[compType]
}

// normalizeComponent accepts either T or *T where T is a struct and returns
// the struct type plus a pointer value owned by the store.
func normalizeComponent(component any) (reflect.Type, reflect.Value) {
	val := reflect.ValueOf(component)
	typ := val.Type()

	if typ.Kind() == reflect.Pointer {
		if typ.Elem().Kind() != reflect.Struct {
			panic(fmt.Sprintf("component must be a struct or pointer to struct, got %s", typ))
		}
		return typ.Elem(), val
	}

	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("component must be a struct or pointer to struct, got %s", typ))
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(val)
	return typ, ptr
}
