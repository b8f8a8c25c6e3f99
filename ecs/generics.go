package ecs

// Add attaches c to entity id and returns it.
func Add[T Component](w *World, id EntityID, c T) (T, error) {
	if err := w.AddComponent(id, c); err != nil {
		var zero T
		return zero, err
	}
	return c, nil
}

// Get returns the component of entity id tagged ident, typed as T.
func Get[T Component](w *World, id EntityID, ident Identifier) (T, bool) {
	var zero T
	c, ok := w.Component(id, ident)
	if !ok {
		return zero, false
	}
	cast, ok := c.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// Sibling looks up another component on the entity owning c.
func Sibling[T Component](c Component, ident Identifier) (T, bool) {
	var zero T
	e := c.base().entity
	if e == nil {
		return zero, false
	}
	return Get[T](e.world, e.id, ident)
}
