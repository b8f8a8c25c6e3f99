package component

import "errors"

var (
	ErrMissingSibling = errors.New("component: missing sibling component")
	ErrNoScript       = errors.New("component: map object has no script")
)
