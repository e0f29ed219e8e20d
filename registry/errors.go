// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import "fmt"

// ErrorKind distinguishes the three failure modes a Builder can
// report, per spec.md §4.3.
type ErrorKind uint8

const (
	// DuplicateName: a register_* call named something already present
	// in that category.
	DuplicateName ErrorKind = iota
	// NotFound: a mutate_* call named something absent from that
	// category.
	NotFound
	// UnresolvedReference: Build() found a recipe or building
	// referencing a name that was never registered.
	UnresolvedReference
)

func (k ErrorKind) String() string {
	switch k {
	case DuplicateName:
		return "DuplicateName"
	case NotFound:
		return "NotFound"
	case UnresolvedReference:
		return "UnresolvedReference"
	default:
		return "Unknown"
	}
}

// Category enumerates the three registries a Builder maintains.
type Category uint8

const (
	CategoryItem Category = iota
	CategoryRecipe
	CategoryBuilding
)

func (c Category) String() string {
	switch c {
	case CategoryItem:
		return "item"
	case CategoryRecipe:
		return "recipe"
	case CategoryBuilding:
		return "building"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every Builder operation and by
// Build(). Category and Name identify what failed; Reference carries
// the dangling name for UnresolvedReference errors.
type Error struct {
	Kind      ErrorKind
	Category  Category
	Name      string
	Reference string
}

func (e *Error) Error() string {
	switch e.Kind {
	case DuplicateName:
		return fmt.Sprintf("registry: duplicate %s name %q", e.Category, e.Name)
	case NotFound:
		return fmt.Sprintf("registry: %s %q not found", e.Category, e.Name)
	case UnresolvedReference:
		return fmt.Sprintf("registry: %s %q references unregistered name %q", e.Category, e.Name, e.Reference)
	default:
		return fmt.Sprintf("registry: unknown error on %s %q", e.Category, e.Name)
	}
}

func errDuplicate(cat Category, name string) error {
	return &Error{Kind: DuplicateName, Category: cat, Name: name}
}

func errNotFound(cat Category, name string) error {
	return &Error{Kind: NotFound, Category: cat, Name: name}
}

func errUnresolved(cat Category, name, reference string) error {
	return &Error{Kind: UnresolvedReference, Category: cat, Name: name, Reference: reference}
}
