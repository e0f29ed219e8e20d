// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package registry implements the three-phase (register / mutate /
// build) builder described in spec.md §4.3: item types, recipes, and
// building templates are registered by name, may be mutated while the
// builder is open, and are resolved into an immutable Registry by
// Build(). Grounded structurally on the teacher's error-accumulating
// config.Builder (config/builder.go), but spec.md §4.3 requires each
// register_*/mutate_* call to report its own outcome rather than
// deferring all validation to Build(), so calls here return an error
// directly instead of chaining through a stored builder-wide err field.
package registry

import "github.com/zakkeown/factorial/handle"

// ItemTypeID identifies a registered item type.
type ItemTypeID handle.Handle

func (id ItemTypeID) String() string { return handle.Handle(id).String() }

// RecipeID identifies a registered recipe.
type RecipeID handle.Handle

func (id RecipeID) String() string { return handle.Handle(id).String() }

// BuildingID identifies a registered building template.
type BuildingID handle.Handle

func (id BuildingID) String() string { return handle.Handle(id).String() }
