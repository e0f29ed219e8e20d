// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

// PropertyKind is the fixed-layout value kind of a stateful item's
// property slot.
type PropertyKind uint8

const (
	PropertyInt64 PropertyKind = iota
	PropertyFixed32
	PropertyFixed64
	PropertyBool
)

// PropertyDecl declares one named, typed slot in a stateful item
// type's fixed-layout record.
type PropertyDecl struct {
	Name string
	Kind PropertyKind
}

// ItemType is a finalized, registered item type. Properties being
// non-empty makes the type stateful (§"Entities": "a type with
// properties is stateful").
type ItemType struct {
	ID         ItemTypeID
	Name       string
	Properties []PropertyDecl
}

// Stateful reports whether occurrences of this type carry a property
// record (true) or are tracked purely by integer count (false).
func (t ItemType) Stateful() bool {
	return len(t.Properties) > 0
}

// RecipeInput names an item-type reference by registration name; a
// recipe's Inputs/Outputs drafts carry these until Build() resolves
// them to ItemTypeID.
type RecipeInput struct {
	ItemName string
	Quantity int64
}

// RecipeIO is a resolved (item type, quantity) pair, the post-Build
// form of RecipeInput.
type RecipeIO struct {
	Item     ItemTypeID
	Quantity int64
}

// Recipe is a finalized Fixed-recipe processor definition.
type Recipe struct {
	ID       RecipeID
	Name     string
	Inputs   []RecipeIO
	Outputs  []RecipeIO
	Duration int64
}

// BuildingTemplate is the pre-Build draft of a building's static
// configuration: a default recipe reference (by name, optional). It
// carries no other static properties.
type BuildingTemplate struct {
	RecipeName string // empty if the building has no default recipe
}

// Building is a finalized building-type definition.
type Building struct {
	ID         BuildingID
	Name       string
	Recipe     RecipeID // only valid if HasRecipe
	HasRecipe  bool
}
