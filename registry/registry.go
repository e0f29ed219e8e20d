// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"github.com/zakkeown/factorial/handle"
	"github.com/zakkeown/factorial/ordered"
)

// Registry is the immutable, finalized result of Builder.Build(). It
// is pinned for the process lifetime (spec.md §4.3, "Lifecycle") and
// is never mutated or serialized.
type Registry struct {
	items     *handle.Arena[ItemType]
	itemNames *ordered.Hashmap[string, ItemTypeID]

	recipes     *handle.Arena[Recipe]
	recipeNames *ordered.Hashmap[string, RecipeID]

	buildings     *handle.Arena[Building]
	buildingNames *ordered.Hashmap[string, BuildingID]
}

// Build resolves all cross-references (recipe inputs/outputs against
// item names, building templates against recipe names) and returns an
// immutable Registry, or a *registry.Error on the first unresolved
// reference encountered while walking registrations in insertion
// order.
func (b *Builder) Build() (*Registry, error) {
	r := &Registry{
		items:         handle.NewArena[ItemType](b.items.Len()),
		itemNames:     ordered.NewHashmap[string, ItemTypeID](),
		recipes:       handle.NewArena[Recipe](b.recipes.Len()),
		recipeNames:   ordered.NewHashmap[string, RecipeID](),
		buildings:     handle.NewArena[Building](b.buildings.Len()),
		buildingNames: ordered.NewHashmap[string, BuildingID](),
	}

	for _, name := range b.items.Keys() {
		d, _ := b.items.Get(name)
		id := ItemTypeID(r.items.Alloc(ItemType{}))
		r.items.Set(handle.Handle(id), ItemType{ID: id, Name: d.name, Properties: d.properties})
		r.itemNames.Put(name, id)
	}

	for _, name := range b.recipes.Keys() {
		d, _ := b.recipes.Get(name)
		inputs, err := resolveIOs(r, CategoryRecipe, d.name, d.inputs)
		if err != nil {
			return nil, err
		}
		outputs, err := resolveIOs(r, CategoryRecipe, d.name, d.outputs)
		if err != nil {
			return nil, err
		}
		id := RecipeID(r.recipes.Alloc(Recipe{}))
		r.recipes.Set(handle.Handle(id), Recipe{ID: id, Name: d.name, Inputs: inputs, Outputs: outputs, Duration: d.duration})
		r.recipeNames.Put(name, id)
	}

	for _, name := range b.buildings.Keys() {
		d, _ := b.buildings.Get(name)
		building := Building{Name: d.name}
		if d.template.RecipeName != "" {
			recipeID, ok := r.recipeNames.Get(d.template.RecipeName)
			if !ok {
				return nil, errUnresolved(CategoryBuilding, d.name, d.template.RecipeName)
			}
			building.Recipe = recipeID
			building.HasRecipe = true
		}
		id := BuildingID(r.buildings.Alloc(Building{}))
		building.ID = id
		r.buildings.Set(handle.Handle(id), building)
		r.buildingNames.Put(name, id)
	}

	return r, nil
}

func resolveIOs(r *Registry, cat Category, ownerName string, drafts []RecipeInput) ([]RecipeIO, error) {
	if len(drafts) == 0 {
		return nil, nil
	}
	out := make([]RecipeIO, len(drafts))
	for i, d := range drafts {
		id, ok := r.itemNames.Get(d.ItemName)
		if !ok {
			return nil, errUnresolved(cat, ownerName, d.ItemName)
		}
		out[i] = RecipeIO{Item: id, Quantity: d.Quantity}
	}
	return out, nil
}

// ItemByName looks up a registered item type by its registration name.
func (r *Registry) ItemByName(name string) (ItemType, bool) {
	id, ok := r.itemNames.Get(name)
	if !ok {
		return ItemType{}, false
	}
	return r.ItemByID(id)
}

// ItemByID looks up a registered item type by its resolved identifier.
func (r *Registry) ItemByID(id ItemTypeID) (ItemType, bool) {
	return r.items.Get(handle.Handle(id))
}

// RecipeByName looks up a registered recipe by its registration name.
func (r *Registry) RecipeByName(name string) (Recipe, bool) {
	id, ok := r.recipeNames.Get(name)
	if !ok {
		return Recipe{}, false
	}
	return r.RecipeByID(id)
}

// RecipeByID looks up a registered recipe by its resolved identifier.
func (r *Registry) RecipeByID(id RecipeID) (Recipe, bool) {
	return r.recipes.Get(handle.Handle(id))
}

// BuildingByName looks up a registered building template by name.
func (r *Registry) BuildingByName(name string) (Building, bool) {
	id, ok := r.buildingNames.Get(name)
	if !ok {
		return Building{}, false
	}
	return r.BuildingByID(id)
}

// BuildingByID looks up a registered building template by its
// resolved identifier.
func (r *Registry) BuildingByID(id BuildingID) (Building, bool) {
	return r.buildings.Get(handle.Handle(id))
}

// ItemNames returns all registered item-type names in registration
// order.
func (r *Registry) ItemNames() []string { return r.itemNames.Keys() }

// RecipeNames returns all registered recipe names in registration
// order.
func (r *Registry) RecipeNames() []string { return r.recipeNames.Keys() }

// BuildingNames returns all registered building-type names in
// registration order.
func (r *Registry) BuildingNames() []string { return r.buildingNames.Keys() }
