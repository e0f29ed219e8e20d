// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import "github.com/zakkeown/factorial/ordered"

type itemDraft struct {
	name       string
	properties []PropertyDecl
}

type recipeDraft struct {
	name     string
	inputs   []RecipeInput
	outputs  []RecipeInput
	duration int64
}

type buildingDraft struct {
	name     string
	template BuildingTemplate
}

// Builder accumulates item, recipe, and building registrations by
// name in insertion order, so that Build()'s cross-reference
// resolution walks them deterministically.
type Builder struct {
	items     *ordered.Hashmap[string, *itemDraft]
	recipes   *ordered.Hashmap[string, *recipeDraft]
	buildings *ordered.Hashmap[string, *buildingDraft]
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		items:     ordered.NewHashmap[string, *itemDraft](),
		recipes:   ordered.NewHashmap[string, *recipeDraft](),
		buildings: ordered.NewHashmap[string, *buildingDraft](),
	}
}

// RegisterItem declares a new item type. Fails with DuplicateName if
// name is already registered in this category.
func (b *Builder) RegisterItem(name string, properties []PropertyDecl) error {
	if b.items.Contains(name) {
		return errDuplicate(CategoryItem, name)
	}
	b.items.Put(name, &itemDraft{name: name, properties: properties})
	return nil
}

// RegisterRecipe declares a new Fixed-recipe definition. Inputs and
// outputs reference item-type names resolved at Build().
func (b *Builder) RegisterRecipe(name string, inputs, outputs []RecipeInput, duration int64) error {
	if b.recipes.Contains(name) {
		return errDuplicate(CategoryRecipe, name)
	}
	b.recipes.Put(name, &recipeDraft{name: name, inputs: inputs, outputs: outputs, duration: duration})
	return nil
}

// RegisterBuilding declares a new building-type template.
func (b *Builder) RegisterBuilding(name string, template BuildingTemplate) error {
	if b.buildings.Contains(name) {
		return errDuplicate(CategoryBuilding, name)
	}
	b.buildings.Put(name, &buildingDraft{name: name, template: template})
	return nil
}

// MutateItem replaces the property declarations of an already
// registered item type. Fails with NotFound if name is unregistered.
func (b *Builder) MutateItem(name string, properties []PropertyDecl) error {
	d, ok := b.items.Get(name)
	if !ok {
		return errNotFound(CategoryItem, name)
	}
	d.properties = properties
	return nil
}

// MutateRecipe replaces the inputs, outputs, and duration of an
// already registered recipe.
func (b *Builder) MutateRecipe(name string, inputs, outputs []RecipeInput, duration int64) error {
	d, ok := b.recipes.Get(name)
	if !ok {
		return errNotFound(CategoryRecipe, name)
	}
	d.inputs = inputs
	d.outputs = outputs
	d.duration = duration
	return nil
}

// MutateBuilding replaces the template of an already registered
// building type.
func (b *Builder) MutateBuilding(name string, template BuildingTemplate) error {
	d, ok := b.buildings.Get(name)
	if !ok {
		return errNotFound(CategoryBuilding, name)
	}
	d.template = template
	return nil
}
