package recipe

import (
	"errors"
	"fmt"
)

var (
	// ErrRecipeNotFound is returned when a recipe ID does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrComponentNotFound is returned when a component ID does not exist.
	ErrComponentNotFound = errors.New("component not found")

	// ErrIngredientNotFound is returned when an ingredient ID does not exist.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrStepNotFound is returned when a step ID does not exist.
	ErrStepNotFound = errors.New("step not found")

	// ErrOwnerNotFound is returned when a recipe points at a user that no longer exists.
	ErrOwnerNotFound = errors.New("recipe owner not found")

	// ErrInvalidName is returned for an empty or oversized name.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidQuantity is returned for a negative or non-finite quantity.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidStep is returned for a bad step number or description.
	ErrInvalidStep = errors.New("invalid step")

	// ErrInvalidDescription is returned for an oversized recipe description.
	ErrInvalidDescription = errors.New("invalid description")
)

// NotFoundError names the missing entity and its id. It unwraps to the
// entity's sentinel so callers can use errors.Is.
type NotFoundError struct {
	Entity string // "Recipe", "Component", "Ingredient", "Step", "User"
	ID     string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s was not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func recipeNotFound(id string) error {
	return &NotFoundError{Entity: "Recipe", ID: id, Err: ErrRecipeNotFound}
}

func componentNotFound(id string) error {
	return &NotFoundError{Entity: "Component", ID: id, Err: ErrComponentNotFound}
}

func ingredientNotFound(id string) error {
	return &NotFoundError{Entity: "Ingredient", ID: id, Err: ErrIngredientNotFound}
}

func stepNotFound(id string) error {
	return &NotFoundError{Entity: "Step", ID: id, Err: ErrStepNotFound}
}

func ownerNotFound(id string) error {
	return &NotFoundError{Entity: "User", ID: id, Err: ErrOwnerNotFound}
}

// orphanedRecipe reports a recipe whose creator row is gone. Callers see the
// recipe as missing; errors.Is still matches ErrOwnerNotFound.
func orphanedRecipe(id string) error {
	return &NotFoundError{Entity: "Recipe", ID: id, Err: fmt.Errorf("%w: %w", ErrRecipeNotFound, ErrOwnerNotFound)}
}
