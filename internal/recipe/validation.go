package recipe

import (
	"fmt"
	"math"
	"strings"
)

const (
	maxNameLength        = 200
	maxUnitLength        = 50
	maxDescriptionLength = 10000
	maxComponents        = 100
	maxItemsPerComponent = 500
)

// ValidateName checks that a recipe, component or ingredient name is usable.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, maxNameLength)
	}
	return nil
}

// ValidateRecipe checks a recipe and its whole component tree.
func ValidateRecipe(in RecipeInput) error {
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if len(in.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, maxDescriptionLength)
	}
	if len(in.Components) > maxComponents {
		return fmt.Errorf("%w: more than %d components", ErrInvalidName, maxComponents)
	}
	for i, c := range in.Components {
		if err := ValidateComponent(c); err != nil {
			return fmt.Errorf("component %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateComponent checks a component with its ingredients and steps.
func ValidateComponent(in ComponentInput) error {
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if len(in.Ingredients) > maxItemsPerComponent || len(in.Steps) > maxItemsPerComponent {
		return fmt.Errorf("%w: component exceeds %d items", ErrInvalidName, maxItemsPerComponent)
	}
	for i, ing := range in.Ingredients {
		if err := ValidateIngredient(ing); err != nil {
			return fmt.Errorf("ingredient %d: %w", i+1, err)
		}
	}
	for i, s := range in.Steps {
		if err := ValidateStep(s); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// ValidateIngredient checks name, quantity and unit.
func ValidateIngredient(in IngredientInput) error {
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if in.Quantity < 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
		return fmt.Errorf("%w: quantity must be a non-negative number", ErrInvalidQuantity)
	}
	if len(in.Unit) > maxUnitLength {
		return fmt.Errorf("%w: unit exceeds %d characters", ErrInvalidQuantity, maxUnitLength)
	}
	return nil
}

// ValidateStep checks the step number and description.
func ValidateStep(in StepInput) error {
	if in.StepNumber < 1 {
		return fmt.Errorf("%w: step number must be at least 1", ErrInvalidStep)
	}
	if in.StepNumber > math.MaxInt32 {
		return fmt.Errorf("%w: step number must not exceed %d", ErrInvalidStep, math.MaxInt32)
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidStep)
	}
	if len(desc) > maxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidStep, maxDescriptionLength)
	}
	return nil
}
