package recipe

import "time"

// Entity names used in errors, audit rows and change events.
const (
	EntityRecipe     = "recipe"
	EntityComponent  = "component"
	EntityIngredient = "ingredient"
	EntityStep       = "step"
)

// Owner is the user who created a recipe.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Recipe is a full recipe with its component tree.
type Recipe struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	CreatedBy   Owner       `json:"createdBy"`
	Components  []Component `json:"components"`
}

// Summary is the list view of a recipe. CreatedBy is the owner's username.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	CreatedBy   string    `json:"createdBy"`
}

// Component is a named part of a recipe such as "Dough" or "Filling".
type Component struct {
	ID          string       `json:"id"`
	RecipeID    string       `json:"-"`
	Name        string       `json:"name"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
}

// Ingredient is one measured item within a component.
type Ingredient struct {
	ID          string  `json:"id"`
	ComponentID string  `json:"-"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
}

// Step is one numbered instruction within a component.
type Step struct {
	ID          string `json:"id"`
	ComponentID string `json:"-"`
	StepNumber  int    `json:"stepNumber"`
	Description string `json:"description"`
}

// RecipeInput is the writable part of a recipe. On update the component
// tree replaces the existing one.
type RecipeInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Components  []ComponentInput `json:"components"`
}

// ComponentInput is the writable part of a component.
type ComponentInput struct {
	Name        string            `json:"name"`
	Ingredients []IngredientInput `json:"ingredients"`
	Steps       []StepInput       `json:"steps"`
}

// IngredientInput is the writable part of an ingredient.
type IngredientInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// StepInput is the writable part of a step.
type StepInput struct {
	StepNumber  int    `json:"stepNumber"`
	Description string `json:"description"`
}

// Ownership is the resolved parent chain of an entity.
type Ownership struct {
	RecipeID    string
	ComponentID string
	OwnerID     string
}

// Event describes a committed change to the recipe tree.
type Event struct {
	Action    string    `json:"action"`
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}
