package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/recipe-manager/internal/infrastructure/database"
)

// Repository defines the interface for recipe tree persistence.
//
// Every mutation below a recipe refreshes the recipe's updated_at in the
// same transaction. The *Owner methods walk the parent chain and report a
// missing link as NotFound of that link.
type Repository interface {
	ListRecipes(ctx context.Context) ([]Summary, error)
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
	CreateRecipe(ctx context.Context, ownerID string, in RecipeInput) (*Recipe, error)
	UpdateRecipe(ctx context.Context, id string, in RecipeInput) (*Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	RecipeOwner(ctx context.Context, id string) (Ownership, error)

	ListComponents(ctx context.Context, recipeID string) ([]Component, error)
	GetComponent(ctx context.Context, id string) (*Component, error)
	AddComponent(ctx context.Context, recipeID string, in ComponentInput) (*Component, error)
	UpdateComponent(ctx context.Context, id string, in ComponentInput) (*Component, error)
	DeleteComponent(ctx context.Context, id string) error
	ComponentOwner(ctx context.Context, id string) (Ownership, error)

	ListIngredients(ctx context.Context, componentID string) ([]Ingredient, error)
	AddIngredient(ctx context.Context, componentID string, in IngredientInput) (*Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error
	IngredientOwner(ctx context.Context, id string) (Ownership, error)

	ListSteps(ctx context.Context, componentID string) ([]Step, error)
	AddStep(ctx context.Context, componentID string, in StepInput) (*Step, error)
	DeleteStep(ctx context.Context, id string) error
	StepOwner(ctx context.Context, id string) (Ownership, error)
}

// SQLRepository implements Repository on SQLite or PostgreSQL.
type SQLRepository struct {
	db  *database.DB
	now func() time.Time
}

// NewRepository creates a new recipe repository.
func NewRepository(db *database.DB) *SQLRepository {
	return &SQLRepository{db: db, now: time.Now}
}

func (r *SQLRepository) timestamp() string {
	return database.FormatTime(r.now())
}

// ─── Recipes ────────────────────────────────────────────────────────

// ListRecipes returns every recipe, oldest first.
func (r *SQLRepository) ListRecipes(ctx context.Context) ([]Summary, error) {
	const query = `SELECT r.id, r.name, r.description, r.created_at, r.updated_at,
		COALESCE(u.username, '')
		FROM recipes r LEFT JOIN users u ON u.id = r.created_by
		ORDER BY r.created_at, r.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying recipes: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		var createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &createdAt, &updatedAt, &s.CreatedBy); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		if s.CreatedAt, err = database.ParseTime(createdAt); err != nil {
			return nil, err
		}
		if s.UpdatedAt, err = database.ParseTime(updatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipes: %w", err)
	}
	return summaries, nil
}

// GetRecipe returns a recipe with its full component tree.
func (r *SQLRepository) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	return getRecipe(ctx, r.db, id)
}

func getRecipe(ctx context.Context, q database.Querier, id string) (*Recipe, error) {
	const query = `SELECT r.id, r.name, r.description, r.created_at, r.updated_at,
		r.created_by, COALESCE(u.username, '')
		FROM recipes r LEFT JOIN users u ON u.id = r.created_by
		WHERE r.id = ?`

	var rec Recipe
	var createdAt, updatedAt string
	err := q.QueryRowContext(ctx, query, id).Scan(&rec.ID, &rec.Name, &rec.Description,
		&createdAt, &updatedAt, &rec.CreatedBy.ID, &rec.CreatedBy.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recipeNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying recipe %s: %w", id, err)
	}
	if rec.CreatedAt, err = database.ParseTime(createdAt); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = database.ParseTime(updatedAt); err != nil {
		return nil, err
	}

	if rec.Components, err = loadComponentTree(ctx, q, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateRecipe inserts a recipe and its component tree owned by ownerID.
func (r *SQLRepository) CreateRecipe(ctx context.Context, ownerID string, in RecipeInput) (*Recipe, error) {
	id := uuid.NewString()
	ts := r.timestamp()

	var rec *Recipe
	err := r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		const query = `INSERT INTO recipes (id, name, description, created_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`
		if _, err := q.ExecContext(ctx, query,
			id, strings.TrimSpace(in.Name), in.Description, ownerID, ts, ts); err != nil {
			if database.IsForeignKeyViolation(err) {
				return ownerNotFound(ownerID)
			}
			return fmt.Errorf("inserting recipe: %w", err)
		}
		for _, c := range in.Components {
			if _, err := insertComponent(ctx, q, id, c); err != nil {
				return err
			}
		}

		var err error
		rec, err = getRecipe(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// UpdateRecipe replaces name, description and the whole component tree.
func (r *SQLRepository) UpdateRecipe(ctx context.Context, id string, in RecipeInput) (*Recipe, error) {
	var rec *Recipe
	err := r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		const query = `UPDATE recipes SET name = ?, description = ?, updated_at = ? WHERE id = ?`
		res, err := q.ExecContext(ctx, query, strings.TrimSpace(in.Name), in.Description, r.timestamp(), id)
		if err != nil {
			return fmt.Errorf("updating recipe %s: %w", id, err)
		}
		if err := expectRow(res, recipeNotFound(id)); err != nil {
			return err
		}

		// Ingredients and steps go with their component via ON DELETE CASCADE.
		if _, err := q.ExecContext(ctx, `DELETE FROM components WHERE recipe_id = ?`, id); err != nil {
			return fmt.Errorf("clearing components of recipe %s: %w", id, err)
		}
		for _, c := range in.Components {
			if _, err := insertComponent(ctx, q, id, c); err != nil {
				return err
			}
		}

		rec, err = getRecipe(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// DeleteRecipe removes a recipe and its whole tree.
func (r *SQLRepository) DeleteRecipe(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe %s: %w", id, err)
	}
	return expectRow(res, recipeNotFound(id))
}

// RecipeOwner returns the creator of a recipe. A recipe whose creator no
// longer exists is reported as missing itself.
func (r *SQLRepository) RecipeOwner(ctx context.Context, id string) (Ownership, error) {
	const query = `SELECT r.created_by, u.id
		FROM recipes r LEFT JOIN users u ON u.id = r.created_by
		WHERE r.id = ?`

	var createdBy string
	var userID sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&createdBy, &userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Ownership{}, recipeNotFound(id)
	}
	if err != nil {
		return Ownership{}, fmt.Errorf("resolving owner of recipe %s: %w", id, err)
	}
	if !userID.Valid {
		return Ownership{}, orphanedRecipe(id)
	}
	return Ownership{RecipeID: id, OwnerID: createdBy}, nil
}

// ─── Components ─────────────────────────────────────────────────────

// ListComponents returns the components of a recipe in insertion order.
func (r *SQLRepository) ListComponents(ctx context.Context, recipeID string) ([]Component, error) {
	if err := recipeExists(ctx, r.db, recipeID); err != nil {
		return nil, err
	}
	return loadComponentTree(ctx, r.db, recipeID)
}

// GetComponent returns a component with its ingredients and steps.
func (r *SQLRepository) GetComponent(ctx context.Context, id string) (*Component, error) {
	return getComponent(ctx, r.db, id)
}

func getComponent(ctx context.Context, q database.Querier, id string) (*Component, error) {
	var c Component
	err := q.QueryRowContext(ctx, `SELECT id, recipe_id, name FROM components WHERE id = ?`, id).
		Scan(&c.ID, &c.RecipeID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, componentNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying component %s: %w", id, err)
	}

	if c.Ingredients, err = queryIngredients(ctx, q, ingredientsByComponent, id); err != nil {
		return nil, err
	}
	if c.Steps, err = querySteps(ctx, q, stepsByComponent, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// AddComponent appends a component with its children to a recipe.
func (r *SQLRepository) AddComponent(ctx context.Context, recipeID string, in ComponentInput) (*Component, error) {
	var comp *Component
	err := r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		if err := recipeExists(ctx, q, recipeID); err != nil {
			return err
		}
		id, err := insertComponent(ctx, q, recipeID, in)
		if err != nil {
			return err
		}
		if err := touchRecipe(ctx, q, recipeID, r.timestamp()); err != nil {
			return err
		}
		comp, err = getComponent(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// UpdateComponent renames a component and replaces its ingredients and steps.
func (r *SQLRepository) UpdateComponent(ctx context.Context, id string, in ComponentInput) (*Component, error) {
	var comp *Component
	err := r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		recipeID, err := componentRecipeID(ctx, q, id)
		if err != nil {
			return err
		}

		if _, err := q.ExecContext(ctx, `UPDATE components SET name = ? WHERE id = ?`,
			strings.TrimSpace(in.Name), id); err != nil {
			return fmt.Errorf("updating component %s: %w", id, err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM ingredients WHERE component_id = ?`, id); err != nil {
			return fmt.Errorf("clearing ingredients of component %s: %w", id, err)
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM steps WHERE component_id = ?`, id); err != nil {
			return fmt.Errorf("clearing steps of component %s: %w", id, err)
		}
		if err := insertChildren(ctx, q, id, in); err != nil {
			return err
		}
		if err := touchRecipe(ctx, q, recipeID, r.timestamp()); err != nil {
			return err
		}

		comp, err = getComponent(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return comp, nil
}

// DeleteComponent removes a component with its ingredients and steps.
func (r *SQLRepository) DeleteComponent(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		recipeID, err := componentRecipeID(ctx, q, id)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM components WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting component %s: %w", id, err)
		}
		return touchRecipe(ctx, q, recipeID, r.timestamp())
	})
}

// ComponentOwner resolves component → recipe → creator.
func (r *SQLRepository) ComponentOwner(ctx context.Context, id string) (Ownership, error) {
	recipeID, err := componentRecipeID(ctx, r.db, id)
	if err != nil {
		return Ownership{}, err
	}
	own, err := r.RecipeOwner(ctx, recipeID)
	if err != nil {
		return Ownership{}, err
	}
	own.ComponentID = id
	return own, nil
}

// ─── Ingredients ────────────────────────────────────────────────────

// ListIngredients returns the ingredients of a component in insertion order.
func (r *SQLRepository) ListIngredients(ctx context.Context, componentID string) ([]Ingredient, error) {
	if _, err := componentRecipeID(ctx, r.db, componentID); err != nil {
		return nil, err
	}
	return queryIngredients(ctx, r.db, ingredientsByComponent, componentID)
}

// AddIngredient appends an ingredient to a component.
func (r *SQLRepository) AddIngredient(ctx context.Context, componentID string, in IngredientInput) (*Ingredient, error) {
	var ing *Ingredient
	err := r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		recipeID, err := componentRecipeID(ctx, q, componentID)
		if err != nil {
			return err
		}
		if ing, err = insertIngredient(ctx, q, componentID, in); err != nil {
			return err
		}
		return touchRecipe(ctx, q, recipeID, r.timestamp())
	})
	if err != nil {
		return nil, err
	}
	return ing, nil
}

// DeleteIngredient removes one ingredient.
func (r *SQLRepository) DeleteIngredient(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		componentID, err := parentComponentID(ctx, q, "ingredients", id, ingredientNotFound(id))
		if err != nil {
			return err
		}
		recipeID, err := componentRecipeID(ctx, q, componentID)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM ingredients WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting ingredient %s: %w", id, err)
		}
		return touchRecipe(ctx, q, recipeID, r.timestamp())
	})
}

// IngredientOwner resolves ingredient → component → recipe → creator.
func (r *SQLRepository) IngredientOwner(ctx context.Context, id string) (Ownership, error) {
	componentID, err := parentComponentID(ctx, r.db, "ingredients", id, ingredientNotFound(id))
	if err != nil {
		return Ownership{}, err
	}
	return r.ComponentOwner(ctx, componentID)
}

// ─── Steps ──────────────────────────────────────────────────────────

// ListSteps returns the steps of a component ordered by step number.
func (r *SQLRepository) ListSteps(ctx context.Context, componentID string) ([]Step, error) {
	if _, err := componentRecipeID(ctx, r.db, componentID); err != nil {
		return nil, err
	}
	return querySteps(ctx, r.db, stepsByComponent, componentID)
}

// AddStep appends a step to a component.
func (r *SQLRepository) AddStep(ctx context.Context, componentID string, in StepInput) (*Step, error) {
	var step *Step
	err := r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		recipeID, err := componentRecipeID(ctx, q, componentID)
		if err != nil {
			return err
		}
		if step, err = insertStep(ctx, q, componentID, in); err != nil {
			return err
		}
		return touchRecipe(ctx, q, recipeID, r.timestamp())
	})
	if err != nil {
		return nil, err
	}
	return step, nil
}

// DeleteStep removes one step.
func (r *SQLRepository) DeleteStep(ctx context.Context, id string) error {
	return r.db.WithTx(ctx, func(ctx context.Context, q database.Querier) error {
		componentID, err := parentComponentID(ctx, q, "steps", id, stepNotFound(id))
		if err != nil {
			return err
		}
		recipeID, err := componentRecipeID(ctx, q, componentID)
		if err != nil {
			return err
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM steps WHERE id = ?`, id); err != nil {
			return fmt.Errorf("deleting step %s: %w", id, err)
		}
		return touchRecipe(ctx, q, recipeID, r.timestamp())
	})
}

// StepOwner resolves step → component → recipe → creator.
func (r *SQLRepository) StepOwner(ctx context.Context, id string) (Ownership, error) {
	componentID, err := parentComponentID(ctx, r.db, "steps", id, stepNotFound(id))
	if err != nil {
		return Ownership{}, err
	}
	return r.ComponentOwner(ctx, componentID)
}

// ─── Helpers ────────────────────────────────────────────────────────

const (
	ingredientsByComponent = `SELECT id, component_id, name, quantity, unit
		FROM ingredients WHERE component_id = ? ORDER BY position, id`
	ingredientsByRecipe = `SELECT i.id, i.component_id, i.name, i.quantity, i.unit
		FROM ingredients i JOIN components c ON c.id = i.component_id
		WHERE c.recipe_id = ? ORDER BY i.position, i.id`
	stepsByComponent = `SELECT id, component_id, step_number, description
		FROM steps WHERE component_id = ? ORDER BY step_number, position, id`
	stepsByRecipe = `SELECT s.id, s.component_id, s.step_number, s.description
		FROM steps s JOIN components c ON c.id = s.component_id
		WHERE c.recipe_id = ? ORDER BY s.step_number, s.position, s.id`
)

// expectRow returns notFound when res touched no rows.
func expectRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func recipeExists(ctx context.Context, q database.Querier, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM recipes WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return recipeNotFound(id)
	}
	if err != nil {
		return fmt.Errorf("checking recipe %s: %w", id, err)
	}
	return nil
}

func componentRecipeID(ctx context.Context, q database.Querier, id string) (string, error) {
	var recipeID string
	err := q.QueryRowContext(ctx, `SELECT recipe_id FROM components WHERE id = ?`, id).Scan(&recipeID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", componentNotFound(id)
	}
	if err != nil {
		return "", fmt.Errorf("querying component %s: %w", id, err)
	}
	return recipeID, nil
}

// parentComponentID looks up the component_id of a row in ingredients or steps.
func parentComponentID(ctx context.Context, q database.Querier, table, id string, notFound error) (string, error) {
	var componentID string
	query := "SELECT component_id FROM " + table + " WHERE id = ?"
	err := q.QueryRowContext(ctx, query, id).Scan(&componentID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound
	}
	if err != nil {
		return "", fmt.Errorf("querying %s %s: %w", table, id, err)
	}
	return componentID, nil
}

func touchRecipe(ctx context.Context, q database.Querier, recipeID, ts string) error {
	res, err := q.ExecContext(ctx, `UPDATE recipes SET updated_at = ? WHERE id = ?`, ts, recipeID)
	if err != nil {
		return fmt.Errorf("touching recipe %s: %w", recipeID, err)
	}
	return expectRow(res, recipeNotFound(recipeID))
}

func insertComponent(ctx context.Context, q database.Querier, recipeID string, in ComponentInput) (string, error) {
	id := uuid.NewString()
	const query = `INSERT INTO components (id, recipe_id, name, position)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM components WHERE recipe_id = ?))`
	if _, err := q.ExecContext(ctx, query, id, recipeID, strings.TrimSpace(in.Name), recipeID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return "", recipeNotFound(recipeID)
		}
		return "", fmt.Errorf("inserting component: %w", err)
	}
	if err := insertChildren(ctx, q, id, in); err != nil {
		return "", err
	}
	return id, nil
}

func insertChildren(ctx context.Context, q database.Querier, componentID string, in ComponentInput) error {
	for _, ing := range in.Ingredients {
		if _, err := insertIngredient(ctx, q, componentID, ing); err != nil {
			return err
		}
	}
	for _, s := range in.Steps {
		if _, err := insertStep(ctx, q, componentID, s); err != nil {
			return err
		}
	}
	return nil
}

func insertIngredient(ctx context.Context, q database.Querier, componentID string, in IngredientInput) (*Ingredient, error) {
	ing := &Ingredient{
		ID:          uuid.NewString(),
		ComponentID: componentID,
		Name:        strings.TrimSpace(in.Name),
		Quantity:    in.Quantity,
		Unit:        strings.TrimSpace(in.Unit),
	}
	const query = `INSERT INTO ingredients (id, component_id, name, quantity, unit, position)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM ingredients WHERE component_id = ?))`
	if _, err := q.ExecContext(ctx, query,
		ing.ID, componentID, ing.Name, ing.Quantity, ing.Unit, componentID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, componentNotFound(componentID)
		}
		return nil, fmt.Errorf("inserting ingredient: %w", err)
	}
	return ing, nil
}

func insertStep(ctx context.Context, q database.Querier, componentID string, in StepInput) (*Step, error) {
	step := &Step{
		ID:          uuid.NewString(),
		ComponentID: componentID,
		StepNumber:  in.StepNumber,
		Description: strings.TrimSpace(in.Description),
	}
	const query = `INSERT INTO steps (id, component_id, step_number, description, position)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM steps WHERE component_id = ?))`
	if _, err := q.ExecContext(ctx, query,
		step.ID, componentID, step.StepNumber, step.Description, componentID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, componentNotFound(componentID)
		}
		return nil, fmt.Errorf("inserting step: %w", err)
	}
	return step, nil
}

// loadComponentTree returns a recipe's components with children attached.
// Each query is drained before the next one starts so a single-connection
// pool cannot deadlock.
func loadComponentTree(ctx context.Context, q database.Querier, recipeID string) ([]Component, error) {
	components, err := queryComponents(ctx, q, recipeID)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return components, nil
	}

	index := make(map[string]int, len(components))
	for i, c := range components {
		index[c.ID] = i
	}

	ingredients, err := queryIngredients(ctx, q, ingredientsByRecipe, recipeID)
	if err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		if i, ok := index[ing.ComponentID]; ok {
			components[i].Ingredients = append(components[i].Ingredients, ing)
		}
	}

	steps, err := querySteps(ctx, q, stepsByRecipe, recipeID)
	if err != nil {
		return nil, err
	}
	for _, s := range steps {
		if i, ok := index[s.ComponentID]; ok {
			components[i].Steps = append(components[i].Steps, s)
		}
	}

	return components, nil
}

func queryComponents(ctx context.Context, q database.Querier, recipeID string) ([]Component, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, recipe_id, name FROM components WHERE recipe_id = ? ORDER BY position, id`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("querying components: %w", err)
	}
	defer rows.Close()

	components := []Component{}
	for rows.Next() {
		c := Component{Ingredients: []Ingredient{}, Steps: []Step{}}
		if err := rows.Scan(&c.ID, &c.RecipeID, &c.Name); err != nil {
			return nil, fmt.Errorf("scanning component: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating components: %w", err)
	}
	return components, nil
}

func queryIngredients(ctx context.Context, q database.Querier, query string, args ...any) ([]Ingredient, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []Ingredient{}
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.ComponentID, &ing.Name, &ing.Quantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingredients: %w", err)
	}
	return ingredients, nil
}

func querySteps(ctx context.Context, q database.Querier, query string, args ...any) ([]Step, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying steps: %w", err)
	}
	defer rows.Close()

	steps := []Step{}
	for rows.Next() {
		var s Step
		if err := rows.Scan(&s.ID, &s.ComponentID, &s.StepNumber, &s.Description); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		steps = append(steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steps: %w", err)
	}
	return steps, nil
}
