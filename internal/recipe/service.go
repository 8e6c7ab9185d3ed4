package recipe

import (
	"context"
	"log/slog"
	"time"

	"github.com/nerrad567/recipe-manager/internal/auth"
)

// Change actions carried by events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Notifier receives committed changes. Delivery is best effort: errors are
// logged and never undo the change.
type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Authorizer is the ownership policy the service enforces.
type Authorizer interface {
	CurrentUser(ctx context.Context) (*auth.User, error)
	Check(ctx context.Context, ownerID string) error
}

// Service applies the ownership policy and validation around the repository.
type Service struct {
	repo     Repository
	policy   Authorizer
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a recipe service. notifier may be nil.
func NewService(repo Repository, policy Authorizer, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ─── Recipes ────────────────────────────────────────────────────────

// ListRecipes returns every recipe summary.
func (s *Service) ListRecipes(ctx context.Context) ([]Summary, error) {
	return s.repo.ListRecipes(ctx)
}

// GetRecipe returns one recipe with its components.
func (s *Service) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	return s.repo.GetRecipe(ctx, id)
}

// CreateRecipe stores a new recipe owned by the caller.
func (s *Service) CreateRecipe(ctx context.Context, in RecipeInput) (*Recipe, error) {
	if err := ValidateRecipe(in); err != nil {
		return nil, err
	}
	user, err := s.policy.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.CreateRecipe(ctx, user.ID, in)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, ActionCreated, EntityRecipe, rec.ID, rec.ID)
	return rec, nil
}

// UpdateRecipe replaces a recipe's name, description and component tree.
func (s *Service) UpdateRecipe(ctx context.Context, id string, in RecipeInput) (*Recipe, error) {
	if err := ValidateRecipe(in); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, s.repo.RecipeOwner, id); err != nil {
		return nil, err
	}

	rec, err := s.repo.UpdateRecipe(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, ActionUpdated, EntityRecipe, id, id)
	return rec, nil
}

// DeleteRecipe removes a recipe and everything under it.
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	if _, err := s.authorize(ctx, s.repo.RecipeOwner, id); err != nil {
		return err
	}
	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, ActionDeleted, EntityRecipe, id, id)
	return nil
}

// ─── Components ─────────────────────────────────────────────────────

// ListComponents returns the components of a recipe.
func (s *Service) ListComponents(ctx context.Context, recipeID string) ([]Component, error) {
	return s.repo.ListComponents(ctx, recipeID)
}

// GetComponent returns one component.
func (s *Service) GetComponent(ctx context.Context, id string) (*Component, error) {
	return s.repo.GetComponent(ctx, id)
}

// AddComponent appends a component to a recipe and returns the recipe's
// full component list.
func (s *Service) AddComponent(ctx context.Context, recipeID string, in ComponentInput) ([]Component, error) {
	if err := ValidateComponent(in); err != nil {
		return nil, err
	}
	if _, err := s.authorize(ctx, s.repo.RecipeOwner, recipeID); err != nil {
		return nil, err
	}

	comp, err := s.repo.AddComponent(ctx, recipeID, in)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, ActionCreated, EntityComponent, comp.ID, recipeID)

	return s.repo.ListComponents(ctx, recipeID)
}

// UpdateComponent renames a component and replaces its ingredients and steps.
func (s *Service) UpdateComponent(ctx context.Context, id string, in ComponentInput) (*Component, error) {
	if err := ValidateComponent(in); err != nil {
		return nil, err
	}
	own, err := s.authorize(ctx, s.repo.ComponentOwner, id)
	if err != nil {
		return nil, err
	}

	comp, err := s.repo.UpdateComponent(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, ActionUpdated, EntityComponent, id, own.RecipeID)
	return comp, nil
}

// DeleteComponent removes a component.
func (s *Service) DeleteComponent(ctx context.Context, id string) error {
	own, err := s.authorize(ctx, s.repo.ComponentOwner, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteComponent(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, ActionDeleted, EntityComponent, id, own.RecipeID)
	return nil
}

// ─── Ingredients ────────────────────────────────────────────────────

// ListIngredients returns the ingredients of a component.
func (s *Service) ListIngredients(ctx context.Context, componentID string) ([]Ingredient, error) {
	return s.repo.ListIngredients(ctx, componentID)
}

// AddIngredient appends an ingredient and returns the component's ingredient list.
func (s *Service) AddIngredient(ctx context.Context, componentID string, in IngredientInput) ([]Ingredient, error) {
	if err := ValidateIngredient(in); err != nil {
		return nil, err
	}
	own, err := s.authorize(ctx, s.repo.ComponentOwner, componentID)
	if err != nil {
		return nil, err
	}

	ing, err := s.repo.AddIngredient(ctx, componentID, in)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, ActionCreated, EntityIngredient, ing.ID, own.RecipeID)

	return s.repo.ListIngredients(ctx, componentID)
}

// DeleteIngredient removes an ingredient.
func (s *Service) DeleteIngredient(ctx context.Context, id string) error {
	own, err := s.authorize(ctx, s.repo.IngredientOwner, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteIngredient(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, ActionDeleted, EntityIngredient, id, own.RecipeID)
	return nil
}

// ─── Steps ──────────────────────────────────────────────────────────

// ListSteps returns the steps of a component.
func (s *Service) ListSteps(ctx context.Context, componentID string) ([]Step, error) {
	return s.repo.ListSteps(ctx, componentID)
}

// AddStep appends a step and returns the component's step list.
func (s *Service) AddStep(ctx context.Context, componentID string, in StepInput) ([]Step, error) {
	if err := ValidateStep(in); err != nil {
		return nil, err
	}
	own, err := s.authorize(ctx, s.repo.ComponentOwner, componentID)
	if err != nil {
		return nil, err
	}

	step, err := s.repo.AddStep(ctx, componentID, in)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, ActionCreated, EntityStep, step.ID, own.RecipeID)

	return s.repo.ListSteps(ctx, componentID)
}

// DeleteStep removes a step.
func (s *Service) DeleteStep(ctx context.Context, id string) error {
	own, err := s.authorize(ctx, s.repo.StepOwner, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteStep(ctx, id); err != nil {
		return err
	}

	s.notify(ctx, ActionDeleted, EntityStep, id, own.RecipeID)
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────

// authorize resolves the owner of id with resolve and runs the policy on it.
// NotFound from resolve wins over AccessDenied.
func (s *Service) authorize(ctx context.Context, resolve func(context.Context, string) (Ownership, error), id string) (Ownership, error) {
	own, err := resolve(ctx, id)
	if err != nil {
		return Ownership{}, err
	}
	if err := s.policy.Check(ctx, own.OwnerID); err != nil {
		return Ownership{}, err
	}
	return own, nil
}

func (s *Service) notify(ctx context.Context, action, entity, id, recipeID string) {
	if s.notifier == nil {
		return
	}

	ev := Event{
		Action:    action,
		Entity:    entity,
		ID:        id,
		RecipeID:  recipeID,
		Timestamp: s.now().UTC(),
	}
	if ident, ok := auth.IdentityFromContext(ctx); ok {
		ev.UserID = ident.Subject
	}

	if err := s.notifier.Notify(ctx, ev); err != nil {
		s.logger.Warn("change notification failed",
			"entity", entity,
			"id", id,
			"error", err,
		)
	}
}
