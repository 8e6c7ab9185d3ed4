package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/recipe-manager/internal/audit"
	"github.com/nerrad567/recipe-manager/internal/recipe"
)

// handleListRecipes returns every recipe summary.
func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.ListRecipes(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// handleGetRecipe returns one recipe with its component tree.
func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := s.recipes.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// handleCreateRecipe stores a recipe owned by the caller.
func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req recipe.RecipeInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	rec, err := s.recipes.CreateRecipe(r.Context(), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionCreate, recipe.EntityRecipe, rec.ID, map[string]any{"name": rec.Name})

	w.Header().Set("Location", "/api/recipes/"+rec.ID)
	writeJSON(w, http.StatusCreated, rec)
}

// handleUpdateRecipe replaces a recipe's fields and component tree.
func (s *Server) handleUpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req recipe.RecipeInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	rec, err := s.recipes.UpdateRecipe(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionUpdate, recipe.EntityRecipe, id, map[string]any{
		"name":       rec.Name,
		"components": len(rec.Components),
	})
	writeJSON(w, http.StatusOK, rec)
}

// handleDeleteRecipe removes a recipe and everything under it.
func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.recipes.DeleteRecipe(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionDelete, recipe.EntityRecipe, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// handleListComponents returns the components of a recipe.
func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	comps, err := s.recipes.ListComponents(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comps)
}

// handleAddComponent appends a component and returns the recipe's components.
func (s *Server) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "id")

	var req recipe.ComponentInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	comps, err := s.recipes.AddComponent(r.Context(), recipeID, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionCreate, recipe.EntityComponent, "", map[string]any{
		"recipeId": recipeID,
		"name":     req.Name,
	})
	writeJSON(w, http.StatusCreated, comps)
}
