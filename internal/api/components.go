package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/recipe-manager/internal/audit"
	"github.com/nerrad567/recipe-manager/internal/recipe"
)

// ─── Components ────────────────────────────────────────────────────

func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	comp, err := s.recipes.GetComponent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comp)
}

// handleUpdateComponent renames a component and replaces its ingredients and steps.
func (s *Server) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req recipe.ComponentInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	comp, err := s.recipes.UpdateComponent(r.Context(), id, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionUpdate, recipe.EntityComponent, id, map[string]any{"name": comp.Name})
	writeJSON(w, http.StatusOK, comp)
}

func (s *Server) handleDeleteComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.recipes.DeleteComponent(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionDelete, recipe.EntityComponent, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// ─── Ingredients ───────────────────────────────────────────────────

func (s *Server) handleListIngredients(w http.ResponseWriter, r *http.Request) {
	ings, err := s.recipes.ListIngredients(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ings)
}

// handleAddIngredient appends an ingredient and returns the component's ingredients.
func (s *Server) handleAddIngredient(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "id")

	var req recipe.IngredientInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	ings, err := s.recipes.AddIngredient(r.Context(), componentID, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionCreate, recipe.EntityIngredient, "", map[string]any{
		"componentId": componentID,
		"name":        req.Name,
	})
	writeJSON(w, http.StatusCreated, ings)
}

func (s *Server) handleDeleteIngredient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.recipes.DeleteIngredient(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionDelete, recipe.EntityIngredient, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

// ─── Steps ─────────────────────────────────────────────────────────

func (s *Server) handleListSteps(w http.ResponseWriter, r *http.Request) {
	steps, err := s.recipes.ListSteps(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, steps)
}

// handleAddStep appends a step and returns the component's steps in order.
func (s *Server) handleAddStep(w http.ResponseWriter, r *http.Request) {
	componentID := chi.URLParam(r, "id")

	var req recipe.StepInput
	if err := decodeJSON(r, &req); err != nil {
		s.writeBadRequest(w, msgInvalidJSON)
		return
	}

	steps, err := s.recipes.AddStep(r.Context(), componentID, req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionCreate, recipe.EntityStep, "", map[string]any{
		"componentId": componentID,
		"stepNumber":  req.StepNumber,
	})
	writeJSON(w, http.StatusCreated, steps)
}

func (s *Server) handleDeleteStep(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.recipes.DeleteStep(r.Context(), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.auditLog(r.Context(), audit.ActionDelete, recipe.EntityStep, id, nil)
	w.WriteHeader(http.StatusNoContent)
}
