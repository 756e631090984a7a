package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/smartgoals/internal/model"
	"github.com/templui/smartgoals/internal/repository"
	"github.com/templui/smartgoals/internal/service"
	"github.com/templui/smartgoals/internal/ui"
	"github.com/templui/smartgoals/internal/ui/pages"
	"github.com/templui/smartgoals/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) GoalsPage(w http.ResponseWriter, r *http.Request) {
	// Unknown filter values fall back to all goals
	filter, _ := model.ParseGoalType(r.URL.Query().Get("filter"))

	h.renderGoals(w, r, http.StatusOK, pages.GoalsData{Filter: filter})
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := goalInput(r)

	goal, err := h.goalService.Create(r.Context(), in)
	if errs, ok := validation.AsErrors(err); ok {
		form := pages.NewGoalForm()
		form.Values = in
		form.Errors = errs
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.Home(form))
		return
	}
	if err != nil {
		slog.Error("failed to create goal", "error", err)
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	slog.Info("goal created", "goal_id", goal.ID, "type", goal.Type)
	redirectToGoals(w, r)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	err := h.goalService.Delete(r.Context(), goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to delete goal", "error", err, "goal_id", goalID)
		http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}

	slog.Info("goal deleted", "goal_id", goalID)
	redirectToGoals(w, r)
}

func (h *GoalHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(r.Context(), goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get goal", "error", err, "goal_id", goalID)
		http.Error(w, "Failed to load goal", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.EditGoal(goal, pages.EditGoalForm(goal.ID, goal.Input())))
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")
	in := goalInput(r)

	_, err := h.goalService.Update(r.Context(), goalID, in)
	if errs, ok := validation.AsErrors(err); ok {
		goal, lookupErr := h.goalService.ByID(r.Context(), goalID)
		if errors.Is(lookupErr, repository.ErrGoalNotFound) {
			notFound(w, r)
			return
		}
		if lookupErr != nil {
			slog.Error("failed to get goal", "error", lookupErr, "goal_id", goalID)
			http.Error(w, "Failed to load goal", http.StatusInternalServerError)
			return
		}

		form := pages.EditGoalForm(goalID, in)
		form.Errors = errs
		ui.RenderStatus(w, r, http.StatusUnprocessableEntity, pages.EditGoal(goal, form))
		return
	}
	if errors.Is(err, repository.ErrGoalNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to update goal", "error", err, "goal_id", goalID)
		http.Error(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}

	slog.Info("goal updated", "goal_id", goalID)
	redirectToGoals(w, r)
}

func (h *GoalHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")

	completed, err := h.goalService.ToggleCompleted(r.Context(), goalID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		notFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to toggle goal", "error", err, "goal_id", goalID)
		http.Error(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}

	slog.Info("goal completion toggled", "goal_id", goalID, "completed", completed)
	redirectToGoals(w, r)
}

func (h *GoalHandler) CreateCheckin(w http.ResponseWriter, r *http.Request) {
	goalID := r.PathValue("id")
	note := r.FormValue("note")

	checkin, err := h.goalService.AddCheckin(r.Context(), goalID, note)
	if errors.Is(err, repository.ErrGoalNotFound) {
		notFound(w, r)
		return
	}
	if errs, ok := validation.AsErrors(err); ok {
		h.renderGoals(w, r, http.StatusUnprocessableEntity, pages.GoalsData{
			CheckinErrors: map[string]string{goalID: errs.Get("note")},
			CheckinNotes:  map[string]string{goalID: note},
		})
		return
	}
	if err != nil {
		slog.Error("failed to create checkin", "error", err, "goal_id", goalID)
		http.Error(w, "Failed to add check-in", http.StatusInternalServerError)
		return
	}

	slog.Info("checkin created", "goal_id", goalID, "checkin_id", checkin.ID)
	redirectToGoals(w, r)
}

func (h *GoalHandler) Export(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalService.Goals(r.Context(), "")
	if err != nil {
		slog.Error("failed to list goals for export", "error", err)
		http.Error(w, "Failed to export goals", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=goals-export.json")

	err = json.NewEncoder(w).Encode(goals)
	if err != nil {
		slog.Error("failed to encode goals", "error", err)
		http.Error(w, "Failed to export goals", http.StatusInternalServerError)
		return
	}
}

func (h *GoalHandler) renderGoals(w http.ResponseWriter, r *http.Request, status int, data pages.GoalsData) {
	items, err := h.goalService.Goals(r.Context(), data.Filter)
	if err != nil {
		slog.Error("failed to get goals", "error", err, "filter", data.Filter)
		http.Error(w, "Failed to load goals", http.StatusInternalServerError)
		return
	}
	data.Items = items

	ui.RenderStatus(w, r, status, pages.Goals(data))
}

func goalInput(r *http.Request) model.GoalInput {
	return model.GoalInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Type:        r.FormValue("type"),
		Specific:    r.FormValue("specific"),
		Measurable:  r.FormValue("measurable"),
		Achievable:  r.FormValue("achievable"),
		Relevant:    r.FormValue("relevant"),
		TimeBound:   r.FormValue("time_bound"),
	}
}

// redirectToGoals uses 303 so a refresh after a write never resubmits it.
func redirectToGoals(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/goals", http.StatusSeeOther)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound())
}
