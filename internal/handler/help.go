package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/smartgoals/internal/service"
	"github.com/templui/smartgoals/internal/ui"
	"github.com/templui/smartgoals/internal/ui/pages"
)

type HelpHandler struct {
	helpService *service.HelpService
}

func NewHelpHandler(helpService *service.HelpService) *HelpHandler {
	return &HelpHandler{
		helpService: helpService,
	}
}

func (h *HelpHandler) HelpPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.helpService.Page()
	if err != nil {
		slog.Error("failed to load help page", "error", err)
		http.Error(w, "Failed to load help", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Help(page))
}
