package pages

import (
	"net/http"
	"passreset/internal/http/handlers/response"
)

const (
	Landing      = "landing.html"
	Register     = "register.html"
	Login        = "login.html"
	Home         = "home.html"
	ResetRequest = "reset_request.html"
)

type Handler struct {
	page string
}

func New(page string) *Handler {
	return &Handler{page: page}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(rw, h.page, nil, http.StatusOK)
}
