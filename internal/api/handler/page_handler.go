package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the static informational pages.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home
//
// @Summary      Home page
// @Tags         pages
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home.html", nil)
}

// About
//
// @Summary      About page
// @Tags         pages
// @Produce      html
// @Success      200
// @Router       /about [get]
func (h *PageHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", nil)
}
