// Package response holds the success payloads shared by handlers.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// IDResponse is the body returned when a resource is created.
type IDResponse struct {
	ID int64 `json:"id"`
}

// Created writes 201 with the new resource id.
func Created(c echo.Context, id int64) error {
	return c.JSON(http.StatusCreated, IDResponse{ID: id})
}
