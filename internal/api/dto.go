package api

import (
	"github.com/AmmarNaser/ui-engineering-notes/internal/models"
	"github.com/AmmarNaser/ui-engineering-notes/internal/noteservice"
)

// ListingResponse is the body of GET /api/{category}.
type ListingResponse struct {
	Category models.Category       `json:"category" example:"log"`
	Entries  []models.ListingEntry `json:"entries"`
	Total    int                   `json:"total" example:"42"`
}

// DocumentResponse is the body of GET /api/{category}/{slug}.
type DocumentResponse = noteservice.DocumentPage
