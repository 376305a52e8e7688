package handler

import (
	"net/http"

	"careervision/internal/catalog"
	"careervision/internal/model"
	"careervision/internal/session"
)

// CatalogResponse is the static survey content
type CatalogResponse struct {
	Questions  []model.Question       `json:"questions"`
	Categories []catalog.CategoryInfo `json:"categories"`
	Scale      ScaleView              `json:"scale"`
}

type ScaleView struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// CatalogHandler serves the question list and category labels
type CatalogHandler struct {
	resp CatalogResponse
}

func NewCatalogHandler(cat *catalog.Catalog, scale session.Scale) *CatalogHandler {
	return &CatalogHandler{resp: CatalogResponse{
		Questions:  cat.Questions(),
		Categories: cat.Categories(),
		Scale:      ScaleView{Min: scale.Min, Max: scale.Max},
	}}
}

// Get handles GET /v1/catalog
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.resp)
}
