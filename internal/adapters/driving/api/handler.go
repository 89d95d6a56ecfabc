package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driving"
)

// Handler serves catalog routes.
type Handler struct {
	Catalog driving.CatalogService
}

// NewHandler creates a catalog handler.
func NewHandler(catalog driving.CatalogService) *Handler {
	return &Handler{Catalog: catalog}
}

// RegisterRoutes mounts the catalog routes on rg.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/:mainType", h.query) // GET /api/catalog/equipment
	rg.GET("/facets/:mainType", h.facets) // GET /api/facets/spells
	rg.GET("/records/:id", h.record)      // GET /api/records/:id
}

type column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type row struct {
	ID     string   `json:"id"`
	Values []string `json:"values"`
}

func (h *Handler) query(c *gin.Context) {
	q := domain.Query{
		Scope: domain.Scope{
			MainType: domain.MainType(c.Param("mainType")),
			SubType:  c.Query("sub"),
		},
		Filters: domain.Filters{
			Text:          c.Query("q"),
			Trait:         c.Query("trait"),
			Levels:        domain.ParseLevelRange(c.Query("min"), c.Query("max")),
			MatchCategory: parseBool(c.Query("category")),
		},
		Limit:  parseInt(c.Query("limit"), 0),
		Offset: parseInt(c.Query("offset"), 0),
	}
	if key := c.Query("sort"); key != "" {
		q.Sort = domain.SortSpec{Key: key, Direction: domain.ParseDirection(c.Query("dir"))}
	}

	res, err := h.Catalog.Query(c.Request.Context(), q)
	if err != nil {
		writeError(c, err)
		return
	}

	cols := make([]column, len(res.Columns))
	for i, col := range res.Columns {
		cols[i] = column{Key: col.Key, Label: col.Label}
	}
	rows := make([]row, len(res.Rows))
	for i := range res.Rows {
		rows[i] = row{ID: res.Records[i].ID, Values: res.Rows[i]}
	}

	c.JSON(http.StatusOK, gin.H{
		"scope":   res.Scope.String(),
		"total":   res.Total,
		"offset":  q.Offset,
		"columns": cols,
		"rows":    rows,
	})
}

func (h *Handler) facets(c *gin.Context) {
	scope := domain.Scope{
		MainType: domain.MainType(c.Param("mainType")),
		SubType:  c.Query("sub"),
	}
	f, err := h.Catalog.Facets(c.Request.Context(), scope)
	if err != nil {
		writeError(c, err)
		return
	}

	traits := f.Traits
	if traits == nil {
		traits = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"scope":    f.Scope.String(),
		"subTypes": f.SubTypes,
		"traits":   traits,
	})
}

func (h *Handler) record(c *gin.Context) {
	rec, err := h.Catalog.Record(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec.Attributes())
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnknownMainType), errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseInt(s string, def int) int {
	if strings.TrimSpace(s) == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}
