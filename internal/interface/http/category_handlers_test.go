package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListCategories_ReturnsArray(t *testing.T) {
	srv := setupAPI(t, "")

	rec := doJSON(t, srv.router, http.MethodGet, "/api/categories", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[[]map[string]any](t, rec)
	require.Len(t, body, 2)
	require.Equal(t, "Stationery", body[0]["name"])
	require.Equal(t, "Printed books", body[1]["description"])
}

func TestGetCategory(t *testing.T) {
	srv := setupAPI(t, "")

	rec := doJSON(t, srv.router, http.MethodGet, "/api/categories/2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	require.Equal(t, "books", body["slug"])
}

func TestGetCategory_NotFound_Returns404(t *testing.T) {
	srv := setupAPI(t, "")

	rec := doJSON(t, srv.router, http.MethodGet, "/api/categories/7", nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
