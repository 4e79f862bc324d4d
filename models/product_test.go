package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterProducts(t *testing.T) {
	catalog := []Product{
		{ID: "1", Title: "Placa de Vídeo RTX 4070 Ti", Cat: "gpu"},
		{ID: "2", Title: "Processador Intel i9-13900K", Cat: "cpu"},
		{ID: "3", Title: "Water Cooler 360mm", Cat: "cooler"},
	}

	ids := func(ps []Product) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterProducts(catalog, "", "")))
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterProducts(catalog, "", "all")))
	assert.Equal(t, []string{"1"}, ids(FilterProducts(catalog, "rtx", "")))
	assert.Equal(t, []string{"2"}, ids(FilterProducts(catalog, "  INTEL ", "cpu")))
	assert.Empty(t, FilterProducts(catalog, "intel", "gpu"))
}
