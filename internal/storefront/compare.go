package storefront

import (
	"fmt"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
)

// ComparisonColumn is one product in the side-by-side view
type ComparisonColumn struct {
	ID          string
	Title       string
	URL         string
	Image       string
	Price       string
	Rating      string
	Description string
}

// ComparisonRow is one labelled row across all columns
type ComparisonRow struct {
	Label string
	Cells []string
}

// Comparison holds the selected products in result order
type Comparison struct {
	Columns []ComparisonColumn
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func formatRating(r float64) string {
	return fmt.Sprintf("%.1f ★", r)
}

func buildComparison(results []types.Product, sel *Selection) *Comparison {
	cmp := &Comparison{}
	for _, p := range results {
		if !sel.Has(p.ID) {
			continue
		}
		cmp.Columns = append(cmp.Columns, ComparisonColumn{
			ID:          p.ID,
			Title:       Sanitize(p.Title),
			URL:         p.URL,
			Image:       p.Image,
			Price:       formatPrice(p.Price),
			Rating:      formatRating(p.Rating),
			Description: Truncate(Sanitize(p.Description), compareDescLen),
		})
	}
	return cmp
}

// Rows lays the comparison out as Product, Image, Price, Rating and
// Description rows
func (c *Comparison) Rows() []ComparisonRow {
	rows := []ComparisonRow{
		{Label: "Product"},
		{Label: "Image"},
		{Label: "Price"},
		{Label: "Rating"},
		{Label: "Description"},
	}
	for _, col := range c.Columns {
		rows[0].Cells = append(rows[0].Cells, col.Title+"\n"+col.URL)
		rows[1].Cells = append(rows[1].Cells, col.Image)
		rows[2].Cells = append(rows[2].Cells, col.Price)
		rows[3].Cells = append(rows[3].Cells, col.Rating)
		rows[4].Cells = append(rows[4].Cells, col.Description)
	}
	return rows
}
