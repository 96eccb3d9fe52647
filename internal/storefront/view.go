package storefront

import (
	"fmt"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
)

// Card is one rendered product on the current page
type Card struct {
	ID          string
	Title       string
	Description string
	Price       string
	Rating      string
	Image       string
	URL         string
	Selected    bool
}

// View is everything a renderer needs for one frame
type View struct {
	Cards         []Card
	Page          int
	TotalPages    int
	PageInfo      string
	PrevDisabled  bool
	NextDisabled  bool
	CountText     string
	ServerLabel   string
	Status        Status
	Loading       bool
	Sort          types.SortKey
	SelectedCount int
	CompareOpen   bool
	Comparison    *Comparison
}

// View renders the current page. Card selection is read from the selection
// set each time, so a rejected toggle can never leave a card checked.
func (c *Controller) View() View {
	s := &c.state

	sorted := SortProducts(s.Results, s.Sort)
	items, page := Paginate(sorted, s.Page)
	s.Page = page
	total := TotalPages(len(sorted))

	cards := make([]Card, 0, len(items))
	for _, p := range items {
		cards = append(cards, Card{
			ID:          p.ID,
			Title:       Sanitize(p.Title),
			Description: Truncate(Sanitize(p.Description), cardDescriptionLen),
			Price:       formatPrice(p.Price),
			Rating:      formatRating(p.Rating),
			Image:       p.Image,
			URL:         p.URL,
			Selected:    s.Selection.Has(p.ID),
		})
	}

	v := View{
		Cards:         cards,
		Page:          page,
		TotalPages:    total,
		PageInfo:      fmt.Sprintf("Page %d of %d", page, total),
		PrevDisabled:  page == 1,
		NextDisabled:  page == total || len(sorted) == 0,
		Status:        s.Status,
		Loading:       s.Loading,
		Sort:          s.Sort,
		SelectedCount: s.Selection.Len(),
		CompareOpen:   s.CompareOpen,
	}

	if s.Searched {
		if len(s.Results) == 0 {
			v.CountText = "0 results"
		} else {
			v.CountText = fmt.Sprintf("%d result(s)", s.Count)
		}
	}
	if s.ServerLabel != "" {
		v.ServerLabel = "Server: " + s.ServerLabel
	}
	if s.CompareOpen {
		v.Comparison = buildComparison(s.Results, s.Selection)
	}

	return v
}
