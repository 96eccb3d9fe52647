package storefront

import "github.com/lk2023060901/smartshop/internal/catalog/types"

// StatusKind drives how the status line is styled
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the single user-facing message line
type Status struct {
	Message string
	Kind    StatusKind
}

// Form is the raw search form input. Bounds stay strings so an empty field
// can be told apart from "0".
type Form struct {
	Term      string
	MinPrice  string
	MaxPrice  string
	MinRating string
	Sort      types.SortKey
}

// ViewState holds everything the UI renders from
type ViewState struct {
	// Results is the list in server order; it is never reordered in place
	Results []types.Product

	Query       string
	Count       int
	Searched    bool
	Sort        types.SortKey
	Page        int
	Selection   *Selection
	Status      Status
	ServerLabel string
	Loading     bool
	CompareOpen bool

	// seq is the latest issued request sequence number
	seq uint64
}

func newViewState() ViewState {
	return ViewState{
		Sort:      types.SortRelevance,
		Page:      1,
		Selection: NewSelection(MaxCompare),
	}
}
