package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/pkg/logger"
	"go.uber.org/zap"
)

// User-facing messages
const (
	MsgQueryRequired   = "Please enter a product name or keyword."
	MsgSearching       = "Searching products..."
	MsgUnknownError    = "Unknown error while fetching products."
	MsgUnreachable     = "Could not reach the server. Please check your connection and try again."
	MsgSelectionFull   = "You can compare up to 3 products at a time."
	MsgCompareTooFew   = "Select at least two products to compare (up to three)."
	cardDescriptionLen = 140
	compareDescLen     = 260
)

// Searcher is the backend call the controller depends on
type Searcher interface {
	Search(ctx context.Context, form Form) (*types.SearchResult, error)
}

// Request is one issued search
type Request struct {
	Seq  uint64
	Form Form
}

// Response is the outcome of a Request, tagged with its sequence number
type Response struct {
	Seq    uint64
	Result *types.SearchResult
	Err    error
}

// Controller owns the view state. It is not safe for concurrent use, except
// Fetch, which never touches state.
type Controller struct {
	client Searcher
	logger *logger.Logger
	state  ViewState
}

func NewController(client Searcher, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.NewNop()
	}
	return &Controller{
		client: client,
		logger: log,
		state:  newViewState(),
	}
}

// State returns a snapshot of the current view state
func (c *Controller) State() ViewState {
	return c.state
}

// Submit validates the form and resets the view for a new search. It
// returns false when the term is empty; no request should be sent then.
func (c *Controller) Submit(form Form) (Request, bool) {
	form.Term = strings.TrimSpace(form.Term)
	if form.Term == "" {
		c.state.Status = Status{Message: MsgQueryRequired, Kind: StatusError}
		return Request{}, false
	}

	form.Sort = types.ParseSortKey(string(form.Sort))

	c.state.seq++
	c.state.Sort = form.Sort
	c.state.Page = 1
	c.state.Selection.Clear()
	c.state.CompareOpen = false
	c.state.Loading = true
	c.state.Status = Status{Message: MsgSearching, Kind: StatusInfo}
	c.state.Results = nil
	c.state.Count = 0
	c.state.Searched = false
	c.state.ServerLabel = ""

	return Request{Seq: c.state.seq, Form: form}, true
}

// Fetch performs the backend call for req
func (c *Controller) Fetch(ctx context.Context, req Request) Response {
	result, err := c.client.Search(ctx, req.Form)
	if err != nil {
		c.logger.Warn("search request failed",
			zap.Uint64("seq", req.Seq),
			zap.String("query", req.Form.Term),
			zap.Error(err),
		)
	}
	return Response{Seq: req.Seq, Result: result, Err: err}
}

// Apply folds a response into the view. Responses other than the latest
// issued one are dropped and Apply reports false.
func (c *Controller) Apply(resp Response) bool {
	if resp.Seq != c.state.seq {
		c.logger.Debug("dropping stale response",
			zap.Uint64("seq", resp.Seq),
			zap.Uint64("latest", c.state.seq),
		)
		return false
	}

	c.state.Loading = false
	c.state.Searched = true
	c.state.Results = nil
	c.state.Count = 0

	var apiErr *APIError
	switch {
	case errors.As(resp.Err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = MsgUnknownError
		}
		c.state.Status = Status{Message: msg, Kind: StatusError}
		c.state.ServerLabel = apiErr.ServerName

	case resp.Err != nil:
		c.state.Status = Status{Message: MsgUnreachable, Kind: StatusError}

	case resp.Result == nil || len(resp.Result.Products) == 0:
		query := ""
		if resp.Result != nil {
			query = resp.Result.Query
			c.state.ServerLabel = resp.Result.ServerName
		}
		c.state.Query = query
		c.state.Status = Status{
			Message: fmt.Sprintf("No products found for “%s”. Try another search.", query),
			Kind:    StatusInfo,
		}

	default:
		c.state.Results = resp.Result.Products
		c.state.Count = resp.Result.Count
		c.state.Query = resp.Result.Query
		c.state.ServerLabel = resp.Result.ServerName
		c.state.Status = Status{
			Message: fmt.Sprintf("Showing results for “%s”.", resp.Result.Query),
			Kind:    StatusSuccess,
		}
	}

	c.state.Page = ClampPage(c.state.Page, len(c.state.Results))
	return true
}

// SetSort re-sorts the current results; the page is clamped, not reset
func (c *Controller) SetSort(key types.SortKey) {
	c.state.Sort = types.ParseSortKey(string(key))
	c.state.Page = ClampPage(c.state.Page, len(c.state.Results))
}

// NextPage advances unless already on the last page
func (c *Controller) NextPage() bool {
	if c.state.Page >= TotalPages(len(c.state.Results)) {
		return false
	}
	c.state.Page++
	return true
}

// PrevPage goes back unless already on the first page
func (c *Controller) PrevPage() bool {
	if c.state.Page <= 1 {
		return false
	}
	c.state.Page--
	return true
}

// Toggle checks or unchecks a product for comparison
func (c *Controller) Toggle(id string, checked bool) bool {
	if err := c.state.Selection.Toggle(id, checked); err != nil {
		c.state.Status = Status{Message: MsgSelectionFull, Kind: StatusError}
		return false
	}
	return true
}

// OpenCompare opens the comparison for the selected products. It needs at
// least two of them in the current results.
func (c *Controller) OpenCompare() (*Comparison, bool) {
	if c.state.Selection.Len() < 2 {
		c.state.Status = Status{Message: MsgCompareTooFew, Kind: StatusInfo}
		return nil, false
	}

	cmp := buildComparison(c.state.Results, c.state.Selection)
	if len(cmp.Columns) < 2 {
		return nil, false
	}

	c.state.CompareOpen = true
	return cmp, true
}

// CloseCompare hides the comparison and keeps the selection
func (c *Controller) CloseCompare() {
	c.state.CompareOpen = false
}

// ClearCompare empties the selection and hides the comparison
func (c *Controller) ClearCompare() {
	c.state.Selection.Clear()
	c.state.CompareOpen = false
}
