package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lk2023060901/smartshop/internal/catalog/types"
	"github.com/lk2023060901/smartshop/internal/storefront"
)

// Form field indexes
const (
	fieldTerm = iota
	fieldMinPrice
	fieldMaxPrice
	fieldMinRating
	fieldCount
)

var fieldLabels = [fieldCount]string{"Search", "Min price", "Max price", "Min rating"}

type mode int

const (
	modeForm mode = iota
	modeResults
	modeCompare
)

// searchResultMsg carries a finished backend call back into Update
type searchResultMsg storefront.Response

// Model is the bubbletea program over a storefront.Controller
type Model struct {
	ctrl    *storefront.Controller
	timeout time.Duration

	inputs  [fieldCount]textinput.Model
	focus   int
	mode    mode
	cursor  int
	sort    types.SortKey
	spinner spinner.Model
	styles  Styles

	comparison *storefront.Comparison
	width      int
}

// New builds the model. timeout bounds each search.
func New(ctrl *storefront.Controller, timeout time.Duration) Model {
	styles := DefaultStyles()

	m := Model{
		ctrl:    ctrl,
		timeout: timeout,
		sort:    types.SortRelevance,
		styles:  styles,
		width:   100,
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "│ "
		ti.CharLimit = 128
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldTerm].Placeholder = "e.g. wireless mouse"
	m.inputs[fieldMinPrice].Placeholder = "any"
	m.inputs[fieldMaxPrice].Placeholder = "any"
	m.inputs[fieldMinRating].Placeholder = "0-5"
	m.inputs[fieldTerm].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Cursor
	m.spinner = sp

	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) form() storefront.Form {
	return storefront.Form{
		Term:      m.inputs[fieldTerm].Value(),
		MinPrice:  m.inputs[fieldMinPrice].Value(),
		MaxPrice:  m.inputs[fieldMaxPrice].Value(),
		MinRating: m.inputs[fieldMinRating].Value(),
		Sort:      m.sort,
	}
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
}

func (m Model) searchCmd(req storefront.Request) tea.Cmd {
	ctrl, timeout := m.ctrl, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return searchResultMsg(ctrl.Fetch(ctx, req))
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	req, ok := m.ctrl.Submit(m.form())
	if !ok {
		return m, nil
	}
	m.cursor = 0
	m.comparison = nil
	m.mode = modeResults
	m.inputs[m.focus].Blur()
	return m, tea.Batch(m.searchCmd(req), m.spinner.Tick)
}

func nextSort(k types.SortKey) types.SortKey {
	for i, key := range types.SortKeys {
		if key == k {
			return types.SortKeys[(i+1)%len(types.SortKeys)]
		}
	}
	return types.SortRelevance
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeCompare:
			return m.updateCompare(msg)
		default:
			return m.updateResults(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.inputs {
			m.inputs[i].Width = max(10, msg.Width-20)
		}
		return m, nil

	case spinner.TickMsg:
		if m.ctrl.State().Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case searchResultMsg:
		if m.ctrl.Apply(storefront.Response(msg)) {
			m.cursor = 0
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab, tea.KeyDown:
		m.setFocus(m.focus + 1)
		return m, nil
	case tea.KeyShiftTab, tea.KeyUp:
		m.setFocus(m.focus - 1)
		return m, nil
	case tea.KeyEsc:
		m.inputs[m.focus].Blur()
		m.mode = modeResults
		return m, nil
	case tea.KeyCtrlS:
		m.sort = nextSort(m.sort)
		m.ctrl.SetSort(m.sort)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cards := m.ctrl.View().Cards

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/", "f":
		m.mode = modeForm
		m.inputs[m.focus].Focus()
		return m, textinput.Blink
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(cards)-1 {
			m.cursor++
		}
	case "right", "l", "n":
		if m.ctrl.NextPage() {
			m.cursor = 0
		}
	case "left", "h", "p":
		if m.ctrl.PrevPage() {
			m.cursor = 0
		}
	case "s":
		m.sort = nextSort(m.sort)
		m.ctrl.SetSort(m.sort)
	case " ", "enter":
		if m.cursor < len(cards) {
			card := cards[m.cursor]
			m.ctrl.Toggle(card.ID, !card.Selected)
		}
	case "c":
		if cmp, ok := m.ctrl.OpenCompare(); ok {
			m.comparison = cmp
			m.mode = modeCompare
		}
	case "x":
		m.ctrl.ClearCompare()
		m.comparison = nil
	}
	return m, nil
}

func (m Model) updateCompare(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c", "q":
		m.ctrl.CloseCompare()
		m.comparison = nil
		m.mode = modeResults
	case "x":
		m.ctrl.ClearCompare()
		m.comparison = nil
		m.mode = modeResults
	}
	return m, nil
}

func (m Model) View() string {
	v := m.ctrl.View()

	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("SmartShop"))
	if v.ServerLabel != "" {
		sb.WriteString("  " + m.styles.Muted.Render(v.ServerLabel))
	}
	sb.WriteString("\n\n")

	sb.WriteString(m.renderForm())
	sb.WriteString("\n")

	status := v.Status.Message
	if v.Loading {
		status = m.spinner.View() + " " + status
	}
	if status != "" {
		sb.WriteString(m.styles.Status(v.Status.Kind).Render(status))
		sb.WriteString("\n")
	}
	if v.CountText != "" {
		sb.WriteString(m.styles.Muted.Render(v.CountText))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if m.mode == modeCompare && v.Comparison != nil {
		sb.WriteString(m.renderComparison(v.Comparison))
	} else {
		sb.WriteString(m.renderCards(v))
	}

	sb.WriteString(m.styles.Footer.Render(m.help()))
	return sb.String()
}

func (m Model) renderForm() string {
	var sb strings.Builder
	for i, in := range m.inputs {
		label := m.styles.Label
		if m.mode == modeForm && i == m.focus {
			label = m.styles.Focused
		}
		sb.WriteString(label.Render(fieldLabels[i]))
		sb.WriteString(in.View())
		sb.WriteString("\n")
	}
	sb.WriteString(m.styles.Label.Render("Sort"))
	sb.WriteString("│ " + string(m.sort))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderCards(v storefront.View) string {
	var sb strings.Builder
	for i, card := range v.Cards {
		pointer := "  "
		if m.mode == modeResults && i == m.cursor {
			pointer = m.styles.Cursor.Render("> ")
		}
		check := "[ ]"
		if card.Selected {
			check = m.styles.Selected.Render("[x]")
		}

		sb.WriteString(fmt.Sprintf("%s%s %s  %s  %s\n",
			pointer, check,
			m.styles.Price.Render(card.Price), card.Rating, card.Title))
		sb.WriteString(m.styles.Card.Render(m.styles.Muted.Render(card.Description)))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Card.Render(card.URL))
		sb.WriteString("\n")
	}

	if len(v.Cards) > 0 || v.CountText != "" {
		prev, next := "‹ prev", "next ›"
		if v.PrevDisabled {
			prev = m.styles.Muted.Render(prev)
		}
		if v.NextDisabled {
			next = m.styles.Muted.Render(next)
		}
		sb.WriteString(fmt.Sprintf("\n%s  %s  %s   compare: %d/%d\n",
			prev, v.PageInfo, next, v.SelectedCount, storefront.MaxCompare))
	}
	return sb.String()
}

func (m Model) renderComparison(cmp *storefront.Comparison) string {
	var rows []string
	for _, row := range cmp.Rows() {
		cells := []string{m.styles.Cell.Width(14).Bold(true).Render(row.Label)}
		for _, c := range row.Cells {
			cells = append(cells, m.styles.Cell.Render(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return m.styles.Table.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)) + "\n"
}

func (m Model) help() string {
	switch m.mode {
	case modeForm:
		return "enter search • tab next field • ctrl+s sort • esc results • ctrl+c quit"
	case modeCompare:
		return "esc close • x clear selection • ctrl+c quit"
	default:
		return "↑/↓ move • space compare • ←/→ page • s sort • c open compare • x clear • / edit search • q quit"
	}
}
