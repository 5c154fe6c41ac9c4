package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/copycorner/internal/page"
	"github.com/MrJamesThe3rd/copycorner/internal/servicetype"
	"github.com/MrJamesThe3rd/copycorner/internal/transaction"
)

type boardState int

const (
	boardStateBrowse boardState = iota
	boardStateForm
	boardStateConfirmDelete
)

type boardTab int

const (
	tabAll boardTab = iota
	tabPending
	tabCompleted
	tabCancelled
	tabArchived
)

var tabLabels = []string{"All", "Pending", "Completed", "Cancelled", "Archived"}

// ServiceTypeLister supplies the service types a draft may use.
type ServiceTypeLister interface {
	ListActive(ctx context.Context) ([]*servicetype.ServiceType, error)
}

// BoardModel is the transactions board: status tabs over a paged table with
// lifecycle actions on the selected row.
type BoardModel struct {
	CommonModel
	txService    *transaction.Service
	serviceTypes ServiceTypeLister
	products     ProductsByCategory

	state   boardState
	tab     boardTab
	table   table.Model
	txs     []*transaction.Transaction
	page    page.Request
	info    page.Info
	draft   *draftForm
	confirm *huh.Form
	yes     *bool

	loading bool
	status  string
}

func NewBoardModel(txSvc *transaction.Service, types ServiceTypeLister, products ProductsByCategory) BoardModel {
	columns := []table.Column{
		{Title: "Txn", Width: 7},
		{Title: "Queue", Width: 6},
		{Title: "Date", Width: 11},
		{Title: "Customer", Width: 22},
		{Title: "Service", Width: 16},
		{Title: "Product", Width: 18},
		{Title: "Qty", Width: 5},
		{Title: "Total", Width: 12},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BoardModel{
		txService:    txSvc,
		serviceTypes: types,
		products:     products,
		table:        t,
		page:         page.Request{}.Normalize(),
		loading:      true,
	}
}

func (m BoardModel) Title() string { return "Transactions" }

func (m BoardModel) ShortHelp() string {
	switch m.state {
	case boardStateForm:
		return "Enter/Tab: navigate form | Esc: cancel"
	case boardStateConfirmDelete:
		return "Enter: confirm | Esc: cancel"
	}

	return "tab: status | n: new | e: edit | c: complete | x: cancel | r: restore | " +
		"a: archive | u: unarchive | d: delete | [ ]: page | R: refresh | Esc: back"
}

func (m BoardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.txs = msg.txs
		m.info = msg.info
		m.page.Page = msg.info.Page
		m.refreshTable()

		return m, nil

	case boardActionMsg:
		if msg.err != nil {
			m.status = describeError(msg.err)
			return m, nil
		}

		m.status = msg.done

		return m, m.loadCmd()

	case draftFormMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.draft = msg.form
		m.state = boardStateForm
		m.table.Blur()

		return m, m.draft.form.Init()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case boardStateForm:
		return m.updateForm(msg)
	case boardStateConfirmDelete:
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m BoardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "tab":
		m.tab = (m.tab + 1) % boardTab(len(tabLabels))
		m.page.Page = 1
		m.loading = true

		return m, m.loadCmd()
	case "]":
		if m.page.Page < m.info.TotalPages {
			m.page.Page++
			return m, m.loadCmd()
		}

		return m, nil
	case "[":
		if m.page.Page > 1 {
			m.page.Page--
			return m, m.loadCmd()
		}

		return m, nil
	case "R":
		m.loading = true
		return m, m.loadCmd()
	case "n":
		return m, m.openFormCmd(nil)
	case "e":
		if tx := m.selected(); tx != nil {
			return m, m.openFormCmd(tx)
		}
	case "c":
		return m, m.actionCmd(m.txService.Complete, "Completed")
	case "x":
		return m, m.actionCmd(m.txService.Cancel, "Cancelled")
	case "r":
		return m, m.actionCmd(m.txService.RestoreCancelled, "Restored to Pending")
	case "a":
		return m, m.actionCmd(m.txService.Archive, "Archived")
	case "u":
		return m, m.actionCmd(m.txService.RestoreArchived, "Unarchived")
	case "d":
		return m.startDelete()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BoardModel) startDelete() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.yes = new(false)
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Permanently delete %s for %s?", tx.TransactionID, tx.CustomerName)).
				Description("Only cancelled transactions can be deleted.").
				Affirmative("Delete").
				Negative("Keep").
				Value(m.yes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = boardStateConfirmDelete
	m.table.Blur()

	return m, m.confirm.Init()
}

func (m BoardModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.browse(), nil
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	confirmed := *m.yes
	tx := m.selected()
	m = m.browse()

	if !confirmed || tx == nil {
		return m, nil
	}

	id := tx.ID
	svc := m.txService

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := svc.Delete(ctx, id); err != nil {
			return boardActionMsg{err: err}
		}

		return boardActionMsg{done: "Deleted " + tx.TransactionID}
	}
}

func (m BoardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.browse(), nil
	}

	form, cmd := m.draft.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.draft.form = f
	}

	if m.draft.form.State != huh.StateCompleted {
		return m, cmd
	}

	d := m.draft.result()
	editing := m.draft.editing
	svc := m.txService
	m = m.browse()

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing != nil {
			tx, err := svc.Update(ctx, editing.ID, d)
			if err != nil {
				return boardActionMsg{err: err}
			}

			return boardActionMsg{done: "Updated " + tx.TransactionID}
		}

		tx, err := svc.Create(ctx, d)
		if err != nil {
			return boardActionMsg{err: err}
		}

		return boardActionMsg{done: fmt.Sprintf("Created %s, queue %s", tx.TransactionID, tx.QueueNumber)}
	}
}

func (m BoardModel) browse() BoardModel {
	m.state = boardStateBrowse
	m.draft = nil
	m.confirm = nil
	m.table.Focus()

	return m
}

func (m BoardModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m BoardModel) View() string {
	tabs := make([]string, len(tabLabels))
	for i, label := range tabLabels {
		if boardTab(i) == m.tab {
			tabs[i] = activeStyle("[" + label + "]")
			continue
		}

		tabs[i] = " " + label + " "
	}

	header := strings.Join(tabs, " ") + fmt.Sprintf("   page %d/%d, %d total",
		m.info.Page, max(m.info.TotalPages, 1), m.info.Total)

	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.loading {
		body = lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
	)

	var panel string

	switch {
	case m.state == boardStateForm && m.draft != nil:
		title := "New Transaction"
		if m.draft.editing != nil {
			title = "Edit " + m.draft.editing.TransactionID
		}

		panel = title + "\n\n" + m.draft.form.View()
	case m.state == boardStateConfirmDelete && m.confirm != nil:
		panel = m.confirm.View()
	}

	if panel != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(54).
			Render(panel))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func statusStyle(s transaction.Status) string {
	color := map[transaction.Status]string{
		transaction.StatusPending:   "214",
		transaction.StatusCompleted: "46",
		transaction.StatusCancelled: "196",
	}[s]

	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(s))
}

func (m *BoardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			tx.TransactionID,
			tx.QueueNumber,
			FormatDate(tx.Date),
			tx.CustomerName,
			tx.ServiceType,
			tx.Product.Label,
			fmt.Sprint(tx.Quantity),
			FormatMoney(tx.TotalAmount),
			statusStyle(tx.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m BoardModel) filter() transaction.ListFilter {
	f := transaction.ListFilter{Page: m.page}

	switch m.tab {
	case tabPending:
		f.Status = new(transaction.StatusPending)
	case tabCompleted:
		f.Status = new(transaction.StatusCompleted)
	case tabCancelled:
		f.Status = new(transaction.StatusCancelled)
	}

	return f
}

// Messages

type boardLoadMsg struct {
	txs  []*transaction.Transaction
	info page.Info
	err  error
}

type boardActionMsg struct {
	done string
	err  error
}

type draftFormMsg struct {
	form *draftForm
	err  error
}

func (m BoardModel) loadCmd() tea.Cmd {
	filter := m.filter()
	archived := m.tab == tabArchived
	svc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list := svc.List
		if archived {
			list = svc.ListArchived
		}

		txs, info, err := list(ctx, filter)

		return boardLoadMsg{txs: txs, info: info, err: err}
	}
}

func (m BoardModel) actionCmd(
	op func(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error),
	verb string,
) tea.Cmd {
	tx := m.selected()
	if tx == nil {
		return nil
	}

	id, code := tx.ID, tx.TransactionID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := op(ctx, id); err != nil {
			return boardActionMsg{err: err}
		}

		return boardActionMsg{done: fmt.Sprintf("%s %s", verb, code)}
	}
}

// openFormCmd loads the active service types before showing the draft form.
func (m BoardModel) openFormCmd(editing *transaction.Transaction) tea.Cmd {
	types := m.serviceTypes
	products := m.products

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		active, err := types.ListActive(ctx)
		if err != nil {
			return draftFormMsg{err: err}
		}

		initial := transaction.Draft{Quantity: "1"}
		if editing != nil {
			initial = transaction.DraftFrom(editing)
		}

		return draftFormMsg{form: newDraftForm(active, products, initial, editing)}
	}
}
