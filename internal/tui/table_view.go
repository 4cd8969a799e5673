package tui

import (
	"usertable/internal/model"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tableView renders the store's collection. It is held by pointer so the store
// subscription and the (value) appModel share one instance.
type tableView struct {
	t     table.Model
	rows  []model.Row
	width int
}

const (
	roleColW    = 11
	mobileColW  = 15
	actionsColW = 22
	minNameColW = 12
	minMailColW = 16
)

func newTableView() *tableView {
	tv := &tableView{width: 100}
	tv.t = table.New(
		table.WithColumns(columnsFor(tv.width)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(false)
	tv.t.SetStyles(s)
	return tv
}

// columnsFor splits width between the fixed columns (name, email, role, mobile,
// actions); name and email absorb the slack.
func columnsFor(width int) []table.Column {
	// Each cell has one column of padding on both sides.
	flex := width - roleColW - mobileColW - actionsColW - 10
	nameW := flex * 2 / 5
	mailW := flex - nameW
	if nameW < minNameColW {
		nameW = minNameColW
	}
	if mailW < minMailColW {
		mailW = minMailColW
	}
	return []table.Column{
		{Title: "Name", Width: nameW},
		{Title: "Email", Width: mailW},
		{Title: "Role", Width: roleColW},
		{Title: "Mobile Number", Width: mobileColW},
		{Title: "Actions", Width: actionsColW},
	}
}

func actionsLabel() string {
	sep := " " + glyphSep() + " "
	return "edit" + sep + "view" + sep + "delete"
}

// setRows replaces the rendered collection, keeping the cursor in range.
func (tv *tableView) setRows(rs []model.Row) {
	tv.rows = rs
	out := make([]table.Row, len(rs))
	for i, r := range rs {
		out[i] = table.Row{r.Name, r.Email, string(r.Role), r.Mobile, actionsLabel()}
	}
	tv.t.SetRows(out)
	switch c := tv.t.Cursor(); {
	case len(rs) == 0:
		tv.t.SetCursor(0)
	case c < 0:
		tv.t.SetCursor(0)
	case c >= len(rs):
		tv.t.SetCursor(len(rs) - 1)
	}
}

func (tv *tableView) setSize(width, height int) {
	if width < 40 {
		width = 40
	}
	if height < 3 {
		height = 3
	}
	tv.width = width
	tv.t.SetColumns(columnsFor(width))
	tv.t.SetWidth(width)
	tv.t.SetHeight(height)
}

func (tv *tableView) selected() (model.Row, bool) {
	c := tv.t.Cursor()
	if c < 0 || c >= len(tv.rows) {
		return model.Row{}, false
	}
	return tv.rows[c], true
}

func (tv *tableView) selectID(id int64) {
	for i, r := range tv.rows {
		if r.ID == id {
			tv.t.SetCursor(i)
			return
		}
	}
}

func (tv *tableView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	tv.t, cmd = tv.t.Update(msg)
	return cmd
}

func (tv *tableView) view() string {
	if len(tv.rows) == 0 {
		return tv.t.View() + "\n" + styleMuted().Render("No users yet. Press a to add one.")
	}
	return tv.t.View()
}
