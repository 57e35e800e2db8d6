// tui/model.go

/* Package tui is the terminal front end of the user search: a query field with inline
validation, a search trigger and a three column result table. */
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/deploymenttheory/go-graph-user-search/logger"
	"github.com/deploymenttheory/go-graph-user-search/usersearch"
	"go.uber.org/zap"
)

// Searcher is the part of usersearch.Component the screen drives.
type Searcher interface {
	Search(ctx context.Context, query string) error
	Results() []usersearch.UserRecord
	Mode() usersearch.ClientMode
	SetMode(mode usersearch.ClientMode)
}

// ModeSaver persists a client mode chosen on screen.
type ModeSaver func(mode usersearch.ClientMode) error

// searchDoneMsg reports a finished search. Records is the result set at completion time.
type searchDoneMsg struct {
	query   string
	records []usersearch.UserRecord
	err     error
}

// Model is the bubbletea model of the search screen.
type Model struct {
	ctx      context.Context
	searcher Searcher
	saveMode ModeSaver
	logger   logger.Logger

	input      textinput.Model
	table      table.Model
	validation string
	status     string
	statusErr  bool
	inFlight   int

	width    int
	quitting bool
}

// NewModel creates the search screen. saveMode may be nil when mode changes need not persist,
// and log may be nil to discard the screen's own log lines.
func NewModel(ctx context.Context, searcher Searcher, saveMode ModeSaver, log logger.Logger) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	input := textinput.New()
	input.Placeholder = "given name, surname or display name"
	input.Prompt = "› "
	input.CharLimit = 256
	input.Width = 50
	input.Focus()

	t := table.New(
		table.WithColumns(columns(100)),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#FFFFFF")).Background(primaryColor)
	t.SetStyles(styles)

	m := Model{
		ctx:      ctx,
		searcher: searcher,
		saveMode: saveMode,
		logger:   log,
		input:    input,
		table:    t,
	}
	m.table.SetRows(rowsFor(searcher.Results()))
	return m
}

func columns(width int) []table.Column {
	// Borders and cell padding take roughly ten cells.
	usable := width - 10
	if usable < 45 {
		usable = 45
	}
	return []table.Column{
		{Title: "Display name", Width: usable * 3 / 10},
		{Title: "Mail", Width: usable * 35 / 100},
		{Title: "User principal name", Width: usable * 35 / 100},
	}
}

func rowsFor(records []usersearch.UserRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, table.Row{record.DisplayName, record.Mail, record.UserPrincipalName})
	}
	return rows
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and search completions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		if msg.Height > 14 {
			m.table.SetHeight(msg.Height - 12)
		}
		return m, nil

	case searchDoneMsg:
		if m.inFlight > 0 {
			m.inFlight--
		}
		if msg.err != nil {
			// Failures stay out of the view; status and rows keep the last good search.
			m.logger.Debug("Search from screen failed", zap.String("query", msg.query), zap.Error(msg.err))
			return m, nil
		}
		m.table.SetRows(rowsFor(msg.records))
		m.table.GotoTop()
		m.status = fmt.Sprintf("%d user(s) found for %q", len(msg.records), msg.query)
		m.statusErr = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Search):
			return m.startSearch()

		case key.Matches(msg, keys.ToggleMode):
			return m.toggleMode()

		case key.Matches(msg, keys.Up):
			m.table.MoveUp(1)
			return m, nil

		case key.Matches(msg, keys.Down):
			m.table.MoveDown(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.validation = usersearch.ValidateSearchQuery(m.input.Value())
	return m, cmd
}

// startSearch dispatches a search without waiting for earlier ones to finish.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	query := m.input.Value()
	m.inFlight++

	ctx, searcher := m.ctx, m.searcher
	return m, func() tea.Msg {
		err := searcher.Search(ctx, query)
		if err != nil {
			return searchDoneMsg{query: query, err: err}
		}
		return searchDoneMsg{query: query, records: searcher.Results()}
	}
}

func (m Model) toggleMode() (tea.Model, tea.Cmd) {
	next := usersearch.ClientModeGraph
	if m.searcher.Mode() == usersearch.ClientModeGraph {
		next = usersearch.ClientModeAAD
	}
	m.searcher.SetMode(next)

	m.status = fmt.Sprintf("Client switched to %s", next)
	m.statusErr = false
	if m.saveMode != nil {
		if err := m.saveMode(next); err != nil {
			m.status = fmt.Sprintf("Client switched to %s but the setting was not saved: %v", next, err)
			m.statusErr = true
		}
	}
	return m, nil
}

// View renders the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Microsoft Graph user search"))
	sb.WriteString(" ")
	sb.WriteString(modeStyle.Render("client: " + m.searcher.Mode().String()))
	sb.WriteString("\n\n")

	sb.WriteString(labelStyle.Render("Search for"))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	if m.validation != "" {
		sb.WriteString(validationStyle.Render(m.validation))
	}
	sb.WriteString("\n\n")

	sb.WriteString(tableBoxStyle.Render(m.table.View()))
	sb.WriteString("\n")

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStatusStyle
		}
		sb.WriteString(style.Render(m.status))
		sb.WriteString("\n")
	}
	switch {
	case m.inFlight == 1:
		sb.WriteString(modeStyle.Render(fmt.Sprintf("Searching with the %s client…", m.searcher.Mode())))
		sb.WriteString("\n")
	case m.inFlight > 1:
		sb.WriteString(modeStyle.Render(fmt.Sprintf("%d searches running", m.inFlight)))
		sb.WriteString("\n")
	}

	sb.WriteString(helpStyle.Render(keys.helpLine()))
	return sb.String()
}

// Run shows the search screen until the user quits.
func Run(ctx context.Context, searcher Searcher, saveMode ModeSaver, log logger.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(NewModel(ctx, searcher, saveMode, log), opts...).Run()
	return err
}
