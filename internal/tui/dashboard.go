package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/flexfitapp/flexfit/internal/api"
	"github.com/flexfitapp/flexfit/internal/session"
	"github.com/flexfitapp/flexfit/internal/ux"
)

const fetchTimeout = 30 * time.Second

// PlanFetcher loads the membership plans shown on the dashboard.
type PlanFetcher func(ctx context.Context) ([]api.Plan, error)

// dashboardKeys defines the dashboard keyboard shortcuts.
type dashboardKeys struct {
	Refresh key.Binding
	Quit    key.Binding
}

var dashKeys = dashboardKeys{
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// plansMsg carries a completed fetch back into the update loop. generation
// ties it to the request that started it so a stale response from an
// abandoned refresh can never overwrite newer state.
type plansMsg struct {
	generation int
	plans      []api.Plan
	err        error
}

// DashboardModel is the authenticated landing screen: identity header plus
// the membership plan catalog.
type DashboardModel struct {
	session *session.Session
	fetch   PlanFetcher

	spinner    spinner.Model
	table      table.Model
	loading    bool
	generation int
	err        error
	quitting   bool
	width      int

	titleStyle lipgloss.Style
	mutedStyle lipgloss.Style
	errStyle   lipgloss.Style
	helpStyle  lipgloss.Style
}

// NewDashboard creates the dashboard model for an authenticated session.
func NewDashboard(s *session.Session, fetch PlanFetcher) DashboardModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	tbl := table.New(
		table.WithColumns(planColumns()),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	return DashboardModel{
		session: s,
		fetch:   fetch,
		spinner: sp,
		table:   tbl,
		loading: true,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1),
		mutedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		errStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		helpStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
	}
}

func planColumns() []table.Column {
	return []table.Column{
		{Title: "Plan", Width: 20},
		{Title: "Price", Width: 10},
		{Title: "Duration", Width: 10},
		{Title: "Benefits", Width: 36},
	}
}

// fetchCmd starts a plan fetch tagged with the current generation.
func (m DashboardModel) fetchCmd() tea.Cmd {
	generation := m.generation
	fetch := m.fetch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		plans, err := fetch(ctx)
		return plansMsg{generation: generation, plans: plans, err: err}
	}
}

// Init starts the spinner and the initial fetch.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, dashKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, dashKeys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			m.err = nil
			m.generation++
			return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
		}

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case plansMsg:
		if msg.generation != m.generation {
			// A newer refresh superseded this fetch.
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.table.SetRows(planRows(msg.plans))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func planRows(plans []api.Plan) []table.Row {
	rows := make([]table.Row, 0, len(plans))
	for _, p := range plans {
		benefits := ""
		if len(p.Benefits) > 0 {
			benefits = p.Benefits[0]
			if len(p.Benefits) > 1 {
				benefits = fmt.Sprintf("%s (+%d more)", benefits, len(p.Benefits)-1)
			}
		}
		rows = append(rows, table.Row{
			p.Name,
			ux.Money(p.Price),
			fmt.Sprintf("%d mo", p.DurationMonths),
			benefits,
		})
	}
	return rows
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	header := m.titleStyle.Render("FlexFit") + "\n" +
		m.mutedStyle.Render(fmt.Sprintf("%s · %s", m.session.DisplayName(), m.session.Role))

	var body string
	switch {
	case m.loading:
		body = fmt.Sprintf("\n%s loading plans...", m.spinner.View())
	case m.err != nil:
		body = "\n" + m.errStyle.Render("could not load plans") + "\n" + m.mutedStyle.Render(m.err.Error())
	default:
		body = "\n" + m.table.View()
	}

	help := m.helpStyle.Render("r refresh · q quit")

	return header + "\n" + body + "\n" + help
}

// Run starts the dashboard program and blocks until the user quits.
func Run(s *session.Session, fetch PlanFetcher) error {
	p := tea.NewProgram(NewDashboard(s, fetch))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	return nil
}
