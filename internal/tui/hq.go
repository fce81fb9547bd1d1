// Package tui is a terminal dashboard that drives an in-process engine.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"osirishq/internal/agent"
	"osirishq/internal/game"
)

const refreshEvery = 250 * time.Millisecond

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginLeft(1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ledgerStyle = lipgloss.NewStyle().
			Bold(true).
			MarginLeft(1).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			MarginLeft(1).
			MarginTop(1)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			MarginLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginLeft(1).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			MarginLeft(1)
)

// Model is the bubbletea model for the HQ dashboard.
type Model struct {
	engine     *game.Engine
	table      table.Model
	snap       game.Snapshot
	lastUpdate time.Time
	note       string
	err        error
	quitting   bool
}

type tickMsg time.Time
type snapshotMsg game.Snapshot
type actionMsg struct {
	note string
	err  error
}

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func New(engine *game.Engine) Model {
	columns := []table.Column{
		{Title: "Agent", Width: 10},
		{Title: "Role", Width: 20},
		{Title: "Status", Width: 8},
		{Title: "Task", Width: 20},
		{Title: "Progress", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true).
		Foreground(lipgloss.Color("214"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{engine: engine, table: t}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.refresh())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			return m, m.assignSelected()
		case "c":
			return m, m.click()
		case "r":
			return m, m.claimAll()
		case "u":
			return m, m.buyNext()
		}

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(3, min(len(m.snap.Agents)+1, msg.Height-14)))
		return m, nil

	case tickMsg:
		return m, tea.Batch(tickCmd(), m.refresh())

	case snapshotMsg:
		m.snap = game.Snapshot(msg)
		m.lastUpdate = m.snap.TakenAt
		m.table.SetRows(agentRows(m.snap))
		return m, nil

	case actionMsg:
		m.note, m.err = msg.note, msg.err
		return m, m.refresh()
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func agentRows(snap game.Snapshot) []table.Row {
	rows := make([]table.Row, len(snap.Agents))
	for i, a := range snap.Agents {
		task, bar := "-", ""
		if a.Status == agent.StatusWorking {
			task, bar = a.TaskTitle, progressBar(a.Progress, 10)
		}
		rows[i] = table.Row{a.Name, a.Role, string(a.Status), task, bar}
	}
	return rows
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (m Model) View() string {
	if m.quitting {
		return "HQ closed.\n"
	}

	var b strings.Builder

	header := lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleStyle.Render("Osiris HQ"),
		strings.Repeat(" ", 5),
		timestampStyle.Render(fmt.Sprintf("Last update: %s", m.lastUpdate.Format("15:04:05"))),
	)
	b.WriteString(header)
	b.WriteString("\n\n")

	l := m.snap.Ledger
	b.WriteString(ledgerStyle.Render(fmt.Sprintf(
		"$%d | energy %.0f/%.0f | level %d (%d/%d xp) | leads %d | reviews %d | clients %d",
		l.Currency, l.Energy, l.MaxEnergy, l.Level, l.Experience, l.NextLevelXP, l.Leads, l.Reviews, l.Clients,
	)))
	b.WriteString("\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")

	var side []string
	if claimable := m.snap.ClaimableQuests(); len(claimable) > 0 {
		titles := make([]string, len(claimable))
		for i, q := range claimable {
			titles[i] = q.Title
		}
		side = append(side, "Quests ready: "+strings.Join(titles, ", "))
	}
	if u, ok := m.snap.NextUpgrade(); ok {
		side = append(side, fmt.Sprintf("Next upgrade: %s ($%d, %s)", u.Title, u.Cost, u.Effect.Describe()))
	}
	if n := len(m.snap.Activity); n > 0 {
		side = append(side, "Latest: "+m.snap.Activity[n-1].Message)
	}
	if len(side) > 0 {
		b.WriteString(sectionStyle.Render(strings.Join(side, "\n")))
		b.WriteString("\n")
	}

	if m.note != "" {
		b.WriteString(noteStyle.Render(m.note))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("↑/↓: select • enter: assign • c: hustle • r: claim quests • u: buy upgrade • q/esc: quit"))

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return b.String()
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.engine.Snapshot(context.Background())
		if err != nil {
			return actionMsg{err: err}
		}
		return snapshotMsg(snap)
	}
}

func (m Model) selectedAgent() (game.AgentView, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.snap.Agents) {
		return game.AgentView{}, false
	}
	return m.snap.Agents[i], true
}

func (m Model) assignSelected() tea.Cmd {
	a, ok := m.selectedAgent()
	if !ok {
		return nil
	}
	t, ok := m.snap.NextTask(a.ID)
	if !ok {
		return func() tea.Msg {
			return actionMsg{note: fmt.Sprintf("%s has nothing affordable to do", a.Name)}
		}
	}
	return func() tea.Msg {
		res, err := m.engine.AssignTask(context.Background(), a.ID, t.ID)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("%s started %s (%.0f energy left)", a.Name, t.Title, res.EnergyLeft)}
	}
}

func (m Model) click() tea.Cmd {
	return func() tea.Msg {
		res, err := m.engine.ManualEarn(context.Background())
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("+$%d", res.Amount)}
	}
}

func (m Model) claimAll() tea.Cmd {
	claimable := m.snap.ClaimableQuests()
	if len(claimable) == 0 {
		return func() tea.Msg { return actionMsg{note: "no quests to claim"} }
	}
	return func() tea.Msg {
		var claimed []string
		for _, q := range claimable {
			if _, err := m.engine.ClaimQuest(context.Background(), q.ID); err != nil {
				return actionMsg{note: joinClaimed(claimed), err: err}
			}
			claimed = append(claimed, q.Title)
		}
		return actionMsg{note: joinClaimed(claimed)}
	}
}

func joinClaimed(titles []string) string {
	if len(titles) == 0 {
		return ""
	}
	return "claimed " + strings.Join(titles, ", ")
}

func (m Model) buyNext() tea.Cmd {
	u, ok := m.snap.NextUpgrade()
	if !ok {
		return func() tea.Msg { return actionMsg{note: "nothing affordable in the shop"} }
	}
	return func() tea.Msg {
		if _, err := m.engine.PurchaseUpgrade(context.Background(), u.ID); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{note: fmt.Sprintf("bought %s: %s", u.Title, u.Effect.Describe())}
	}
}

// Run starts the dashboard and blocks until the user quits or ctx ends.
func Run(ctx context.Context, engine *game.Engine) error {
	p := tea.NewProgram(
		New(engine),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
