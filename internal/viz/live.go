// Package viz animates a simulation in the terminal: bodies and fading
// trails on a braille canvas, a legend and conservation stats beside
// it, and an energy-drift sparkline.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbits/internal/config"
	"github.com/san-kum/orbits/internal/render"
	"github.com/san-kum/orbits/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	frameRate       = 30
)

type TickMsg time.Time

// Model owns the running simulation and its terminal presentation.
type Model struct {
	cfg       *config.Config
	simulator *sim.Simulator
	canvas    *render.Canvas

	t             float64
	frame         int
	running       bool
	initialEnergy float64
	driftHistory  []float64
}

func NewModel(cfg *config.Config) Model {
	m := Model{
		cfg:     cfg,
		canvas:  render.NewCanvas(canvasWidth, canvasHeight, cfg.Extent),
		running: true,
	}
	m.resetSim()
	return m
}

func (m *Model) resetSim() {
	m.simulator = sim.New(m.cfg.System(), m.cfg.TrailCapacity)
	m.initialEnergy = m.simulator.System().Energy()
	m.t = 0
	m.frame = 0
	m.driftHistory = m.driftHistory[:0]
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.resetSim()
		}

	case TickMsg:
		if m.running && m.frame < m.cfg.Frames {
			m.simulator.Advance(m.t, m.cfg.Dt)
			m.t += m.cfg.Dt
			m.frame++
			m.recordDrift()
		}
		return m, tick()
	}

	return m, nil
}

func (m *Model) recordDrift() {
	drift := 0.0
	if m.initialEnergy != 0 {
		e := m.simulator.System().Energy()
		drift = (e - m.initialEnergy) / m.initialEnergy
	}
	if len(m.driftHistory) == historyCapacity {
		m.driftHistory = m.driftHistory[1:]
	}
	m.driftHistory = append(m.driftHistory, drift)
}

func (m Model) View() string {
	m.canvas.Draw(m.simulator.Frame())

	left := canvasStyle.Render(renderColored(m.canvas))
	right := statsStyle.Render(m.statsPanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	help := helpStyle.Render("space pause · r reset · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, help)
}

func (m Model) statsPanel() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("orbits · " + m.cfg.Scenario))
	sb.WriteByte('\n')

	sb.WriteString(m.statusLine())
	sb.WriteString("\n\n")

	days := m.t / 86400
	row := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(valueStyle.Render(value))
		sb.WriteByte('\n')
	}
	row("frame", fmt.Sprintf("%d / %d", m.frame, m.cfg.Frames))
	row("sim time", fmt.Sprintf("%.1f days", days))
	row("bodies", fmt.Sprintf("%d", len(m.simulator.System().Bodies)))

	drift := 0.0
	if len(m.driftHistory) > 0 {
		drift = m.driftHistory[len(m.driftHistory)-1]
	}
	row("energy drift", fmt.Sprintf("%+.2e", drift))

	sb.WriteByte('\n')
	for _, b := range m.simulator.System().Bodies {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("●")
		sb.WriteString(fmt.Sprintf("%s %s\n", swatch, b.Name))
	}

	if len(m.driftHistory) >= 2 {
		graph := asciigraph.Plot(m.driftHistory,
			asciigraph.Height(5),
			asciigraph.Width(30),
			asciigraph.Caption("energy drift"),
		)
		sb.WriteString(graphStyle.Render(graph))
	}

	return sb.String()
}

func (m Model) statusLine() string {
	switch {
	case m.frame >= m.cfg.Frames:
		return statusFinished.Render("finished")
	case m.running:
		return statusRunning.Render("running")
	default:
		return statusPaused.Render("paused")
	}
}

// renderColored emits the canvas with per-cell foreground colors,
// batching runs of identically-colored cells into one styled chunk.
func renderColored(c *render.Canvas) string {
	var sb strings.Builder

	for i, row := range c.Grid {
		if i > 0 {
			sb.WriteByte('\n')
		}

		j := 0
		for j < len(row) {
			color := c.Colors[i][j]
			k := j
			for k < len(row) && c.Colors[i][k] == color {
				k++
			}
			chunk := string(row[j:k])
			if color == "" {
				sb.WriteString(chunk)
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(chunk))
			}
			j = k
		}
	}

	return sb.String()
}

// Run drives the live view to completion or quit.
func Run(cfg *config.Config) error {
	p := tea.NewProgram(NewModel(cfg))
	_, err := p.Run()
	return err
}
