package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kass/go-geohash/pkg/cellindex"
	"github.com/kass/go-geohash/pkg/config"
	"github.com/kass/go-geohash/pkg/geohash"
	"github.com/kass/go-geohash/pkg/logging"
	"github.com/kass/go-geohash/pkg/sample"
	"github.com/kass/go-geohash/pkg/ui"
)

type stage int

const (
	stageLoading stage = iota
	stageExploring
)

const historySize = 5

type model struct {
	stage    stage
	spinner  spinner.Model
	progress progress.Model
	input    textinput.Model

	precision int
	points    int
	seed      int64

	index    *cellindex.Index
	loadTime time.Duration
	loadErr  error

	current explanation
	err     error
	history []string
	width   int
}

type indexLoadedMsg struct {
	index    *cellindex.Index
	duration time.Duration
	err      error
}

func initialModel(precision, points int, seed int64) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF79C6"))

	ti := textinput.New()
	ti.Placeholder = "ezs42, 42.6,-5.6 or 52.6,13.0,52.3,13.8"
	ti.CharLimit = 64
	ti.Width = 48
	ti.Focus()

	return model{
		stage:     stageLoading,
		spinner:   s,
		progress:  progress.New(progress.WithDefaultGradient()),
		input:     ti,
		precision: precision,
		points:    points,
		seed:      seed,
		width:     80,
	}
}

// loadIndex builds a sample cell index so the explorer can report how many
// indexed cells cover the current input
func loadIndex(points, precision int, seed int64) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		hashes, err := sample.Hashes(sample.Coordinates(points, seed), precision)
		if err != nil {
			return indexLoadedMsg{err: err}
		}
		index := cellindex.New()
		if err := index.Add(hashes); err != nil {
			return indexLoadedMsg{err: err}
		}
		return indexLoadedMsg{index: index, duration: time.Since(start)}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		textinput.Blink,
		loadIndex(m.points, m.precision, m.seed),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = max(msg.Width-10, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.err == nil && m.current.hash != "" {
				m.history = append(m.history, fmt.Sprintf("%s -> %s", strings.TrimSpace(m.input.Value()), m.current.hash))
				if len(m.history) > historySize {
					m.history = m.history[1:]
				}
			}
			m.input.SetValue("")
			m.current, m.err = explanation{}, nil
			return m, nil
		}

	case spinner.TickMsg:
		if m.stage != stageLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case indexLoadedMsg:
		m.stage = stageExploring
		m.index, m.loadTime, m.loadErr = msg.index, msg.duration, msg.err
		if msg.err != nil {
			slog.Warn("Sample index unavailable", "error", msg.err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	previous := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != previous {
		m.refresh(value)
	}
	return m, cmd
}

func (m *model) refresh(value string) {
	if strings.TrimSpace(value) == "" {
		m.current, m.err = explanation{}, nil
		return
	}
	m.current, m.err = explain(value, m.precision, m.index)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(ui.TitleStyle.Render("🌍 Geohash Explorer"))
	b.WriteString("\n\n")

	if m.stage == stageLoading {
		b.WriteString(m.spinner.View())
		b.WriteString(fmt.Sprintf(" Indexing %d sample cells at %d characters...\n", m.points, m.precision))
	} else if m.loadErr != nil {
		b.WriteString(ui.ErrorStyle.Render("Sample index unavailable: " + m.loadErr.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(ui.DimStyle.Render(fmt.Sprintf("%d sample cells indexed in %s", m.index.Count(), m.loadTime.Round(time.Millisecond))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(ui.ErrorStyle.Render(m.err.Error()))
	case len(m.current.fields) > 0:
		b.WriteString(renderExplanation(m.current))
		b.WriteString("\n")
		b.WriteString(ui.SubtitleStyle.Render("Precision"))
		b.WriteString("\n")
		b.WriteString(m.progress.ViewAs(float64(len(m.current.hash)) / geohash.MaxLength))
	}

	if len(m.history) > 0 {
		b.WriteString("\n\n")
		b.WriteString(ui.DimStyle.Render("Recent:"))
		b.WriteString("\n")
		for _, h := range m.history {
			b.WriteString(ui.DimStyle.Render("• " + h))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(ui.DimStyle.Render("Enter to keep, Esc to quit"))

	return b.String()
}

func renderExplanation(e explanation) string {
	var b strings.Builder
	for i, f := range e.fields {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%-14s %s", f.label+":", ui.StatStyle.Render(f.value)))
	}
	return ui.BoxStyle.Render(b.String())
}

func main() {
	var (
		configFile = flag.String("config", "", "Config file (default config.yaml, then config.yaml.example)")
		points     = flag.Int("n", 100000, "Number of sample cells to index")
		length     = flag.Int("length", 0, "Geohash length for coordinates and sample cells (default from config)")
		seed       = flag.Int64("seed", time.Now().UnixNano(), "Random seed for the sample cells")
	)
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	// The TUI owns the terminal, so only errors are logged
	logging.Setup("error", cfg.Log.Format)
	if *length == 0 {
		*length = cfg.Geohash.Precision
	}

	p := tea.NewProgram(initialModel(*length, *points, *seed))
	if _, err := p.Run(); err != nil {
		slog.Error("Demo failed", "error", err)
		os.Exit(1)
	}
}
