package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jlite/internal/diag"
	"jlite/internal/driver"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// batchModel рисует прогресс пачки файлов: строка на файл и общий индикатор.
type batchModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	done    bool
}

type fileRow struct {
	path   string
	stage  driver.Stage
	status driver.Status
	reason string // код диагностики или "internal" для упавших
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders batch progress
// until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 60

	m := &batchModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f, stage: driver.StageRead, status: driver.StatusQueued}
		m.byPath[f] = i
	}
	return m
}

func (m *batchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		// компиляция не прерывается, окно просто перестаёт обновляться
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-20, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *batchModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	head := m.title
	if m.done {
		head = "done: " + head
	} else {
		head = m.spinner.View() + " " + head
	}
	b.WriteString(titleStyle.Render(head))
	b.WriteString("\n\n")

	nameWidth := max(m.width-24, 20)
	for _, r := range m.rows {
		fmt.Fprintf(&b, "  %s %s", m.mark(r), truncate(r.path, nameWidth))
		switch {
		case r.status == driver.StatusError:
			b.WriteString("  " + failStyle.Render(r.reason))
		case r.status == driver.StatusWorking:
			b.WriteString("  " + activeStyle.Render(stageLabel(r.stage)))
		}
		b.WriteByte('\n')
	}

	finished, failed := m.counts()
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, " %d/%d", finished, len(m.rows))
	if failed > 0 {
		b.WriteString(failStyle.Render(fmt.Sprintf(" (%d failed)", failed)))
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *batchModel) mark(r fileRow) string {
	switch r.status {
	case driver.StatusDone:
		return okStyle.Render("✓")
	case driver.StatusError:
		return failStyle.Render("✗")
	case driver.StatusWorking:
		return m.spinner.View()
	default:
		return pendingStyle.Render("·")
	}
}

func (m *batchModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

// apply обновляет строку файла; события без файла (конец пачки) игнорируются.
func (m *batchModel) apply(ev driver.Event) tea.Cmd {
	idx, ok := m.byPath[ev.File]
	if ev.File == "" || !ok {
		return nil
	}
	r := &m.rows[idx]
	if isFinal(r.status) {
		return nil
	}
	r.stage, r.status = ev.Stage, ev.Status
	if ev.Status == driver.StatusError {
		r.reason = failureReason(ev.Err)
	}
	return m.bar.SetPercent(m.percent())
}

func (m *batchModel) counts() (finished, failed int) {
	for _, r := range m.rows {
		if isFinal(r.status) {
			finished++
		}
		if r.status == driver.StatusError {
			failed++
		}
	}
	return finished, failed
}

// percent: завершённый файл весит 1, остальные - долю по текущей стадии.
func (m *batchModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range m.rows {
		switch {
		case isFinal(r.status):
			total++
		case r.status == driver.StatusWorking:
			total += stageWeight(r.stage)
		}
	}
	return total / float64(len(m.rows))
}

func isFinal(s driver.Status) bool {
	return s == driver.StatusDone || s == driver.StatusError
}

func stageWeight(stage driver.Stage) float64 {
	switch stage {
	case driver.StageRead:
		return 0.05
	case driver.StageParse:
		return 0.2
	case driver.StageCheck:
		return 0.5
	case driver.StageLower:
		return 0.75
	case driver.StageEmit:
		return 0.9
	}
	return 0
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageRead:
		return "reading"
	case driver.StageParse:
		return "parsing"
	case driver.StageCheck:
		return "checking"
	case driver.StageLower:
		return "lowering"
	case driver.StageEmit:
		return "printing"
	}
	return ""
}

func failureReason(err error) string {
	var ie *driver.InternalError
	switch {
	case err == nil:
		return "failed"
	case errors.As(err, &ie):
		return "internal error"
	}
	if code := diag.CodeOf(err); code != diag.UnknownCode {
		return code.ID()
	}
	return "failed"
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
