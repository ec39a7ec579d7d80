package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/ljcell/internal/sim"
	"github.com/san-kum/ljcell/internal/system"
)

const (
	canvasWidth     = 40
	canvasHeight    = 16
	historyCapacity = 120
	maxFramePoints  = 20000
)

type frameMsg struct {
	sample sim.Sample
	xs, ys []float64
}

type doneMsg struct{ err error }

// Live is the Bubble Tea model for a running simulation.
type Live struct {
	title   string
	total   int
	box     [3]float64
	last    sim.Sample
	energy  []float64
	frames  int
	canvas  *Canvas
	start   time.Time
	done    bool
	stopped bool
	err     error
	cancel  context.CancelFunc
}

func NewLive(title string, totalSteps int, box [3]float64, cancel context.CancelFunc) *Live {
	return &Live{
		title:  title,
		total:  totalSteps,
		box:    box,
		canvas: NewCanvas(canvasWidth, canvasHeight),
		start:  time.Now(),
		cancel: cancel,
	}
}

func (m *Live) Init() tea.Cmd { return nil }

func (m *Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.stopped = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case frameMsg:
		m.frames++
		m.last = msg.sample
		m.energy = append(m.energy, msg.sample.Total)
		if len(m.energy) > historyCapacity {
			m.energy = m.energy[len(m.energy)-historyCapacity:]
		}
		if msg.xs != nil {
			m.canvas.Clear()
			m.canvas.Scatter(msg.xs, msg.ys, m.box[0], m.box[1])
		}
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m *Live) View() string {
	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.title)) + "\n")

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = StatusFailed.Render("FAILED: " + m.err.Error())
	case m.done:
		status = StatusRunning.Render("DONE")
	case m.stopped:
		status = StatusWarn.Render("STOPPING")
	}
	s.WriteString(status + "\n\n")

	pct := 0.0
	if m.total > 0 {
		pct = float64(m.last.Step) / float64(m.total)
	}
	s.WriteString(ProgressBar(pct, 30) + fmt.Sprintf(" %d/%d\n\n", m.last.Step, m.total))

	s.WriteString(Metric("time", fmt.Sprintf("%.4f", m.last.Time)) + "\n")
	s.WriteString(Metric("total", fmt.Sprintf("%.6f", m.last.Total)) + "\n")
	s.WriteString(Metric("kinetic", fmt.Sprintf("%.6f", m.last.Kinetic)) + "\n")
	s.WriteString(Metric("potential", fmt.Sprintf("%.6f", m.last.Potential)) + "\n")
	s.WriteString(Metric("temperature", fmt.Sprintf("%.4f", m.last.Temperature)) + "\n")
	s.WriteString(Metric("|P|", fmt.Sprintf("%.3g", m.last.Momentum)) + "\n")
	s.WriteString(Metric("wall", time.Since(m.start).Round(time.Millisecond).String()) + "\n")

	if len(m.energy) > 1 && Spread(m.energy) > 0 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(40), asciigraph.Caption("total energy"))
		s.WriteString("\n" + chart + "\n")
	}
	s.WriteString("\n" + KeyHint.Render("q: stop"))

	particles := Panel.Render(Subtle.Render("xy projection") + "\n" + m.canvas.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, particles, Panel.Render(s.String()))
}

// Err is the error the run finished with, if it finished.
func (m *Live) Err() error { return m.err }

type liveObserver struct {
	send func(tea.Msg)
}

func (o *liveObserver) OnSample(s sim.Sample) {
	o.send(frameMsg{sample: s})
}

func (o *liveObserver) OnFrame(s sim.Sample, sys *system.System) {
	n := min(sys.N, maxFramePoints)
	xs := make([]float64, n)
	ys := make([]float64, n)
	copy(xs, sys.Pos.X[:n])
	copy(ys, sys.Pos.Y[:n])
	o.send(frameMsg{sample: s, xs: xs, ys: ys})
}

// RunFunc runs a simulation with an extra observer.
type RunFunc func(ctx context.Context, obs sim.Observer) (*sim.Result, error)

// RunLive drives run behind a live terminal view. Quitting the view cancels
// the run; the partial result is returned with context.Canceled.
func RunLive(ctx context.Context, title string, totalSteps int, box [3]float64, run RunFunc) (*sim.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := NewLive(title, totalSteps, box, cancel)
	p := tea.NewProgram(m)

	type outcome struct {
		res *sim.Result
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		res, err := run(ctx, &liveObserver{send: p.Send})
		ch <- outcome{res, err}
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-ch
		return nil, err
	}
	out := <-ch
	return out.res, out.err
}
