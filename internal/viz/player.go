package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/mlutils/internal/anim"
)

type frameMsg time.Time

// Player is a Bubble Tea model that steps an animation once per interval.
// The animation must have been created with the player's Screen as canvas.
type Player struct {
	anim      *anim.Animation
	screen    *Screen
	color     string
	paused    bool
	quitOnEnd bool
	err       error
}

type PlayerOption func(*Player)

// WithColor sets the hex color of the plotted primitive.
func WithColor(hex string) PlayerOption {
	return func(p *Player) { p.color = hex }
}

// WithQuitOnEnd makes the program exit after the last frame.
func WithQuitOnEnd() PlayerOption {
	return func(p *Player) { p.quitOnEnd = true }
}

func NewPlayer(a *anim.Animation, screen *Screen, opts ...PlayerOption) Player {
	p := Player{anim: a, screen: screen}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p Player) tick() tea.Cmd {
	return tea.Tick(p.anim.Interval(), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (p Player) Init() tea.Cmd {
	return p.tick()
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ":
			p.paused = !p.paused
		}
		return p, nil
	case frameMsg:
		if p.err != nil {
			return p, tea.Quit
		}
		if p.paused {
			return p, p.tick()
		}
		p.err = p.step()
		if p.err != nil {
			return p, tea.Quit
		}
		if p.anim.Done() {
			if p.quitOnEnd {
				return p, tea.Quit
			}
			return p, nil
		}
		return p, p.tick()
	}
	return p, nil
}

// step runs the init function on the first tick and a frame afterwards.
func (p Player) step() error {
	if p.anim.Session().State() == anim.BoundsSet {
		return p.anim.Init()
	}
	_, _, err := p.anim.Next()
	return err
}

// Err reports a rendering failure that stopped playback.
func (p Player) Err() error { return p.err }

func (p Player) View() string {
	var b strings.Builder

	ax := p.screen.Axes()
	if ax.Title != "" {
		b.WriteString(TitleStyle.Render(ax.Title))
		b.WriteString("\n")
	}

	yl := p.screen.yLabels()
	width := 0
	for _, l := range yl {
		width = max(width, len(l))
	}
	prim := PrimitiveStyle(p.color)
	var rows []string
	for i, row := range p.screen.Canvas().Rows() {
		label := AxisStyle.Render(fmt.Sprintf("%*s ┤", width, yl[i]))
		rows = append(rows, label+prim.Render(row))
	}
	b.WriteString(PanelStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n")
	b.WriteString(AxisStyle.Render(strings.Repeat(" ", width+3) + p.screen.xLabels()))
	b.WriteString("\n\n")

	b.WriteString(p.status())
	b.WriteString("\n")
	b.WriteString(KeyHint.Render("space pause • q quit"))
	b.WriteString("\n")
	return b.String()
}

func (p Player) status() string {
	total := p.anim.FrameCount()
	shown := len(p.anim.Session().Revealed())

	var state string
	switch {
	case p.err != nil:
		state = StatusPaused.Render("error: " + p.err.Error())
	case p.anim.Done():
		state = StatusDone.Render("done")
	case p.paused:
		state = StatusPaused.Render("paused")
	default:
		state = StatusPlaying.Render("playing")
	}

	frac := 0.0
	if total > 0 {
		frac = float64(shown) / float64(total)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		state, "  ",
		ProgressBar(frac, 30), "  ",
		fmt.Sprintf("frame %d/%d", shown, total),
	)
}

// Play runs the player until the user quits.
func Play(a *anim.Animation, screen *Screen, opts ...PlayerOption) error {
	final, err := tea.NewProgram(NewPlayer(a, screen, opts...)).Run()
	if err != nil {
		return err
	}
	if p, ok := final.(Player); ok {
		return p.Err()
	}
	return nil
}
