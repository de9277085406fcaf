package main

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type frameMsg struct {
	id FrameID
	at time.Time
}

type clipboardMsg struct {
	seed uint64
	err  error
}

// teaScheduler turns frame requests into tea.Tick commands. Requests are
// queued until the model hands them to the runtime through commands().
type teaScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	next     FrameID
	pending  map[FrameID]func(time.Time)
	queued   []FrameID
}

func newTeaScheduler(fps int) *teaScheduler {
	if fps < 1 {
		fps = defaultFPS
	}
	return &teaScheduler{
		interval: time.Second / time.Duration(fps),
		pending:  make(map[FrameID]func(time.Time)),
	}
}

func (s *teaScheduler) RequestFrame(fn func(now time.Time)) FrameID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending[s.next] = fn
	s.queued = append(s.queued, s.next)
	return s.next
}

func (s *teaScheduler) CancelFrame(id FrameID) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

func (s *teaScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *teaScheduler) commands() tea.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cmds []tea.Cmd
	for _, id := range s.queued {
		if _, ok := s.pending[id]; !ok {
			continue
		}
		id := id
		cmds = append(cmds, tea.Tick(s.interval, func(t time.Time) tea.Msg {
			return frameMsg{id: id, at: t}
		}))
	}
	s.queued = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// fire runs the callback for msg unless it was cancelled.
func (s *teaScheduler) fire(msg frameMsg) bool {
	s.mu.Lock()
	fn, ok := s.pending[msg.id]
	delete(s.pending, msg.id)
	s.mu.Unlock()
	if ok {
		fn(msg.at)
	}
	return ok
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Background(lipgloss.Color("236")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Background(lipgloss.Color("236"))
	helpStyle   = lipgloss.NewStyle().Margin(1, 2)
)

type viewer struct {
	cfg       *Config
	log       *zap.Logger
	host      *EventHost
	frames    *teaScheduler
	surface   *CanvasSurface
	animator  *Animator
	cells     *cellCache
	seed      uint64
	scale     int
	cols      int
	rows      int
	cursorX   int
	cursorY   int
	help      bool
	lastFrame time.Time
	fps       float64
	message   string
}

func newViewer(cfg *Config, log *zap.Logger, theme Theme) viewer {
	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = rand.Uint64()
	}
	scale := cfg.CellScale
	if scale < 1 {
		scale = 1
	}

	host := NewEventHost(0, 0, theme, forcedDetail(cfg.Detail, reducedBelow(compactColumns*scale)))
	frames := newTeaScheduler(cfg.FPS)
	surface := NewCanvasSurface(0, 0)
	pointer := NewPointerSampler(cfg.Debounce)
	if cfg.PointerSpring {
		pointer.EnableSpring(cfg.FPS, 6.0, 1.0)
	}
	animator := NewAnimator(NewSeededField(seed), host, frames, surface,
		WithLogger(log),
		WithPointerSampler(pointer),
	)

	return viewer{
		cfg:      cfg,
		log:      log.With(zap.String("component", "viewer")),
		host:     host,
		frames:   frames,
		surface:  surface,
		animator: animator,
		cells:    newCellCache(),
		seed:     seed,
		scale:    scale,
	}
}

func (m viewer) Init() tea.Cmd {
	if err := m.animator.Start(); err != nil {
		m.log.Error("start animation", zap.Error(err))
		return nil
	}
	return m.frames.commands()
}

func (m viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols = msg.Width
		m.rows = msg.Height - 1 // status line
		if m.rows < 0 {
			m.rows = 0
		}
		m.ensureCursorInBounds()
		m.host.Resize(m.cols*m.scale, m.rows*2*m.scale)
		return m, m.frames.commands()

	case tea.MouseMsg:
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.ensureCursorInBounds()
		m.host.MovePointer(m.cellCenter(m.cursorX, m.cursorY))
		return m, nil

	case frameMsg:
		if m.frames.fire(msg) {
			if !m.lastFrame.IsZero() {
				if dt := msg.at.Sub(m.lastFrame).Seconds(); dt > 0 {
					m.fps = 1 / dt
				}
			}
			m.lastFrame = msg.at
		}
		return m, m.frames.commands()

	case clipboardMsg:
		if msg.err != nil {
			m.message = "clipboard: " + msg.err.Error()
			m.log.Warn("copy seed", zap.Error(msg.err))
		} else {
			m.message = fmt.Sprintf("seed %d copied", msg.seed)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
		}
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.animator.Stop()
		return m, tea.Quit
	case "?":
		m.help = true
	case "t":
		m.host.SetTheme(m.host.Theme().Toggle())
		m.message = "theme " + m.host.Theme().String()
	case "r":
		m.seed = rand.Uint64()
		m.animator.Reshuffle(m.seed)
		m.message = "reseeded"
	case "y":
		return m, copySeed(m.seed)
	default:
		if isNavigationKey(key) {
			return m.handleNavigation(key, m.getMoveSpeed(key))
		}
	}
	return m, nil
}

func copySeed(seed uint64) tea.Cmd {
	return func() tea.Msg {
		return clipboardMsg{seed: seed, err: clipboard.WriteAll(strconv.FormatUint(seed, 10))}
	}
}

func (m viewer) View() string {
	if m.help {
		return m.helpView()
	}
	lines := rasterize(m.surface.Image(), m.cols, m.rows, m.scale, m.cells)
	return strings.Join(append(lines, m.statusLine()), "\n")
}

func (m viewer) statusLine() string {
	stats := m.animator.Stats()
	detail := "full"
	if stats.Reduced {
		detail = "reduced"
	}
	left := accentStyle.Render(" starfield ") +
		statusStyle.Render(fmt.Sprintf(" %s · %s · %d stars · %d nebulae · %.0f fps · seed %d ",
			stats.Theme, detail, stats.Stars, stats.Nebulae, m.fps, m.seed))
	if m.message != "" {
		left += dimStyle.Render(" " + m.message + " ")
	}
	right := dimStyle.Render(" ? help ")
	gap := m.cols - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + statusStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m viewer) helpView() string {
	lines := []string{
		"starfield",
		"=========",
		"",
		"  mouse / h j k l / arrows   move the parallax pointer",
		"  H J K L / shift+arrows     move it faster",
		"  t                          toggle light/dark theme",
		"  r                          reseed with a new random seed",
		"  y                          copy the current seed",
		"  ?                          toggle this help",
		"  q / ctrl+c                 quit",
		"",
		fmt.Sprintf("  seed %d, %d fps, cell scale %d", m.seed, m.cfg.FPS, m.scale),
	}
	return helpStyle.Render(strings.Join(lines, "\n"))
}
