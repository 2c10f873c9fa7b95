package ui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/clipbar/internal/toolbar"
	"github.com/oakwood-commons/clipbar/pkg/resize"
)

// chromeLines is the number of lines below a vertical toolbar taken by the
// status and help lines.
const chromeLines = 2

// Options configure a preview Model.
type Options struct {
	Theme   Theme
	NoColor bool
	// Extent is the starting extent along the layout axis.
	Extent int
	// Step is the number of cells a shrink or grow key moves the edge by.
	Step int
	// FollowWindow ties the extent to the terminal size until the user
	// resizes by hand.
	FollowWindow bool
	ShowMenu     bool
}

// Model is the interactive preview: a toolbar laid out in a box whose extent
// the user changes from the keyboard.
type Model struct {
	Toolbar *toolbar.Toolbar
	Box     *toolbar.Box
	Styles  toolbar.Styles
	Status  lipgloss.Style
	Keys    KeyMap
	Help    help.Model

	Extent       int
	Step         int
	FollowWindow bool
	ShowMenu     bool
	WinWidth     int
	WinHeight    int

	// Arrangement is the result of the latest layout pass.
	Arrangement toolbar.Arrangement
	Err         error
	// Notice is a one-off message shown in the status line until the next key.
	Notice string

	ctx context.Context
}

// NewModel returns a preview of tb laid out in box. The first layout pass runs
// immediately.
func NewModel(ctx context.Context, tb *toolbar.Toolbar, box *toolbar.Box, opts Options) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	if box == nil {
		box = toolbar.NewBox(resize.Horizontal)
	}
	h := help.New()
	h.Styles = opts.Theme.HelpStyles(opts.NoColor)
	m := &Model{
		Toolbar:      tb,
		Box:          box,
		Styles:       opts.Theme.Styles(opts.NoColor),
		Status:       opts.Theme.StatusStyle(opts.NoColor),
		Keys:         DefaultKeyMap(),
		Help:         h,
		Extent:       max(opts.Extent, 0),
		Step:         max(opts.Step, 1),
		FollowWindow: opts.FollowWindow,
		ShowMenu:     opts.ShowMenu,
		ctx:          ctx,
	}
	m.relayout()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WinWidth, m.WinHeight = msg.Width, msg.Height
		m.Help.SetWidth(msg.Width)
		if m.FollowWindow {
			m.Extent = m.windowExtent()
		}
		m.relayout()
	case tea.KeyPressMsg:
		m.Notice = ""
		return m.handleKey(msg)
	case copiedMsg:
		if msg.err != nil {
			m.Notice = "copy failed: " + msg.err.Error()
		} else {
			m.Notice = "copied " + msg.what
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Shrink):
		m.FollowWindow = false
		m.Extent = max(m.Extent-m.Step, 0)
	case key.Matches(msg, m.Keys.Grow):
		m.FollowWindow = false
		m.Extent += m.Step
		if limit := m.windowExtent(); limit > 0 {
			m.Extent = min(m.Extent, limit)
		}
	case key.Matches(msg, m.Keys.Rotate):
		m.Box.Orientation = m.Box.Orientation.Toggle()
		limit := m.windowExtent()
		switch {
		case m.FollowWindow:
			m.Extent = limit
		case limit > 0:
			m.Extent = min(m.Extent, limit)
		}
	case key.Matches(msg, m.Keys.Menu):
		m.ShowMenu = !m.ShowMenu
		return m, nil
	case key.Matches(msg, m.Keys.Copy):
		return m, copyCmd("toolbar", toolbar.Render(m.Arrangement, toolbar.PlainStyles()))
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil
	default:
		return m, nil
	}
	m.relayout()
	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	return v
}

// Render draws the toolbar, the overflow menu when open, the status line and
// the key help.
func (m *Model) Render() string {
	parts := make([]string, 0, 4)
	if bar := toolbar.Render(m.Arrangement, m.Styles); bar != "" {
		parts = append(parts, bar)
	}
	if m.ShowMenu {
		if menu := toolbar.RenderOverflowMenu(m.Arrangement, m.Styles); menu != "" {
			parts = append(parts, menu)
		}
	}
	parts = append(parts, m.Status.Render(m.statusLine()))
	if h := m.Help.View(m.Keys); h != "" {
		parts = append(parts, h)
	}
	return strings.Join(parts, "\n")
}

func (m *Model) statusLine() string {
	if m.Err != nil {
		return "error: " + m.Err.Error()
	}
	arr := m.Arrangement
	line := fmt.Sprintf("%s %s · extent %d · %d shown · %d clipped",
		arr.Toolbar, arr.Orientation, arr.Extent, arr.Result.Survivors, arr.Result.Clipped)
	if arr.Overflow != nil && !m.ShowMenu && arr.Result.Hidden > 0 {
		line += " · o to list"
	}
	if m.Notice != "" {
		line += " · " + m.Notice
	}
	return strings.TrimSpace(line)
}

// windowExtent is the extent the terminal offers along the layout axis, or 0
// before the first WindowSizeMsg.
func (m *Model) windowExtent() int {
	if m.Box.Orientation == resize.Vertical {
		return max(m.WinHeight-chromeLines, 0)
	}
	return m.WinWidth
}

func (m *Model) relayout() {
	m.Arrangement, m.Err = m.Box.Arrange(m.ctx, m.Toolbar, m.Extent)
}
