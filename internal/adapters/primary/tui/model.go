// Package tui is the terminal front end: a notification bell rendered as a
// list, driven by the notification store.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/notify"
	"github.com/alexandreCDB/sistema-de-ticket-frota-sub000/internal/core/ports"
)

// StoreChangedMsg is sent by the store's change hook whenever notification
// state mutates. The UI re-reads its snapshot on receipt.
type StoreChangedMsg struct{}

// markDoneMsg reports the outcome of a mark-read command.
type markDoneMsg struct {
	err error
}

// historyLoadedMsg carries the archive entries for the history view.
type historyLoadedMsg struct {
	items []list.Item
	err   error
}

type keyMap struct {
	MarkRead key.Binding
	MarkAll  key.Binding
	Open     key.Binding
	History  key.Binding
	Logout   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		MarkRead: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "marcar lida"),
		),
		MarkAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "marcar todas"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "histórico"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "sair da conta"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "sair"),
		),
	}
}

var (
	bellStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	bellLitStyle = bellStyle.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Padding(0, 1)
)

// Model is the root bubbletea model of the console.
type Model struct {
	store   *notify.Store
	archive ports.NotificationArchive
	source  ports.EventSource
	logout  func(context.Context) error
	logger  *slog.Logger
	keys    keyMap

	list    list.Model
	history bool
	status  string
	lastErr error
	width   int
	height  int
}

// Option configures the console model.
type Option func(*Model)

// WithLogout registers the session-ending callback bound to the logout
// key. Without it the key only quits.
func WithLogout(fn func(context.Context) error) Option {
	return func(m *Model) { m.logout = fn }
}

// New creates the console model. archive may be nil; the history view is
// then unavailable.
func New(store *notify.Store, source ports.EventSource, archive ports.NotificationArchive, logger *slog.Logger, opts ...Option) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Notificações"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)

	m := Model{
		store:   store,
		archive: archive,
		source:  source,
		logger:  logger.With("component", "tui"),
		keys:    defaultKeyMap(),
		list:    l,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init is a no-op; initial state is seeded before the program starts.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// Update handles messages for the console.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case StoreChangedMsg:
		if m.history {
			return m, nil
		}
		return m, m.refresh()

	case markDoneMsg:
		m.lastErr = msg.err
		if msg.err == nil {
			m.status = "notificação confirmada"
		}
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			m.history = false
			return m, nil
		}
		m.history = true
		m.list.Title = "Histórico"
		return m, m.list.SetItems(msg.items)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Logout):
		if m.logout == nil {
			return m, tea.Quit
		}
		logout := m.logout
		logger := m.logger
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := logout(ctx); err != nil {
				logger.Warn("logout failed", "error", err)
			}
			return tea.Quit()
		}

	case key.Matches(msg, m.keys.History):
		if m.history {
			m.history = false
			m.list.Title = "Notificações"
			return m, m.refresh()
		}
		if m.archive == nil {
			m.status = "histórico indisponível"
			return m, nil
		}
		return m, m.loadHistory()

	case key.Matches(msg, m.keys.MarkRead):
		if m.history {
			return m, nil
		}
		item, ok := m.list.SelectedItem().(NotificationItem)
		if !ok {
			return m, nil
		}
		return m, m.markRead(item.ID)

	case key.Matches(msg, m.keys.MarkAll):
		if m.history {
			return m, nil
		}
		return m, m.markAll()

	case key.Matches(msg, m.keys.Open):
		if item, ok := m.list.SelectedItem().(NotificationItem); ok {
			m.status = "rota: " + item.TargetRoute
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the bell header, the list and the status line.
func (m Model) View() string {
	header := m.renderBell()

	footer := ""
	switch {
	case m.lastErr != nil:
		footer = errorStyle.Render("erro: " + m.lastErr.Error())
	case m.status != "":
		footer = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), footer)
}

func (m Model) renderBell() string {
	label := fmt.Sprintf("🔔 %d não lidas", m.store.Count())
	if !m.source.Connected() {
		label += "  (desconectado)"
	}
	if m.store.Animating() {
		return bellLitStyle.Render(label)
	}
	return bellStyle.Render(label)
}

// refresh rebuilds the list from the store's current snapshot.
func (m Model) refresh() tea.Cmd {
	unread := m.store.Unread()
	items := make([]list.Item, len(unread))
	for i, n := range unread {
		items[i] = NotificationItem{Notification: n}
	}
	return m.list.SetItems(items)
}

func (m Model) markRead(id int64) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return markDoneMsg{err: store.MarkAsRead(ctx, id)}
	}
}

func (m Model) markAll() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return markDoneMsg{err: store.MarkAllAsRead(ctx)}
	}
}

func (m Model) loadHistory() tea.Cmd {
	archive := m.archive
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entries, err := archive.Recent(ctx, 100)
		if err != nil {
			return historyLoadedMsg{err: err}
		}

		items := make([]list.Item, len(entries))
		for i, e := range entries {
			items[i] = HistoryItem{ArchivedNotification: e}
		}
		return historyLoadedMsg{items: items}
	}
}
