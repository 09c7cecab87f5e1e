// Package models provides Bubble Tea models for the TUI interface.
package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/andri/podgrid/pkg/client"
	"github.com/andri/podgrid/pkg/config"
	"github.com/andri/podgrid/pkg/tui/components"
	"github.com/andri/podgrid/pkg/tui/keys"
	"github.com/andri/podgrid/pkg/tui/styles"
	"github.com/andri/podgrid/pkg/viewstate"
)

// focusTarget names the pane receiving navigation keys.
type focusTarget int

const (
	focusGrid focusTarget = iota
	focusSidebar
)

// sortCycle is the order the sort key walks through. Only columns the
// backend can sort on participate.
var sortCycle = []string{
	viewstate.ColumnName,
	viewstate.ColumnNamespace,
	viewstate.ColumnStatus,
	viewstate.ColumnCreated,
	viewstate.ColumnRestarts,
}

// sortFields maps column IDs to the backend's sort_by values.
var sortFields = map[string]string{
	viewstate.ColumnName:      "name",
	viewstate.ColumnNamespace: "namespace",
	viewstate.ColumnStatus:    "phase",
	viewstate.ColumnCreated:   "created_timestamp",
	viewstate.ColumnRestarts:  "restart_count",
}

// Messages for internal communication

// LayoutRestoredMsg carries the layout read from disk, nil when no usable
// saved layout exists.
type LayoutRestoredMsg struct {
	Layout *viewstate.ViewState
}

// PodsLoadedMsg carries one completed pod fetch. Seq identifies which
// request produced it so stale responses can be discarded.
type PodsLoadedMsg struct {
	Seq  int
	Page client.PodPage
	Err  error
}

// NamespacesLoadedMsg carries the namespace list for the sidebar.
type NamespacesLoadedMsg struct {
	Namespaces []string
	Err        error
}

// ScriptsLoadedMsg carries the server's script catalog names.
type ScriptsLoadedMsg struct {
	Scripts []string
	Err     error
}

// PollTickMsg fires when the next background refresh is due.
type PollTickMsg struct{}

// ActionDoneMsg carries the outcome of a pod action.
type ActionDoneMsg struct {
	Kind   components.ActionKind
	Target string
	Script string
	Output string
	Err    error
}

// AppConfig holds everything the app model needs to run.
type AppConfig struct {
	Config  config.Config
	Client  *client.Client
	Store   *viewstate.Store
	Context context.Context
}

// AppModel is the root Bubble Tea model: it owns the grid, the sidebar,
// the poll loop, the action lifecycle, and layout persistence.
type AppModel struct {
	cfg   config.Config
	api   *client.Client
	store *viewstate.Store
	ctx   context.Context

	grid    *components.Grid
	sidebar *components.Sidebar
	header  components.Header

	confirm *components.ActionConfirm
	modal   *components.FailureModal
	notice  *components.Notice
	banner  components.ErrorBanner

	scripts []string
	page    int

	// fetchSeq is the sequence number of the most recent fetch. Responses
	// carrying an older number are dropped.
	fetchSeq  int
	noticeSeq int

	focus    focusTarget
	restored bool
	quitting bool

	width  int
	height int

	globalKeys keys.GlobalBindings
	gridKeys   keys.GridBindings
}

// NewAppModel creates the root model. The grid starts on the default
// layout; the saved layout, if any, is applied once restoration finishes.
func NewAppModel(cfg AppConfig) *AppModel {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}

	return &AppModel{
		cfg:     cfg.Config,
		api:     cfg.Client,
		store:   cfg.Store,
		ctx:     ctx,
		grid:    components.NewGrid(viewstate.DefaultViewState()),
		sidebar: components.NewSidebar(),
		header: components.Header{
			BackendURL: cfg.Config.Backend.BaseURL,
		},
		page:       1,
		globalKeys: keys.DefaultGlobalBindings(),
		gridKeys:   keys.DefaultGridBindings(),
	}
}

// Init implements tea.Model
func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.restoreLayout,
		m.fetchPods(),
		m.fetchNamespaces,
		m.fetchScripts,
	)
}

// restoreLayout reads the saved layout off the UI goroutine.
func (m *AppModel) restoreLayout() tea.Msg {
	return LayoutRestoredMsg{Layout: m.store.Load()}
}

// fetchPods issues a pod fetch for the current query and bumps the
// sequence counter so older in-flight responses become stale.
func (m *AppModel) fetchPods() tea.Cmd {
	m.fetchSeq++
	seq := m.fetchSeq
	query := m.currentQuery()
	m.header.Refreshing = true

	return func() tea.Msg {
		page, err := m.api.FetchPods(m.ctx, query)
		return PodsLoadedMsg{Seq: seq, Page: page, Err: err}
	}
}

func (m *AppModel) fetchNamespaces() tea.Msg {
	namespaces, err := m.api.FetchNamespaces(m.ctx)
	return NamespacesLoadedMsg{Namespaces: namespaces, Err: err}
}

func (m *AppModel) fetchScripts() tea.Msg {
	scripts, err := m.api.FetchScripts(m.ctx)
	return ScriptsLoadedMsg{Scripts: scripts, Err: err}
}

func (m *AppModel) schedulePoll() tea.Cmd {
	return tea.Tick(m.cfg.Backend.PollInterval(), func(_ time.Time) tea.Msg {
		return PollTickMsg{}
	})
}

// currentQuery builds the backend query from the grid layout, the sidebar
// filters, and the current page.
func (m *AppModel) currentQuery() client.PodQuery {
	layout := m.grid.Layout()

	query := client.PodQuery{
		Page:       m.page,
		PageSize:   layout.PageSize,
		Namespaces: m.sidebar.SelectedNamespaces(),
		Statuses:   m.sidebar.SelectedStatuses(),
	}

	if col, ok := layout.SortedColumn(); ok {
		if field, known := sortFields[col.ID]; known {
			query.SortBy = field
			if col.Sort == viewstate.SortDesc {
				query.SortOrder = "desc"
			} else {
				query.SortOrder = "asc"
			}
		}
	}

	return query
}

// Update implements tea.Model
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.grid.SetWidth(msg.Width)
		if m.modal != nil {
			m.modal.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case LayoutRestoredMsg:
		return m.handleLayoutRestored(msg)

	case PodsLoadedMsg:
		return m.handlePodsLoaded(msg)

	case NamespacesLoadedMsg:
		if msg.Err == nil {
			m.sidebar.SetNamespaces(msg.Namespaces)
		}
		return m, nil

	case ScriptsLoadedMsg:
		if msg.Err == nil {
			m.scripts = msg.Scripts
		}
		return m, nil

	case PollTickMsg:
		// Refreshes keep running underneath dialogs; stale responses are
		// handled by the sequence counter, not by pausing the poll.
		return m, tea.Batch(m.fetchPods(), m.schedulePoll())

	case components.ConfirmResultMsg:
		return m.handleConfirmResult(msg)

	case ActionDoneMsg:
		return m.handleActionDone(msg)

	case components.FailureAckMsg:
		m.modal = nil
		return m, nil

	case components.NoticeExpiredMsg:
		if m.notice != nil && m.notice.ID == msg.ID {
			m.notice = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleLayoutRestored applies the saved layout and arms persistence.
// Until this message arrives the grid shows the default layout and no
// save can happen, so a slow disk read never loses the user's layout.
func (m *AppModel) handleLayoutRestored(msg LayoutRestoredMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.Layout != nil {
		m.grid.SetLayout(*msg.Layout)
		m.sidebar.Collapsed = msg.Layout.SidebarCollapsed
		if msg.Layout.Page >= 1 {
			m.page = msg.Layout.Page
		}
		// Re-fetch so page, page size, and sort from the saved layout apply.
		cmd = m.fetchPods()
	}

	m.store.MarkRestored()
	m.restored = true

	return m, tea.Batch(cmd, m.schedulePoll())
}

func (m *AppModel) handlePodsLoaded(msg PodsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.fetchSeq {
		return m, nil
	}
	m.header.Refreshing = false

	if msg.Err != nil {
		m.banner = components.ErrorBanner{Text: fetchErrorText(msg.Err)}
		return m, nil
	}

	m.banner = components.ErrorBanner{}
	m.grid.SetRecords(msg.Page.Pods)
	m.header.Pagination = msg.Page.Pagination
	m.header.LastRefresh = time.Now()

	// Clamp to the last page when the inventory shrank under us.
	if total := msg.Page.Pagination.TotalPages; total > 0 && m.page > total {
		m.page = total
		return m, m.fetchPods()
	}

	return m, nil
}

func (m *AppModel) handleConfirmResult(msg components.ConfirmResultMsg) (tea.Model, tea.Cmd) {
	m.confirm = nil

	if msg.Result != components.ConfirmYes {
		return m, nil
	}

	target := msg.Target
	switch msg.Kind {
	case components.ActionDelete:
		return m, func() tea.Msg {
			err := m.api.DeletePod(m.ctx, target.Namespace, target.Name)
			return ActionDoneMsg{Kind: components.ActionDelete, Target: target.FQDN(), Err: err}
		}
	case components.ActionScript:
		script := msg.Script
		return m, func() tea.Msg {
			output, err := m.api.RunScript(m.ctx, target.Namespace, target.Name, script)
			return ActionDoneMsg{Kind: components.ActionScript, Target: target.FQDN(), Script: script, Output: output, Err: err}
		}
	}

	return m, nil
}

// handleActionDone finishes an action: a success shows a timed notice and
// triggers exactly one refresh; a failure raises the blocking modal and
// leaves the grid untouched.
func (m *AppModel) handleActionDone(msg ActionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		title := "Delete failed"
		if msg.Kind == components.ActionScript {
			title = "Script failed"
		}
		m.modal = components.NewFailureModal(title, fmt.Sprintf("%s\n\n%s", msg.Target, msg.Err.Error()))
		m.modal.SetSize(m.width, m.height)
		return m, nil
	}

	var text string
	level := components.NoticeSuccess
	switch msg.Kind {
	case components.ActionDelete:
		// Deletions notify on the danger palette even when they succeed.
		text = "Deleted " + msg.Target
		level = components.NoticeDanger
	case components.ActionScript:
		text = fmt.Sprintf("Ran %s in %s", msg.Script, msg.Target)
		if out := strings.TrimSpace(msg.Output); out != "" {
			text += ": " + firstLine(out)
		}
	}

	m.noticeSeq++
	m.notice = components.NewNotice(m.noticeSeq, text, level, m.noticeTimeout())

	return m, tea.Batch(m.notice.Start(), m.fetchPods())
}

func (m *AppModel) noticeTimeout() time.Duration {
	seconds := m.cfg.UI.NoticeTimeoutSeconds
	if seconds <= 0 {
		seconds = config.DefaultNoticeTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (m *AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The failure modal is strictly blocking.
	if m.modal != nil {
		_, cmd := m.modal.Update(msg)
		return m, cmd
	}

	if m.confirm != nil {
		_, cmd := m.confirm.Update(msg)
		return m, cmd
	}

	if key.Matches(msg, m.globalKeys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.focus == focusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m *AppModel) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.gridKeys.Up):
		m.grid.CursorUp()
	case key.Matches(msg, m.gridKeys.Down):
		m.grid.CursorDown()
	case key.Matches(msg, m.gridKeys.Top):
		m.grid.CursorTop()
	case key.Matches(msg, m.gridKeys.Bottom):
		m.grid.CursorBottom()

	case key.Matches(msg, m.gridKeys.NextPage):
		if m.header.Pagination.HasNext {
			m.page++
			return m, tea.Batch(m.saveLayout(), m.fetchPods())
		}
	case key.Matches(msg, m.gridKeys.PrevPage):
		if m.header.Pagination.HasPrevious {
			m.page--
			return m, tea.Batch(m.saveLayout(), m.fetchPods())
		}

	case key.Matches(msg, m.gridKeys.Refresh):
		return m, m.fetchPods()

	case key.Matches(msg, m.gridKeys.Sort):
		return m, m.cycleSort()

	case key.Matches(msg, m.gridKeys.Sidebar):
		if m.sidebar.Collapsed {
			m.sidebar.Collapsed = false
			m.focus = focusSidebar
		} else {
			m.sidebar.Collapsed = true
			m.focus = focusGrid
		}
		return m, m.saveLayout()

	case key.Matches(msg, m.gridKeys.Delete):
		if rec, ok := m.grid.Selected(); ok {
			m.confirm = components.NewDeleteConfirm(rec)
		}
	case key.Matches(msg, m.gridKeys.Script):
		rec, ok := m.grid.Selected()
		if ok && len(m.scripts) > 0 {
			m.confirm = components.NewScriptConfirm(rec, m.scripts)
		}
	}

	return m, nil
}

func (m *AppModel) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.gridKeys.Up):
		m.sidebar.CursorUp()
	case key.Matches(msg, m.gridKeys.Down):
		m.sidebar.CursorDown()

	case msg.Type == tea.KeySpace, msg.Type == tea.KeyEnter:
		if m.sidebar.ToggleAtCursor() {
			m.page = 1
			return m, m.fetchPods()
		}

	case msg.Type == tea.KeyEsc:
		m.focus = focusGrid

	case key.Matches(msg, m.gridKeys.Sidebar):
		m.sidebar.Collapsed = true
		m.focus = focusGrid
		return m, m.saveLayout()

	case msg.String() == "c":
		m.sidebar.ClearFilters()
		m.page = 1
		return m, m.fetchPods()
	}

	return m, nil
}

// cycleSort advances the sort: ascending becomes descending, and a
// descending column hands off to the next sortable column ascending.
func (m *AppModel) cycleSort() tea.Cmd {
	layout := m.grid.Layout()

	currentID := sortCycle[0]
	currentDir := viewstate.SortNone
	if col, ok := layout.SortedColumn(); ok {
		currentID = col.ID
		currentDir = col.Sort
	}

	nextID, nextDir := currentID, viewstate.SortAsc
	switch currentDir {
	case viewstate.SortAsc:
		nextDir = viewstate.SortDesc
	case viewstate.SortDesc:
		nextID = nextSortColumn(currentID)
	}

	for i := range layout.Columns {
		switch layout.Columns[i].ID {
		case nextID:
			layout.Columns[i].Sort = nextDir
		default:
			layout.Columns[i].Sort = viewstate.SortNone
		}
	}

	m.grid.SetLayout(layout)
	m.page = 1
	return tea.Batch(m.saveLayout(), m.fetchPods())
}

func nextSortColumn(id string) string {
	for i, candidate := range sortCycle {
		if candidate == id {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return sortCycle[0]
}

// saveLayout persists the current layout. The store refuses writes until
// restoration completes, so this is safe to call at any time.
func (m *AppModel) saveLayout() tea.Cmd {
	layout := m.grid.Layout()
	layout.SidebarCollapsed = m.sidebar.Collapsed
	layout.Page = m.page

	return func() tea.Msg {
		m.store.Save(layout)
		return nil
	}
}

// View implements tea.Model
func (m *AppModel) View() string {
	if m.quitting {
		return ""
	}

	if m.modal != nil {
		return m.modal.View()
	}
	if m.confirm != nil {
		return components.Place(m.width, m.height, m.confirm.View())
	}

	var sections []string
	sections = append(sections, m.header.View())

	if banner := m.banner.View(); banner != "" {
		sections = append(sections, banner)
	}
	if m.notice != nil {
		sections = append(sections, m.notice.View())
	}

	body := m.grid.View()
	if !m.sidebar.Collapsed {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), "  ", body)
	}
	sections = append(sections, "", body, "", m.helpLine())

	return strings.Join(sections, "\n")
}

func (m *AppModel) helpLine() string {
	if m.focus == focusSidebar {
		return styles.StyleSubtle.Render("j/k: move  space: toggle filter  c: clear  esc: back  q: quit")
	}
	return styles.StyleSubtle.Render("j/k: move  h/l: page  d: delete  s: script  o: sort  tab: filters  r: refresh  q: quit")
}

// Restored reports whether the layout restoration handshake finished.
func (m *AppModel) Restored() bool {
	return m.restored
}

// fetchErrorText renders a fetch failure for the error banner.
func fetchErrorText(err error) string {
	var fetchErr *client.FetchError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode == 0 {
		return "backend unreachable: " + fetchErr.Message
	}
	return "refresh failed: " + err.Error()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
