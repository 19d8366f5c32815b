// Package stage provides the document staging view for the TUI.
package stage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/components/list"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/components/status"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/components/toast"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/keymap"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/messages"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/styles"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/ports/driving"
)

// View represents the staging view: the list of files queued for
// upload, a file picker to add more, and the upload trigger.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	picker    filepicker.Model
	list      *list.FileList
	toasts    *toast.Stack
	statusbar *status.Bar

	stagingService driving.StagingService
	uploadService  driving.UploadService
	sessionService driving.SessionService
	ctx            context.Context

	width   int
	height  int
	ready   bool
	picking bool
	busy    bool
}

// NewView creates a new staging view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	stagingService driving.StagingService,
	uploadService driving.UploadService,
	sessionService driving.SessionService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetView(messages.ViewStage)

	return &View{
		styles:         s,
		keymap:         km,
		picker:         newPicker(24),
		list:           list.NewFileList(s),
		toasts:         toast.NewStack(s),
		statusbar:      bar,
		stagingService: stagingService,
		uploadService:  uploadService,
		sessionService: sessionService,
		ctx:            context.Background(),
		width:          80,
		height:         24,
	}
}

// newPicker builds a file picker restricted to uploadable documents.
func newPicker(height int) filepicker.Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".pdf", ".txt"}
	if dir, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = dir
	}
	fp.Height = height
	return fp
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the staging view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FilesStaged:
		return v, v.handleFilesStaged(msg.Result)

	case messages.UploadCompleted:
		return v, v.handleUploadCompleted(msg)

	case messages.SessionStarted:
		v.statusbar.Clear()
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		v.syncSession()
		return v, nil

	case messages.StatusRefreshed:
		v.statusbar.Clear()
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
		}
		v.syncSession()
		return v, nil

	case messages.SessionCleared, messages.CleanupCompleted:
		v.statusbar.Clear()
		v.syncSession()
		return v, nil

	case messages.ToastExpired:
		v.toasts.Expire(msg.ID)
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	if v.picking {
		return v.updatePicker(msg)
	}
	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// The picker owns the keyboard while it is open
	if v.picking {
		if msg.Type == tea.KeyEsc {
			v.closePicker()
			return v, nil
		}
		return v.updatePicker(msg)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Add):
		return v.openPicker()

	case keymap.Matches(key, v.keymap.Upload):
		return v.startUpload()

	case keymap.Matches(key, v.keymap.Remove):
		v.removeSelected()
		return v, nil

	case keymap.Matches(key, v.keymap.Refresh):
		if v.busy {
			return v, nil
		}
		v.statusbar.SetState(status.StateBusy)
		v.statusbar.SetMessage("Checking server...")
		return v, v.performRefresh()

	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
		return v, nil
	}

	return v, nil
}

// openPicker shows the file picker overlay.
func (v *View) openPicker() (*View, tea.Cmd) {
	v.picking = true
	v.picker = newPicker(v.pickerHeight())
	return v, v.picker.Init()
}

// closePicker hides the file picker overlay.
func (v *View) closePicker() {
	v.picking = false
}

// updatePicker forwards a message to the picker and reacts to selections.
func (v *View) updatePicker(msg tea.Msg) (*View, tea.Cmd) {
	var cmd tea.Cmd
	v.picker, cmd = v.picker.Update(msg)

	if didSelect, path := v.picker.DidSelectFile(msg); didSelect {
		v.closePicker()
		return v, tea.Batch(cmd, v.stageFiles([]string{path}))
	}

	if didSelect, path := v.picker.DidSelectDisabledFile(msg); didSelect {
		notice := domain.Rejection{Name: filepath.Base(path), Reason: domain.RejectReasonType}.Notice()
		return v, tea.Batch(cmd, v.toasts.Push(notice, toast.LevelWarning))
	}

	return v, cmd
}

// stageFiles validates the candidates off the update loop.
func (v *View) stageFiles(paths []string) tea.Cmd {
	return func() tea.Msg {
		if v.stagingService == nil {
			return messages.ErrorOccurred{Err: ErrNoStagingService}
		}
		return messages.FilesStaged{Result: v.stagingService.Stage(paths)}
	}
}

// handleFilesStaged refreshes the listing and reports the outcome.
func (v *View) handleFilesStaged(result domain.StageResult) tea.Cmd {
	v.refreshFiles()

	cmds := make([]tea.Cmd, 0, len(result.Rejected)+1)
	for _, r := range result.Rejected {
		cmds = append(cmds, v.toasts.Push(r.Notice(), toast.LevelWarning))
	}
	switch n := len(result.Accepted); {
	case n == 1:
		cmds = append(cmds, v.toasts.Push(fmt.Sprintf("Staged %s", result.Accepted[0].Name), toast.LevelSuccess))
	case n > 1:
		cmds = append(cmds, v.toasts.Push(fmt.Sprintf("Staged %d files", n), toast.LevelSuccess))
	}
	return tea.Batch(cmds...)
}

// startUpload pushes the staged set to the server.
func (v *View) startUpload() (*View, tea.Cmd) {
	// One operation at a time
	if v.busy {
		return v, nil
	}
	if v.stagingService != nil && !v.stagingService.CanUpload() {
		return v, v.toasts.Push("No files staged. Add documents first.", toast.LevelInfo)
	}

	v.busy = true
	v.statusbar.SetState(status.StateBusy)
	v.statusbar.SetMessage("Uploading documents...")
	return v, v.performUpload()
}

// performUpload runs the upload in the background.
func (v *View) performUpload() tea.Cmd {
	return func() tea.Msg {
		if v.uploadService == nil {
			return messages.UploadCompleted{Err: ErrNoUploadService}
		}
		outcome, err := v.uploadService.UploadStaged(v.ctx)
		return messages.UploadCompleted{Outcome: outcome, Err: err}
	}
}

// performRefresh re-reads the server status.
func (v *View) performRefresh() tea.Cmd {
	return func() tea.Msg {
		if v.sessionService == nil {
			return messages.StatusRefreshed{}
		}
		st, err := v.sessionService.RefreshStatus(v.ctx)
		return messages.StatusRefreshed{Status: st, Err: err}
	}
}

// handleUploadCompleted reacts to the finished upload.
func (v *View) handleUploadCompleted(msg messages.UploadCompleted) tea.Cmd {
	v.busy = false
	v.statusbar.Clear()
	v.refreshFiles()
	v.syncSession()

	if msg.Err != nil {
		if errors.Is(msg.Err, domain.ErrNoFilesStaged) {
			return v.toasts.Push("No files staged. Add documents first.", toast.LevelInfo)
		}
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v.toasts.Push(msg.Err.Error(), toast.LevelError)
	}

	text := msg.Outcome.Receipt.Message
	if text == "" {
		text = fmt.Sprintf("Uploaded %d files", len(msg.Outcome.Receipt.Files))
	}
	return v.toasts.Push(text, toast.LevelSuccess)
}

// removeSelected drops the selected file from the staged set.
func (v *View) removeSelected() {
	if v.stagingService == nil || v.list.IsEmpty() {
		return
	}
	if err := v.stagingService.Remove(v.list.Selected()); err != nil {
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(err.Error())
		return
	}
	v.refreshFiles()
}

// refreshFiles re-reads the staged set into the listing.
func (v *View) refreshFiles() {
	if v.stagingService == nil {
		return
	}
	files := v.stagingService.Files()
	v.list.SetFiles(files)
	v.statusbar.SetStagedCount(len(files))
}

// syncSession re-reads the session phase.
func (v *View) syncSession() {
	if v.sessionService == nil {
		return
	}
	v.statusbar.SetPhase(v.sessionService.Phase())
}

// View renders the staging view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	if v.picking {
		sections := []string{
			v.styles.Title.Render("Add documents"),
			v.styles.Muted.Render("PDF and TXT files up to 16MB"),
			"",
			v.picker.View(),
			v.styles.Help.Render("enter: select | esc: cancel"),
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	sections := make([]string, 0, 8)
	sections = append(sections,
		v.styles.Title.Render("Documents"),
		"",
		v.list.View(),
	)

	if v.list.IsEmpty() {
		sections = append(sections, v.styles.Muted.Render("Press a to browse for PDF or TXT files."))
	}

	if v.toasts.Len() > 0 {
		sections = append(sections, "", v.toasts.View())
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
	v.picker.Height = v.pickerHeight()
}

// pickerHeight is the room left for the picker below its header.
func (v *View) pickerHeight() int {
	h := v.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

// Width returns the current width.
func (v *View) Width() int {
	return v.width
}

// Height returns the current height.
func (v *View) Height() int {
	return v.height
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Picking returns whether the file picker is open.
func (v *View) Picking() bool {
	return v.picking
}

// Busy returns whether an upload is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Files returns the files currently listed.
func (v *View) Files() []domain.StagedFile {
	return v.list.Files()
}

// Reset closes the picker and drops transient notices.
func (v *View) Reset() {
	v.picking = false
	v.busy = false
	v.toasts.Clear()
	v.statusbar.Clear()
	v.refreshFiles()
}
