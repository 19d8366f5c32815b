// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/adapters/driving/tui/styles"
	"github.com/Aryan2005-unq/RAG-based-chatbot/internal/core/domain"
)

// FileList displays staged files in a navigable list.
type FileList struct {
	files    []domain.StagedFile
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFileList creates a new file list component.
func NewFileList(s *styles.Styles) *FileList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FileList{
		files:    nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the file list.
func (f *FileList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (f *FileList) Update(msg tea.Msg) (*FileList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			f.MoveUp()
		case tea.KeyDown:
			f.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			f.MoveUp()
		case "j":
			f.MoveDown()
		}
	}
	return f, nil
}

// View renders the file list.
func (f *FileList) View() string {
	if len(f.files) == 0 {
		return f.styles.Muted.Render("No files staged")
	}

	lines := make([]string, 0, len(f.files)+2)

	// Header
	header := f.styles.Subtitle.Render(fmt.Sprintf("Staged files (%d)", len(f.files)))
	lines = append(lines, header, "")

	// Each file takes one line; keep the selection in the window
	visibleCount := f.height - 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if f.selected >= visibleCount {
		start = f.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(f.files) {
		end = len(f.files)
	}

	for i := start; i < end; i++ {
		lines = append(lines, f.renderFile(i, &f.files[i]))
	}

	return strings.Join(lines, "\n")
}

// renderFile formats a single staged file line.
func (f *FileList) renderFile(index int, file *domain.StagedFile) string {
	// Indicator for selected item
	indicator := "  "
	if index == f.selected {
		indicator = "> "
	}

	name := file.Name

	// Truncate name if too long
	maxNameLen := f.width - 24
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	meta := fmt.Sprintf("%4s  %9s", typeLabel(file.Type), humanSize(file.SizeBytes))

	if index == f.selected {
		return f.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxNameLen, name, meta))
	}
	return f.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxNameLen, name)) +
		f.styles.Muted.Render(meta)
}

// typeLabel maps a document MIME type onto a short display label.
func typeLabel(t domain.FileType) string {
	switch t {
	case domain.FileTypePDF:
		return "PDF"
	case domain.FileTypeText:
		return "TXT"
	default:
		return "?"
	}
}

// humanSize formats a byte count for the file listing.
func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// SetFiles replaces the listed files, clamping the selection into
// range so removing the last entry keeps a valid cursor.
func (f *FileList) SetFiles(files []domain.StagedFile) {
	f.files = files
	if f.selected >= len(files) {
		f.selected = len(files) - 1
	}
	if f.selected < 0 {
		f.selected = 0
	}
}

// Files returns the current files.
func (f *FileList) Files() []domain.StagedFile {
	return f.files
}

// Selected returns the index of the selected file.
func (f *FileList) Selected() int {
	return f.selected
}

// SetSelected sets the selected index.
func (f *FileList) SetSelected(index int) {
	if index >= 0 && index < len(f.files) {
		f.selected = index
	}
}

// SelectedFile returns the currently selected file, or nil if none.
func (f *FileList) SelectedFile() *domain.StagedFile {
	if len(f.files) == 0 || f.selected < 0 || f.selected >= len(f.files) {
		return nil
	}
	return &f.files[f.selected]
}

// MoveUp moves selection up.
func (f *FileList) MoveUp() {
	if f.selected > 0 {
		f.selected--
	}
}

// MoveDown moves selection down.
func (f *FileList) MoveDown() {
	if f.selected < len(f.files)-1 {
		f.selected++
	}
}

// SetDimensions sets the component dimensions.
func (f *FileList) SetDimensions(width, height int) {
	f.width = width
	f.height = height
}

// Width returns the current width.
func (f *FileList) Width() int {
	return f.width
}

// Height returns the current height.
func (f *FileList) Height() int {
	return f.height
}

// Count returns the number of staged files.
func (f *FileList) Count() int {
	return len(f.files)
}

// IsEmpty returns whether the list is empty.
func (f *FileList) IsEmpty() bool {
	return len(f.files) == 0
}
