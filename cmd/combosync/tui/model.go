package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/ruminaider/combosync/internal/combobox"
	"github.com/ruminaider/combosync/internal/dataset"
	"github.com/ruminaider/combosync/internal/item"
)

const defaultHeight = 10

// Options configures a Model.
type Options struct {
	Label       string
	Placeholder string
	Height      int // visible list rows; 0 means 10

	// SubmitOnSelect finishes a single-select pick as soon as a row is
	// chosen instead of waiting for a second enter.
	SubmitOnSelect bool

	// Results streams dataset reloads; nil disables live reload.
	Results <-chan dataset.Result
}

// Model is a terminal combobox over a combobox.Combobox. The text input is
// always focused; the option list shows while the combobox is open.
type Model struct {
	cb      *combobox.Combobox
	input   textinput.Model
	label   string
	submit  bool
	results <-chan dataset.Result

	cursor int // index into the display rows
	offset int // scroll offset for long lists
	height int
	width  int

	touched bool // show validation only after the first edit
	status  string
	loadErr error
	done    bool
	aborted bool
}

// New creates a Model driving cb.
func New(cb *combobox.Combobox, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = opts.Placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	height := opts.Height
	if height <= 0 {
		height = defaultHeight
	}
	m := Model{
		cb:      cb,
		input:   ti,
		label:   opts.Label,
		submit:  opts.SubmitOnSelect,
		results: opts.Results,
		height:  height,
	}
	m.syncInput()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, WaitForDataCmd(m.results))
}

// Combobox returns the state core the model drives.
func (m Model) Combobox() *combobox.Combobox { return m.cb }

// Done reports whether the user finished, by confirming or aborting.
func (m Model) Done() bool { return m.done }

// Aborted reports whether the user cancelled.
func (m Model) Aborted() bool { return m.aborted }

// Cursor returns the index of the highlighted row.
func (m Model) Cursor() int { return m.cursor }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		return m, nil

	case DataLoadedMsg:
		if msg.Err != nil {
			m.loadErr = msg.Err
		} else {
			m.loadErr = nil
			m.cb.SetData(msg.Data)
			m.status = fmt.Sprintf("loaded %d items", len(m.cb.Data()))
			m.clampScroll()
			m.syncInput()
		}
		return m, WaitForDataCmd(m.results)

	case watchStoppedMsg:
		m.results = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	multi := m.cb.Options().MultiSelect

	switch msg.String() {
	case "ctrl+c":
		m.aborted, m.done = true, true
		return m, tea.Quit

	case "esc":
		if m.cb.Opened() {
			m.cb.Close()
			m.syncInput()
			return m, nil
		}
		m.aborted, m.done = true, true
		return m, tea.Quit

	case "up", "ctrl+p":
		if m.cb.Opened() {
			m.moveCursor(-1)
		}
		return m, nil

	case "down", "ctrl+n":
		if m.cb.Opened() {
			m.moveCursor(+1)
		} else {
			m.open()
		}
		return m, nil

	case "right":
		if m.cb.Opened() {
			if it := m.current(); it != nil && it.HasChildren && !it.Expanded {
				m.cb.ToggleNode(it)
			}
			return m, nil
		}

	case "left":
		if m.cb.Opened() {
			if it := m.current(); it != nil && it.Expanded {
				m.cb.ToggleNode(it)
				m.clampScroll()
			}
			return m, nil
		}

	case "tab":
		if m.cb.Opened() {
			m.cb.Close()
			m.syncInput()
		}
		return m, nil

	case "ctrl+x":
		m.touched = true
		m.cb.Clear()
		m.syncInput()
		return m, nil

	case "enter":
		if !m.cb.Opened() {
			return m.confirm()
		}
		return m.choose()

	case "backspace":
		if multi && m.input.Value() == "" {
			if sel := m.cb.SelectedList(); len(sel) > 0 {
				m.touched = true
				m.cb.RemoveSelected(sel[len(sel)-1])
			}
			return m, nil
		}
	}

	// Everything else edits the text.
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != before {
		m.touched = true
		if !m.cb.Opened() {
			m.open()
		}
		m.cb.SetText(text)
		m.cursor, m.offset = 0, 0
	}
	return m, cmd
}

// choose applies enter on the highlighted row.
func (m Model) choose() (tea.Model, tea.Cmd) {
	it := m.current()
	if it == nil {
		return m, nil
	}
	m.touched = true
	opts := m.cb.Options()
	if opts.Tree && opts.SelectOnlyLeaf && !m.cb.IsLeaf(it) {
		m.cb.ToggleNode(it)
		m.status = "only leaf items can be selected"
		m.clampScroll()
		return m, nil
	}
	if !m.cb.ToggleSelection(it) {
		return m, nil
	}
	m.status = ""
	m.syncInput()
	if m.submit && !opts.MultiSelect {
		return m.confirm()
	}
	return m, nil
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	m.touched = true
	if m.cb.Validate() != "" {
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

// open shows the list with the cursor on the current single-select item.
func (m *Model) open() {
	m.cb.Open()
	m.cursor, m.offset = 0, 0
	if sel := m.cb.Selected(); sel != nil {
		for i, r := range m.cb.Display() {
			if r.Item == sel {
				m.cursor = i
				break
			}
		}
	}
	m.clampScroll()
}

// syncInput mirrors the combobox text into the input. A live search is left
// as typed.
func (m *Model) syncInput() {
	if m.cb.Searching() {
		return
	}
	if m.cb.Options().MultiSelect {
		m.input.SetValue(m.cb.SearchText())
	} else {
		m.input.SetValue(m.cb.Text())
	}
	m.input.CursorEnd()
}

func (m Model) current() *item.Item {
	rows := m.cb.Display()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor].Item
}

func (m *Model) moveCursor(dir int) {
	next := m.cursor + dir
	if next < 0 || next >= len(m.cb.Display()) {
		return
	}
	m.cursor = next
	m.clampScroll()
}

// clampScroll keeps the cursor on a row and within the visible window.
func (m *Model) clampScroll() {
	total := len(m.cb.Display())
	if m.cursor >= total {
		m.cursor = total - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	// When rows overflow, scroll indicators take up to 2 lines.
	effective := m.height
	if total > m.height {
		effective -= 2
	}
	if effective < 1 {
		effective = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+effective {
		m.offset = m.cursor - effective + 1
	}
	maxOffset := total - effective
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.offset > maxOffset {
		m.offset = maxOffset
	}
}

func (m Model) View() string {
	var b strings.Builder

	if m.label != "" {
		b.WriteString(LabelStyle.Render(m.label) + "\n")
	}
	if m.cb.Options().MultiSelect {
		if tags := m.renderTags(); tags != "" {
			b.WriteString(tags + "\n")
		}
	}

	style := InputStyle
	if m.cb.Opened() {
		style = InputOpenStyle
	}
	b.WriteString(style.Render(m.input.View()) + "\n")

	if m.cb.Opened() {
		b.WriteString(m.renderList() + "\n")
	}
	if m.touched {
		if msg := m.cb.Validate(); msg != "" {
			b.WriteString(ErrorStyle.Render(msg) + "\n")
		}
	}
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderTags() string {
	acc := m.cb.Accessors()
	sel := m.cb.SelectedList()
	labels := make([]string, len(sel))
	detached := make([]bool, len(sel))
	for i, it := range sel {
		labels[i] = acc.Label(it)
		detached[i] = it.Detached
	}
	return RenderTags(labels, detached, m.width)
}

// renderList draws the visible window of display rows with scroll hints.
func (m Model) renderList() string {
	rows := m.cb.Display()
	if len(rows) == 0 {
		return ListStyle.Render(DimStyle.Render("(no matches)"))
	}

	visible := m.height
	hasAbove := m.offset > 0
	hasBelow := m.offset+m.height < len(rows)
	if hasAbove {
		visible--
	}
	if hasBelow {
		visible--
	}
	if visible < 1 {
		visible = 1
	}
	end := min(m.offset+visible, len(rows))

	acc := m.cb.Accessors()
	multi := m.cb.Options().MultiSelect
	width := 0
	if m.width > 0 {
		width = m.width - 2
	}

	var b strings.Builder
	if hasAbove {
		b.WriteString(DimStyle.Render("  ↑ more") + "\n")
	}
	for i := m.offset; i < end; i++ {
		r := rows[i]
		current := i == m.cursor

		cursor := "  "
		if current {
			cursor = CursorStyle.Render(">") + " "
		}
		line := cursor + RenderIndent(r.Level) + RenderArrow(r.Item.HasChildren, r.Item.Expanded) + " "

		var selected bool
		if multi {
			selected = m.cb.IsChecked(r.Item)
			line += RenderCheckbox(m.cb.Checkable(r.Item), selected) + " "
		} else {
			selected = r.Item == m.cb.Selected()
		}
		label := m.cb.Highlight(acc.Label(r.Item), Mark)
		line += RenderItemText(label, current, selected)

		b.WriteString(Truncate(line, width) + "\n")
	}
	if end < len(rows) {
		b.WriteString(DimStyle.Render("  ↓ more") + "\n")
	}
	return ListStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.loadErr != nil:
		left = ErrorStyle.Render(m.loadErr.Error())
	case m.status != "":
		left = m.status
	case m.cb.Options().MultiSelect:
		left = fmt.Sprintf("%d selected · %d/%d shown", len(m.cb.ValueList()), len(m.cb.Filtered()), len(m.cb.Data()))
	default:
		left = fmt.Sprintf("%d/%d shown", len(m.cb.Filtered()), len(m.cb.Data()))
	}

	shortcuts := []string{
		StatusBarKeyStyle.Render("↑↓") + ": move",
		StatusBarKeyStyle.Render("enter") + ": select",
		StatusBarKeyStyle.Render("esc") + ": close",
	}
	right := strings.Join(shortcuts, " · ")

	gap := m.width - 2 - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	content := left + strings.Repeat(" ", gap) + right
	if m.width > 0 {
		return StatusBarStyle.Width(m.width).Render(content)
	}
	return StatusBarStyle.Render(content)
}
