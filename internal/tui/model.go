package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"espedit/internal/errors"
	"espedit/internal/fsio"
	"espedit/internal/schema"
	"espedit/internal/validate"
	"espedit/internal/workspace"
)

type fileItem struct {
	stem   string
	errors int
	warns  int
}

func (i fileItem) Title() string { return i.stem }

func (i fileItem) Description() string {
	switch {
	case i.errors > 0:
		return errorStyle.Render(fmt.Sprintf("%d error(s), %d warning(s)", i.errors, i.warns))
	case i.warns > 0:
		return warningStyle.Render(fmt.Sprintf("%d warning(s)", i.warns))
	default:
		return okStyle.Render("ok")
	}
}

func (i fileItem) FilterValue() string { return i.stem }

type Model struct {
	dir       string
	fs        fsio.FileSystem
	fileList  list.Model
	issues    []validate.Issue
	selected  string
	statusMsg string
	width     int
	height    int
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

func New(dir string) (*Model, error) {
	if !workspace.Valid(dir) {
		return nil, errors.NewFileError("not a valid espanso directory", dir, errors.InvalidDirectory, nil)
	}

	m := &Model{
		dir: dir,
		fs:  fsio.NewOS(),
	}

	delegate := list.NewDefaultDelegate()
	m.fileList = list.New(nil, delegate, 0, 0)
	m.fileList.Title = "Match Files"
	m.fileList.SetShowStatusBar(false)
	m.fileList.SetFilteringEnabled(true)

	if err := m.refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) refresh() error {
	stems, err := workspace.MatchFiles(m.dir)
	if err != nil {
		return err
	}

	items := make([]list.Item, 0, len(stems))
	for _, stem := range stems {
		item := fileItem{stem: stem}
		if issues, err := m.check(stem); err == nil {
			for _, issue := range issues {
				if issue.Severity == validate.Error {
					item.errors++
				} else {
					item.warns++
				}
			}
		} else {
			item.errors++
		}
		items = append(items, item)
	}
	m.fileList.SetItems(items)
	return nil
}

func (m *Model) check(stem string) ([]validate.Issue, error) {
	data, err := m.fs.Read(workspace.MatchFilePath(m.dir, stem))
	if err != nil {
		return nil, err
	}
	doc, err := schema.ParseDocument(schema.MatchFileKind, data)
	if err != nil {
		return nil, err
	}
	return validate.Document(doc), nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		frameW, frameH := appStyle.GetFrameSize()
		m.fileList.SetSize(msg.Width-frameW, msg.Height-frameH-8)
		return m, nil
	case tea.KeyMsg:
		if m.fileList.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.selected = ""
			m.issues = nil
			if err := m.refresh(); err != nil {
				m.statusMsg = err.Error()
			} else {
				m.statusMsg = "refreshed"
			}
			return m, nil
		case "enter":
			if item, ok := m.fileList.SelectedItem().(fileItem); ok {
				m.inspect(item.stem)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.fileList, cmd = m.fileList.Update(msg)
	return m, cmd
}

func (m *Model) inspect(stem string) {
	m.selected = stem
	issues, err := m.check(stem)
	if err != nil {
		m.issues = nil
		m.statusMsg = err.Error()
		return
	}
	m.issues = issues
	m.statusMsg = ""
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("espedit"))
	b.WriteString("\n")
	b.WriteString(m.fileList.View())
	b.WriteString("\n")

	if m.selected != "" {
		b.WriteString(titleStyle.Render(m.selected + ".yml"))
		b.WriteString("\n")
		if len(m.issues) == 0 {
			b.WriteString(okStyle.Render("no issues"))
			b.WriteString("\n")
		}
		for _, issue := range m.issues {
			style := warningStyle
			if issue.Severity == validate.Error {
				style = errorStyle
			}
			b.WriteString(style.Render(issue.String()))
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString(m.statusMsg)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter: inspect • r: refresh • q: quit"))
	return appStyle.Render(b.String())
}

// Run starts the terminal front-end for the given espanso directory.
func Run(dir string) error {
	model, err := New(dir)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
