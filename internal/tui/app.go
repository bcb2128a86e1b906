package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/todos-tui/internal/db"
	"github.com/pdxmph/todos-tui/internal/provider"
)

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	highStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	mediumStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	lowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230"))
)

// changedMsg arrives when a change signal fires for the watched resource.
type changedMsg struct {
	res provider.Resource
}

// Model represents the main application state
type Model struct {
	provider *provider.Provider
	tasks    []db.Task
	selected int
	width    int
	height   int
	err      error

	// Add mode
	addMode  bool
	addInput textinput.Model

	// Change subscription on the task collection
	changes <-chan provider.Resource
}

// New creates a new application model
func New(p *provider.Provider) (*Model, error) {
	tasks, err := loadTasks(p)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "Task description..."
	ti.Width = 50
	ti.CharLimit = 200
	ti.Prompt = "> "

	return &Model{
		provider: p,
		tasks:    tasks,
		addInput: ti,
		changes:  p.Notifier().Subscribe(provider.Tasks()),
	}, nil
}

// loadTasks queries the collection through the provider and scans every row
func loadTasks(p *provider.Provider) ([]db.Task, error) {
	rows, err := p.Query(
		provider.Tasks(),
		[]string{"id", "description", "priority", "created_at", "updated_at"},
		"", nil,
		"priority, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []db.Task
	for rows.Next() {
		var t db.Task
		if err := rows.Scan(&t.ID, &t.Description, &t.Priority, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// waitForChange blocks on the collection subscription and turns each change
// signal into a message. Re-issued after every receive.
func (m Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		res, ok := <-m.changes
		if !ok {
			return nil
		}
		return changedMsg{res: res}
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changedMsg:
		// A mutation landed somewhere in the collection; the list is
		// stale. Re-query and keep listening.
		if tasks, err := loadTasks(m.provider); err == nil {
			m.tasks = tasks
			m.selected = m.clampSelection()
		}
		return m, m.waitForChange()

	case tea.KeyMsg:
		// Add mode handling
		if m.addMode {
			switch msg.String() {
			case "esc":
				m.addMode = false
				m.addInput.Reset()
				m.addInput.Blur()
				return m, nil
			case "enter":
				description := strings.TrimSpace(m.addInput.Value())
				if description != "" {
					_, err := m.provider.Insert(provider.Tasks(), provider.Values{
						"description": description,
						"priority":    db.PriorityMedium,
					})
					if err != nil {
						m.err = err
					}
				}
				m.addMode = false
				m.addInput.Reset()
				m.addInput.Blur()
				return m, nil
			}

			var cmd tea.Cmd
			m.addInput, cmd = m.addInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "j", "down":
			if m.selected < len(m.tasks)-1 {
				m.selected++
			}

		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}

		case "a":
			m.addMode = true
			m.addInput.Focus()
			return m, textinput.Blink

		case "1", "2", "3":
			if task, ok := m.selectedTask(); ok {
				priority := db.Priority(msg.String()[0] - '0')
				_, err := m.provider.Update(provider.Task(task.ID), provider.Values{
					"priority": priority,
				})
				if err != nil {
					m.err = err
				}
			}

		case "x", "d":
			if task, ok := m.selectedTask(); ok {
				_, err := m.provider.Delete(provider.Task(task.ID), "", nil)
				if err != nil {
					m.err = err
				}
			}
		}
	}

	return m, nil
}

func (m Model) selectedTask() (db.Task, bool) {
	if len(m.tasks) == 0 || m.selected >= len(m.tasks) {
		return db.Task{}, false
	}
	return m.tasks[m.selected], true
}

func (m Model) clampSelection() int {
	if len(m.tasks) == 0 {
		return 0
	}
	if m.selected >= len(m.tasks) {
		return len(m.tasks) - 1
	}
	return m.selected
}

// View renders the task list
func (m Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(lowStyle.Render("No tasks. Press 'a' to add one."))
		b.WriteString("\n")
	}

	for i, task := range m.tasks {
		line := fmt.Sprintf("[%s] %s", priorityTag(task.Priority), task.Description)
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.addMode {
		b.WriteString("\nNew task: ")
		b.WriteString(m.addInput.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func priorityTag(p db.Priority) string {
	switch p {
	case db.PriorityHigh:
		return highStyle.Render("!")
	case db.PriorityMedium:
		return mediumStyle.Render("-")
	default:
		return lowStyle.Render(".")
	}
}

func (m Model) renderHelp() string {
	if m.addMode {
		return helpStyle.Render("enter: save • esc: cancel")
	}
	return helpStyle.Render("a: add • 1/2/3: priority • x: delete • j/k: move • q: quit")
}
