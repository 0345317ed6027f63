package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"meetsync/internal/config"
)

// Step represents the current step in the setup wizard
type Step int

const (
	StepCachePath Step = iota
	StepMemoryRoot
	StepUserEmail
	StepOrgDomain
	StepSyncDelay
	StepSave
)

// SetupModel is the TUI model for the configuration wizard
type SetupModel struct {
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	cfg *config.Config

	// State
	err           error
	completed     bool
	cancelled     bool
	validationErr string
	savedPath     string
}

// NewSetupModel creates a setup wizard prefilled with the current config
func NewSetupModel() (SetupModel, error) {
	cfg, err := config.Load()
	if err != nil {
		return SetupModel{}, err
	}

	inputs := make([]textinput.Model, 5)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60

		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepCachePath].Placeholder = "Path to the recording cache (Enter to keep current)"
	inputs[StepCachePath].SetValue(cfg.CachePath)
	inputs[StepCachePath].CharLimit = 300
	inputs[StepCachePath].Focus()

	inputs[StepMemoryRoot].Placeholder = "Memory root directory (Enter to keep current)"
	inputs[StepMemoryRoot].SetValue(cfg.MemoryRoot)
	inputs[StepMemoryRoot].CharLimit = 300

	inputs[StepUserEmail].Placeholder = "Your email, used to exclude yourself from attendees"
	inputs[StepUserEmail].SetValue(cfg.UserEmail)
	inputs[StepUserEmail].CharLimit = 100

	inputs[StepOrgDomain].Placeholder = "Org domain like acme.com (Enter to derive from email)"
	inputs[StepOrgDomain].SetValue(cfg.OrgDomain)
	inputs[StepOrgDomain].CharLimit = 100

	inputs[StepSyncDelay].Placeholder = "Minutes to wait after a meeting ends (Enter for 3)"
	inputs[StepSyncDelay].SetValue(strconv.Itoa(cfg.SyncDelayMinutes))
	inputs[StepSyncDelay].CharLimit = 4

	return SetupModel{
		currentStep: StepCachePath,
		inputs:      inputs,
		cfg:         cfg,
	}, nil
}

// Init initializes the model
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		maxInputWidth := m.width - 10
		if maxInputWidth < 30 {
			maxInputWidth = 30
		}
		if maxInputWidth > 80 {
			maxInputWidth = 80
		}
		for i := range m.inputs {
			m.inputs[i].Width = maxInputWidth
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}

	return m, cmd
}

// View renders the wizard
func (m SetupModel) View() string {
	if m.cancelled || m.completed {
		return "" // Exit message is printed after the TUI closes
	}

	style := lipgloss.NewStyle().
		Width(m.width - 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1)

	return style.Render(m.renderWizard())
}

func (m SetupModel) renderWizard() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("⚙️  Meetsync Setup"))
	b.WriteString("\n\n")

	currentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	doneStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	futureStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))

	stepLabels := []string{"Cache Path", "Memory Root", "Your Email", "Org Domain", "Sync Delay", "Save"}
	for i, label := range stepLabels {
		if Step(i) == StepSave {
			b.WriteString("\n")
		}
		switch {
		case Step(i) == m.currentStep:
			b.WriteString(currentStyle.Render("▶ "+label) + "\n")
		case Step(i) < m.currentStep:
			b.WriteString(doneStyle.Render("✓ "+label) + "\n")
		default:
			b.WriteString(futureStyle.Render("  "+label) + "\n")
		}
	}
	b.WriteString("\n")

	switch m.currentStep {
	case StepCachePath:
		b.WriteString("📼 Recording Cache Path\n")
		b.WriteString(m.inputs[StepCachePath].View())
	case StepMemoryRoot:
		b.WriteString("📂 Memory Root\n")
		b.WriteString(m.inputs[StepMemoryRoot].View())
	case StepUserEmail:
		b.WriteString("📧 Your Email\n")
		b.WriteString(m.inputs[StepUserEmail].View())
	case StepOrgDomain:
		b.WriteString("🏢 Organization Domain\n")
		b.WriteString(m.inputs[StepOrgDomain].View())
	case StepSyncDelay:
		b.WriteString("⏱  Sync Delay (minutes)\n")
		b.WriteString(m.inputs[StepSyncDelay].View())
	case StepSave:
		b.WriteString("💾 Save Configuration\n")
		b.WriteString(fmt.Sprintf("  cache:   %s\n", m.cfg.CachePath))
		b.WriteString(fmt.Sprintf("  memory:  %s\n", m.cfg.MemoryRoot))
		b.WriteString(fmt.Sprintf("  email:   %s\n", m.cfg.UserEmail))
		b.WriteString(fmt.Sprintf("  domain:  %s\n", m.cfg.OrgDomain))
		b.WriteString(fmt.Sprintf("  delay:   %d min\n", m.cfg.SyncDelayMinutes))
		b.WriteString("\nPress Enter to save")
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			MarginTop(1)
		b.WriteString("\n" + errorStyle.Render("❌ "+m.validationErr))
	}

	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("Enter: Next | Tab/↓: Next | Shift+Tab/↑: Back | Esc: Cancel"))

	return b.String()
}

// handleEnter validates the current step and advances
func (m SetupModel) handleEnter() (SetupModel, tea.Cmd) {
	m.validationErr = ""

	switch m.currentStep {
	case StepCachePath:
		v := strings.TrimSpace(m.inputs[StepCachePath].Value())
		if v == "" {
			m.validationErr = "Cache path is required"
			return m, nil
		}
		m.cfg.CachePath = v
		return m.nextStep()

	case StepMemoryRoot:
		v := strings.TrimSpace(m.inputs[StepMemoryRoot].Value())
		if v == "" {
			m.validationErr = "Memory root is required"
			return m, nil
		}
		m.cfg.MemoryRoot = v
		return m.nextStep()

	case StepUserEmail:
		v := strings.TrimSpace(m.inputs[StepUserEmail].Value())
		if v != "" && !strings.Contains(v, "@") {
			m.validationErr = "That doesn't look like an email address"
			return m, nil
		}
		m.cfg.UserEmail = v
		return m.nextStep()

	case StepOrgDomain:
		v := strings.ToLower(strings.TrimSpace(m.inputs[StepOrgDomain].Value()))
		if v == "" && strings.Contains(m.cfg.UserEmail, "@") {
			v = strings.ToLower(m.cfg.UserEmail[strings.Index(m.cfg.UserEmail, "@")+1:])
		}
		m.cfg.OrgDomain = v
		return m.nextStep()

	case StepSyncDelay:
		v := strings.TrimSpace(m.inputs[StepSyncDelay].Value())
		if v == "" {
			m.cfg.SyncDelayMinutes = 3
			return m.nextStep()
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			m.validationErr = "Sync delay must be a non-negative number of minutes"
			return m, nil
		}
		m.cfg.SyncDelayMinutes = n
		return m.nextStep()

	case StepSave:
		return m.save()
	}

	return m, nil
}

func (m SetupModel) nextStep() (SetupModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

func (m SetupModel) prevStep() (SetupModel, tea.Cmd) {
	if m.currentStep > StepCachePath {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

func (m SetupModel) save() (SetupModel, tea.Cmd) {
	path, err := config.Save(m.cfg)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.savedPath = path
	m.completed = true
	return m, tea.Quit
}
