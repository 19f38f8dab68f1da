package sun

import (
	"encoding/hex"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andrei-cloud/go_sdm/pkg/sdm"
)

const (
	fieldTypeRadio = iota
	fieldTypeHex
)

type option struct {
	value       string
	description string
}

type fieldConfig struct {
	name        string
	description string
	fieldType   int
	options     []option // For radio fields.
	selected    int      // For radio fields.
	hexValue    string   // For hex fields.
	size        int      // For hex fields: exact byte length, 0 for block-aligned data.
}

type inspectModel struct {
	currentField int
	fields       []fieldConfig
	err          string
	done         bool
	cancelled    bool
}

const (
	fieldMode = iota
	fieldPICC
	fieldMAC
	fieldFile
)

// newInspectModel creates a new TUI model for entering a SUN message.
func newInspectModel() inspectModel {
	fields := []fieldConfig{
		{
			name:        "Mode",
			description: "Mirrored data",
			fieldType:   fieldTypeRadio,
			options: []option{
				{"identity", "UID and read counter"},
				{"identity+file", "UID, read counter and encrypted file data"},
			},
		},
		{
			name:        "PICCData",
			description: "Encrypted PICC data (32 hex)",
			fieldType:   fieldTypeHex,
			size:        sdm.PICCDataSize,
		},
		{
			name:        "SDMMAC",
			description: "SDMMAC (16 hex)",
			fieldType:   fieldTypeHex,
			size:        sdm.MACSize,
		},
		{
			name:        "FileData",
			description: "Encrypted file data (multiple of 32 hex)",
			fieldType:   fieldTypeHex,
		},
	}

	return inspectModel{fields: fields}
}

// Init initializes the model.
func (m inspectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	currentField := &m.fields[m.currentField]

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.cancelled = true

		return m, tea.Quit
	case "enter":
		if err := m.validateField(m.currentField); err != nil {
			m.err = err.Error()

			return m, nil
		}
		m.err = ""
		if m.currentField >= m.lastField() {
			m.done = true

			return m, tea.Quit
		}
		m.currentField++
	case "tab":
		if m.currentField < m.lastField() {
			m.currentField++
		}
	case "shift+tab":
		if m.currentField > 0 {
			m.currentField--
		}
	case "up":
		if currentField.fieldType == fieldTypeRadio && currentField.selected > 0 {
			currentField.selected--
		}
	case "down":
		if currentField.fieldType == fieldTypeRadio && currentField.selected < len(currentField.options)-1 {
			currentField.selected++
		}
	case "backspace":
		if currentField.fieldType == fieldTypeHex && len(currentField.hexValue) > 0 {
			currentField.hexValue = currentField.hexValue[:len(currentField.hexValue)-1]
		}
	default:
		if currentField.fieldType == fieldTypeHex && len(keyMsg.String()) == 1 {
			m.handleHexInput(keyMsg.String()[0])
		}
	}

	return m, nil
}

// lastField returns the index of the final field for the selected mode.
func (m *inspectModel) lastField() int {
	if m.fields[fieldMode].selected == 1 {
		return fieldFile
	}

	return fieldMAC
}

// handleHexInput appends an uppercase hex digit to the current field.
func (m *inspectModel) handleHexInput(char byte) {
	currentField := &m.fields[m.currentField]
	if currentField.fieldType != fieldTypeHex {
		return
	}

	switch {
	case char >= '0' && char <= '9', char >= 'A' && char <= 'F':
	case char >= 'a' && char <= 'f':
		char -= 'a' - 'A'
	default:
		return
	}

	if currentField.size > 0 && len(currentField.hexValue) >= 2*currentField.size {
		return
	}
	currentField.hexValue += string(char)
}

// validateField checks that a hex field holds a complete value.
func (m *inspectModel) validateField(idx int) error {
	field := m.fields[idx]
	if field.fieldType != fieldTypeHex {
		return nil
	}

	n := len(field.hexValue) / 2
	switch {
	case len(field.hexValue)%2 != 0:
		return fmt.Errorf("%s: odd number of hex digits", field.name)
	case field.size > 0 && n != field.size:
		return fmt.Errorf("%s: need %d hex digits, have %d", field.name, 2*field.size, len(field.hexValue))
	case field.size == 0 && (n == 0 || n%16 != 0):
		return fmt.Errorf("%s: length must be a non-zero multiple of 32 hex digits", field.name)
	}

	return nil
}

// message assembles the entered fields into a SUN message.
func (m inspectModel) message() (sdm.Message, error) {
	for i := fieldPICC; i <= m.lastField(); i++ {
		if err := m.validateField(i); err != nil {
			return sdm.Message{}, err
		}
	}

	var msg sdm.Message
	var err error
	if msg.PICCData, err = hex.DecodeString(m.fields[fieldPICC].hexValue); err != nil {
		return sdm.Message{}, err
	}
	if msg.MAC, err = hex.DecodeString(m.fields[fieldMAC].hexValue); err != nil {
		return sdm.Message{}, err
	}
	if m.lastField() == fieldFile {
		if msg.FileData, err = hex.DecodeString(m.fields[fieldFile].hexValue); err != nil {
			return sdm.Message{}, err
		}
	}

	return msg, nil
}

// View renders the current state of the model.
func (m inspectModel) View() string {
	if m.done {
		return "SUN message captured.\n"
	}

	if m.cancelled {
		return "Operation cancelled.\n"
	}

	s := "Inspect SUN Message\n"
	s += strings.Repeat("=", 50) + "\n\n"

	s += fmt.Sprintf("Field %d of %d\n\n", m.currentField+1, m.lastField()+1)

	currentField := m.fields[m.currentField]
	s += fmt.Sprintf("▶ %s: %s\n\n", currentField.name, currentField.description)

	if currentField.fieldType == fieldTypeRadio {
		for j, option := range currentField.options {
			selector := "  ○ "
			if j == currentField.selected {
				selector = "  ● "
			}
			s += fmt.Sprintf("%s%s - %s\n", selector, option.value, option.description)
		}
	} else {
		s += fmt.Sprintf("  [ %s ] (%d hex digits)\n", currentField.hexValue, len(currentField.hexValue))
	}

	if m.err != "" {
		s += "\n  ! " + m.err + "\n"
	}
	s += "\n"

	if m.currentField > 0 {
		s += "Completed fields:\n"
		for i := 0; i < m.currentField; i++ {
			field := m.fields[i]
			if field.fieldType == fieldTypeRadio {
				s += fmt.Sprintf("  %s: %s\n", field.name, field.options[field.selected].value)
			} else {
				s += fmt.Sprintf("  %s: %s\n", field.name, field.hexValue)
			}
		}
		s += "\n"
	}

	s += "Navigation:\n"
	if currentField.fieldType == fieldTypeRadio {
		s += "  ↑/↓: Select option\n"
	} else {
		s += "  0-9, A-F: Hex input\n"
		s += "  Backspace: Delete digit\n"
	}
	s += "  Tab/Shift+Tab: Next/Previous field\n"
	s += "  Enter: Confirm and continue\n"
	s += "  Esc or Ctrl+C: Quit\n"

	return s
}

// runInspectTUI starts the interactive TUI and returns the entered message.
func runInspectTUI() (sdm.Message, bool, error) {
	p := tea.NewProgram(newInspectModel())
	finalModel, err := p.Run()
	if err != nil {
		return sdm.Message{}, false, err
	}

	m, ok := finalModel.(inspectModel)
	if !ok || m.cancelled {
		return sdm.Message{}, false, nil
	}

	msg, err := m.message()
	if err != nil {
		return sdm.Message{}, false, err
	}

	return msg, true, nil
}
