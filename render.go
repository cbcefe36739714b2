package qsim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Lipgloss styles used by the debug renderers.
var (
	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff9e64"))

	basisStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7dcfff"))

	amplitudeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#73daca"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#565f89"))
)

// negligible amplitudes are drawn dimmed
const renderEpsilon = 1e-12

/*
RenderRegister draws up to limit amplitudes as basis label, amplitude and
magnitude. A limit of zero or less renders all of them.
*/
func RenderRegister(r *Register, limit int) string {
	n := r.Len()
	if limit <= 0 || limit > n {
		limit = n
	}

	width := max(r.Qubits(), 1)
	rows := make([]string, 0, limit+2)
	rows = append(rows, titleStyle.Render(fmt.Sprintf("register  %d qubits  %d amplitudes", r.Qubits(), n)))

	for i := 0; i < limit; i++ {
		amp := r.states[i]
		label := basisStyle.Render(fmt.Sprintf("|%0*b⟩", width, i))
		value := fmt.Sprintf("%-18s %.6f", amp.String(), amp.Abs())

		if amp.Abs() < renderEpsilon {
			value = dimStyle.Render(value)
		} else {
			value = amplitudeStyle.Render(value)
		}

		rows = append(rows, label+"  "+value)
	}

	if limit < n {
		rows = append(rows, dimStyle.Render(fmt.Sprintf("… %d more", n-limit)))
	}

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func RenderGate(g Gate) string {
	lines := strings.Split(g.String(), "\n")
	for i, line := range lines {
		lines[i] = amplitudeStyle.Render(line)
	}

	return frameStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
