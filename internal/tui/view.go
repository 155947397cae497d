package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const maxListRows = 15

// View implements tea.Model.
func (m Model) View() string {
	var body string
	switch m.page {
	case PageDashboard:
		body = m.viewDashboard()
	case PageLibrary:
		body = m.viewLibrary()
	case PageLighting:
		body = m.viewLighting()
	case PageAudio:
		body = m.viewAudio()
	case PageSettings:
		body = m.viewSettings()
	}

	panel := m.styles.Panel
	if m.width > 4 {
		panel = panel.Width(m.width - 4)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewTabs(),
		panel.Render(body),
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	tabs := []string{m.styles.Brand.Render(" SeeZee ")}
	for p := Page(0); p < pageCount; p++ {
		style := m.styles.Tab
		if p == m.page {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(p.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	var parts []string
	if m.busy > 0 || m.snap.IsLoading {
		parts = append(parts, m.spinner.View())
	}
	switch {
	case m.hubErr != nil:
		parts = append(parts, m.styles.Error.Render("hub unreachable: "+m.hubErr.Error()))
	case m.status != "" && m.isError:
		parts = append(parts, m.styles.Error.Render(m.status))
	case m.status != "":
		parts = append(parts, m.styles.OK.Render(m.status))
	}
	return strings.Join(parts, " ")
}

func (m Model) connectionLine() string {
	s := m.snap
	if s.PCIPAddress == "" {
		return m.styles.Warn.Render("○ No PC configured")
	}
	target := fmt.Sprintf("%s:%d", s.PCIPAddress, s.PCPort)
	if s.IsConnected {
		return m.styles.OK.Render("● Connected to " + target)
	}
	line := m.styles.Error.Render("● Disconnected from " + target)
	if s.Error != "" {
		line += m.styles.Muted.Render(" (" + s.Error + ")")
	}
	return line
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.connectionLine())
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d games, %d folders\n", m.styles.Muted.Render("Library:"), len(m.snap.Games), len(m.snap.Folders))
	fmt.Fprintf(&b, "%s %s %s\n\n", m.styles.Muted.Render("Accent:"), Swatch(m.snap.Accent), m.snap.Accent.Hex())

	if len(m.devices) == 0 {
		b.WriteString(m.styles.Muted.Render("No monitored devices"))
		return b.String()
	}
	for _, d := range m.devices {
		mark := m.styles.Error.Render("●")
		if d.Online {
			mark = m.styles.OK.Render("●")
		}
		line := fmt.Sprintf("%s %-20s %s", mark, d.Name, m.styles.Muted.Render(d.IP))
		if d.Stats != nil {
			line += fmt.Sprintf("  cpu %4.1f%%  mem %4.1f%%  disk %4.1f%%",
				d.Stats.CPU.Usage, d.Stats.Memory.Percent, d.Stats.Disk.Percent)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewLibrary() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Library (%d)", len(m.games))))
	b.WriteString("\n")
	if len(m.games) == 0 {
		b.WriteString(m.styles.Muted.Render("No games yet. Press r to refresh."))
		return b.String()
	}

	start := 0
	if m.cursor >= maxListRows {
		start = m.cursor - maxListRows + 1
	}
	end := min(len(m.games), start+maxListRows)
	for i := start; i < end; i++ {
		g := m.games[i]
		line := fmt.Sprintf("%-40s %s", g.Title, m.styles.Muted.Render(string(g.Source)))
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("▸ " + line))
		} else {
			b.WriteString(m.styles.Item.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewLighting() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Lighting"))
	b.WriteString("\n")
	for i, p := range Presets {
		line := fmt.Sprintf("%s %s", Swatch(p.RGB), p.Name)
		if i == m.preset {
			b.WriteString(m.styles.Selected.Render("▸ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.snap.Cooldown > 0 {
		b.WriteString(m.styles.Warn.Render(fmt.Sprintf("Cooldown: %ds remaining", m.snap.Cooldown)))
	} else {
		b.WriteString(m.styles.OK.Render("Ready"))
	}
	return b.String()
}

func (m Model) viewAudio() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Audio"))
	b.WriteString("\n")
	if m.audio == nil {
		b.WriteString(m.styles.Muted.Render("Loading audio state..."))
		return b.String()
	}

	sys := m.audio.System
	switch {
	case !sys.Supported:
		msg := "Volume control unavailable"
		if sys.Error != "" {
			msg += ": " + sys.Error
		}
		b.WriteString(m.styles.Warn.Render(msg))
	case sys.Volume != nil:
		fmt.Fprintf(&b, "Volume %3d%% %s", *sys.Volume, volumeBar(*sys.Volume, m.styles))
		if sys.Muted != nil && *sys.Muted {
			b.WriteString(m.styles.Muted.Render(" (muted)"))
		}
	}
	b.WriteString("\n\n")

	sp := m.audio.Spotify
	switch {
	case !sp.Configured:
		b.WriteString(m.styles.Muted.Render("Spotify not configured"))
	case sp.NowPlaying == nil || sp.NowPlaying.Title == "":
		b.WriteString(m.styles.Muted.Render("Nothing playing"))
	default:
		np := sp.NowPlaying
		icon := "⏸"
		if np.IsPlaying {
			icon = "▶"
		}
		b.WriteString(m.styles.Selected.Render(icon + " " + np.Title))
		if len(np.Artists) > 0 {
			b.WriteString("\n" + m.styles.Muted.Render(strings.Join(np.Artists, ", ")))
		}
		if np.ProgressMs != nil && np.DurationMs != nil {
			b.WriteString("\n" + formatMs(*np.ProgressMs) + " / " + formatMs(*np.DurationMs))
		}
	}
	return b.String()
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(m.connectionLine())
	b.WriteString("\n\n")
	if m.editing {
		b.WriteString("PC address: " + m.address.View())
		b.WriteString("\n" + m.styles.Muted.Render("enter to save, esc to cancel"))
		return b.String()
	}
	s := m.snap
	fmt.Fprintf(&b, "%-16s %s\n", "PC address", orDash(s.PCIPAddress))
	fmt.Fprintf(&b, "%-16s %d\n", "Port", s.PCPort)
	fmt.Fprintf(&b, "%-16s %s\n", "Connection", orDash(string(s.ConnectionType)))
	if s.LastConnected != nil {
		fmt.Fprintf(&b, "%-16s %s\n", "Last connected", s.LastConnected.Local().Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

func volumeBar(v int, st Styles) string {
	const width = 20
	filled := v * width / 100
	return lipgloss.NewStyle().Foreground(st.Accent).Render(strings.Repeat("█", filled)) +
		st.Muted.Render(strings.Repeat("░", width-filled))
}

func formatMs(ms int) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
