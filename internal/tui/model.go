// Package tui is a terminal front-end for the hub. It renders the launcher
// pages from the hub's JSON API and tints itself with the hub's accent.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seezee/launcherhub/internal/models"
)

// Page is one screen of the front-end.
type Page int

const (
	PageDashboard Page = iota
	PageLibrary
	PageLighting
	PageAudio
	PageSettings
	pageCount
)

var pageNames = [...]string{"Dashboard", "Library", "Lighting", "Audio", "Settings"}

func (p Page) String() string {
	if p < 0 || p >= pageCount {
		return "?"
	}
	return pageNames[p]
}

// Preset is a named lighting colour.
type Preset struct {
	Name string
	RGB  models.RGB
}

// Presets are the colours offered on the lighting page.
var Presets = []Preset{
	{"SeeZee Red", models.DefaultAccent},
	{"Ocean", models.RGB{R: 0, G: 119, B: 190}},
	{"Forest", models.RGB{R: 34, G: 139, B: 34}},
	{"Sunset", models.RGB{R: 255, G: 94, B: 77}},
	{"Violet", models.RGB{R: 138, G: 43, B: 226}},
	{"White", models.RGB{R: 255, G: 255, B: 255}},
}

const volumeStep = 5

// Model is the root bubbletea model.
type Model struct {
	client   *HubClient
	interval time.Duration
	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	address  textinput.Model
	styles   Styles

	page    Page
	width   int
	height  int
	editing bool
	busy    int

	snap    models.Snapshot
	hubErr  error
	games   []models.GameItem
	cursor  int
	preset  int
	audio   *models.AudioState
	devices []models.DeviceStats
	status  string
	isError bool
}

// New creates the root model. interval is the refresh period.
func New(client *HubClient, interval time.Duration) Model {
	if interval <= 0 {
		interval = time.Second
	}
	ti := textinput.New()
	ti.Placeholder = "192.168.1.50"
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:   client,
		interval: interval,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		address:  ti,
		styles:   NewStyles(models.DefaultAccent),
	}
}

// Page returns the current page.
func (m Model) Page() Page { return m.page }

// Accent returns the accent the UI is currently tinted with.
func (m Model) Accent() models.RGB { return m.snap.Accent }

// Games returns the library as last loaded.
func (m Model) Games() []models.GameItem { return m.games }

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchSnapshot(m.client), m.spinner.Tick, tick(m.interval))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.refresh(), tick(m.interval))

	case snapshotMsg:
		m.hubErr = msg.Err
		if msg.Err == nil {
			m.snap = msg.Snapshot
			m.styles = NewStyles(msg.Snapshot.Accent)
			if len(m.games) == 0 {
				m.games = msg.Snapshot.Games
			}
		}
		return m, nil

	case gamesMsg:
		m.done()
		if msg.Err != nil {
			m.setStatus(msg.Err.Error(), true)
			return m, nil
		}
		m.games = msg.Games
		if m.cursor >= len(m.games) {
			m.cursor = max(0, len(m.games)-1)
		}
		return m, nil

	case audioMsg:
		if msg.Err == nil {
			st := msg.State
			m.audio = &st
		}
		return m, nil

	case devicesMsg:
		if msg.Err == nil || msg.Devices != nil {
			m.devices = msg.Devices
		}
		return m, nil

	case actionMsg:
		m.done()
		if msg.Err != nil {
			m.setStatus(msg.Err.Error(), true)
		} else {
			m.setStatus(msg.Text, false)
		}
		return m, fetchSnapshot(m.client)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) done() {
	if m.busy > 0 {
		m.busy--
	}
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.isError = isError
}

// refresh fetches what the current page shows.
func (m Model) refresh() tea.Cmd {
	cmds := []tea.Cmd{fetchSnapshot(m.client)}
	switch m.page {
	case PageAudio:
		cmds = append(cmds, fetchAudio(m.client))
	case PageDashboard:
		cmds = append(cmds, fetchDevices(m.client))
	}
	return tea.Batch(cmds...)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		m.page = (m.page + 1) % pageCount
		return m, m.refresh()
	case key.Matches(msg, m.keys.PrevPage):
		m.page = (m.page + pageCount - 1) % pageCount
		return m, m.refresh()
	}

	switch m.page {
	case PageLibrary:
		return m.updateLibrary(msg)
	case PageLighting:
		return m.updateLighting(msg)
	case PageAudio:
		return m.updateAudio(msg)
	case PageSettings:
		return m.updateSettings(msg)
	}
	if key.Matches(msg, m.keys.Refresh) {
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) updateLibrary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Refresh):
		m.busy++
		return m, fetchGames(m.client)
	case key.Matches(msg, m.keys.Enter):
		if m.cursor < len(m.games) {
			m.busy++
			return m, launch(m.client, m.games[m.cursor])
		}
	}
	return m, nil
}

func (m Model) updateLighting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.preset > 0 {
			m.preset--
		}
	case key.Matches(msg, m.keys.Down):
		if m.preset < len(Presets)-1 {
			m.preset++
		}
	case key.Matches(msg, m.keys.Enter):
		if m.snap.Cooldown > 0 {
			m.setStatus("Cooldown active", true)
			return m, nil
		}
		p := Presets[m.preset]
		m.busy++
		return m, action("Applied "+p.Name, func(ctx context.Context) error {
			return m.client.ApplyLighting(ctx, p.RGB)
		})
	}
	return m, nil
}

func (m Model) updateAudio(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.PlayPause):
		act := models.SpotifyPlay
		if m.audio != nil && m.audio.Spotify.NowPlaying != nil && m.audio.Spotify.NowPlaying.IsPlaying {
			act = models.SpotifyPause
		}
		cmd = m.spotify(act)
	case key.Matches(msg, m.keys.Next):
		cmd = m.spotify(models.SpotifyNext)
	case key.Matches(msg, m.keys.Previous):
		cmd = m.spotify(models.SpotifyPrevious)
	case key.Matches(msg, m.keys.VolUp):
		cmd = m.nudgeVolume(volumeStep)
	case key.Matches(msg, m.keys.VolDown):
		cmd = m.nudgeVolume(-volumeStep)
	case key.Matches(msg, m.keys.Refresh):
		return m, fetchAudio(m.client)
	}
	if cmd == nil {
		return m, nil
	}
	m.busy++
	return m, tea.Sequence(cmd, fetchAudio(m.client))
}

func (m Model) spotify(act string) tea.Cmd {
	return action("Spotify "+act, func(ctx context.Context) error {
		return m.client.Spotify(ctx, act)
	})
}

func (m Model) nudgeVolume(delta int) tea.Cmd {
	if m.audio == nil || !m.audio.System.Supported || m.audio.System.Volume == nil {
		return nil
	}
	v := min(100, max(0, *m.audio.System.Volume+delta))
	return action("Volume "+strconv.Itoa(v)+"%", func(ctx context.Context) error {
		return m.client.SetVolume(ctx, v)
	})
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Test):
		m.busy++
		return m, testConnection(m.client)
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		m.address.SetValue(m.snap.PCIPAddress)
		cmd := m.address.Focus()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.editing = false
		m.address.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Enter):
		m.editing = false
		m.address.Blur()
		ip := m.address.Value()
		m.busy++
		return m, action("Saved "+ip, func(ctx context.Context) error {
			return m.client.SetAddress(ctx, ip)
		})
	}
	var cmd tea.Cmd
	m.address, cmd = m.address.Update(msg)
	return m, cmd
}
