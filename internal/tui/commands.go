package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seezee/launcherhub/internal/models"
)

const requestTimeout = 15 * time.Second

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{} })
}

func fetchSnapshot(c *HubClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		snap, err := c.Hub(ctx)
		return snapshotMsg{Snapshot: snap, Err: err}
	}
}

func fetchGames(c *HubClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		games, err := c.Games(ctx)
		return gamesMsg{Games: games, Err: err}
	}
}

func fetchAudio(c *HubClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		st, err := c.Audio(ctx)
		return audioMsg{State: st, Err: err}
	}
}

func fetchDevices(c *HubClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		devs, err := c.MonitorDevices(ctx)
		return devicesMsg{Devices: devs, Err: err}
	}
}

// action runs fn and reports done on success.
func action(done string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			return actionMsg{Err: err}
		}
		return actionMsg{Text: done}
	}
}

func launch(c *HubClient, item models.GameItem) tea.Cmd {
	return action("Launching "+item.Title, func(ctx context.Context) error {
		return c.Launch(ctx, item)
	})
}

func testConnection(c *HubClient) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		ok, errText, err := c.TestConnection(ctx)
		switch {
		case err != nil:
			return actionMsg{Err: err}
		case !ok && errText != "":
			return actionMsg{Text: "Connection failed: " + errText}
		case !ok:
			return actionMsg{Text: "Connection failed"}
		}
		return actionMsg{Text: "Connected"}
	}
}
