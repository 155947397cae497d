package tui

import (
	"github.com/seezee/launcherhub/internal/models"
)

// tickMsg triggers a periodic refresh.
type tickMsg struct{}

// snapshotMsg carries a fresh hub snapshot.
type snapshotMsg struct {
	Snapshot models.Snapshot
	Err      error
}

// gamesMsg carries a library refresh.
type gamesMsg struct {
	Games []models.GameItem
	Err   error
}

// audioMsg carries the PC's audio state.
type audioMsg struct {
	State models.AudioState
	Err   error
}

// devicesMsg carries the device monitor list.
type devicesMsg struct {
	Devices []models.DeviceStats
	Err     error
}

// actionMsg reports the outcome of a user command.
type actionMsg struct {
	Text string
	Err  error
}
