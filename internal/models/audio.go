package models

// NowPlaying is the normalised Spotify currently-playing payload.
type NowPlaying struct {
	IsPlaying   bool     `json:"isPlaying"`
	Title       string   `json:"title,omitempty"`
	Artists     []string `json:"artists,omitempty"`
	Album       string   `json:"album,omitempty"`
	AlbumArtURL *string  `json:"albumArtUrl,omitempty"`
	ProgressMs  *int     `json:"progressMs,omitempty"`
	DurationMs  *int     `json:"durationMs,omitempty"`
}

// SystemAudio is the PC's master volume state.
type SystemAudio struct {
	Supported bool   `json:"supported"`
	Volume    *int   `json:"volume,omitempty"`
	Muted     *bool  `json:"muted,omitempty"`
	Error     string `json:"error,omitempty"`
	Hint      string `json:"hint,omitempty"`
	Backend   string `json:"backend,omitempty"`
}

// SpotifyState is the Spotify half of the audio state.
type SpotifyState struct {
	Configured bool        `json:"configured"`
	NowPlaying *NowPlaying `json:"nowPlaying"`
	Error      *string     `json:"error,omitempty"`
}

// AudioState is the agent's GET /api/audio/state response.
type AudioState struct {
	System    SystemAudio  `json:"system"`
	Spotify   SpotifyState `json:"spotify"`
	Timestamp string       `json:"timestamp"`
}

// Spotify transport actions and repeat modes accepted by the agent.
const (
	SpotifyPlay     = "play"
	SpotifyPause    = "pause"
	SpotifyNext     = "next"
	SpotifyPrevious = "previous"

	RepeatOff     = "off"
	RepeatContext = "context"
	RepeatTrack   = "track"
)

// DeviceStats is one entry of the agent's device monitor list.
type DeviceStats struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	IP     string `json:"ip"`
	Online bool   `json:"online"`
	Stats  *struct {
		Hostname string `json:"hostname"`
		CPU      struct {
			Usage float64 `json:"usage"`
			Cores int     `json:"cores"`
		} `json:"cpu"`
		Memory  UsageStat `json:"memory"`
		Disk    UsageStat `json:"disk"`
		Network struct {
			Sent int64 `json:"sent"`
			Recv int64 `json:"recv"`
		} `json:"network"`
	} `json:"stats,omitempty"`
}

// UsageStat is a used/total/percent triple.
type UsageStat struct {
	Used    int64   `json:"used"`
	Total   int64   `json:"total"`
	Percent float64 `json:"percent"`
}
