package models

// LightingMode selects how an apply request is fanned out to devices.
type LightingMode string

const (
	// LightingAll sends one batch request and lets the agent queue the devices.
	LightingAll LightingMode = "all"
	// LightingIndividual sends one request per device from the hub, paced by Delay.
	LightingIndividual LightingMode = "individual"
)

// LightingDevice is a Govee device as reported by the agent.
type LightingDevice struct {
	Device       string   `json:"device"`
	Model        string   `json:"model"`
	DeviceName   string   `json:"deviceName"`
	Controllable bool     `json:"controllable"`
	Retrievable  bool     `json:"retrievable"`
	SupportCmds  []string `json:"supportCmds"`
	Properties   *struct {
		Online *bool `json:"online,omitempty"`
	} `json:"properties,omitempty"`
}

// LightingApplyRequest is the body of POST /api/lighting/apply on the hub.
type LightingApplyRequest struct {
	Devices         []string     `json:"devices"`
	RGB             RGBInput     `json:"rgb"`
	Brightness      int          `json:"brightness"`
	Delay           float64      `json:"delay"`
	Mode            LightingMode `json:"mode"`
	EnableSignalRGB bool         `json:"enableSignalRGB"`
	EnableGovee     bool         `json:"enableGovee"`
}

// LightingBatchResult is the agent's answer to a batch apply.
type LightingBatchResult struct {
	SignalRGB *struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	} `json:"signalrgb"`
	Govee *struct {
		Queued        int      `json:"queued"`
		Devices       []string `json:"devices"`
		EstimatedTime float64  `json:"estimated_time"`
	} `json:"govee"`
}

// DeviceResult is the per-device outcome of an individual-mode apply.
type DeviceResult struct {
	Device  string `json:"device"`
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// LightingResult summarises an apply as returned by the hub.
type LightingResult struct {
	Mode     LightingMode         `json:"mode"`
	RGB      RGB                  `json:"rgb"`
	Batch    *LightingBatchResult `json:"batch,omitempty"`
	Devices  []DeviceResult       `json:"devices,omitempty"`
	Cooldown int                  `json:"cooldownRemaining"`
}

// Theme is the agent's stored lighting theme.
type Theme struct {
	Name       string          `json:"name,omitempty"`
	RGB        *RGB            `json:"rgb,omitempty"`
	Brightness int             `json:"brightness,omitempty"`
	Sync       map[string]bool `json:"sync,omitempty"`
}

// LogEntry is one line of the lighting page's activity log.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"` // "info" | "warning" | "error" | "success"
	Message   string `json:"message"`
}
