package common

// StatusResult is the timer.status response.
type StatusResult struct {
	Active      bool   `json:"active"`
	FireAt      string `json:"fireAt,omitempty"`
	RemainingMs int64  `json:"remainingMs"`
}

// VersionResult is the timer.version response.
type VersionResult struct {
	Version string `json:"version"`
}
