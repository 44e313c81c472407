package models

// Socket event names consumed by the hub.
const (
	EventFrame            = "frame"
	EventGetControlStatus = "get_control_status"
	EventManualMode       = "manual_mode"
	EventPTZControl       = "ptz_control"
	EventRecordingControl = "recording_control"
)

// Socket event names produced by the hub.
const (
	EventControlStatusUpdate = "control_status_update"
	EventManualModeResponse  = "manual_mode_response"
	EventManualModeCommand   = "manual_mode_command"
	EventPTZCommand          = "ptz_command"
	EventRecordingCommand    = "recording_command"
	EventCommandRejected     = "command_rejected"
)

// Camera unit status events, relayed to clients unchanged.
const (
	EventRecordingStatus = "recording_status"
	EventPTZStatus       = "ptz_status"
)
