package models

import (
	"encoding/json"
	"time"
)

// Envelope is the wire format for every socket message: an event name plus
// an event-specific payload. Payloads are validated against the closed types
// below before they reach the control layer.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ControlMode represents who is driving the camera
type ControlMode string

const (
	ControlModeAutomatic ControlMode = "automatic"
	ControlModeManual    ControlMode = "manual"
)

// String returns the string representation of ControlMode
func (m ControlMode) String() string {
	return string(m)
}

// PTZDirection represents a pan/tilt/zoom movement command
type PTZDirection string

const (
	PTZUp        PTZDirection = "up"
	PTZDown      PTZDirection = "down"
	PTZLeft      PTZDirection = "left"
	PTZRight     PTZDirection = "right"
	PTZUpLeft    PTZDirection = "up-left"
	PTZUpRight   PTZDirection = "up-right"
	PTZDownLeft  PTZDirection = "down-left"
	PTZDownRight PTZDirection = "down-right"
	PTZStop      PTZDirection = "stop"
)

// IsValid checks if the direction is part of the closed command set
func (d PTZDirection) IsValid() bool {
	switch d {
	case PTZUp, PTZDown, PTZLeft, PTZRight,
		PTZUpLeft, PTZUpRight, PTZDownLeft, PTZDownRight, PTZStop:
		return true
	default:
		return false
	}
}

// RecordingAction represents a recording toggle command
type RecordingAction string

const (
	RecordingStart RecordingAction = "start"
	RecordingStop  RecordingAction = "stop"
)

// IsValid checks if the action is part of the closed command set
func (a RecordingAction) IsValid() bool {
	switch a {
	case RecordingStart, RecordingStop:
		return true
	default:
		return false
	}
}

// ControlStatusUpdate reports the current control mode. IsYou is only set on
// direct replies to get_control_status, never on broadcasts.
type ControlStatusUpdate struct {
	Status       ControlMode `json:"status"`
	ControlledBy string      `json:"controlledBy,omitempty"`
	IsYou        *bool       `json:"isYou,omitempty"`
}

// CommandResponse is the synchronous reply to a manual_mode request or a
// rejected PTZ/recording command.
type CommandResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// PTZCommand is the camera-facing movement directive
type PTZCommand struct {
	Direction PTZDirection `json:"direction"`
	ClientID  string       `json:"clientId"`
}

// RecordingCommand is the camera-facing recording directive
type RecordingCommand struct {
	Action   RecordingAction `json:"action"`
	ClientID string          `json:"clientId"`
}

// ManualModeCommand tells the camera unit to enter or leave manual mode
type ManualModeCommand struct {
	Enabled  bool   `json:"enabled"`
	ClientID string `json:"clientId,omitempty"`
}

// RecordingStatus is reported by the camera unit
type RecordingStatus struct {
	Recording bool `json:"recording"`
	Manual    bool `json:"manual"`
}

// PTZMotionStatus is reported by the camera unit
type PTZMotionStatus struct {
	Moving bool `json:"moving"`
	Manual bool `json:"manual"`
}

// Video describes one playable file in the cloud drive folder
type Video struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MimeType    string    `json:"mimeType"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Size        int64     `json:"size,omitempty"`
	CreatedTime time.Time `json:"createdTime,omitempty"`
}
