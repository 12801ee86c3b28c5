package web

import (
	"github.com/vovakirdan/tui-raycaster/internal/engine"
	"github.com/vovakirdan/tui-raycaster/internal/maps"
)

// MessageType names a server message.
type MessageType string

const (
	MessageTypeHello MessageType = "hello"
	MessageTypeFrame MessageType = "frame"
	MessageTypeSaved MessageType = "saved"
	MessageTypeError MessageType = "error"
)

// ClientMessage is sent by the browser.
//
//	{"action":"forward","pressed":true}   hold a movement key
//	{"action":"forward","pressed":false}  release it
//	{"action":"minimap"}                  one-shot action
//	{"action":"save_pose"}                bookmark the pose
type ClientMessage struct {
	Action  string `json:"action"`
	Pressed *bool  `json:"pressed,omitempty"`
}

// HelloMessage is the first message on a connection.
type HelloMessage struct {
	Type   MessageType `json:"type"`
	Map    maps.Info   `json:"map"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	FPS    int         `json:"fps"`
}

// FrameMessage carries one rendered frame.
type FrameMessage struct {
	Type MessageType `json:"type"`
	engine.Frame
	Paused  bool `json:"paused"`
	Minimap bool `json:"minimap"`
}

// NoticeMessage reports a saved pose or an error.
type NoticeMessage struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
