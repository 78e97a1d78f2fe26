// Package chat is a sample hub used by the provider tests.
package chat

import (
	"context"
	"time"

	"github.com/broady/hub"
)

// ChatHub is the server side of the chat.
type ChatHub struct {
	hub.Hub
}

//hub:server
func (h *ChatHub) Ping(ctx context.Context, sessionID string) error {
	return nil
}

// Post sends a message to a room.
//
//hub:server
func (h *ChatHub) Post(ctx context.Context, room Room, msg Message) error {
	return nil
}

//hub:server
func (h *ChatHub) History(room string) ([]Message, error) {
	return nil, nil
}

// Leave is not an operation.
func (h *ChatHub) Leave() error { return nil }

//hub:client
type ChatClient struct{}

func (ChatClient) Pong(c hub.Caller, message string) error {
	return c.Send("Pong", message)
}

func (ChatClient) Received(c hub.Caller, msgs []Message, at time.Time) error {
	return c.Send("Received", msgs, at)
}

func (ChatClient) helper() {}

type Room struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
	Level   Level
	secret  string
	Skipped int `json:"-"`
}

type Message struct {
	Audit
	Text    string
	Sent    time.Time
	TTL     time.Duration
	Payload []byte
	Reply   *Message
	Extra   any
}

type Audit struct {
	Author string
}

type Level int

const (
	LevelHigh Level = 2
	LevelLow  Level = 0
	LevelMid  Level = 1
	levelNone Level = -1
)

type Mood string

const (
	MoodHappy Mood = "happy"
	MoodSad   Mood = "sad"
)
