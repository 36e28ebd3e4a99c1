package gateway

import "context"

// Messenger defines the interface for communication gateways (Telegram, Discord, etc.)
type Messenger interface {
	// Start begins the message listening loop
	Start() error
	// Send sends a message to a specific chat
	Send(chatID string, text string) error
	// Stop gracefully shuts down the gateway
	Stop() error
}

// Planner is the slice of the plan service a gateway needs: a goal in,
// rendered plan text out.
type Planner interface {
	GenerateText(ctx context.Context, goal string) (string, error)
}
