package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/zombor/smart-pantry/internal/scanning"
)

// Roles of conversation messages
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Greeting is shown before the first question
const Greeting = "Thanks! I'll use your preferences to suggest recipes. Ask away!"

// Message is one turn of the conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a multi-turn recipe chat seeded with a system prompt.
// Every turn replays the transcript through a single completion call.
type Conversation struct {
	generator    scanning.TextGenerator
	systemPrompt string
	history      []Message
	latestRecipe string
}

// NewConversation starts a conversation seeded with systemPrompt
func NewConversation(generator scanning.TextGenerator, systemPrompt string) *Conversation {
	return &Conversation{
		generator:    generator,
		systemPrompt: systemPrompt,
	}
}

// Send asks the assistant about text and returns its reply. On failure the
// question stays in the history and the error is returned for display.
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("message is empty")
	}
	if c.generator == nil {
		return "", fmt.Errorf("no text generator configured")
	}

	c.history = append(c.history, Message{Role: RoleUser, Content: text})

	reply, err := c.generator.Complete(ctx, c.transcript())
	if err != nil {
		return "", fmt.Errorf("asking recipe assistant: %w", err)
	}

	c.history = append(c.history, Message{Role: RoleAssistant, Content: reply})
	c.latestRecipe = reply
	return reply, nil
}

// Reset clears the history and reseeds the conversation
func (c *Conversation) Reset(systemPrompt string) {
	c.systemPrompt = systemPrompt
	c.history = nil
	c.latestRecipe = ""
}

// SetSystemPrompt replaces the seed without clearing the history
func (c *Conversation) SetSystemPrompt(systemPrompt string) {
	c.systemPrompt = systemPrompt
}

// SystemPrompt returns the current seed
func (c *Conversation) SystemPrompt() string {
	return c.systemPrompt
}

// History returns a copy of the messages exchanged so far
func (c *Conversation) History() []Message {
	history := make([]Message, len(c.history))
	copy(history, c.history)
	return history
}

// LatestRecipe returns the last assistant reply, or "" before the first one
func (c *Conversation) LatestRecipe() string {
	return c.latestRecipe
}

func (c *Conversation) transcript() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(c.systemPrompt))
	b.WriteString("\n\nConversation so far:\n")
	for _, msg := range c.history {
		switch msg.Role {
		case RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}
