package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/symgo/core"
)

// Roles used by the default wiring. Exchanges may carry arbitrary roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Exchange is a single utterance in a conversation.
type Exchange struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// conversationState is the serialized form of a Conversation.
type conversationState struct {
	ID        string     `json:"id"`
	Exchanges []Exchange `json:"exchanges"`
}

// Conversation is an append-only exchange log safe for concurrent access.
type Conversation struct {
	mu        sync.RWMutex
	id        string
	exchanges []Exchange
}

// ConversationOptions configures a Conversation.
type ConversationOptions struct {
	ID string
}

// NewConversation constructs an empty conversation with a generated id.
func NewConversation(optFns ...func(o *ConversationOptions)) *Conversation {
	opts := ConversationOptions{ID: uuid.NewString()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Conversation{id: opts.ID}
}

// ID returns the conversation id.
func (c *Conversation) ID() string { return c.id }

// Append records an utterance and returns the stored exchange.
func (c *Conversation) Append(role, text string) Exchange {
	exchange := Exchange{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	c.mu.Lock()
	c.exchanges = append(c.exchanges, exchange)
	c.mu.Unlock()
	return exchange
}

// History returns a copy of all exchanges in insertion order.
func (c *Conversation) History() []Exchange {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Exchange, len(c.exchanges))
	copy(out, c.exchanges)
	return out
}

// Len returns the number of recorded exchanges.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.exchanges)
}

// Render returns the transcript as "role: text" lines, oldest first. The
// result feeds directly into a memory Store or an index build.
func (c *Conversation) Render() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var b strings.Builder
	for i, exchange := range c.exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(exchange.Role)
		b.WriteString(": ")
		b.WriteString(exchange.Text)
	}
	return b.String()
}

// Save writes the conversation as indented JSON, creating parent directories
// as needed.
func (c *Conversation) Save(path string) error {
	c.mu.RLock()
	state := conversationState{ID: c.id, Exchanges: c.exchanges}
	data, err := json.MarshalIndent(state, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal conversation '%s': %w", c.id, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory '%s': %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write conversation '%s': %w", path, err)
	}
	return nil
}

// Load reads a previously saved conversation. A missing file yields
// ErrNotFound.
func Load(path string) (*Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("conversation '%s': %w", path, core.ErrNotFound)
		}
		return nil, fmt.Errorf("read conversation '%s': %w", path, err)
	}

	var state conversationState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal conversation '%s': %w", path, err)
	}
	return &Conversation{id: state.ID, exchanges: state.Exchanges}, nil
}
