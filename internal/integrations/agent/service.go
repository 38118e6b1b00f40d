package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/integrations/gohl"
	"github.com/occucare/clinic/internal/platform/session"
)

const systemPrompt = "You are the front-desk assistant for an occupational health clinic. " +
	"Answer questions about scheduling and patient lookup. Use the provided tools to " +
	"search or register contacts; never invent contact details."

// maxToolRounds bounds the tool-call loop so a misbehaving model cannot
// spin forever.
const maxToolRounds = 3

// ContactDirectory is the slice of the CRM client the agent is allowed to
// drive. *gohl.Client satisfies it.
type ContactDirectory interface {
	SearchContacts(ctx context.Context, query string, limit int) ([]gohl.Contact, error)
	UpsertContact(ctx context.Context, contact *gohl.Contact) (*gohl.Contact, error)
}

type Service struct {
	llm      Completer
	sessions session.Store
	crm      ContactDirectory
	logger   zerolog.Logger
}

func NewService(llm Completer, sessions session.Store, crm ContactDirectory, logger zerolog.Logger) *Service {
	return &Service{llm: llm, sessions: sessions, crm: crm, logger: logger}
}

// Chat appends the user message to the session, runs the model (executing
// tool calls as needed), stores the assistant reply, and returns it along
// with the session id. A blank session id starts a new conversation.
func (s *Service) Chat(ctx context.Context, sessionID, userMessage string) (string, string, error) {
	sess, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	sess.Messages = append(sess.Messages, session.Message{Role: "user", Content: userMessage})
	sess.UpdatedAt = time.Now().UTC()

	messages := toChatMessages(sess.Messages)
	reply, err := s.run(ctx, messages)
	if err != nil {
		return "", "", err
	}

	sess.Messages = append(sess.Messages, session.Message{Role: "assistant", Content: reply})
	if err := s.sessions.Save(ctx, sess); err != nil {
		return "", "", fmt.Errorf("save session: %w", err)
	}
	return reply, sess.ID, nil
}

func (s *Service) loadOrCreate(ctx context.Context, id string) (*session.Session, error) {
	if id != "" {
		sess, err := s.sessions.Get(ctx, id)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, fmt.Errorf("load session: %w", err)
		}
		// Expired or unknown id: start fresh under the same id so the
		// caller's handle keeps working.
	} else {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	return &session.Session{
		ID:        id,
		Messages:  []session.Message{{Role: "system", Content: systemPrompt}},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// run drives the model until it produces a plain assistant reply, executing
// at most maxToolRounds rounds of tool calls in between. Tool exchanges are
// not persisted to the session; only user and assistant turns are.
func (s *Service) run(ctx context.Context, messages []ChatMessage) (string, error) {
	tools := crmTools()
	for round := 0; ; round++ {
		msg, err := s.llm.Complete(ctx, messages, tools)
		if err != nil {
			return "", err
		}
		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}
		if round >= maxToolRounds {
			return "", fmt.Errorf("agent: tool-call limit exceeded")
		}
		messages = append(messages, *msg)
		for _, tc := range msg.ToolCalls {
			result := s.execTool(ctx, tc)
			messages = append(messages, ChatMessage{
				Role:       "tool",
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}
}

func (s *Service) execTool(ctx context.Context, tc ToolCall) string {
	s.logger.Debug().Str("tool", tc.Function.Name).Msg("agent tool call")
	switch tc.Function.Name {
	case "search_contacts":
		var args struct {
			Query string `json:"query"`
		}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return toolError(err)
		}
		contacts, err := s.crm.SearchContacts(ctx, args.Query, 5)
		if err != nil {
			return toolError(err)
		}
		out, _ := json.Marshal(contacts)
		return string(out)
	case "create_contact":
		var args gohl.Contact
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			return toolError(err)
		}
		contact, err := s.crm.UpsertContact(ctx, &args)
		if err != nil {
			return toolError(err)
		}
		out, _ := json.Marshal(contact)
		return string(out)
	default:
		return toolError(fmt.Errorf("unknown tool %q", tc.Function.Name))
	}
}

func toolError(err error) string {
	out, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(out)
}

func toChatMessages(msgs []session.Message) []ChatMessage {
	out := make([]ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}

func crmTools() []Tool {
	search := Tool{Type: "function"}
	search.Function.Name = "search_contacts"
	search.Function.Description = "Search CRM contacts by name, email, or phone."
	search.Function.Parameters = json.RawMessage(`{
		"type": "object",
		"properties": {"query": {"type": "string"}},
		"required": ["query"]
	}`)

	create := Tool{Type: "function"}
	create.Function.Name = "create_contact"
	create.Function.Description = "Create or update a CRM contact."
	create.Function.Parameters = json.RawMessage(`{
		"type": "object",
		"properties": {
			"firstName": {"type": "string"},
			"lastName": {"type": "string"},
			"email": {"type": "string"},
			"phone": {"type": "string"}
		},
		"required": ["firstName", "lastName"]
	}`)

	return []Tool{search, create}
}
