package agent

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/occucare/clinic/internal/integrations/gohl"
	"github.com/occucare/clinic/internal/platform/session"
)

// scriptedLLM returns its queued messages in order.
type scriptedLLM struct {
	replies []ChatMessage
	calls   [][]ChatMessage
}

func (s *scriptedLLM) Complete(_ context.Context, messages []ChatMessage, _ []Tool) (*ChatMessage, error) {
	s.calls = append(s.calls, append([]ChatMessage(nil), messages...))
	if len(s.replies) == 0 {
		return &ChatMessage{Role: "assistant", Content: "done"}, nil
	}
	msg := s.replies[0]
	s.replies = s.replies[1:]
	return &msg, nil
}

type fakeCRM struct {
	contacts []gohl.Contact
	upserted []gohl.Contact
}

func (f *fakeCRM) SearchContacts(_ context.Context, _ string, _ int) ([]gohl.Contact, error) {
	return f.contacts, nil
}

func (f *fakeCRM) UpsertContact(_ context.Context, c *gohl.Contact) (*gohl.Contact, error) {
	created := *c
	created.ID = "crm-1"
	f.upserted = append(f.upserted, created)
	return &created, nil
}

func newTestService(llm *scriptedLLM, crm *fakeCRM) (*Service, session.Store) {
	store := session.NewMemoryStore(time.Minute)
	return NewService(llm, store, crm, zerolog.Nop()), store
}

func TestChat_NewSessionSeedsSystemPrompt(t *testing.T) {
	llm := &scriptedLLM{replies: []ChatMessage{{Role: "assistant", Content: "hello"}}}
	svc, store := newTestService(llm, &fakeCRM{})

	reply, sessionID, err := svc.Chat(context.Background(), "", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hello" || sessionID == "" {
		t.Fatalf("unexpected result: reply=%q session=%q", reply, sessionID)
	}

	sess, err := store.Get(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("session not saved: %v", err)
	}
	if len(sess.Messages) != 3 {
		t.Fatalf("expected system+user+assistant, got %d messages", len(sess.Messages))
	}
	if sess.Messages[0].Role != "system" {
		t.Errorf("first message should be system prompt, got %q", sess.Messages[0].Role)
	}
}

func TestChat_ContinuesExistingSession(t *testing.T) {
	llm := &scriptedLLM{replies: []ChatMessage{
		{Role: "assistant", Content: "first"},
		{Role: "assistant", Content: "second"},
	}}
	svc, _ := newTestService(llm, &fakeCRM{})

	_, sessionID, err := svc.Chat(context.Background(), "", "one")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, _, err = svc.Chat(context.Background(), sessionID, "two")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Second model call must see the full history.
	last := llm.calls[len(llm.calls)-1]
	if len(last) != 4 { // system, user, assistant, user
		t.Fatalf("expected 4 messages in second call, got %d", len(last))
	}
	if last[3].Content != "two" {
		t.Errorf("expected latest user turn last, got %q", last[3].Content)
	}
}

func TestChat_ExecutesToolCallThenReplies(t *testing.T) {
	toolCall := ToolCall{ID: "call-1", Type: "function"}
	toolCall.Function.Name = "search_contacts"
	toolCall.Function.Arguments = `{"query":"smith"}`

	llm := &scriptedLLM{replies: []ChatMessage{
		{Role: "assistant", ToolCalls: []ToolCall{toolCall}},
		{Role: "assistant", Content: "found John Smith"},
	}}
	crm := &fakeCRM{contacts: []gohl.Contact{{ID: "c1", FirstName: "John", LastName: "Smith"}}}
	svc, store := newTestService(llm, crm)

	reply, sessionID, err := svc.Chat(context.Background(), "", "find smith")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "found John Smith" {
		t.Errorf("unexpected reply: %q", reply)
	}

	// The tool exchange is fed back to the model.
	second := llm.calls[1]
	toolMsg := second[len(second)-1]
	if toolMsg.Role != "tool" || toolMsg.ToolCallID != "call-1" {
		t.Fatalf("expected tool result message, got %+v", toolMsg)
	}
	var contacts []gohl.Contact
	if err := json.Unmarshal([]byte(toolMsg.Content), &contacts); err != nil || len(contacts) != 1 {
		t.Errorf("tool result should be the contact list, got %q", toolMsg.Content)
	}

	// Tool turns are not persisted; only user/assistant history is.
	sess, _ := store.Get(context.Background(), sessionID)
	for _, m := range sess.Messages {
		if m.Role == "tool" {
			t.Errorf("tool message leaked into session history")
		}
	}
}

func TestChat_ToolCallLimit(t *testing.T) {
	toolCall := ToolCall{ID: "call-x", Type: "function"}
	toolCall.Function.Name = "search_contacts"
	toolCall.Function.Arguments = `{"query":"loop"}`
	looping := ChatMessage{Role: "assistant", ToolCalls: []ToolCall{toolCall}}

	llm := &scriptedLLM{replies: []ChatMessage{looping, looping, looping, looping, looping}}
	svc, _ := newTestService(llm, &fakeCRM{})

	_, _, err := svc.Chat(context.Background(), "", "loop forever")
	if err == nil {
		t.Fatal("expected tool-call limit error")
	}
}

func TestChat_UnknownToolReportsErrorToModel(t *testing.T) {
	toolCall := ToolCall{ID: "call-2", Type: "function"}
	toolCall.Function.Name = "delete_everything"

	llm := &scriptedLLM{replies: []ChatMessage{
		{Role: "assistant", ToolCalls: []ToolCall{toolCall}},
		{Role: "assistant", Content: "sorry, I cannot do that"},
	}}
	svc, _ := newTestService(llm, &fakeCRM{})

	reply, _, err := svc.Chat(context.Background(), "", "wipe the crm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "sorry, I cannot do that" {
		t.Errorf("unexpected reply: %q", reply)
	}
	toolMsg := llm.calls[1][len(llm.calls[1])-1]
	var result map[string]string
	if err := json.Unmarshal([]byte(toolMsg.Content), &result); err != nil || result["error"] == "" {
		t.Errorf("expected error payload for unknown tool, got %q", toolMsg.Content)
	}
}
