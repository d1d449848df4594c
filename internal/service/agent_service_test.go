package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"talent-scout/internal/apperr"
	"talent-scout/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedChat replays a fixed sequence of assistant messages.
type scriptedChat struct {
	script []ChatMessage
	calls  int
	err    error
}

func (c *scriptedChat) ChatWithFunctions(_ context.Context, _ []ChatMessage, _ []FunctionSpec) (*ChatMessage, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.calls >= len(c.script) {
		// Keep requesting the tool forever; exercises the loop bound.
		return &ChatMessage{
			Role: "assistant",
			FunctionCall: &FunctionCall{
				Name:      retrieveFunctionName,
				Arguments: json.RawMessage(`{"query":"again"}`),
			},
		}, nil
	}
	msg := c.script[c.calls]
	c.calls++
	return &msg, nil
}

type fakeRetriever struct {
	observation string
	ids         []string
	err         error
	queries     []string
}

func (r *fakeRetriever) Retrieve(_ context.Context, query string) (string, []string, error) {
	r.queries = append(r.queries, query)
	if r.err != nil {
		return "", nil, r.err
	}
	return r.observation, r.ids, nil
}

type memAudit struct {
	records []*models.AuditRecord
	err     error
}

func (a *memAudit) Append(_ context.Context, rec *models.AuditRecord) error {
	if a.err != nil {
		return a.err
	}
	a.records = append(a.records, rec)
	return nil
}

func toolCallMsg(query string) ChatMessage {
	return ChatMessage{
		Role: "assistant",
		FunctionCall: &FunctionCall{
			Name:      retrieveFunctionName,
			Arguments: json.RawMessage(fmt.Sprintf(`{"query":%q}`, query)),
		},
	}
}

func finalMsg(answer string, files ...string) ChatMessage {
	body, _ := json.Marshal(models.AgentAnswer{Answer: answer, Files: files})
	return ChatMessage{Role: "assistant", Content: string(body)}
}

func newTestAgent(chat FunctionCaller, tool ResumeRetriever, audit AuditStore) *AgentService {
	resolver := NewProvenanceResolver("http://localhost:8080")
	return NewAgentService(chat, tool, audit, resolver, 8, zap.NewNop())
}

func TestAsk_ToolCallThenAnswer(t *testing.T) {
	chat := &scriptedChat{script: []ChatMessage{
		toolCallMsg("golang developer"),
		finalMsg("johnsmith is the strongest match.", "johnsmith"),
	}}
	tool := &fakeRetriever{
		observation: "Document 1:\nSource: johnsmith\nContent: Go developer\n",
		ids:         []string{"johnsmith"},
	}
	audit := &memAudit{}

	resp, err := newTestAgent(chat, tool, audit).Ask(context.Background(), "alice", "who knows Go?")
	require.NoError(t, err)

	assert.Equal(t, "johnsmith is the strongest match.", resp.Answer)
	assert.Equal(t, []string{"johnsmith"}, resp.Files)
	require.Len(t, resp.FileURLs, 1)
	assert.Equal(t, "http://localhost:8080/api/v1/resumes/johnsmith/download", resp.FileURLs[0])

	assert.Equal(t, []string{"golang developer"}, tool.queries)
}

func TestAsk_CitationsBoundedToRetrieved(t *testing.T) {
	chat := &scriptedChat{script: []ChatMessage{
		toolCallMsg("python"),
		finalMsg("ranked answer", "janedoe", "inventedid", "janedoe"),
	}}
	tool := &fakeRetriever{
		observation: "Document 1:\nSource: janedoe\nContent: Python\n",
		ids:         []string{"janedoe"},
	}

	resp, err := newTestAgent(chat, tool, &memAudit{}).Ask(context.Background(), "alice", "python devs?")
	require.NoError(t, err)

	// The invented identifier is dropped and the duplicate collapsed.
	assert.Equal(t, []string{"janedoe"}, resp.Files)
	assert.Len(t, resp.FileURLs, 1)
}

func TestAsk_NoToolCallsNeeded(t *testing.T) {
	chat := &scriptedChat{script: []ChatMessage{
		finalMsg("No matching candidates were found."),
	}}
	tool := &fakeRetriever{}

	resp, err := newTestAgent(chat, tool, &memAudit{}).Ask(context.Background(), "alice", "cobol experts?")
	require.NoError(t, err)

	assert.Equal(t, "No matching candidates were found.", resp.Answer)
	assert.Empty(t, resp.Files)
	assert.Empty(t, resp.FileURLs)
	assert.Empty(t, tool.queries)
}

func TestAsk_ToolCallBudgetExceeded(t *testing.T) {
	// Empty script: the scripted chat keeps asking for the tool.
	chat := &scriptedChat{}
	tool := &fakeRetriever{observation: "No matching resumes found."}

	_, err := newTestAgent(chat, tool, &memAudit{}).Ask(context.Background(), "alice", "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrAnswerSynthesisFailed)
	assert.LessOrEqual(t, len(tool.queries), 8)
}

func TestAsk_UnknownFunctionFails(t *testing.T) {
	chat := &scriptedChat{script: []ChatMessage{
		{
			Role: "assistant",
			FunctionCall: &FunctionCall{
				Name:      "delete_everything",
				Arguments: json.RawMessage(`{}`),
			},
		},
	}}

	_, err := newTestAgent(chat, &fakeRetriever{}, &memAudit{}).Ask(context.Background(), "alice", "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrAnswerSynthesisFailed)
}

func TestAsk_MalformedFinalAnswerFails(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "here is my answer without structure"},
		{"unknown field", `{"answer":"x","files":[],"confidence":0.9}`},
		{"empty answer", `{"answer":"","files":[]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chat := &scriptedChat{script: []ChatMessage{
				{Role: "assistant", Content: tc.content},
			}}
			_, err := newTestAgent(chat, &fakeRetriever{}, &memAudit{}).Ask(context.Background(), "alice", "q")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrAnswerSynthesisFailed)
		})
	}
}

func TestAsk_ChatFailureAbortsQuery(t *testing.T) {
	chat := &scriptedChat{err: errors.New("upstream unavailable")}

	_, err := newTestAgent(chat, &fakeRetriever{}, &memAudit{}).Ask(context.Background(), "alice", "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrAnswerSynthesisFailed)
}

func TestAsk_RetrievalFailureAbortsQuery(t *testing.T) {
	chat := &scriptedChat{script: []ChatMessage{
		toolCallMsg("java"),
		finalMsg("never reached"),
	}}
	tool := &fakeRetriever{err: errors.New("index unavailable")}

	_, err := newTestAgent(chat, tool, &memAudit{}).Ask(context.Background(), "alice", "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrAnswerSynthesisFailed)
}

func TestAsk_AuditRecordWritten(t *testing.T) {
	chat := &scriptedChat{script: []ChatMessage{
		toolCallMsg("devops"),
		finalMsg("ranked", "opsguru"),
	}}
	tool := &fakeRetriever{ids: []string{"opsguru"}, observation: "Document 1:\nSource: opsguru\nContent: k8s\n"}
	audit := &memAudit{}

	start := time.Now().UTC()
	_, err := newTestAgent(chat, tool, audit).Ask(context.Background(), "bob", "devops candidates?")
	require.NoError(t, err)
	end := time.Now().UTC()

	require.Len(t, audit.records, 1)
	rec := audit.records[0]
	assert.Equal(t, "bob", rec.Caller)
	assert.Equal(t, "devops candidates?", rec.Query)
	assert.Equal(t, "ranked", rec.Response.Answer)
	assert.Equal(t, []string{"opsguru"}, rec.Response.Files)
	assert.NotZero(t, rec.RequestID)
	assert.False(t, rec.Timestamp.Before(start))
	assert.False(t, rec.Timestamp.After(end))
}

func TestAsk_AuditFailureDoesNotRejectAnswer(t *testing.T) {
	chat := &scriptedChat{script: []ChatMessage{
		finalMsg("answer survives"),
	}}
	audit := &memAudit{err: errors.New("disk full")}

	resp, err := newTestAgent(chat, &fakeRetriever{}, audit).Ask(context.Background(), "alice", "q")
	require.NoError(t, err)
	assert.Equal(t, "answer survives", resp.Answer)
}

func TestParseRetrieveArguments(t *testing.T) {
	query, err := parseRetrieveArguments(json.RawMessage(`{"query":"golang"}`))
	require.NoError(t, err)
	assert.Equal(t, "golang", query)

	// String-encoded variant some completions return.
	query, err = parseRetrieveArguments(json.RawMessage(`"{\"query\":\"rust\"}"`))
	require.NoError(t, err)
	assert.Equal(t, "rust", query)

	_, err = parseRetrieveArguments(json.RawMessage(`{}`))
	assert.Error(t, err)

	_, err = parseRetrieveArguments(json.RawMessage(`not json`))
	assert.Error(t, err)
}

func TestDecodeAgentAnswer_SurroundingText(t *testing.T) {
	answer, err := decodeAgentAnswer("Here you go:\n{\"answer\":\"ranked\",\"files\":[]}\nDone.")
	require.NoError(t, err)
	assert.Equal(t, "ranked", answer.Answer)
}
