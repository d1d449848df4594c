package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"talent-scout/internal/apperr"
	"talent-scout/internal/dto"
	"talent-scout/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FunctionCaller is the chat capability the agent reasons with.
type FunctionCaller interface {
	ChatWithFunctions(ctx context.Context, messages []ChatMessage, functions []FunctionSpec) (*ChatMessage, error)
}

// ResumeRetriever executes one retrieval call and reports which record
// identifiers it surfaced.
type ResumeRetriever interface {
	Retrieve(ctx context.Context, query string) (string, []string, error)
}

// AuditStore appends immutable query/answer records.
type AuditStore interface {
	Append(ctx context.Context, rec *models.AuditRecord) error
}

const retrieveFunctionName = "retrieve_resumes"

const agentSystemInstruction = `You are a hiring assistant that answers questions about a pool of candidate resumes.

You have one function: retrieve_resumes(query). It searches the resume index and returns numbered documents, each with a Source identifier and a content excerpt.

Work like this:
1. Read the hiring question and identify the required skills, role titles and experience signals.
2. Call retrieve_resumes several times with varied targeted queries: by technology, by role title, by skill combination. One broad query is rarely enough.
3. Compare the retrieved candidates. Rank them, explaining why each ranked candidate fits better or worse than the others: name the specific matching skills and the notable missing ones.
4. When done, respond with ONLY a JSON object, no markdown and no extra text:
{"answer": "<ranked, justified answer>", "files": ["<Source values of the documents you actually used>"]}

Only cite Source values that appeared in retrieval results. If nothing relevant was found, say so in the answer and return an empty files list.`

// AgentService runs the tool-using ranking loop for one hiring query,
// audits the outcome and resolves provenance references. The loop is
// bounded: exceeding maxToolCalls fails the query rather than spinning.
type AgentService struct {
	chat         FunctionCaller
	tool         ResumeRetriever
	audit        AuditStore
	resolver     *ProvenanceResolver
	maxToolCalls int
	logger       *zap.Logger
}

func NewAgentService(
	chat FunctionCaller,
	tool ResumeRetriever,
	audit AuditStore,
	resolver *ProvenanceResolver,
	maxToolCalls int,
	logger *zap.Logger,
) *AgentService {
	return &AgentService{
		chat:         chat,
		tool:         tool,
		audit:        audit,
		resolver:     resolver,
		maxToolCalls: maxToolCalls,
		logger:       logger,
	}
}

// Ask answers a free-text hiring query. There is no partial answer: any
// failure inside the loop aborts the whole query. A successful answer is
// audited exactly once before it is returned; an audit write failure is
// reported as telemetry, never to the caller.
func (s *AgentService) Ask(ctx context.Context, caller, query string) (*dto.AskResponse, error) {
	functions := []FunctionSpec{
		{
			Name:        retrieveFunctionName,
			Description: "Search and return information about people resumes with source information.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "Query to search for in resumes",
					},
				},
				"required": []string{"query"},
			},
		},
	}

	messages := []ChatMessage{
		{Role: "system", Content: agentSystemInstruction},
		{Role: "user", Content: query},
	}

	// Record identifiers surfaced by retrieval this query, in first-seen
	// order. The final citation list is bounded by this set.
	var retrievedOrder []string
	retrieved := make(map[string]struct{})

	var answer *models.AgentAnswer
	toolCalls := 0

	for {
		msg, err := s.chat.ChatWithFunctions(ctx, messages, functions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrAnswerSynthesisFailed, err)
		}

		if msg.FunctionCall == nil {
			answer, err = decodeAgentAnswer(msg.Content)
			if err != nil {
				return nil, err
			}
			break
		}

		toolCalls++
		if toolCalls > s.maxToolCalls {
			return nil, fmt.Errorf("%w: tool call budget of %d exceeded", apperr.ErrAnswerSynthesisFailed, s.maxToolCalls)
		}
		if msg.FunctionCall.Name != retrieveFunctionName {
			return nil, fmt.Errorf("%w: model called unknown function %q", apperr.ErrAnswerSynthesisFailed, msg.FunctionCall.Name)
		}

		toolQuery, err := parseRetrieveArguments(msg.FunctionCall.Arguments)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrAnswerSynthesisFailed, err)
		}

		observation, ids, err := s.tool.Retrieve(ctx, toolQuery)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrAnswerSynthesisFailed, err)
		}
		for _, id := range ids {
			if _, ok := retrieved[id]; !ok {
				retrieved[id] = struct{}{}
				retrievedOrder = append(retrievedOrder, id)
			}
		}

		messages = append(messages, *msg, ChatMessage{
			Role:    "function",
			Name:    retrieveFunctionName,
			Content: observation,
		})
	}

	answer.Files = boundCitations(answer.Files, retrieved)

	s.logger.Info("Agent answer produced",
		zap.String("caller", caller),
		zap.Int("tool_calls", toolCalls),
		zap.Int("cited", len(answer.Files)),
	)

	auditRec := &models.AuditRecord{
		RequestID: uuid.New(),
		Timestamp: time.Now().UTC(),
		Caller:    caller,
		Query:     query,
		Response:  *answer,
	}
	if err := s.audit.Append(ctx, auditRec); err != nil {
		// The answer is already produced; losing it over a logging failure
		// would violate the audit contract the other way around.
		s.logger.Warn("Audit append failed",
			zap.String("request_id", auditRec.RequestID.String()),
			zap.NamedError("cause", fmt.Errorf("%w: %v", apperr.ErrAuditWriteFailed, err)),
		)
	}

	return &dto.AskResponse{
		Answer:   answer.Answer,
		Files:    answer.Files,
		FileURLs: s.resolver.Resolve(answer.Files),
	}, nil
}

// parseRetrieveArguments accepts both an arguments object and the
// string-encoded variant some completions return.
func parseRetrieveArguments(raw json.RawMessage) (string, error) {
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		var encoded string
		if err2 := json.Unmarshal(raw, &encoded); err2 != nil {
			return "", fmt.Errorf("failed to parse retrieve_resumes arguments: %v", err)
		}
		if err2 := json.Unmarshal([]byte(encoded), &args); err2 != nil {
			return "", fmt.Errorf("failed to parse retrieve_resumes arguments: %v", err2)
		}
	}
	if args.Query == "" {
		return "", fmt.Errorf("retrieve_resumes called without a query")
	}
	return args.Query, nil
}

// decodeAgentAnswer validates the terminal message strictly against the
// answer schema.
func decodeAgentAnswer(content string) (*models.AgentAnswer, error) {
	content = strings.TrimSpace(content)

	jsonStart := strings.Index(content, "{")
	jsonEnd := strings.LastIndex(content, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("%w: terminal message is not a JSON object", apperr.ErrAnswerSynthesisFailed)
	}

	dec := json.NewDecoder(strings.NewReader(content[jsonStart : jsonEnd+1]))
	dec.DisallowUnknownFields()

	var answer models.AgentAnswer
	if err := dec.Decode(&answer); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrAnswerSynthesisFailed, err)
	}
	if answer.Answer == "" {
		return nil, fmt.Errorf("%w: empty answer text", apperr.ErrAnswerSynthesisFailed)
	}

	return &answer, nil
}

// boundCitations de-duplicates the cited files and drops anything that
// was not surfaced by a retrieval call during this query.
func boundCitations(files []string, retrieved map[string]struct{}) []string {
	bounded := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if _, ok := retrieved[f]; !ok {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		bounded = append(bounded, f)
	}
	return bounded
}
