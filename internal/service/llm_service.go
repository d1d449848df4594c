package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"talent-scout/internal/apperr"
	"talent-scout/internal/models"
	"talent-scout/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LLMService wraps the GigaChat API: structured resume extraction through
// the gigago client, plus embeddings, vision and function-calling chat
// through direct REST calls the client library does not cover.
type LLMService struct {
	client         *gigago.Client
	model          *gigago.GenerativeModel
	config         *config.GigaChatConfig
	logger         *zap.Logger
	httpClient     *http.Client
	baseURL        string
	accessToken    string
	embeddingModel string
}

// buildExtractionInstruction is the fixed system instruction for turning
// recognized fragments into a structured resume record.
func buildExtractionInstruction() string {
	return `You are a resume information extraction specialist. You receive an ordered list of text fragments produced by optical recognition of a candidate document.

Recognition output is noisy. Expect and correct:
- words concatenated without spaces (e.g. "scalableAWSinfrastructure")
- missing spaces between words, sentences or sections
- words cut off or split incorrectly
- inconsistent formatting, garbled or incomplete passages

Extraction rules:
1. Read all fragments first to understand the document structure.
2. Use context clues to separate concatenated words and fix spacing.
3. Extract information even when imperfect; interpret the likely meaning.
4. For work experience, identify job titles, companies, dates and responsibilities; keep each position as one free-text line.
5. For education, capture degrees and institutions as free-text lines.
6. Collect technical skills, tools and technologies that are mentioned.
7. If a field is unclear or missing, set it to null (scalar fields) or an empty list. Never invent values.
8. Return ONLY a valid JSON object matching the requested schema. No markdown, no commentary before or after the JSON.`
}

func NewLLMService(cfg *config.GigaChatConfig, embeddingModel string, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildExtractionInstruction()
	model.Temperature = 0.1

	httpClient := &http.Client{}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	// Direct REST calls (vision, embeddings, function calling) need their
	// own access token.
	accessToken, err := getAccessToken(ctx, cfg, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	return &LLMService{
		client:         client,
		model:          model,
		config:         cfg,
		logger:         logger,
		httpClient:     httpClient,
		accessToken:    accessToken,
		baseURL:        "https://gigachat.devices.sberbank.ru/api/v1",
		embeddingModel: embeddingModel,
	}, nil
}

// getAccessToken obtains an access token from the GigaChat OAuth endpoint.
// The API key is expected to be Base64-encoded already.
func getAccessToken(ctx context.Context, cfg *config.GigaChatConfig, httpClient *http.Client, logger *zap.Logger) (string, error) {
	oauthURL := "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"

	formData := url.Values{}
	formData.Set("scope", cfg.Scope)

	req, err := http.NewRequestWithContext(ctx, "POST", oauthURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}

	rqUID := uuid.New().String()
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", rqUID)
	req.Header.Set("Authorization", "Basic "+cfg.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("rq_uid", rqUID),
		)
		return "", fmt.Errorf("OAuth failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}
	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in OAuth response")
	}

	return oauthResp.AccessToken, nil
}

// resumeSchemaHint is included verbatim in the extraction prompt so the
// model's output parses directly against models.Resume.
const resumeSchemaHint = `{
  "full_name": string or null,
  "current_position": string or null,
  "email": string or null,
  "phone": string or null,
  "linkedin": string or null,
  "github": string or null,
  "address": string or null,
  "professional_summary": string or null,
  "work_experience": [string],
  "education": [string],
  "technical_skills": [string],
  "soft_skills": [string],
  "certifications": [string],
  "projects": [string],
  "languages": [string],
  "achievements": [string]
}`

// ExtractResume turns recognized fragments into a structured resume. A
// response that does not satisfy the schema fails with
// apperr.ErrExtractionSchemaViolation; no retry is performed here.
func (s *LLMService) ExtractResume(ctx context.Context, fragments []string) (*models.Resume, error) {
	ocrData, err := json.Marshal(fragments)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(`Extract structured information from the following recognized resume fragments.

Recognized fragments (ordered):
%s

Return ONLY a JSON object with this exact shape:
%s

Fields that are absent from the document must be null (scalars) or empty lists. Do not add fields.`, string(ocrData), resumeSchemaHint)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from LLM", apperr.ErrExtractionSchemaViolation)
	}

	resume, err := decodeResumeJSON(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Resume extraction completed",
		zap.Bool("has_name", resume.FullName != nil),
		zap.Int("skills", len(resume.TechnicalSkills)),
	)

	return resume, nil
}

// decodeResumeJSON validates model output strictly against the resume
// schema. Markdown fences are tolerated; unknown fields are not.
func decodeResumeJSON(content string) (*models.Resume, error) {
	content = strings.TrimSpace(content)

	jsonStart := strings.Index(content, "{")
	jsonEnd := strings.LastIndex(content, "}")
	if jsonStart == -1 || jsonEnd == -1 || jsonEnd < jsonStart {
		return nil, fmt.Errorf("%w: no JSON object in response", apperr.ErrExtractionSchemaViolation)
	}

	dec := json.NewDecoder(strings.NewReader(content[jsonStart : jsonEnd+1]))
	dec.DisallowUnknownFields()

	var resume models.Resume
	if err := dec.Decode(&resume); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrExtractionSchemaViolation, err)
	}

	return &resume, nil
}

// EmbedTexts embeds texts with the configured embedding model, one vector
// per input, in input order.
func (s *LLMService) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	requestBody := map[string]interface{}{
		"model": s.embeddingModel,
		"input": texts,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embeddings request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/embeddings", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call embeddings API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("embeddings API failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var embResp struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&embResp); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings response: %w", err)
	}
	if len(embResp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d inputs", len(embResp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range embResp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}

	return vectors, nil
}

// ChatMessage is one turn of a function-calling conversation.
type ChatMessage struct {
	Role         string        `json:"role"`
	Content      string        `json:"content"`
	Name         string        `json:"name,omitempty"`
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
}

// FunctionCall is a function invocation requested by the model. Arguments
// is the raw JSON object as returned by the API.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// FunctionSpec describes a callable function offered to the model.
type FunctionSpec struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Parameters  interface{} `json:"parameters,omitempty"`
}

// ChatWithFunctions sends one chat completion request with the given
// function specs and returns the assistant's message, which either carries
// a function call or the final content.
func (s *LLMService) ChatWithFunctions(ctx context.Context, messages []ChatMessage, functions []FunctionSpec) (*ChatMessage, error) {
	requestBody := map[string]interface{}{
		"model":       "GigaChat",
		"messages":    messages,
		"temperature": 0.3,
		"stream":      false,
	}
	if len(functions) > 0 {
		requestBody["functions"] = functions
		requestBody["function_call"] = "auto"
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chat API failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp struct {
		Choices []struct {
			Message      ChatMessage `json:"message"`
			FinishReason string      `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from chat API")
	}

	msg := chatResp.Choices[0].Message
	return &msg, nil
}

// UploadFile uploads a file to GigaChat for vision processing and returns
// its file ID.
func (s *LLMService) UploadFile(ctx context.Context, fileReader io.Reader, fileName string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// "general" purpose makes the file usable in generation requests.
	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		switch ext {
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".png":
			mimeType = "image/png"
		default:
			mimeType = "application/octet-stream"
		}
	}

	part, err := writer.CreatePart(map[string][]string{
		"Content-Type":        {mimeType},
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, fileReader); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var uploadResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	return uploadResp.ID, nil
}

// ExtractTextFromImage runs the vision endpoint over an uploaded image and
// returns the recognized text.
func (s *LLMService) ExtractTextFromImage(ctx context.Context, imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileID, err := s.UploadFile(ctx, file, filepath.Base(imagePath))
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	prompt := `Extract all text from this scanned resume document.
Return only the text visible in the image, one logical line per output line, without any commentary.
If the text is unreadable, return an empty string.`

	requestBody := map[string]interface{}{
		"model": "GigaChat",
		"messages": []map[string]interface{}{
			{
				"role":        "user",
				"content":     prompt,
				"attachments": []string{fileID},
			},
		},
		"temperature": 0.1,
		"stream":      false,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vision API failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var visionResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(visionResp.Choices) == 0 {
		return "", fmt.Errorf("no response from vision API")
	}

	text := strings.TrimSpace(visionResp.Choices[0].Message.Content)

	s.logger.Info("Text extracted via GigaChat vision",
		zap.String("file_id", fileID),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
