package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// screeningInstructions ist der System-Prompt für das Abstract-Screening.
const screeningInstructions = "There are 2 ways of analysing policy implementation performance. Some papers analyse which factors caused the policy implementation performance (these are type A papers), and other papers analyse which effects a specific factor had in policy implementation performance (these are type B papers). We only want to analyse type A papers. Please exclude papers that focus solely on the effect of one particular variable on the outcome. You are receiving a list containing a paper's id, title and abstract. Output if the paper should be analysed or not (should_be_analysed), your confidence level between 0 and 1 in making this choice (confidence_level), and a very brief summary of why you made this choice (summary)."

// codingInstructions ist der System-Prompt für die Policy-Kodierung.
const codingInstructions = "You are a policy analyst. You are analysing a policy text and will categorise the policies according to the received output_type. Classify the policy text and return the output in the specified format."

// Client ist ein dünner Wrapper um die OpenAI Chat API für strukturierte
// Ausgaben. Schema-Verstöße und API-Fehler werden bis zu maxRetries mal
// wiederholt, bevor der Fehler nach oben durchgereicht wird.
type Client struct {
	api        *openai.Client
	model      string
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewClient erstellt einen neuen LLM-Client.
func NewClient(apiKey, model string, maxRetries int, logger *zap.Logger) *Client {
	return &Client{
		api:        openai.NewClient(apiKey),
		model:      model,
		maxRetries: maxRetries,
		retryDelay: time.Second,
		logger:     logger,
	}
}

// ScreenPaper entscheidet anhand von Titel und Abstract, ob ein Paper in das
// Review aufgenommen werden soll.
func (c *Client) ScreenPaper(ctx context.Context, paper PaperPayload) (*ScreeningResult, error) {
	payload, err := json.Marshal(paper)
	if err != nil {
		return nil, fmt.Errorf("Paper-Payload konnte nicht serialisiert werden: %w", err)
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: screeningInstructions},
		{Role: openai.ChatMessageRoleSystem, Content: "Paper details: " + string(payload)},
		{Role: openai.ChatMessageRoleUser, Content: "Retrieve the structured output"},
	}

	var result ScreeningResult
	if err := c.complete(ctx, "screening_result", screeningSchema(), messages, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CodeDocument kodiert den Volltext eines Policy-Dokuments nach dem Codebuch.
func (c *Client) CodeDocument(ctx context.Context, text string) (*PolicyAnalysis, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: codingInstructions},
		{Role: openai.ChatMessageRoleUser, Content: text},
	}

	var result PolicyAnalysis
	if err := c.complete(ctx, "policy_analysis", policySchema(), messages, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// complete führt die Chat-Completion mit JSON-Schema-Antwortformat aus und
// parst die Antwort in out. Jeder Fehlversuch wird geloggt.
func (c *Client) complete(ctx context.Context, schemaName string, schema json.Marshaler, messages []openai.ChatCompletionMessage, out interface{}) error {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
			},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err != nil {
			lastErr = err
			c.logger.Warn("Chat-Completion fehlgeschlagen",
				zap.String("schema", schemaName),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		if len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("Antwort enthält keine Choices")
			c.logger.Warn("Leere Antwort erhalten",
				zap.String("schema", schemaName),
				zap.Int("attempt", attempt))
			continue
		}

		content := resp.Choices[0].Message.Content
		if err := json.Unmarshal([]byte(content), out); err != nil {
			lastErr = fmt.Errorf("Antwort entspricht nicht dem Schema: %w", err)
			c.logger.Warn("Antwort konnte nicht geparst werden",
				zap.String("schema", schemaName),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}
		return nil
	}

	return fmt.Errorf("Klassifikation nach %d Versuchen fehlgeschlagen: %w", c.maxRetries, lastErr)
}
