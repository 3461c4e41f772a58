package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/pkg/config"
)

// Client wraps one OpenAI-compatible chat completion endpoint. The service
// runs two of these: a generator (question authoring) and a grader
// (verdicts, hints, follow-ups), each with its own provider config.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// New creates a model client from provider configuration.
func New(cfg config.ProviderConfig) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// GeneratedSet is the full question-authoring result.
type GeneratedSet struct {
	Objective string                   `json:"objective"`
	Language  string                   `json:"language"`
	Questions []models.QuestionPayload `json:"questions"`
}

// Verdict is the grader's judgment on a submission. Approved is 1 or 0 to
// match the client contract.
type Verdict struct {
	Approved int    `json:"Approved"`
	Reason   string `json:"Reason"`
}

// HintSet carries three progressively specific hints.
type HintSet struct {
	Hint1 string `json:"hint_1"`
	Hint2 string `json:"hint_2"`
	Hint3 string `json:"hint_3"`
}

// GenerateQuestions asks the model for a structured question set covering
// the objectives.
func (c *Client) GenerateQuestions(ctx context.Context, objectives []string, count int, language string) (*GeneratedSet, error) {
	prompt := buildGenerationPrompt(objectives, count, language)

	raw, err := c.complete(ctx, prompt, 0.7)
	if err != nil {
		return nil, err
	}

	var set GeneratedSet
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(set.Questions) == 0 {
		return nil, fmt.Errorf("%w: empty question list", ErrMalformedResponse)
	}
	return &set, nil
}

// GenerateFollowup produces a follow-up question building on the student's
// submitted code.
func (c *Client) GenerateFollowup(ctx context.Context, parent *models.QuestionPayload, code string) (*models.QuestionPayload, error) {
	prompt := buildFollowupPrompt(parent, code)

	raw, err := c.complete(ctx, prompt, 0.1)
	if err != nil {
		return nil, err
	}

	var followup models.QuestionPayload
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &followup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &followup, nil
}

// CheckCode judges a submission against the question and its output.
func (c *Client) CheckCode(ctx context.Context, question, code, output string) (*Verdict, error) {
	prompt := buildCheckPrompt(question, code, output)

	raw, err := c.complete(ctx, prompt, 0.1)
	if err != nil {
		return nil, err
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &verdict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &verdict, nil
}

// Hints mentors a stuck student with three progressive hints.
func (c *Client) Hints(ctx context.Context, question, code string) (*HintSet, error) {
	prompt := buildHintPrompt(question, code)

	raw, err := c.complete(ctx, prompt, 0.7)
	if err != nil {
		return nil, err
	}

	var hints HintSet
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &hints); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &hints, nil
}

func (c *Client) complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", classifyCallError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyCallError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return fmt.Errorf("model call: %w", err)
}

var fenceRe = regexp.MustCompile("^```(?:json)?\\s*")

// cleanJSON strips markdown code fences some models wrap around their
// output even in JSON mode.
func cleanJSON(raw string) string {
	cleaned := fenceRe.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
}
