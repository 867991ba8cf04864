package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"ContractTestGen/app/storage"
	"ContractTestGen/app/tools"
	"ContractTestGen/app/utils"
	"ContractTestGen/app/utils/restclient"
)

const (
	endpoint = "/v1/chat/completions"

	stepThink   = "think"
	stepProcess = "process"
)

var ErrEmptyResponse = errors.New("empty LLM response")

var _ Interface = &LLMClient{}

type ClientConfig struct {
	BaseURL string
	APIKey  string
	// MaxRetries is the number of attempts per request; values below 1 mean one attempt.
	MaxRetries int
	// MaxIterations bounds the tool-call rounds of Process.
	MaxIterations int
	Timeout       time.Duration
}

type LLMClient struct {
	restClient    *restclient.RestClient
	storage       storage.Interface
	maxRetries    int
	maxIterations int
}

func NewLLMClient(db storage.Interface, cfg ClientConfig) *LLMClient {
	headers := map[string]string{}
	if cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + cfg.APIKey
	}
	if db == nil {
		db = storage.NopStorage{}
	}
	return &LLMClient{
		restClient:    restclient.NewRestClient(cfg.BaseURL, headers, cfg.Timeout),
		storage:       db,
		maxRetries:    max(cfg.MaxRetries, 1),
		maxIterations: max(cfg.MaxIterations, 1),
	}
}

func (mc *LLMClient) Think(ctx context.Context, settings Settings, messages []Message, runID string) (string, error) {
	mc.saveHistory(ctx, runID, stepThink, lastContent(messages), "user", "", "")

	response, err := mc.generateResponse(ctx, settings, messages, nil)
	if err != nil {
		return "", err
	}

	content := response.Choices[0].Message.Content
	mc.saveHistory(ctx, runID, stepThink, content, "assistant", "", "")
	return content, nil
}

// Process runs the tool-call loop: every tool call the model returns is
// executed locally and answered, until the model replies without tool calls
// or maxIterations rounds have run.
func (mc *LLMClient) Process(ctx context.Context, settings Settings, messages []Message, toolkit map[string]tools.Tool,
	runID string) (string, error) {
	mc.saveHistory(ctx, runID, stepProcess, lastContent(messages), "user", "", "")

	response, err := mc.generateResponse(ctx, settings, messages, toolkit)
	if err != nil {
		return "", err
	}

	message := response.Choices[0].Message
	for i := 0; i < mc.maxIterations && len(message.ToolCalls) > 0; i++ {
		messages = append(messages, mc.handleToolCalls(ctx, toolkit, message, runID)...)
		if response, err = mc.generateResponse(ctx, settings, messages, toolkit); err != nil {
			return "", err
		}
		message = response.Choices[0].Message
	}
	if len(message.ToolCalls) > 0 {
		log.Printf("⚠️ Tool loop stopped after %d iterations with %d pending tool calls",
			mc.maxIterations, len(message.ToolCalls))
	}

	mc.saveHistory(ctx, runID, stepProcess, message.Content, "assistant", "", "")
	return message.Content, nil
}

func (mc *LLMClient) handleToolCalls(ctx context.Context, toolkit map[string]tools.Tool, assistant Message,
	runID string) (messages []Message) {
	messages = append(messages, Message{Role: "assistant", Content: assistant.Content, ToolCalls: assistant.ToolCalls})

	for i, call := range assistant.ToolCalls {
		log.Printf("▶️ Executing tool call %d: %s", i, call.Function.Name)
		result := mc.runTool(toolkit, call)

		mc.saveHistory(ctx, runID, stepProcess, result, "tool", call.Function.Name, call.Function.Arguments)
		messages = append(messages, Message{
			Role:       "tool",
			Content:    result,
			ToolCallID: call.ID,
		})
	}

	return messages
}

// runTool always yields a result message; failures are reported back to the
// model so it can correct itself.
func (mc *LLMClient) runTool(toolkit map[string]tools.Tool, call toolCall) string {
	tool, exists := toolkit[call.Function.Name]
	if !exists || tool.HandlerFunc == nil {
		log.Printf("⚠️ Tool not found or missing handler: %s", call.Function.Name)
		return fmt.Sprintf("error: tool %q is not available", call.Function.Name)
	}

	task := tools.ToolTask{Key: call.Function.Name}
	params, err := utils.ParseArguments(call.Function.Arguments)
	if err != nil {
		log.Printf("⚠️ Tool %s received invalid arguments: %v", tool.Name, err)
		return "error: " + err.Error()
	}
	task.Parameters = params

	result, err := tool.HandlerFunc(task)
	if err != nil {
		log.Printf("⚠️ Tool %s execution failed: %v", tool.Name, err)
		return "error: " + err.Error()
	}
	return result
}

func (mc *LLMClient) saveHistory(ctx context.Context, runID, step, content, role, tool, params string) {
	if err := mc.storage.SaveHistory(ctx, storage.Record{
		RunID:      runID,
		Step:       step,
		Role:       role,
		Tool:       tool,
		Parameters: params,
		Content:    content,
		CreatedAt:  time.Now(),
	}); err != nil {
		log.Printf("⚠️ Error saving history for run %s: %v", runID, err)
	}
}

func (mc *LLMClient) generateResponse(ctx context.Context, settings Settings, messages []Message,
	toolkit map[string]tools.Tool) (*ResponseLLM, error) {
	payload := requestPayload{
		Model:       settings.Name,
		Tools:       functionsToPayload(toolkit),
		Messages:    messages,
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	}

	return mc.sendRequestAndParse(ctx, payload)
}

func functionsToPayload(functions map[string]tools.Tool) (payload []functionPayload) {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		payload = append(payload, functionPayload{Type: "function", Function: functions[name]})
	}
	return payload
}

func (mc *LLMClient) sendRequestAndParse(ctx context.Context, payload requestPayload) (*ResponseLLM, error) {
	var err error

	for i := 0; i < mc.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				log.Println("🚨 Request canceled before execution")
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		var response []byte
		var status int
		response, status, err = mc.restClient.Post(ctx, endpoint, payload, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("⚠️ Attempt %d failed: HTTP %d | Error: %v", i+1, status, err)
			continue
		}

		var generated ResponseLLM
		if err = json.Unmarshal(response, &generated); err != nil {
			err = fmt.Errorf("parse LLM response: %w", err)
			log.Printf("⚠️ %v", err)
			continue
		}
		if len(generated.Choices) == 0 {
			err = ErrEmptyResponse
			log.Printf("⚠️ Attempt %d returned no choices", i+1)
			continue
		}

		return &generated, nil
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", mc.maxRetries, err)
}

func lastContent(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1].Content
}
