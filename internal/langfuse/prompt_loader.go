package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PromptConfig describes where to fetch a managed prompt from and where to
// cache it locally for offline startup.
type PromptConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	Name      string // Langfuse prompt name; empty means local file only
	Label     string // Optional label, e.g. "production"
	CachePath string // Local fallback/cache file path
}

var errPromptDisabled = errors.New("langfuse prompt management disabled")

// FetchPrompt loads a prompt from Langfuse prompt management, caching it
// locally on success. When Langfuse is unreachable or unconfigured it falls
// back to the cached copy.
func FetchPrompt(ctx context.Context, cfg PromptConfig) (string, error) {
	if cfg.Name == "" {
		return readCachedPrompt(cfg.CachePath)
	}

	prompt, err := fetchRemotePrompt(ctx, cfg)
	if err != nil {
		if !errors.Is(err, errPromptDisabled) {
			log.Printf("[langfuse] prompt fetch failed, using local copy: %v", err)
		}
		return readCachedPrompt(cfg.CachePath)
	}

	if cfg.CachePath != "" {
		if err := cachePrompt(cfg.CachePath, prompt); err != nil {
			log.Printf("[langfuse] failed to cache prompt locally: %v", err)
		}
	}
	return prompt, nil
}

func fetchRemotePrompt(ctx context.Context, cfg PromptConfig) (string, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return "", errPromptDisabled
	}

	endpoint, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	endpoint.Path = strings.TrimSuffix(endpoint.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.Name)
	if cfg.Label != "" {
		q := endpoint.Query()
		q.Set("label", cfg.Label)
		endpoint.RawQuery = q.Encode()
	}

	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	httpClient := &http.Client{Timeout: 10 * time.Second}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call Langfuse prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("Langfuse prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		Type   string          `json:"type"`
		Prompt json.RawMessage `json:"prompt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode Langfuse prompt response: %w", err)
	}

	switch payload.Type {
	case "", "text":
		var text string
		if err := json.Unmarshal(payload.Prompt, &text); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return text, nil
	case "chat":
		var messages []chatPromptMessage
		if err := json.Unmarshal(payload.Prompt, &messages); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		return flattenChatMessages(messages), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", payload.Type)
	}
}

type chatPromptMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

// flattenChatMessages renders a chat-style prompt into a single system prompt
// string, keeping placeholder messages as {{name}} template slots.
func flattenChatMessages(messages []chatPromptMessage) string {
	var b strings.Builder
	for _, msg := range messages {
		content := msg.Content
		if msg.Type == "placeholder" {
			if msg.Name == "" {
				continue
			}
			content = "{{" + msg.Name + "}}"
		}
		if content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		role := msg.Role
		if role == "" {
			role = "message"
		}
		b.WriteString(strings.ToUpper(role))
		b.WriteString(": ")
		b.WriteString(content)
	}
	return b.String()
}

func readCachedPrompt(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no local prompt file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read local prompt file: %w", err)
	}
	return string(data), nil
}

func cachePrompt(path, prompt string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(prompt), 0o600)
}
