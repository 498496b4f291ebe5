package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSONObject pulls a JSON object out of raw model output, tolerating
// markdown code fences and surrounding commentary.
func ExtractJSONObject(raw string) (string, error) {
	payload := strings.TrimSpace(raw)
	if payload == "" {
		return "", errors.New("empty llm response")
	}

	if fenced, ok := stripFence(payload); ok {
		payload = fenced
	}

	if json.Valid([]byte(payload)) {
		return payload, nil
	}

	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end == -1 || end <= start {
		return "", errors.New("no json object found in llm response")
	}
	candidate := payload[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", errors.New("llm response contains malformed json")
	}
	return candidate, nil
}

// DecodeJSON extracts and unmarshals a JSON object from raw model output.
func DecodeJSON(raw string, out any) error {
	payload, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(payload), out)
}

func stripFence(payload string) (string, bool) {
	if !strings.HasPrefix(payload, "```") {
		return "", false
	}
	trimmed := strings.TrimPrefix(payload, "```json")
	if trimmed == payload {
		trimmed = strings.TrimPrefix(payload, "```")
	}
	trimmed = strings.TrimLeft(trimmed, "\r\n")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed), true
}
