package client

import (
	"encoding/json"

	"github.com/leofalp/oaiclient/providers/ai"
)

const (
	wantText   = "text"
	wantParsed = "parsed"
)

// extractText prefers the aggregated text. Otherwise it returns the text of
// the first content part of the first message item that has one.
func extractText(response *ai.Response) (string, error) {
	if response == nil {
		return "", &ExtractionError{Want: wantText, Reason: "nil response"}
	}

	switch output := response.Output.(type) {
	case ai.Convenience:
		return output.Text, nil
	case ai.Items:
		if len(output) == 0 {
			return "", &ExtractionError{Want: wantText, Reason: "empty output"}
		}
		for _, item := range output {
			part, ok := firstMessagePart(item)
			if ok && part.Text != nil {
				return *part.Text, nil
			}
		}
		return "", &ExtractionError{Want: wantText, Reason: "no message content carries text"}
	default:
		return "", &ExtractionError{Want: wantText, Reason: "no output"}
	}
}

// extractParsed mirrors extractText for decoded structured output.
func extractParsed(response *ai.Response) (json.RawMessage, error) {
	if response == nil {
		return nil, &ExtractionError{Want: wantParsed, Reason: "nil response"}
	}

	switch output := response.Output.(type) {
	case ai.Convenience:
		if isNull(output.Parsed) {
			return nil, &ExtractionError{Want: wantParsed, Reason: "aggregated output is empty"}
		}
		return output.Parsed, nil
	case ai.Items:
		if len(output) == 0 {
			return nil, &ExtractionError{Want: wantParsed, Reason: "empty output"}
		}
		for _, item := range output {
			part, ok := firstMessagePart(item)
			if ok && !isNull(part.Parsed) {
				return part.Parsed, nil
			}
		}
		return nil, &ExtractionError{Want: wantParsed, Reason: "no message content carries a parsed value"}
	default:
		return nil, &ExtractionError{Want: wantParsed, Reason: "no output"}
	}
}

// firstMessagePart returns the first content part of a message item. Other
// item kinds and messages without content are skipped.
func firstMessagePart(item ai.OutputItem) (ai.ContentPart, bool) {
	if item.Type != ai.OutputItemMessage || len(item.Content) == 0 {
		return ai.ContentPart{}, false
	}
	return item.Content[0], true
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
