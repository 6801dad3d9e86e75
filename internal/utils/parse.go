package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSONAs decodes content into T. When the content is not valid JSON
// (trailing commas, single quotes, unquoted keys, truncated objects) it is
// passed through jsonrepair and decoding is retried once.
//
// Example usage:
//
//	type Person struct {
//	    Name string `json:"name"`
//	    Age  int    `json:"age"`
//	}
//
//	person, err := ParseJSONAs[Person](`{"name":"John","age":30}`)
//	person, err := ParseJSONAs[Person](`{name: 'John', age: 30}`) // repaired
func ParseJSONAs[T any](content string) (T, error) {
	var result T

	if strings.TrimSpace(content) == "" {
		return result, fmt.Errorf("failed to unmarshal content as %T: empty input", result)
	}

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repairedJSON, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
	}

	// reset anything the failed attempt may have partially filled
	var repaired T
	if err = json.Unmarshal([]byte(repairedJSON), &repaired); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (original content: %s, repaired: %s)", result, err, TruncateStringDefault(content), TruncateStringDefault(repairedJSON))
	}
	return repaired, nil
}
