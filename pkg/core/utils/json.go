// Package utils provides parsing helpers shared by the assumption loader
// and the advisor response pipeline.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON defects (single quotes, trailing
// commas, unclosed brackets, markdown fences) before decoding.
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Hjson (comments, unquoted keys, optional commas) and
// returns the equivalent standard JSON. Scenario files are usually written
// by hand, so this is the loader's most lenient fallback.
func ParseHJSON(data string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(data), &result); err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}
	return string(jsonBytes), nil
}

// SmartParse tries multiple strategies to decode input into schema:
// strict JSON first, then repaired JSON, then Hjson. Returns the JSON text
// that actually decoded, for logging and storage.
func SmartParse(input string, schema interface{}) (string, error) {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	normalized, err := ParseHJSON(input)
	if err != nil {
		return "", fmt.Errorf("input is not valid JSON, repairable JSON, or Hjson: %v", err)
	}
	if err := json.Unmarshal([]byte(normalized), schema); err != nil {
		return "", fmt.Errorf("decoded Hjson does not match schema: %v", err)
	}
	return normalized, nil
}
