package models

import "encoding/json"

// EncodeTechStack serializes the ordered tech list for the tech_stack text
// column. Order is preserved and duplicates are kept as submitted.
func EncodeTechStack(stack []string) string {
	if stack == nil {
		stack = []string{}
	}
	encoded, err := json.Marshal(stack)
	if err != nil {
		// a []string cannot fail to marshal; keep the column well-formed anyway
		return "[]"
	}
	return string(encoded)
}

// DecodeTechStack is the inverse of EncodeTechStack. Malformed stored data
// decodes to an empty list instead of an error so a corrupt row degrades to
// a grave with no tech stack rather than a broken page.
func DecodeTechStack(raw string) []string {
	var stack []string
	if err := json.Unmarshal([]byte(raw), &stack); err != nil || stack == nil {
		return []string{}
	}
	return stack
}
