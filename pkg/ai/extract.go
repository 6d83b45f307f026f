package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject returns the first balanced brace-delimited segment of raw.
// Model replies often wrap the JSON verdict in prose or a ```json fence, so
// the segment is located by brace matching rather than decoding the whole
// reply. The boolean is false when no balanced object exists.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// parseJudgement decodes a model reply into a Judgement. A reply with no
// balanced JSON object, or one that fails to decode, yields the neutral
// default instead of an error: malformed output must never abort a pass.
func parseJudgement(raw string) Judgement {
	segment, ok := ExtractJSONObject(raw)
	if !ok {
		return DefaultJudgement()
	}

	var judged Judgement
	if err := json.Unmarshal([]byte(segment), &judged); err != nil {
		return DefaultJudgement()
	}
	judged.Score = clampScore(judged.Score)
	return judged
}
