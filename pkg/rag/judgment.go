package rag

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Judgment is the reasoning provider's verdict on one presented candidate.
// Confidence is passed through as reported; its range is provider-defined.
type Judgment struct {
	Index      int
	Match      bool
	Confidence float64
	Reason     string
}

// Judgments maps a candidate's local index to its verdict. A missing key means
// the provider gave no opinion on that candidate.
type Judgments map[int]Judgment

type judgmentEnvelope struct {
	Results *[]*judgmentItem `json:"results"`
}

type judgmentItem struct {
	Idx        *int     `json:"idx"`
	Match      *bool    `json:"match"`
	Confidence *float64 `json:"confidence"`
	Reason     *string  `json:"reason"`
}

// ParseJudgments decodes a reasoning reply. presented is the number of
// candidates that were sent; indices outside 0..presented-1 are dropped and
// the last judgment reported for an index wins.
func ParseJudgments(raw string, presented int) (Judgments, error) {
	text := stripCodeFence(raw)
	if text == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrSchemaViolation)
	}

	if !json.Valid([]byte(text)) {
		repaired, err := jsonrepair.JSONRepair(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
		text = repaired
	}

	var env judgmentEnvelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if env.Results == nil {
		return nil, fmt.Errorf("%w: missing results array", ErrSchemaViolation)
	}

	judgments := make(Judgments, len(*env.Results))
	for i, item := range *env.Results {
		if item == nil || item.Idx == nil || item.Match == nil || item.Confidence == nil || item.Reason == nil {
			return nil, fmt.Errorf("%w: result %d lacks a required field", ErrSchemaViolation, i)
		}

		idx := *item.Idx
		if idx < 0 || idx >= presented {
			continue
		}
		judgments[idx] = Judgment{
			Index:      idx,
			Match:      *item.Match,
			Confidence: *item.Confidence,
			Reason:     *item.Reason,
		}
	}
	return judgments, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
