package rag

import (
	"sort"

	"ai-contact-search-be/pkg/retrieval"
)

const DefaultTopN = 5

type FinalResult struct {
	Name        string
	Phone       string
	Score       float64
	Confidence  float64
	Reason      string
	ProfileText string
}

// Compose keeps the candidates the provider matched, best first by
// (confidence, score), and returns at most topN of them.
func Compose(candidates []retrieval.Candidate, judgments Judgments, topN int) []FinalResult {
	if topN <= 0 {
		topN = DefaultTopN
	}

	results := make([]FinalResult, 0, len(judgments))
	for _, c := range candidates {
		j, ok := judgments[c.Index]
		if !ok || !j.Match {
			continue
		}
		results = append(results, FinalResult{
			Name:        c.Name,
			Phone:       c.Phone,
			Score:       c.Score,
			Confidence:  j.Confidence,
			Reason:      j.Reason,
			ProfileText: c.ProfileText,
		})
	}

	sort.SliceStable(results, func(i, k int) bool {
		if results[i].Confidence != results[k].Confidence {
			return results[i].Confidence > results[k].Confidence
		}
		return results[i].Score > results[k].Score
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}
