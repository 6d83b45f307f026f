package ai

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractJSONObjectFirstBalancedSegment(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    string
		located bool
	}{
		{
			name:    "bare object",
			raw:     `{"score": 8, "reason": "strong"}`,
			want:    `{"score": 8, "reason": "strong"}`,
			located: true,
		},
		{
			name:    "fenced with prose",
			raw:     "Here is the verdict:\n```json\n{\"score\": 6, \"reason\": \"solid\"}\n```\nThanks!",
			want:    `{"score": 6, "reason": "solid"}`,
			located: true,
		},
		{
			name:    "first of two objects wins",
			raw:     `{"score": 4, "reason": "a"} trailing {"score": 9, "reason": "b"}`,
			want:    `{"score": 4, "reason": "a"}`,
			located: true,
		},
		{
			name:    "braces inside strings stay balanced",
			raw:     `{"score": 7, "reason": "uses {braces} and a quote \" inside"}`,
			want:    `{"score": 7, "reason": "uses {braces} and a quote \" inside"}`,
			located: true,
		},
		{
			name:    "no object at all",
			raw:     "the submission was quite good overall",
			located: false,
		},
		{
			name:    "unbalanced object",
			raw:     `{"score": 5, "reason": "never closed`,
			located: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSONObject(tc.raw)
			require.Equal(t, tc.located, ok)
			if tc.located {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParseJudgementFallsBackToNeutralDefault(t *testing.T) {
	judged := parseJudgement("no json here at all")
	require.Equal(t, DefaultJudgement(), judged)

	judged = parseJudgement(`{"score": "not a number"}`)
	require.Equal(t, DefaultJudgement(), judged)
}

func TestParseJudgementClampsScore(t *testing.T) {
	judged := parseJudgement(`{"score": 14, "reason": "overflow"}`)
	require.Equal(t, 10, judged.Score)

	judged = parseJudgement(`{"score": -2, "reason": "underflow"}`)
	require.Equal(t, 0, judged.Score)
}
