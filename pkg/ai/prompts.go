package ai

import (
	"fmt"
	"strings"
)

// rubric is the fixed, versioned prompt material for one criterion. Bands are
// indexed 0-3, 4-5, 6-7, 8-9, 10 and rendered in that order.
type rubric struct {
	name     string
	focus    string
	bands    [5]string
	examples []workedExample
}

type workedExample struct {
	score   int
	summary string
}

var rubrics = map[int]rubric{
	1: {
		name:  "Originality of Perspective",
		focus: "Does the entry show a flexible, student-driven point of view that breaks away from established framings?",
		bands: [5]string{
			"restates a well-known question with no personal angle",
			"a familiar question with minor personal framing",
			"a recognisable question approached from a fresh angle",
			"a genuinely unusual question or inversion of common practice",
			"a question nobody in the field appears to have asked, framed convincingly",
		},
		examples: []workedExample{
			{score: 3, summary: "a standard question with no twist: \"Does more practice improve our serve?\""},
			{score: 7, summary: "familiar data approached from an uncommon angle: \"Do our worst serves cluster after defensive rallies?\""},
			{score: 10, summary: "an angle with no precedent in the submitted references: \"Can bench players' warm-up motion predict second-half substitution success?\""},
		},
	},
	2: {
		name:  "Authenticity of Background",
		focus: "Is the motivation for tackling the problem clear and grounded in the team's own experience on the ground?",
		bands: [5]string{
			"no stated motivation, or a borrowed one",
			"generic motivation that could belong to any team",
			"motivation tied to the team's own season or training",
			"a concrete lived problem with evidence it affected the team",
			"a vividly documented first-hand problem driving every later choice",
		},
		examples: []workedExample{
			{score: 2, summary: "\"Injuries are a problem in sport\" with no link to the authors."},
			{score: 8, summary: "The team lost three finals in the last five minutes and traces the project to that pattern."},
		},
	},
	3: {
		name:  "Hypothesis Validation",
		focus: "Was an appropriate hypothesis formed and verified objectively and scientifically using motion data?",
		bands: [5]string{
			"no explicit hypothesis, or conclusions without data",
			"a hypothesis stated but tested anecdotally",
			"a testable hypothesis checked against collected data",
			"a falsifiable hypothesis with controls or comparison groups",
			"a rigorous design: pre-registered prediction, controls, and honest negative results",
		},
		examples: []workedExample{
			{score: 4, summary: "Predicts faster turns after drills but validates only by player impressions."},
			{score: 9, summary: "Compares motion-tracking metrics across control and drill groups over four weeks."},
		},
	},
	4: {
		name:  "Depth of Analysis",
		focus: "Does the entry go beyond stating results to reason about why they occurred and draw logical conclusions?",
		bands: [5]string{
			"results listed with no interpretation",
			"results described with surface-level commentary",
			"causes proposed for the main findings",
			"competing explanations weighed against the data",
			"a layered causal argument that anticipates and rebuts objections",
		},
		examples: []workedExample{
			{score: 3, summary: "\"Average speed rose 0.4 m/s\" reported without asking why."},
			{score: 8, summary: "Rules out fatigue and surface change before attributing gains to stride cadence."},
		},
	},
	5: {
		name:  "On-Field Application",
		focus: "How concretely do the findings feed back into strengthening the team and improving performance?",
		bands: [5]string{
			"no connection drawn to team practice",
			"vague intentions to \"use the findings\"",
			"specific drills or decisions derived from the findings",
			"an adopted practice change with early evidence of effect",
			"a measured before/after improvement attributed to the change",
		},
		examples: []workedExample{
			{score: 5, summary: "Suggests adjusting warm-ups but names no concrete drill."},
			{score: 9, summary: "Introduced a cadence drill twice a week and shows sprint-time deltas since adoption."},
		},
	},
	6: {
		name:  "Broader Impact",
		focus: "What new knowledge or value does the work offer other teams, sports, or the sporting world as a whole?",
		bands: [5]string{
			"value limited to the authors on that day",
			"findings of narrow use outside the team",
			"findings other teams in the sport could reuse",
			"a transferable method applicable across sports",
			"a reusable framework plus an open resource others can build on",
		},
		examples: []workedExample{
			{score: 4, summary: "Findings specific to the team's home court layout."},
			{score: 7, summary: "A measurement protocol any volleyball team could copy."},
			{score: 10, summary: "Publishes an annotated data set and analysis template for any motion-tracked sport."},
		},
	},
}

// systemPrompt frames the model as a contest judge for every criterion call.
const systemPrompt = "You are a judge on an education contest panel. Evaluate the submitted material objectively and fairly against the single rubric criterion you are given."

// buildPrompt renders the fixed rubric template for the criterion with the
// (already truncated) submission content inserted verbatim.
func buildPrompt(criterionID int, content string) (string, error) {
	r, ok := rubrics[criterionID]
	if !ok {
		return "", fmt.Errorf("unknown criterion id %d", criterionID)
	}

	b := strings.Builder{}
	b.WriteString("Read the submitted material and score it from 0 to 10 against this criterion.\n\n")
	b.WriteString("Criterion: ")
	b.WriteString(r.name)
	b.WriteString("\n")
	b.WriteString(r.focus)
	b.WriteString("\n\nScoring bands:\n")
	labels := []string{"0-3", "4-5", "6-7", "8-9", "10"}
	for i, band := range r.bands {
		b.WriteString("- ")
		b.WriteString(labels[i])
		b.WriteString(": ")
		b.WriteString(band)
		b.WriteString("\n")
	}
	b.WriteString("\nWorked examples:\n")
	for _, ex := range r.examples {
		fmt.Fprintf(&b, "- score %d: %s\n", ex.score, ex.summary)
	}
	b.WriteString("\nSubmitted material:\n")
	b.WriteString(content)
	b.WriteString("\n\nReturn the verdict as a JSON object:\n")
	b.WriteString(`{"score": <integer 0-10>, "reason": "<about 100 words explaining the score>"}`)
	return b.String(), nil
}
