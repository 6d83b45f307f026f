package models

// Criterion is one fixed rubric dimension of the pre-screening review.
type Criterion struct {
	ID           int    `json:"id"`
	Category     string `json:"category"`
	Name         string `json:"criterion_name"`
	Description  string `json:"description"`
	MaxScore     int    `json:"max_score"`
	DisplayOrder int    `json:"display_order"`
}

// TotalMaxScore is the highest total a submission can reach across all criteria.
const TotalMaxScore = 60

var criteria = []Criterion{
	{
		ID:           1,
		Category:     "pre-screening",
		Name:         "Originality of Perspective",
		Description:  "Does the entry show a flexible, student-driven point of view that breaks away from established framings?",
		MaxScore:     10,
		DisplayOrder: 1,
	},
	{
		ID:           2,
		Category:     "pre-screening",
		Name:         "Authenticity of Background",
		Description:  "Is the motivation for tackling the problem clear and grounded in the team's own experience on the ground?",
		MaxScore:     10,
		DisplayOrder: 2,
	},
	{
		ID:           3,
		Category:     "pre-screening",
		Name:         "Hypothesis Validation",
		Description:  "Was an appropriate hypothesis formed and verified objectively and scientifically using motion data?",
		MaxScore:     10,
		DisplayOrder: 3,
	},
	{
		ID:           4,
		Category:     "pre-screening",
		Name:         "Depth of Analysis",
		Description:  "Does the entry go beyond stating results to reason about why they occurred and draw logical conclusions?",
		MaxScore:     10,
		DisplayOrder: 4,
	},
	{
		ID:           5,
		Category:     "pre-screening",
		Name:         "On-Field Application",
		Description:  "How concretely do the findings feed back into strengthening the team and improving performance?",
		MaxScore:     10,
		DisplayOrder: 5,
	},
	{
		ID:           6,
		Category:     "pre-screening",
		Name:         "Broader Impact",
		Description:  "What new knowledge or value does the work offer other teams, sports, or the sporting world as a whole?",
		MaxScore:     10,
		DisplayOrder: 6,
	},
}

// Criteria returns the fixed rubric catalog ordered by display order. Callers
// receive a copy so the catalog itself can never be mutated.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

// CriterionByID looks up a rubric item by its stable identifier.
func CriterionByID(id int) (Criterion, bool) {
	for _, c := range criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}
