package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/contestops/pitchscore-api/internal/models"
	"github.com/contestops/pitchscore-api/internal/repository"
)

// CertificateService renders award certificates as Markdown text. Generation
// never fails: missing or unreadable detail data only drops the highlight
// clause, because a certificate must always render.
type CertificateService struct {
	details     repository.DetailRepository
	contestName string
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCertificateService constructs the generator.
func NewCertificateService(details repository.DetailRepository, contestName string, logger zerolog.Logger) *CertificateService {
	if contestName == "" {
		contestName = "Pitch Contest"
	}
	return &CertificateService{
		details:     details,
		contestName: contestName,
		logger:      logger.With().Str("component", "certificate_service").Logger(),
		now:         time.Now,
	}
}

// highlightThreshold is the per-criterion score from which a criterion is
// called out in the certificate's opening sentence.
const highlightThreshold = 8

// descriptivePhrases maps criterion names to the short phrase used inside a
// highlight clause; unmapped names fall back to the raw criterion name.
var descriptivePhrases = map[string]string{
	"Originality of Perspective": "an original point of view",
	"Authenticity of Background": "a background rooted in first-hand experience",
	"Hypothesis Validation":      "sound data-driven validation",
	"Depth of Analysis":          "deep logical analysis",
	"On-Field Application":       "practical on-field proposals",
	"Broader Impact":             "insight of value beyond the team",
}

// GenerateForResult renders one certificate per award label, keyed by the
// original (glyph-bearing) label. The full completed-result set is accepted
// for comparative framing but not currently consulted.
func (s *CertificateService) GenerateForResult(ctx context.Context, result models.EvaluationResult, awards []string, _ []models.EvaluationResult) map[string]string {
	certificates := make(map[string]string, len(awards))
	highlights := s.highScoreCriteria(ctx, result.ID)

	for _, award := range awards {
		clean := cleanAwardLabel(award)
		certificates[award] = s.render(clean, result, highlights)
	}
	return certificates
}

// highScoreCriteria returns the result's details at or above the highlight
// threshold, highest score first. Lookup failures degrade to no highlights.
func (s *CertificateService) highScoreCriteria(ctx context.Context, resultID uint) []models.EvaluationDetail {
	details, err := s.details.ListByResult(ctx, resultID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("result_id", resultID).Msg("highlight lookup failed; rendering without highlights")
		return nil
	}

	var high []models.EvaluationDetail
	for _, d := range details {
		if d.Score >= highlightThreshold {
			high = append(high, d)
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].Score > high[j].Score
	})
	return high
}

func (s *CertificateService) render(awardType string, result models.EvaluationResult, highlights []models.EvaluationDetail) string {
	date := s.now().Format("January 2, 2006")
	school := result.SchoolName
	if school == "" {
		school = "Unknown School"
	}

	switch awardType {
	case "Top Award":
		clause := highlightClause(highlights, 2)
		opening := "In this contest you demonstrated meticulous analysis and singular insight, achieving truly outstanding results."
		if clause != "" {
			opening = fmt.Sprintf("In this contest you excelled in %s, demonstrating meticulous analysis and singular insight.", clause)
		}
		return strings.TrimSpace(fmt.Sprintf(`
# 🏆 Certificate of Achievement

**%s**

%s In recognition of that exceptional spirit of inquiry, we hereby present the Top Award.

%s

The %s Organizing Committee
`, school, opening, date, s.contestName))

	case "Excellence Award":
		clause := highlightClause(highlights, 1)
		opening := "In this contest you delivered a logical and persuasive presentation, achieving excellent results."
		if clause != "" {
			opening = fmt.Sprintf("In this contest you stood out for %s, delivering a logical and persuasive presentation.", clause)
		}
		return strings.TrimSpace(fmt.Sprintf(`
# 🥇 Certificate of Achievement

**%s**

%s In recognition of that effort and accomplishment, we hereby present the Excellence Award.

%s

The %s Organizing Committee
`, school, opening, date, s.contestName))

	case "Special Judge Award":
		clause := highlightClause(highlights, 1)
		opening := "In this contest you showed a distinctive perspective and an enthusiasm for inquiry that left a lasting impression on the judges."
		if clause != "" {
			opening = fmt.Sprintf("In this contest you impressed the judges with %s, showing a distinctive perspective and an enthusiasm for inquiry.", clause)
		}
		return strings.TrimSpace(fmt.Sprintf(`
# ⭐ Certificate of Achievement

**%s**

%s In high regard for that creativity, we hereby present the Special Judge Award.

%s

The %s Organizing Committee
`, school, opening, date, s.contestName))

	default:
		theme := result.ThemeTitle
		if theme == "" {
			theme = "Untitled Entry"
		}
		return strings.TrimSpace(fmt.Sprintf(`
# 🏅 Certificate of Achievement

**%s**

In the %s, your entry "**%s**" was recognised for its outstanding results, and we hereby present the %s.

We look forward to your continued growth through inquiry into sport.

%s

The %s Organizing Committee
`, school, s.contestName, theme, awardType, date, s.contestName))
	}
}

// highlightClause names up to limit top-scoring criteria, e.g.
// "deep logical analysis (10/10) and sound data-driven validation (9/10)".
// An empty string means no criterion qualified.
func highlightClause(highlights []models.EvaluationDetail, limit int) string {
	if len(highlights) == 0 {
		return ""
	}
	if limit > len(highlights) {
		limit = len(highlights)
	}

	parts := make([]string, 0, limit)
	for _, d := range highlights[:limit] {
		phrase, ok := descriptivePhrases[d.CriterionName]
		if !ok {
			phrase = d.CriterionName
		}
		parts = append(parts, fmt.Sprintf("%s (%d/10)", phrase, d.Score))
	}
	return strings.Join(parts, " and ")
}

// cleanAwardLabel strips the decorative glyph prefix off an award label so
// templates are keyed by the plain award name.
func cleanAwardLabel(label string) string {
	return strings.TrimLeftFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
