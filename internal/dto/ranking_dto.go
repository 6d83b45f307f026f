package dto

// RankingEntry is one row of the contest ranking view.
type RankingEntry struct {
	Rank       int      `json:"rank"`
	ResultID   uint     `json:"result_id"`
	SchoolName string   `json:"school_name"`
	ThemeTitle string   `json:"theme_title"`
	TotalScore int      `json:"total_score"`
	MaxScore   int      `json:"max_score"`
	Awards     []string `json:"awards"`
}

// SpecialAwardRequest toggles the manually assigned special judge award.
type SpecialAwardRequest struct {
	Flagged bool `json:"flagged"`
}

// CertificateResponse carries the rendered certificates for one result.
type CertificateResponse struct {
	ResultID     uint              `json:"result_id"`
	SchoolName   string            `json:"school_name"`
	Awards       []string          `json:"awards"`
	Certificates map[string]string `json:"certificates"`
}
