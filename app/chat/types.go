package chat

// IntentKind is the classification an external classifier may attach to a
// message. The resolver treats it as a hint, never a requirement.
type IntentKind string

const (
	IntentNewsQuery      IntentKind = "news_query"
	IntentChat           IntentKind = "chat"
	IntentCategoryFilter IntentKind = "category_filter"
	IntentSummaryRequest IntentKind = "summary_request"
)

type Intent struct {
	Kind       IntentKind `json:"intent"`
	Category   string     `json:"category"`
	Location   string     `json:"location"`
	Keywords   []string   `json:"keywords"`
	Confidence float64    `json:"confidence"`
}
