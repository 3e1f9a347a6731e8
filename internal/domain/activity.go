package domain

// ActivityType identifies the kind of study content to generate.
type ActivityType string

const (
	ActivityFlashcard      ActivityType = "flashcard"
	ActivityMultipleChoice ActivityType = "multiple_choice"
	ActivityTrueFalse      ActivityType = "true_false"
	ActivitySummary        ActivityType = "summary"
	ActivityMixed          ActivityType = "mixed"
)

// Supported generation languages. Spanish is the product default.
const (
	LanguageSpanish = "es"
	LanguageEnglish = "en"
)

// Flashcard is a front/back study card.
type Flashcard struct {
	Type       ActivityType `json:"type,omitempty"`
	Front      string       `json:"front"`
	Back       string       `json:"back"`
	Difficulty string       `json:"difficulty,omitempty"`
}

// MultipleChoiceQuestion has exactly four options; CorrectIndex is 0-3.
type MultipleChoiceQuestion struct {
	Type         ActivityType `json:"type,omitempty"`
	Question     string       `json:"question"`
	Options      []string     `json:"options"`
	CorrectIndex int          `json:"correct_index"`
	Explanation  string       `json:"explanation,omitempty"`
}

// TrueFalseQuestion is a statement with a boolean answer.
type TrueFalseQuestion struct {
	Type        ActivityType `json:"type,omitempty"`
	Statement   string       `json:"statement"`
	Answer      bool         `json:"answer"`
	Explanation string       `json:"explanation,omitempty"`
}

// Summary is a titled prose summary with key points.
type Summary struct {
	Type      ActivityType `json:"type,omitempty"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	KeyPoints []string     `json:"key_points"`
}

// GenerationRequest describes one content-generation call. It is transient;
// requests are never persisted.
type GenerationRequest struct {
	Text         string       `json:"text"`
	ActivityType ActivityType `json:"activity_type"`
	Count        int          `json:"count"`
	Language     string       `json:"language"`
	Difficulty   string       `json:"difficulty,omitempty"`
	Topic        string       `json:"topic,omitempty"`
}

// GenerationResult is the ordered set of generated items plus provenance.
// Activities holds Flashcard, MultipleChoiceQuestion, TrueFalseQuestion or
// Summary values depending on ActivityType (mixed results carry a Type tag
// on each item). Count never exceeds the requested count.
type GenerationResult struct {
	ActivityType   ActivityType `json:"activity_type"`
	Count          int          `json:"count"`
	Activities     []any        `json:"activities"`
	Provider       string       `json:"provider"`
	UsedFallback   bool         `json:"used_fallback"`
	Language       string       `json:"language"`
	ProcessingTime float64      `json:"processing_time"`
}
