package domain

import "context"

// StudyPlanRequest asks for a day-by-day plan built from a processed
// document's text and an exam date (YYYY-MM-DD).
type StudyPlanRequest struct {
	FileID      string `json:"file_id"`
	SubjectName string `json:"subject_name"`
	ExamDate    string `json:"exam_date"`
	Language    string `json:"language"`
}

// StudyTopic is a topic identified in the study material.
type StudyTopic struct {
	Name        string `json:"name"`
	Importance  int    `json:"importance"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
}

// DailyStudyPlan is one day of the schedule leading up to the exam.
type DailyStudyPlan struct {
	Day            int      `json:"day"`
	Date           string   `json:"date"`
	Topics         []string `json:"topics"`
	Actions        []string `json:"actions"`
	EstimatedHours float64  `json:"estimated_hours"`
}

// StudyStatistics summarizes the workload of a plan.
type StudyStatistics struct {
	TotalTopics         int     `json:"total_topics"`
	EstimatedTotalHours float64 `json:"estimated_total_hours"`
	DailyAverageHours   float64 `json:"daily_average_hours"`
}

// StudyPlan is the generated schedule. Plans are kept in process memory
// only, like documents.
type StudyPlan struct {
	PlanID                 string           `json:"plan_id"`
	SubjectName            string           `json:"subject_name"`
	ExamDate               string           `json:"exam_date"`
	CreatedAt              string           `json:"created_at"`
	Status                 string           `json:"status"`
	DaysRemaining          int              `json:"days_remaining"`
	MainTopics             []StudyTopic     `json:"main_topics"`
	HardestTopics          []StudyTopic     `json:"hardest_topics"`
	DailyPlan              []DailyStudyPlan `json:"daily_plan"`
	GeneralRecommendations []string         `json:"general_recommendations"`
	StudyTechniques        []string         `json:"study_techniques"`
	Statistics             StudyStatistics  `json:"statistics"`
	Language               string           `json:"language"`
	Provider               string           `json:"provider"`
	ProcessingTime         float64          `json:"processing_time"`
}

// StudyPlanService generates study plans through the provider chain.
type StudyPlanService interface {
	GeneratePlan(ctx context.Context, text string, req StudyPlanRequest) (*StudyPlan, error)
}

// StudyPlanStore keeps generated plans for later retrieval.
type StudyPlanStore interface {
	Save(plan *StudyPlan) error
	Get(planID string) (*StudyPlan, error)
	List() []*StudyPlan
	Delete(planID string) error
}
