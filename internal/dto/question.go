package dto

// GenerateQuestionRequest is the request body for question generation.
// @Description Parameters selecting what to generate
type GenerateQuestionRequest struct {
	Exam       string `json:"exam"`
	Subject    string `json:"subject"`
	Difficulty string `json:"difficulty,omitempty"`
	UserID     string `json:"user_id,omitempty"`
}

// QuestionResponse is one generated question as delivered to the client.
// Fallback is true when the pipeline could not produce a valid result and the
// fixed fallback question was substituted.
type QuestionResponse struct {
	Question                string   `json:"question"`
	Options                 []string `json:"options"`
	Answer                  int      `json:"answer"`
	Explanation             string   `json:"explanation"`
	AlternativeExplanations []string `json:"alternativeExplanations"`
	Exam                    string   `json:"exam,omitempty"`
	Subject                 string   `json:"subject,omitempty"`
	Fallback                bool     `json:"fallback,omitempty"`
}

// ExamsResponse lists the known exam identifiers.
type ExamsResponse struct {
	Exams []string `json:"exams"`
}

// SubjectsResponse lists the subjects of one exam.
type SubjectsResponse struct {
	Exam     string   `json:"exam"`
	Subjects []string `json:"subjects"`
}

// EditalResponse carries the reference-notice metadata of one exam.
type EditalResponse struct {
	Exam     string   `json:"exam"`
	Year     int      `json:"year"`
	Subjects []string `json:"subjects"`
	URL      string   `json:"url,omitempty"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
