package ai

import "encoding/json"

// MatchAnalysis is the structured fit analysis the match prompt asks for.
type MatchAnalysis struct {
	MatchScore      int      `json:"matchScore"`
	MatchingSkills  []string `json:"matchingSkills"`
	MissingSkills   []string `json:"missingSkills"`
	Recommendations []string `json:"recommendations"`
	Summary         string   `json:"summary"`
}

// MatchResult carries either parsed model output or the degraded fallback.
// Fallback is true when the model's response was not valid JSON and the
// raw text was folded into Summary instead.
type MatchResult struct {
	MatchAnalysis
	Fallback bool `json:"-"`
}

// ParseMatchResult interprets the model's response to a match prompt.
// Malformed output degrades to a neutral score with the raw text as
// summary rather than failing the request.
func ParseMatchResult(raw string) MatchResult {
	cleaned := stripMarkdownFences(raw)
	var a MatchAnalysis
	if err := json.Unmarshal([]byte(cleaned), &a); err == nil {
		if a.MatchingSkills == nil {
			a.MatchingSkills = []string{}
		}
		if a.MissingSkills == nil {
			a.MissingSkills = []string{}
		}
		if a.Recommendations == nil {
			a.Recommendations = []string{}
		}
		return MatchResult{MatchAnalysis: a}
	}
	return MatchResult{
		MatchAnalysis: MatchAnalysis{
			MatchScore:      70,
			Summary:         cleaned,
			MatchingSkills:  []string{},
			MissingSkills:   []string{},
			Recommendations: []string{},
		},
		Fallback: true,
	}
}

// QuestionTip is one interview question with a short answering hint.
type QuestionTip struct {
	Question string `json:"question"`
	Tip      string `json:"tip"`
}

// InterviewQuestions groups generated questions by category.
type InterviewQuestions struct {
	Technical      []QuestionTip `json:"technical"`
	Behavioral     []QuestionTip `json:"behavioral"`
	AskInterviewer []QuestionTip `json:"askInterviewer"`
}

// QuestionsResult carries either parsed model output or the canned
// fallback set built around the job title.
type QuestionsResult struct {
	InterviewQuestions
	Fallback bool `json:"-"`
}

// ParseQuestionsResult interprets the model's response to an interview
// questions prompt, degrading to a minimal canned set on malformed JSON.
func ParseQuestionsResult(raw, jobTitle string) QuestionsResult {
	cleaned := stripMarkdownFences(raw)
	var q InterviewQuestions
	if err := json.Unmarshal([]byte(cleaned), &q); err == nil && len(q.Technical)+len(q.Behavioral)+len(q.AskInterviewer) > 0 {
		if q.Technical == nil {
			q.Technical = []QuestionTip{}
		}
		if q.Behavioral == nil {
			q.Behavioral = []QuestionTip{}
		}
		if q.AskInterviewer == nil {
			q.AskInterviewer = []QuestionTip{}
		}
		return QuestionsResult{InterviewQuestions: q}
	}
	return QuestionsResult{
		InterviewQuestions: InterviewQuestions{
			Technical: []QuestionTip{
				{Question: "Tell me about your experience as a " + jobTitle, Tip: "Focus on relevant achievements"},
			},
			Behavioral: []QuestionTip{
				{Question: "Describe a challenging project you worked on", Tip: "Use the STAR method"},
			},
			AskInterviewer: []QuestionTip{
				{Question: "What does success look like in this role?", Tip: "Shows you care about performing well"},
			},
		},
		Fallback: true,
	}
}
