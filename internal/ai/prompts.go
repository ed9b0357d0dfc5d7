package ai

import "fmt"

// CoverLetterPrompt asks for a ready-to-send cover letter in plain prose.
func CoverLetterPrompt(jobTitle, companyName, jobDescription, resumeText, tone string) string {
	if tone == "" {
		tone = "professional"
	}
	if jobDescription == "" {
		jobDescription = "Not provided"
	}
	if resumeText == "" {
		resumeText = "Not provided"
	}
	return fmt.Sprintf(`Write a %s cover letter for a %s position at %s.

Job Description:
%s

Candidate's Resume/Background:
%s

Requirements:
- Write a compelling, personalized cover letter
- Highlight relevant skills and experience
- Keep it to 3-4 paragraphs
- Include a strong opening and closing
- Be specific about why the candidate is a good fit
- Do not include placeholder brackets like [Your Name]`,
		tone, jobTitle, companyName, jobDescription, resumeText)
}

// MatchPrompt asks for a resume/job fit analysis in a fixed JSON shape.
func MatchPrompt(jobDescription, resumeText string) string {
	return fmt.Sprintf(`Analyze how well this resume matches the job description. Provide:
1. A match score from 0-100
2. Key matching skills/qualifications
3. Missing skills or gaps
4. Recommendations to improve the application

Job Description:
%s

Resume:
%s

Respond in this exact JSON format:
{
    "matchScore": <number>,
    "matchingSkills": ["skill1", "skill2"],
    "missingSkills": ["skill1", "skill2"],
    "recommendations": ["rec1", "rec2"],
    "summary": "<brief summary>"
}`, jobDescription, resumeText)
}

// InterviewQuestionsPrompt asks for categorized prep questions in a fixed
// JSON shape.
func InterviewQuestionsPrompt(jobTitle, companyName, jobDescription, experienceLevel string) string {
	if experienceLevel == "" {
		experienceLevel = "Mid-Level"
	}
	at := ""
	if companyName != "" {
		at = " at " + companyName
	}
	if jobDescription == "" {
		jobDescription = "General " + jobTitle + " position"
	}
	return fmt.Sprintf(`Generate interview preparation questions for a %s %s position%s.

Job Description:
%s

Provide 10-15 questions in these categories:
1. Technical/Role-Specific Questions (5-6 questions)
2. Behavioral Questions (3-4 questions)
3. Questions to Ask the Interviewer (3-4 questions)

For each question, include a brief tip on how to answer it.

Respond in this exact JSON format:
{
    "technical": [{"question": "...", "tip": "..."}],
    "behavioral": [{"question": "...", "tip": "..."}],
    "askInterviewer": [{"question": "...", "tip": "..."}]
}`, experienceLevel, jobTitle, at, jobDescription)
}
