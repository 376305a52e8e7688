package model

// SessionState is the position of a session in the survey flow
type SessionState string

const (
	SessionIntro        SessionState = "intro"
	SessionSurvey       SessionState = "survey"
	SessionAnalyzing    SessionState = "analyzing"
	SessionProfileEntry SessionState = "profile_entry"
	SessionResult       SessionState = "result"
)

// Session is the full, serializable state of one survey run
type Session struct {
	ID       string          `json:"id"`
	State    SessionState    `json:"state"`
	Index    int             `json:"index"` // current question position, 0-based
	Answers  AnswerSet       `json:"answers"`
	Scores   ScoreVector     `json:"scores,omitempty"`   // set on survey -> analyzing
	Analysis *AnalysisResult `json:"analysis,omitempty"` // set on analyzing -> profile_entry
	Profile  *UserProfile    `json:"profile,omitempty"`
	Failed   bool            `json:"failed"` // last analysis attempt failed
	RecordID string          `json:"recordId,omitempty"`

	// PendingRecordID is fixed before the first append attempt so retries reuse it.
	PendingRecordID string `json:"pendingRecordId,omitempty"`
}

// NewSession returns a session waiting at the intro screen
func NewSession(id string) *Session {
	return &Session{
		ID:      id,
		State:   SessionIntro,
		Answers: AnswerSet{},
	}
}
