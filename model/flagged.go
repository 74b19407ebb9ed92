package model

// FlaggedMessage lists the flagged posts of one course for one moderator.
type FlaggedMessage struct {
	CourseID  string   `json:"courseId"`
	Recipient User     `json:"recipient"`
	Posts     []string `json:"posts"`
}
