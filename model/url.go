package model

import (
	"fmt"
	"strings"
)

// URLBuilder builds deep links into the discussion forum of the LMS at Base.
type URLBuilder struct {
	Base string
}

// NewURLBuilder returns a URLBuilder for base, ignoring any trailing slash.
func NewURLBuilder(base string) URLBuilder {
	return URLBuilder{Base: strings.TrimRight(base, "/")}
}

// ThreadURL returns the permalink of a thread.
func (b URLBuilder) ThreadURL(courseID, commentableID, threadID string) string {
	return fmt.Sprintf("%s/courses/%s/discussion/forum/%s/threads/%s",
		b.Base, courseID, commentableID, threadID)
}

// CourseURL returns the link to the forum of a course.
func (b URLBuilder) CourseURL(courseID string) string {
	return fmt.Sprintf("%s/courses/%s/discussion/forum", b.Base, courseID)
}

// PostURL returns the link to a course-relative path, as found in flagged
// post listings.
func (b URLBuilder) PostURL(courseID, path string) string {
	return fmt.Sprintf("%s/courses/%s/%s", b.Base, courseID, path)
}
