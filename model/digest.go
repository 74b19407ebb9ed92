package model

import (
	"net/http"
	"time"

	"github.com/imdario/mergo"
	"gopkg.in/validator.v2"

	"github.com/hiconvo/notifier/errors"
	"github.com/hiconvo/notifier/truncate"
)

// Limits are the maximum lengths, in code points, that user-authored text
// may have once it is placed in a digest.
type Limits struct {
	// ItemBody caps the body of each post or comment.
	ItemBody int `json:"itemBody" validate:"min=3"`
	// ThreadTitle caps thread titles.
	ThreadTitle int `json:"threadTitle" validate:"min=3"`
}

// DefaultLimits are used for any limit left at zero.
var DefaultLimits = Limits{
	ItemBody:    200,
	ThreadTitle: 100,
}

// ItemMeta carries caller-supplied information about an item. It is passed
// through untouched.
type ItemMeta struct {
	PostID     string    `json:"postId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Item is a single post or comment in a digest. Its body is already
// truncated.
type Item struct {
	Body string
	Meta ItemMeta
}

// Thread groups the items of a single forum thread. Items keep the order in
// which they were given.
type Thread struct {
	ID            string
	CourseID      string
	CommentableID string
	Title         string
	Items         []Item
}

// Course groups the threads of one course.
type Course struct {
	CourseID string
	Threads  []Thread
}

// Digest is the tree of courses, threads and items prepared for one user.
// A Digest must not be modified once built.
type Digest struct {
	Courses []Course
}

// Empty reports whether the digest has no threads to show.
func (d *Digest) Empty() bool {
	return d.ThreadCount() == 0
}

// ThreadCount returns the number of threads across all courses.
func (d *Digest) ThreadCount() int {
	var n int
	for i := range d.Courses {
		n += len(d.Courses[i].Threads)
	}

	return n
}

// ItemCount returns the number of items across all threads.
func (d *Digest) ItemCount() int {
	var n int
	for i := range d.Courses {
		for j := range d.Courses[i].Threads {
			n += len(d.Courses[i].Threads[j].Items)
		}
	}

	return n
}

// Builder constructs digest values, truncating text as it goes so that a
// built digest can be rendered any number of times.
type Builder struct {
	limits Limits
}

// NewBuilder returns a Builder using the given limits. Zero limits are
// replaced with DefaultLimits; anything below the length of the ellipsis is
// rejected.
func NewBuilder(l Limits) (*Builder, error) {
	op := errors.Op("model.NewBuilder")

	if err := mergo.Merge(&l, DefaultLimits); err != nil {
		return nil, errors.E(op, errors.Internal, err)
	}

	if err := validator.Validate(l); err != nil {
		return nil, errors.E(op, errors.Validation, err, map[string]string{
			"message": "Digest limits must be at least 3 characters",
		})
	}

	return &Builder{limits: l}, nil
}

// Limits returns the limits the builder applies.
func (b *Builder) Limits() Limits {
	return b.limits
}

// Item returns an Item with its body truncated to the item limit.
func (b *Builder) Item(body string, meta ItemMeta) Item {
	return Item{
		Body: truncate.Words(body, b.limits.ItemBody),
		Meta: meta,
	}
}

// Thread returns a Thread with its title truncated to the thread title
// limit. The items slice is copied.
func (b *Builder) Thread(id, courseID, commentableID, title string, items []Item) (Thread, error) {
	ids := struct {
		ID            string `validate:"nonzero"`
		CourseID      string `validate:"nonzero"`
		CommentableID string `validate:"nonzero"`
	}{id, courseID, commentableID}

	if err := validator.Validate(ids); err != nil {
		return Thread{}, errors.E(errors.Opf("model.Thread(id=%q)", id), errors.Validation, err)
	}

	return Thread{
		ID:            id,
		CourseID:      courseID,
		CommentableID: commentableID,
		Title:         truncate.Words(title, b.limits.ThreadTitle),
		Items:         append([]Item(nil), items...),
	}, nil
}

// NewCourse returns a Course holding a copy of threads.
func NewCourse(courseID string, threads []Thread) Course {
	return Course{
		CourseID: courseID,
		Threads:  append([]Thread(nil), threads...),
	}
}

// NewDigest returns a Digest holding a copy of courses.
func NewDigest(courses []Course) *Digest {
	return &Digest{Courses: append([]Course(nil), courses...)}
}

// RawItem is an item as fetched from the forum service.
type RawItem struct {
	Body string `json:"body"`
	ItemMeta
}

// RawThread is a thread as fetched from the forum service.
type RawThread struct {
	ID            string    `json:"id"`
	CommentableID string    `json:"commentableId"`
	Title         string    `json:"title"`
	Items         []RawItem `json:"items"`
}

// RawCourse is a course as fetched from the forum service.
type RawCourse struct {
	CourseID string      `json:"courseId"`
	Threads  []RawThread `json:"threads"`
}

// Digest builds a whole Digest from fetched data, preserving order.
func (b *Builder) Digest(raw []RawCourse) (*Digest, error) {
	op := errors.Op("model.Builder.Digest")

	courses := make([]Course, len(raw))
	for i := range raw {
		if raw[i].CourseID == "" {
			return nil, errors.E(op, errors.Validation, http.StatusBadRequest,
				errors.Str("course id is required"))
		}

		threads := make([]Thread, len(raw[i].Threads))
		for j, rt := range raw[i].Threads {
			items := make([]Item, len(rt.Items))
			for k := range rt.Items {
				items[k] = b.Item(rt.Items[k].Body, rt.Items[k].ItemMeta)
			}

			t, err := b.Thread(rt.ID, raw[i].CourseID, rt.CommentableID, rt.Title, items)
			if err != nil {
				return nil, errors.E(op, err)
			}

			threads[j] = t
		}

		courses[i] = NewCourse(raw[i].CourseID, threads)
	}

	return NewDigest(courses), nil
}
