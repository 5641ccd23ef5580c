// Copyright (c) 2026 Reviewly. All rights reserved.
// Author: tam.buithanh.vn@gmail.com

/*
Package review implements the social layer of Reviewly: reviews on titles
and comments on reviews.

# Invariants

  - One review per (author, title). The database's unique constraint is the
    authority; the service's pre-check only exists to produce a friendlier
    message than the constraint backstop.
  - Scores are integers from 1 to 10.
  - Author and publication date are server-assigned and immutable; edits
    never touch them.
  - Deleting a review removes its comments; deleting a title removes its
    reviews and, transitively, their comments.
*/
package review

import "time"

// Review is a scored opinion on a title by a single author.
type Review struct {
	ID             string    `json:"id"`
	TitleID        string    `json:"-"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	Score          int       `json:"score"`
	PubDate        time.Time `json:"pub_date"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID             string    `json:"id"`
	ReviewID       string    `json:"-"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Text           string    `json:"text"`
	PubDate        time.Time `json:"pub_date"`
}

// # Score Bounds

const (
	// ScoreMin is the lowest permitted review score.
	ScoreMin = 1
	// ScoreMax is the highest permitted review score.
	ScoreMax = 10
)
