package entity

import "storysync/internal/domain/model"

// DayGroup is one calendar-day bucket of the feed. Date is the local
// calendar day in YYYY-MM-DD form; stories are ordered by timestamp
// descending.
type DayGroup struct {
	Date    string        `json:"date"`
	Stories []model.Story `json:"stories"`
}

// FeedUpdate is one emission of a live grouped feed. Err carries transient
// failures in-stream without terminating the subscription.
type FeedUpdate struct {
	Groups []DayGroup
	Err    error
}

// StoryUpdate is one emission of a selected-story stream.
type StoryUpdate struct {
	Story *model.Story
	Err   error
}
