package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mood is the closed set of feelings a story can carry.
type Mood string

const (
	MoodNeutral Mood = "Neutral"
	MoodHappy   Mood = "Happy"
	MoodAngry   Mood = "Angry"
	MoodSad     Mood = "Sad"
)

func (m Mood) Valid() bool {
	switch m {
	case MoodNeutral, MoodHappy, MoodAngry, MoodSad:
		return true
	}

	return false
}

// Story is one journal entry. Date is stored as a timezone-naive UTC
// instant; the calendar day is derived at render time.
type Story struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner       string             `bson:"owner" json:"owner"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Mood        Mood               `bson:"mood" json:"mood"`
	Date        time.Time          `bson:"date" json:"date"`
	Images      []string           `bson:"images" json:"images"`
}
