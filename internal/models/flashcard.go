package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Card is a single flashcard inside a deck.
type Card struct {
	ID           string    `json:"id"            bson:"id"`
	Front        string    `json:"front"         bson:"front"`
	Back         string    `json:"back"          bson:"back"`
	IntervalDays int       `json:"interval_days" bson:"interval_days"`
	DueAt        time.Time `json:"due_at"        bson:"due_at"`
	Reviews      int       `json:"reviews"       bson:"reviews"`
}

// Deck is a named collection of flashcards stored in MongoDB.
type Deck struct {
	ID          primitive.ObjectID `json:"id"          bson:"_id,omitempty"`
	UserID      string             `json:"user_id"     bson:"user_id"`
	Name        string             `json:"name"        bson:"name"`
	Description string             `json:"description" bson:"description"`
	Cards       []Card             `json:"cards"       bson:"cards"`
	CreatedAt   time.Time          `json:"created_at"  bson:"created_at"`
}

// DeckRequest is the JSON body for creating or updating a deck.
type DeckRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CardRequest is the JSON body for adding a card to a deck.
type CardRequest struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// ReviewRequest is the JSON body for reviewing a card.
type ReviewRequest struct {
	Grade string `json:"grade"` // again, good, or easy
}
