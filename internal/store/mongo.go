package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lifehubapp/backend/internal/models"
)

// DeckStore handles flashcard deck CRUD in MongoDB. Every filter includes
// user_id so a deck is only ever visible to its owner.
type DeckStore struct {
	col *mongo.Collection
}

func NewDeckStore(db *mongo.Database) *DeckStore {
	return &DeckStore{col: db.Collection("decks")}
}

func deckFilter(userID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": oid, "user_id": userID}, nil
}

func (s *DeckStore) Insert(ctx context.Context, deck *models.Deck) (*models.Deck, error) {
	deck.CreatedAt = time.Now()
	if deck.Cards == nil {
		deck.Cards = []models.Card{}
	}
	res, err := s.col.InsertOne(ctx, deck)
	if err != nil {
		return nil, err
	}
	deck.ID = res.InsertedID.(primitive.ObjectID)
	return deck, nil
}

func (s *DeckStore) ListByUser(ctx context.Context, userID string) ([]models.Deck, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	decks := []models.Deck{}
	if err := cur.All(ctx, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}

func (s *DeckStore) GetByID(ctx context.Context, userID, id string) (*models.Deck, error) {
	filter, err := deckFilter(userID, id)
	if err != nil {
		return nil, err
	}
	var deck models.Deck
	if err := s.col.FindOne(ctx, filter).Decode(&deck); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deck, nil
}

func (s *DeckStore) Update(ctx context.Context, userID, id, name, description string) (*models.Deck, error) {
	filter, err := deckFilter(userID, id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"name": name, "description": description}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var deck models.Deck
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&deck); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deck, nil
}

func (s *DeckStore) Delete(ctx context.Context, userID, id string) error {
	filter, err := deckFilter(userID, id)
	if err != nil {
		return err
	}
	res, err := s.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DeckStore) AddCard(ctx context.Context, userID, id string, card models.Card) (*models.Deck, error) {
	filter, err := deckFilter(userID, id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$push": bson.M{"cards": card}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var deck models.Deck
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&deck); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deck, nil
}

func (s *DeckStore) DeleteCard(ctx context.Context, userID, id, cardID string) (*models.Deck, error) {
	filter, err := deckFilter(userID, id)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$pull": bson.M{"cards": bson.M{"id": cardID}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var deck models.Deck
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&deck); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deck, nil
}

// UpdateCard replaces the matching embedded card in place.
func (s *DeckStore) UpdateCard(ctx context.Context, userID, id string, card models.Card) (*models.Deck, error) {
	filter, err := deckFilter(userID, id)
	if err != nil {
		return nil, err
	}
	filter["cards.id"] = card.ID
	update := bson.M{"$set": bson.M{"cards.$": card}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var deck models.Deck
	if err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&deck); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &deck, nil
}
