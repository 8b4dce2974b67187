// Package notify publishes auction state-change events for observers. Events
// are an audit trail, not a correctness mechanism: they are emitted after the
// owning transaction commits and failures are only logged.
package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/shopspring/decimal"
)

const (
	streamName       = "AUCTION_EVENTS"
	subjectBidRaised = "auction.events.bid_raised"
	subjectEnded     = "auction.events.ended"
	publishTimeout   = 5 * time.Second
	eventRetention   = 24 * time.Hour
)

// Event is the envelope published for every state change.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	AuctionID int64     `json:"auction_id"`
	Principal string    `json:"principal"`
	Amount    string    `json:"amount"`
	At        time.Time `json:"at"`
}

// NATSNotifier publishes events to a JetStream stream.
type NATSNotifier struct {
	js     jetstream.JetStream
	logger *log.Logger
}

func NewNATS(nc *nats.Conn, logger *log.Logger) (*NATSNotifier, error) {
	if logger == nil {
		logger = log.Default()
	}
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"auction.events.*"},
		Storage:  jetstream.FileStorage,
		MaxAge:   eventRetention,
	})
	if err != nil {
		return nil, err
	}

	return &NATSNotifier{js: js, logger: logger}, nil
}

func (n *NATSNotifier) BidRaised(ctx context.Context, auctionID int64, principal string, amount decimal.Decimal) {
	n.publish(ctx, subjectBidRaised, Event{
		ID:        uuid.NewString(),
		Type:      "bid_raised",
		AuctionID: auctionID,
		Principal: principal,
		Amount:    amount.String(),
		At:        time.Now().UTC(),
	})
}

func (n *NATSNotifier) AuctionEnded(ctx context.Context, auctionID int64, winner string, amount decimal.Decimal) {
	n.publish(ctx, subjectEnded, Event{
		ID:        uuid.NewString(),
		Type:      "ended",
		AuctionID: auctionID,
		Principal: winner,
		Amount:    amount.String(),
		At:        time.Now().UTC(),
	})
}

func (n *NATSNotifier) publish(ctx context.Context, subject string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Printf("WARN: marshal %s event: %v", event.Type, err)
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if _, err := n.js.Publish(pubCtx, subject, payload); err != nil {
		n.logger.Printf("WARN: publish %s event for auction %d: %v", event.Type, event.AuctionID, err)
	}
}
