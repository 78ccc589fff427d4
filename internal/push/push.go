// Package push sends web push notifications to registered browser
// subscriptions using VAPID.
package push

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/doktu-co/notify/internal/model"
	"github.com/doktu-co/notify/internal/store"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// ErrExpired is returned when a push subscription is no longer valid (410 Gone).
var ErrExpired = errors.New("push subscription expired")

// ErrNoSubscriptions is returned when a user has no registered endpoints.
// Retrying cannot help until the user subscribes again.
var ErrNoSubscriptions = errors.New("user has no push subscriptions")

// Payload is the JSON sent to the push service.
type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// Service sends to a single subscription.
type Service struct {
	publicKey  string
	privateKey string
	subscriber string
}

// NewService creates a push service with VAPID keys. The subscriber is the
// contact address push services may use to reach the operator.
func NewService(publicKey, privateKey, subscriber string) *Service {
	return &Service{
		publicKey:  publicKey,
		privateKey: privateKey,
		subscriber: subscriber,
	}
}

// VAPIDPublicKey returns the VAPID public key for client-side subscription.
func (s *Service) VAPIDPublicKey() string {
	return s.publicKey
}

// Configured returns true if VAPID keys are set.
func (s *Service) Configured() bool {
	return s.publicKey != "" && s.privateKey != ""
}

// Send sends a push notification to one subscription.
func (s *Service) Send(sub *model.PushSubscription, payload Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	resp, err := webpush.SendNotification(data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		Subscriber:      s.subscriber,
		TTL:             86400,
	})
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		return ErrExpired
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}

	return nil
}

// Dispatcher fans a message out to all of a user's subscriptions, pruning
// endpoints the push service reports gone.
type Dispatcher struct {
	service *Service
	subs    *store.SubscriptionStore
}

func NewDispatcher(service *Service, subs *store.SubscriptionStore) *Dispatcher {
	return &Dispatcher{service: service, subs: subs}
}

// SendToUser pushes to every registered endpoint for the user. Expired
// endpoints are deleted and do not count as failures; the send succeeds if
// at least one endpoint accepted the message.
func (d *Dispatcher) SendToUser(ctx context.Context, userID int64, title, body, url string) error {
	if !d.service.Configured() {
		return fmt.Errorf("push service not configured: missing VAPID keys")
	}

	subs, err := d.subs.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return ErrNoSubscriptions
	}

	payload := Payload{Title: title, Body: body, URL: url}

	delivered := 0
	var lastErr error
	for i := range subs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := d.service.Send(&subs[i], payload); err != nil {
			if errors.Is(err, ErrExpired) {
				d.subs.DeleteByEndpoint(subs[i].Endpoint)
				continue
			}
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 {
		if lastErr != nil {
			return lastErr
		}
		return ErrNoSubscriptions
	}
	return nil
}

// GenerateVAPIDKeys generates a new ECDSA P-256 key pair for VAPID.
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return "", "", fmt.Errorf("generate ECDSA key: %w", err)
	}

	pubBytes := elliptic.Marshal(elliptic.P256(), key.PublicKey.X, key.PublicKey.Y)
	publicKey = base64.RawURLEncoding.EncodeToString(pubBytes)
	privateKey = base64.RawURLEncoding.EncodeToString(key.D.Bytes())

	return publicKey, privateKey, nil
}
