package notify

import (
	"context"
	"errors"
	"os"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCM multicast calls accept at most 500 tokens.
const multicastLimit = 500

// FCMSender sends notifications through Firebase Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
}

var (
	fcmMu     sync.Mutex
	fcmShared *FCMSender
)

// InitFCM builds the process-wide FCM client from the service-account
// credential file named by FIREBASE_CREDENTIALS_FILE. Idempotent: repeated
// calls return the same instance until ShutdownFCM.
func InitFCM(ctx context.Context) (*FCMSender, error) {
	fcmMu.Lock()
	defer fcmMu.Unlock()
	if fcmShared != nil {
		return fcmShared, nil
	}

	credFile := os.Getenv("FIREBASE_CREDENTIALS_FILE")
	if credFile == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_FILE is not set")
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		return nil, err
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, err
	}

	fcmShared = &FCMSender{client: client}
	return fcmShared, nil
}

// ShutdownFCM drops the shared client. A later InitFCM rebuilds it.
func ShutdownFCM() {
	fcmMu.Lock()
	defer fcmMu.Unlock()
	fcmShared = nil
}

func (s *FCMSender) Send(ctx context.Context, n Notification) error {
	tokens := n.Tokens
	for len(tokens) > 0 {
		batch := tokens
		if len(batch) > multicastLimit {
			batch = batch[:multicastLimit]
		}
		tokens = tokens[len(batch):]

		msg := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: n.Title,
				Body:  n.Body,
			},
			Data: n.Data,
		}
		if _, err := s.client.SendEachForMulticast(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}
