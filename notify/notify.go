package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"clementus360/care-companion/config"
)

// Notifier delivers push notifications. Fire-and-forget: failures are
// logged, never propagated to the caller.
type Notifier interface {
	Send(token, title, body string)
}

const fcmURL = "https://fcm.googleapis.com/fcm/send"

// FCM sends through Firebase Cloud Messaging's HTTP endpoint.
type FCM struct {
	client *http.Client
}

func NewFCM() *FCM {
	return &FCM{client: &http.Client{Timeout: 10 * time.Second}}
}

func (f *FCM) Send(token, title, body string) {
	if token == "" {
		return
	}
	serverKey := os.Getenv("FCM_SERVER_KEY")
	if serverKey == "" {
		config.Logger.Warn("FCM_SERVER_KEY not set, skipping push notification")
		return
	}

	payload := map[string]interface{}{
		"to": token,
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		config.Logger.Errorf("Failed to marshal push payload: %v", err)
		return
	}

	req, err := http.NewRequest("POST", fcmURL, bytes.NewReader(jsonData))
	if err != nil {
		config.Logger.Errorf("Failed to create push request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+serverKey)

	resp, err := f.client.Do(req)
	if err != nil {
		config.Logger.Errorf("Failed to send notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		config.Logger.Errorf("Push notification returned status %d", resp.StatusCode)
	}
}

// Nop discards notifications. Used when push delivery is disabled.
type Nop struct{}

func (Nop) Send(token, title, body string) {}
