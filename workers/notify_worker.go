package workers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"perk-boost-system/events"
	"perk-boost-system/utils"
)

// NotifyClient forwards engine events to the external notification service.
// Delivery is advisory: a failed POST is logged and dropped, never retried —
// the notifier is not a source of truth for anything.
type NotifyClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewNotifyClient reads the notifier endpoint from the environment. Returns
// nil when NOTIFY_SERVICE_URL is unset, which disables forwarding entirely.
func NewNotifyClient() *NotifyClient {
	baseURL := os.Getenv("NOTIFY_SERVICE_URL")
	if baseURL == "" {
		log.Println("⚠️  NOTIFY_SERVICE_URL not set — event forwarding to notifier disabled")
		return nil
	}

	return &NotifyClient{
		BaseURL:    baseURL,
		Token:      os.Getenv("PERK_SERVICE_TOKEN"),
		HTTPClient: utils.HTTPClient,
	}
}

// Forward POSTs one event envelope to the notifier.
func (c *NotifyClient) Forward(eventType events.Type, payload interface{}) error {
	body, err := json.Marshal(map[string]interface{}{
		"event":   string(eventType),
		"payload": payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	req, err := http.NewRequest("POST", c.BaseURL+"/api/v1/internal/events", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call notifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notifier returned status %d: %s", resp.StatusCode, string(msg))
	}
	return nil
}

// AttachNotifier subscribes the client to both engine event streams. A nil
// client leaves the bus untouched.
func AttachNotifier(bus *events.Bus, client *NotifyClient) {
	if client == nil {
		return
	}

	handler := func(eventType events.Type, payload interface{}) {
		if err := client.Forward(eventType, payload); err != nil {
			log.Printf("⚠️ [NOTIFY] dropping %s event: %v", eventType, err)
		}
	}
	bus.Subscribe(events.BoostActivated, handler)
	bus.Subscribe(events.BoostExpired, handler)
	log.Println("✅ Notifier forwarding attached to event bus")
}
