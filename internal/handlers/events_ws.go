package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/glucolife/glucolife-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS middleware does not apply to WebSocket upgrades
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range appConfig.AllowedOrigins {
			if a == origin {
				return true
			}
		}
		return false
	},
}

// changeEvent is one notification pushed to a WebSocket client. Payload-less:
// clients re-fetch the affected collection over HTTP.
type changeEvent struct {
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

// EventsWS handles GET /ws/events: a push channel for change notifications.
// Everyone gets the shared posts topic; a valid ?token= adds the caller's
// own meals topic.
func EventsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events := make(chan changeEvent, 16)
	notify := func(topic string) func() {
		return func() {
			select {
			case events <- changeEvent{Topic: topic, Timestamp: time.Now()}:
			default:
				// Slow client; it will re-sync on its next fetch anyway
			}
		}
	}

	disposers := []func(){
		eventBus.Subscribe(services.TopicPostsChanged, notify(services.TopicPostsChanged)),
	}
	if userID, ok := services.ValidateSession(r.URL.Query().Get("token")); ok {
		topic := services.TopicMealsChanged(userID)
		disposers = append(disposers, eventBus.Subscribe(topic, notify(topic)))
	}
	defer func() {
		for _, dispose := range disposers {
			dispose()
		}
	}()

	// Reader: only there to detect the client going away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case ev := <-events:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}
