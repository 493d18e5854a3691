package app

import (
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/imu_visualizer/internal/config"
	"github.com/relabs-tech/imu_visualizer/internal/ingest"
	"github.com/relabs-tech/imu_visualizer/internal/visualizer"
)

// newWebMux builds the routes serving the visualizer's live state: the
// latest pose as JSON, ingest counters, the pose websocket stream and
// the artificial-horizon frame as PNG.
func newWebMux(loop *visualizer.Loop, ing *ingest.Loop, hub *visualizer.WebsocketHub, horizon *visualizer.HorizonSink) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/orientation", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(loop.Snapshot()); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ing.Stats()); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	mux.Handle("/ws", hub)

	mux.HandleFunc("/horizon.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		if err := png.Encode(w, horizon.Frame()); err != nil {
			log.Printf("web: png encode error: %v", err)
		}
	})

	// Static files from ./web as the root (3D view assets)
	mux.Handle("/", http.FileServer(http.Dir("web")))

	return mux
}

// startWebServer serves the visualizer's web routes on its own
// goroutine; the server lives for the rest of the process.
func startWebServer(loop *visualizer.Loop, ing *ingest.Loop, hub *visualizer.WebsocketHub, horizon *visualizer.HorizonSink, port int) {
	mux := newWebMux(loop, ing, hub, horizon)
	addr := fmt.Sprintf(":%d", port)
	log.Printf("web: server listening on %s", addr)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("web: server error: %v", err)
		}
	}()
}

// RunWeb is the standalone dashboard: it subscribes to the pose topic
// over MQTT and serves the latest pose, for machines that are not
// attached to the serial device.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu       sync.RWMutex
		lastPose visualizer.RenderPose
		havePose bool
	)

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p visualizer.RenderPose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("web: MQTT payload unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastPose = p
		havePose = true
		mu.Unlock()
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: subscribed to MQTT topic %s", cfg.TopicPose)

	http.HandleFunc("/api/orientation", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !havePose {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastPose); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.Handle("/", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
