package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

type Spammer struct {
	writer    *kafka.Writer
	isRunning atomic.Bool
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	topic     string
	brokers   []string
	totalSent atomic.Int64
	startedAt time.Time
}

type SpamRequest struct {
	Rate     int    `json:"rate"`
	Duration string `json:"duration"`
}

func NewSpammer(brokers []string, topic string) *Spammer {
	ctx, cancel := context.WithCancel(context.Background())

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}

	return &Spammer{
		writer:    writer,
		ctx:       ctx,
		cancel:    cancel,
		topic:     topic,
		brokers:   brokers,
		startedAt: time.Now(),
	}
}

func (s *Spammer) StartSpam(rate int, duration time.Duration) {
	if s.isRunning.Load() {
		return
	}
	s.isRunning.Store(true)
	s.totalSent.Store(0)

	log.Printf("Starting spam: rate=%d msg/s, duration=%v", rate, duration)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.isRunning.Store(false)

		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()

		timer := time.NewTimer(duration)
		defer timer.Stop()

		for {
			select {
			case <-ticker.C:
				message := generateOrderEvent()
				jsonData, err := json.Marshal(message)
				if err != nil {
					log.Printf("Error marshaling message: %v", err)
					continue
				}

				err = s.writer.WriteMessages(s.ctx, kafka.Message{
					Value: jsonData,
					Time:  time.Now(),
				})
				if err != nil {
					log.Printf("Error sending message to Kafka: %v", err)
				} else {
					s.totalSent.Add(1)
				}

			case <-timer.C:
				log.Printf("Spam completed. Total sent: %d", s.totalSent.Load())
				return

			case <-s.ctx.Done():
				log.Printf("Spam stopped. Total sent: %d", s.totalSent.Load())
				return
			}
		}
	}()
}

func (s *Spammer) StopSpam() {
	if s.isRunning.Load() {
		s.cancel()
		s.wg.Wait()

		// Recreate context for next run
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
}

func (s *Spammer) Close() {
	s.StopSpam()
	s.writer.Close()
}

type menuEntry struct {
	original   string
	translated string
	price      int
}

var sampleMenu = []menuEntry{
	{"牛肉麵", "Beef Noodles", 180},
	{"招牌金湯酸菜", "Signature Golden Soup Pickled Cabbage", 90},
	{"經典奶油夏威夷義大利麵", "Hawaiian Cream Pasta", 260},
	{"滷肉飯", "Braised Pork Rice", 65},
	{"綠茶", "Green Tea", 30},
	{"泡菜鍋", "Kimchi Pot", 220},
	{"可樂", "Cola", 25},
	{"拿鐵", "Latte", 55},
}

var sampleStores = []struct {
	placeID string
	native  string
	display string
}{
	{"ChIJN1t_tDeuEmsRUsoyG83frY4", "老王牛肉麵", "Lao Wang Beef Noodles"},
	{"ChIJrTLr-GyuEmsRBfy61i59si0", "阿婆滷味", "Grandma's Braised Snacks"},
	{"ChIJP3Sa8ziYEmsRUKgyFmh9AQM", "小林食堂", "Kobayashi Diner"},
}

func generateOrderEvent() map[string]interface{} {
	store := sampleStores[rand.Intn(len(sampleStores))]

	itemCount := 1 + rand.Intn(3)
	items := make([]map[string]interface{}, 0, itemCount)
	total := 0
	for i := 0; i < itemCount; i++ {
		entry := sampleMenu[rand.Intn(len(sampleMenu))]
		qty := 1 + rand.Intn(3)
		total += entry.price * qty

		// Alternate between the legacy item shapes producers still use.
		switch i % 3 {
		case 0:
			items = append(items, map[string]interface{}{
				"id":       fmt.Sprintf("m-%d", rand.Intn(1000)),
				"name":     map[string]string{"original": entry.original, "translated": entry.translated},
				"qty":      qty,
				"price":    entry.price,
			})
		case 1:
			items = append(items, map[string]interface{}{
				"original_name":   entry.original,
				"translated_name": entry.translated,
				"quantity":        qty,
				"unit_price":      fmt.Sprintf("%d", entry.price),
			})
		default:
			items = append(items, map[string]interface{}{
				"item_name": entry.original,
				"qty":       qty,
			})
		}
	}

	return map[string]interface{}{
		"store_identifier":   store.placeID,
		"store_name":         store.native,
		"display_store_name": store.display,
		"items":              items,
		"total":              total,
		"target_language":    []string{"en", "zh-TW", "ja"}[rand.Intn(3)],
	}
}

func main() {
	brokers := []string{"kafka:9092"}
	if envBrokers := os.Getenv("KAFKA_BROKERS"); envBrokers != "" {
		brokers = []string{envBrokers}
	}

	topic := "order-events"
	if envTopic := os.Getenv("KAFKA_TOPIC"); envTopic != "" {
		topic = envTopic
	}

	spammer := NewSpammer(brokers, topic)
	defer spammer.Close()

	http.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req SpamRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if req.Rate <= 0 {
			req.Rate = 10
		}

		duration, err := time.ParseDuration(req.Duration)
		if err != nil {
			http.Error(w, "Invalid duration format: "+err.Error(), http.StatusBadRequest)
			return
		}

		spammer.StartSpam(req.Rate, duration)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":   "started",
			"rate":     req.Rate,
			"duration": duration.String(),
		})
	})

	http.HandleFunc("/stop", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		spammer.StopSpam()

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":     "stopped",
			"total_sent": spammer.totalSent.Load(),
		})
	})

	http.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"is_running": spammer.isRunning.Load(),
			"total_sent": spammer.totalSent.Load(),
		})
	})

	port := ":8082"
	if envPort := os.Getenv("SPAMMER_PORT"); envPort != "" {
		port = ":" + envPort
	}

	log.Printf("Spammer server started on %s", port)
	log.Printf("Endpoints: POST /start, POST /stop, GET /stats")
	log.Fatal(http.ListenAndServe(port, nil))
}
