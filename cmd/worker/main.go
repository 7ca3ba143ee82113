package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"worklog/internal/attendance"
	"worklog/internal/config"
	"worklog/internal/queue"
	"worklog/internal/store"
)

// Worker consumes record events and keeps the day's dashboard stats warm in
// Redis so the admin view can serve them without recomputing.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr, cfg.RedisTimeout)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "worklog:records")
	}

	repo := attendance.NewRepository(db.Client)
	cache := store.NewStatsCache(redisClient.Client)

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for record events...")
	for msg := range messages {
		if msg.Type != "record" {
			continue
		}
		log.Printf("record %s created, refreshing stats", string(msg.Body))

		if err := refreshStats(ctx, repo, cache); err != nil {
			log.Printf("stats refresh failed: %v", err)
			continue
		}

		time.Sleep(10 * time.Millisecond) // small delay between refreshes
	}

	log.Println("worker stopped")
}

// refreshStats recomputes today's dashboard tiles from Postgres and writes
// them to the cache.
func refreshStats(ctx context.Context, repo *attendance.Repository, cache *store.StatsCache) error {
	now := time.Now()

	records, err := repo.ListRecords(ctx, attendance.RecordFilter{Date: now.Format("2006-01-02")})
	if err != nil {
		return err
	}
	total, err := repo.CountProfiles(ctx)
	if err != nil {
		return err
	}

	return cache.Set(ctx, now, attendance.ComputeStats(total, records, now))
}
