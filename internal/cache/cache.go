// Package cache is the fire-and-forget action historian. When Redis is not
// configured, Rdb stays nil and every publish is skipped; gameplay never
// depends on it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Rdb is the shared client, nil when Redis is disabled.
var Rdb *redis.Client

// Init connects to Redis at addr and pings it. An empty addr leaves the
// historian disabled.
func Init(addr string) error {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	Rdb = client
	return nil
}

// GameActionRecord is one historian entry for a mutating player action.
type GameActionRecord struct {
	RoomCode    string `json:"roomCode"`
	ActionIndex int    `json:"actionIndex"`
	ActorID     string `json:"actorId"`
	ActionType  string `json:"actionType"`
	CardID      string `json:"cardId,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// PublishGameAction appends the record to the room's action list in the
// background. Failures are logged and dropped.
func PublishGameAction(rec GameActionRecord) {
	if Rdb == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		data, err := json.Marshal(rec)
		if err != nil {
			logrus.WithError(err).Warn("historian: marshal action")
			return
		}
		key := fmt.Sprintf("room:%s:actions", rec.RoomCode)
		if err := Rdb.RPush(ctx, key, data).Err(); err != nil {
			logrus.WithError(err).WithField("room", rec.RoomCode).Warn("historian: push action")
		}
	}()
}
