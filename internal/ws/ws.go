// Package ws bridges websocket connections to the game layer. One session
// per connection; the session id is the player's identity for its lifetime.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Barisylp/Bigbang/internal/game"
)

const writeTimeout = 5 * time.Second

// Server accepts websocket connections and routes their messages to rooms.
type Server struct {
	store *game.Store

	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

type session struct {
	id   uuid.UUID
	conn *websocket.Conn

	writeMu sync.Mutex
}

// NewServer wires a transport over the given room store.
func NewServer(store *game.Store) *Server {
	return &Server{
		store:    store,
		sessions: make(map[uuid.UUID]*session),
	}
}

// inbound is the wire envelope for every client message.
type inbound struct {
	Type          string         `json:"type"`
	RoomCode      string         `json:"roomCode,omitempty"`
	PlayerName    string         `json:"playerName,omitempty"`
	CardID        string         `json:"cardId,omitempty"`
	TargetPlayer  string         `json:"targetPlayer,omitempty"`
	Target        string         `json:"target,omitempty"`
	MonsterCardID string         `json:"monsterCardId,omitempty"`
	DeckConfig    map[string]int `json:"deckConfig,omitempty"`
}

// HandleWS upgrades the request and runs the session's read loop until the
// connection drops. Disconnect removes the session from every room.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		logrus.WithError(err).Warn("ws: accept failed")
		return
	}

	sess := &session{id: uuid.New(), conn: conn}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log := logrus.WithField("session", sess.id)
	log.Info("session connected")

	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
		s.store.DropPlayer(sess.id)
		conn.Close(websocket.StatusNormalClosure, "")
		log.Info("session closed")
	}()

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError(sess, "malformed message")
			continue
		}
		s.route(sess, msg)
	}
}

func (s *Server) route(sess *session, msg inbound) {
	switch msg.Type {
	case "createRoom":
		s.handleCreateRoom(sess, msg)
	case "joinRoom":
		s.handleJoinRoom(sess, msg)
	default:
		room, ok := s.store.Get(strings.ToUpper(msg.RoomCode))
		if !ok {
			s.sendError(sess, game.ErrRoomNotFound.Error())
			return
		}
		room.HandleAction(sess.id, toAction(msg))
	}
}

func (s *Server) handleCreateRoom(sess *session, msg inbound) {
	room := s.store.Create()
	room.BroadcastToPlayerFn = s.sendToPlayer
	if err := room.Join(sess.id, playerName(msg)); err != nil {
		s.sendError(sess, err.Error())
		return
	}
	s.send(sess, game.Event{
		Type:    game.EventRoomCreated,
		Payload: map[string]interface{}{"roomCode": room.Code, "playerId": sess.id},
	})
}

func (s *Server) handleJoinRoom(sess *session, msg inbound) {
	room, ok := s.store.Get(strings.ToUpper(msg.RoomCode))
	if !ok {
		s.sendError(sess, game.ErrRoomNotFound.Error())
		return
	}
	if err := room.Join(sess.id, playerName(msg)); err != nil {
		s.sendError(sess, err.Error())
	}
}

// sendToPlayer is the broadcast callback injected into every room.
func (s *Server) sendToPlayer(playerID uuid.UUID, ev game.Event) {
	s.mu.Lock()
	sess, ok := s.sessions[playerID]
	s.mu.Unlock()
	if ok {
		s.send(sess, ev)
	}
}

func (s *Server) send(sess *session, ev game.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logrus.WithError(err).Error("ws: marshal event")
		return
	}
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := sess.conn.Write(ctx, websocket.MessageText, data); err != nil {
		logrus.WithError(err).WithField("session", sess.id).Debug("ws: write failed")
	}
}

func (s *Server) sendError(sess *session, msg string) {
	s.send(sess, game.Event{
		Type:    game.EventError,
		Payload: map[string]interface{}{"message": msg},
	})
}

func toAction(msg inbound) game.Action {
	target, _ := uuid.Parse(msg.TargetPlayer)
	return game.Action{
		Type:          game.ActionType(msg.Type),
		CardID:        msg.CardID,
		TargetPlayer:  target,
		Target:        msg.Target,
		MonsterCardID: msg.MonsterCardID,
		DeckConfig:    msg.DeckConfig,
	}
}

func playerName(msg inbound) string {
	name := strings.TrimSpace(msg.PlayerName)
	if name == "" {
		name = "Oyuncu"
	}
	return name
}
