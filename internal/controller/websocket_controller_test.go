package controller

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/benbeisheim/chess-backend/internal/ws"
)

type recordingConn struct {
	mu     sync.Mutex
	msgs   []ws.Message
	closed bool
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, v.(ws.Message))
	return nil
}

func (r *recordingConn) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// take returns the messages received since the last call.
func (r *recordingConn) take() []ws.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	msgs := r.msgs
	r.msgs = nil
	return msgs
}

type wsFixture struct {
	wsc    *WebSocketController
	gameID string
	conns  map[string]*recordingConn
}

// newWSFixture seats alice as white and bob as black, connects both plus the
// spectator dave, and discards the initial state pushes.
func newWSFixture(t *testing.T) *wsFixture {
	t.Helper()
	gs := service.NewGameService(service.NewGameManager(zerolog.Nop()))
	gameID, err := gs.CreateGame("ws")
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	f := &wsFixture{
		wsc:    NewWebSocketController(gs, zerolog.Nop()),
		gameID: gameID,
		conns:  map[string]*recordingConn{},
	}
	for user, color := range map[string]string{"alice": "white", "bob": "black"} {
		if err := gs.JoinGame(gameID, user, color); err != nil {
			t.Fatalf("JoinGame(%s): %v", user, err)
		}
	}
	for _, user := range []string{"alice", "bob", "dave"} {
		conn := &recordingConn{}
		if !f.wsc.open(gameID, user, conn) {
			t.Fatalf("open(%s) failed: %v", user, conn.take())
		}
		if msgs := conn.take(); len(msgs) != 1 || msgs[0].Type != ws.MessageTypeGameState {
			t.Fatalf("%s initial messages = %v, want one gameState", user, msgs)
		}
		f.conns[user] = conn
	}
	return f
}

func (f *wsFixture) send(t *testing.T, user string, typ ws.MessageType, payload interface{}) {
	t.Helper()
	msg, err := ws.NewMessage(typ, payload)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	f.wsc.handleRaw(f.gameID, user, raw)
}

// expectError checks that only user received a message, an error containing want.
func (f *wsFixture) expectError(t *testing.T, user, want string) {
	t.Helper()
	for name, conn := range f.conns {
		msgs := conn.take()
		if name != user {
			if len(msgs) != 0 {
				t.Errorf("%s received %v, want nothing", name, msgs)
			}
			continue
		}
		if len(msgs) != 1 || msgs[0].Type != ws.MessageTypeError {
			t.Fatalf("%s received %v, want one error", name, msgs)
		}
		var payload ws.ErrorPayload
		if err := json.Unmarshal(msgs[0].Payload, &payload); err != nil {
			t.Fatalf("decode error payload: %v", err)
		}
		if !strings.Contains(payload.Message, want) {
			t.Errorf("error message = %q, want it to contain %q", payload.Message, want)
		}
	}
}

func TestWebSocketMoveIsBroadcast(t *testing.T) {
	f := newWSFixture(t)
	e2e4 := model.WSMove{Start: chess.Position{Row: 2, Col: 5}, End: chess.Position{Row: 4, Col: 5}}
	f.send(t, "alice", ws.MessageTypeMove, e2e4)

	for name, conn := range f.conns {
		msgs := conn.take()
		if len(msgs) != 1 || msgs[0].Type != ws.MessageTypeGameState {
			t.Fatalf("%s received %v, want one gameState", name, msgs)
		}
		var state model.GameState
		if err := json.Unmarshal(msgs[0].Payload, &state); err != nil {
			t.Fatalf("decode state: %v", err)
		}
		if state.ToMove != chess.Black || state.LastMove == nil || *state.LastMove != e2e4.ToMove() {
			t.Errorf("%s state: toMove=%s lastMove=%v", name, state.ToMove, state.LastMove)
		}
	}
}

func TestWebSocketRejectedMoveGoesToSender(t *testing.T) {
	f := newWSFixture(t)
	tests := []struct {
		name string
		user string
		move model.WSMove
		want string
	}{
		{
			name: "illegal destination",
			user: "alice",
			move: model.WSMove{Start: chess.Position{Row: 2, Col: 5}, End: chess.Position{Row: 5, Col: 5}},
			want: chess.ReasonIllegal,
		},
		{
			name: "out of turn",
			user: "bob",
			move: model.WSMove{Start: chess.Position{Row: 7, Col: 5}, End: chess.Position{Row: 5, Col: 5}},
			want: model.ErrNotYourTurn.Error(),
		},
		{
			name: "spectator",
			user: "dave",
			move: model.WSMove{Start: chess.Position{Row: 2, Col: 5}, End: chess.Position{Row: 4, Col: 5}},
			want: model.ErrNotPlayer.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.send(t, tt.user, ws.MessageTypeMove, tt.move)
			f.expectError(t, tt.user, tt.want)
		})
	}
}

func TestWebSocketLegalMoves(t *testing.T) {
	f := newWSFixture(t)
	knight := chess.Position{Row: 1, Col: 2}
	f.send(t, "dave", ws.MessageTypeLegalMoves, model.LegalMovesRequest{Position: knight})

	for name, conn := range f.conns {
		msgs := conn.take()
		if name != "dave" {
			if len(msgs) != 0 {
				t.Errorf("%s received %v, want nothing", name, msgs)
			}
			continue
		}
		if len(msgs) != 1 || msgs[0].Type != ws.MessageTypeLegalMoves {
			t.Fatalf("dave received %v, want one legalMoves reply", msgs)
		}
		var reply model.LegalMovesReply
		if err := json.Unmarshal(msgs[0].Payload, &reply); err != nil {
			t.Fatalf("decode reply: %v", err)
		}
		want := model.LegalMovesReply{
			Position: knight,
			Moves: []model.LegalMove{
				{End: chess.Position{Row: 3, Col: 1}},
				{End: chess.Position{Row: 3, Col: 3}},
			},
		}
		if diff := cmp.Diff(want, reply); diff != "" {
			t.Errorf("legalMoves reply mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestWebSocketBadMessages(t *testing.T) {
	f := newWSFixture(t)

	f.send(t, "bob", "resign", struct{}{})
	f.expectError(t, "bob", "unknown message type: resign")

	f.wsc.handleRaw(f.gameID, "alice", []byte(`{"type": "move", "payload":`))
	f.expectError(t, "alice", "malformed message")

	f.wsc.handleRaw(f.gameID, "alice", []byte(`{"type": "legalMoves", "payload": {"position": {"row": 4, "col": 4}}}`))
	f.expectError(t, "alice", chess.ErrNoPiece.Error())
}

func TestWebSocketOpenUnknownGame(t *testing.T) {
	f := newWSFixture(t)
	conn := &recordingConn{}
	if f.wsc.open("missing", "erin", conn) {
		t.Fatal("open succeeded for an unknown game")
	}
	msgs := conn.take()
	if len(msgs) != 1 || msgs[0].Type != ws.MessageTypeError {
		t.Fatalf("received %v, want one error", msgs)
	}
	var payload ws.ErrorPayload
	if err := json.Unmarshal(msgs[0].Payload, &payload); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if payload.Message != service.ErrGameNotFound.Error() {
		t.Errorf("error message = %q, want %q", payload.Message, service.ErrGameNotFound.Error())
	}
}
