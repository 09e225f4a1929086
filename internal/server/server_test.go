package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/benbeisheim/chess-backend/internal/chess"
	"github.com/benbeisheim/chess-backend/internal/config"
	"github.com/benbeisheim/chess-backend/internal/model"
)

type client struct {
	t   *testing.T
	srv *Server
}

func newClient(t *testing.T) *client {
	cfg := config.Default()
	cfg.WebDir = t.TempDir()
	return &client{t: t, srv: New(cfg, zerolog.Nop())}
}

// do sends a JSON request and decodes the JSON response into out, if given.
func (c *client) do(method, path, token string, body, out interface{}) int {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := c.srv.App.Test(req, -1)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (c *client) register(username string) string {
	c.t.Helper()
	var auth model.AuthData
	body := map[string]string{"username": username, "password": "pw-" + username, "email": username + "@example.com"}
	if status := c.do(http.MethodPost, "/user", "", body, &auth); status != http.StatusOK {
		c.t.Fatalf("register %s: status %d", username, status)
	}
	return auth.AuthToken
}

type errorBody struct {
	Message string `json:"message"`
}

func TestAccountFlow(t *testing.T) {
	c := newClient(t)
	c.register("alice")

	var e errorBody
	if status := c.do(http.MethodPost, "/user", "", map[string]string{"username": "alice", "password": "x"}, &e); status != http.StatusForbidden {
		t.Errorf("duplicate register status = %d, want 403", status)
	}
	if e.Message != "Error: username already taken" {
		t.Errorf("message = %q", e.Message)
	}
	if status := c.do(http.MethodPost, "/user", "", map[string]string{"username": "bob"}, nil); status != http.StatusBadRequest {
		t.Errorf("register without password status = %d, want 400", status)
	}

	var auth model.AuthData
	if status := c.do(http.MethodPost, "/session", "", map[string]string{"username": "alice", "password": "pw-alice"}, &auth); status != http.StatusOK {
		t.Fatalf("login status = %d", status)
	}
	if auth.Username != "alice" || auth.AuthToken == "" {
		t.Errorf("login = %+v", auth)
	}
	if status := c.do(http.MethodPost, "/session", "", map[string]string{"username": "alice", "password": "bad"}, nil); status != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", status)
	}

	if status := c.do(http.MethodDelete, "/session", auth.AuthToken, nil, nil); status != http.StatusOK {
		t.Errorf("logout status = %d", status)
	}
	if status := c.do(http.MethodDelete, "/session", auth.AuthToken, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("second logout status = %d, want 401", status)
	}
	if status := c.do(http.MethodGet, "/game", auth.AuthToken, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("list games after logout status = %d, want 401", status)
	}
}

func TestGameFlow(t *testing.T) {
	c := newClient(t)
	alice, bob := c.register("alice"), c.register("bob")

	var created struct {
		GameID string `json:"gameID"`
	}
	if status := c.do(http.MethodPost, "/game", alice, map[string]string{"gameName": "friendly"}, &created); status != http.StatusOK {
		t.Fatalf("create status = %d", status)
	}
	if status := c.do(http.MethodPost, "/game", alice, map[string]string{}, nil); status != http.StatusBadRequest {
		t.Errorf("create without name status = %d, want 400", status)
	}

	join := func(token, color string) int {
		return c.do(http.MethodPut, "/game", token, map[string]string{"gameID": created.GameID, "playerColor": color}, nil)
	}
	if status := join(alice, "WHITE"); status != http.StatusOK {
		t.Fatalf("alice join status = %d", status)
	}
	if status := join(bob, "WHITE"); status != http.StatusForbidden {
		t.Errorf("bob join taken color status = %d, want 403", status)
	}
	if status := join(bob, "BLACK"); status != http.StatusOK {
		t.Fatalf("bob join status = %d", status)
	}

	var list struct {
		Games []model.GameSummary `json:"games"`
	}
	c.do(http.MethodGet, "/game", bob, nil, &list)
	want := []model.GameSummary{{GameID: created.GameID, GameName: "friendly", WhiteUsername: "alice", BlackUsername: "bob"}}
	if diff := cmp.Diff(want, list.Games); diff != "" {
		t.Errorf("game list mismatch (-want +got):\n%s", diff)
	}

	var hints model.LegalMovesReply
	if status := c.do(http.MethodGet, "/game/"+created.GameID+"/moves?row=1&col=7", alice, nil, &hints); status != http.StatusOK {
		t.Fatalf("moves status = %d", status)
	}
	wantHints := []model.LegalMove{{End: chess.Position{Row: 3, Col: 6}}, {End: chess.Position{Row: 3, Col: 8}}}
	if diff := cmp.Diff(wantHints, hints.Moves); diff != "" {
		t.Errorf("knight hints mismatch (-want +got):\n%s", diff)
	}
	if status := c.do(http.MethodGet, "/game/"+created.GameID+"/moves?row=4&col=4", alice, nil, nil); status != http.StatusBadRequest {
		t.Errorf("hints for empty square status = %d, want 400", status)
	}
	if status := c.do(http.MethodGet, "/game/"+created.GameID+"/moves?row=9&col=4", alice, nil, nil); status != http.StatusBadRequest {
		t.Errorf("hints off board status = %d, want 400", status)
	}

	movePath := "/game/" + created.GameID + "/move"
	e2e4 := model.WSMove{Start: chess.Position{Row: 2, Col: 5}, End: chess.Position{Row: 4, Col: 5}}
	if status := c.do(http.MethodPost, movePath, bob, e2e4, nil); status != http.StatusForbidden {
		t.Errorf("bob moving on white's turn status = %d, want 403", status)
	}
	var e errorBody
	illegal := model.WSMove{Start: chess.Position{Row: 2, Col: 5}, End: chess.Position{Row: 5, Col: 5}}
	if status := c.do(http.MethodPost, movePath, alice, illegal, &e); status != http.StatusBadRequest {
		t.Errorf("illegal move status = %d, want 400", status)
	}
	if e.Message != "Error: invalid move e2e5: not a legal move" {
		t.Errorf("illegal move message = %q", e.Message)
	}

	var state model.GameState
	if status := c.do(http.MethodPost, movePath, alice, e2e4, &state); status != http.StatusOK {
		t.Fatalf("move status = %d", status)
	}
	if state.ToMove != chess.Black {
		t.Errorf("toMove = %v, want black", state.ToMove)
	}
	if p := state.Board.Board[3][4]; p == nil || *p != chess.NewPiece(chess.White, chess.Pawn) {
		t.Errorf("e4 = %v, want white pawn", p)
	}
	if state.Board.Board[1][4] != nil {
		t.Errorf("e2 = %v, want empty", state.Board.Board[1][4])
	}

	var fetched model.GameState
	if status := c.do(http.MethodGet, "/game/"+created.GameID, bob, nil, &fetched); status != http.StatusOK {
		t.Fatalf("state status = %d", status)
	}
	if diff := cmp.Diff(state, fetched); diff != "" {
		t.Errorf("fetched state differs from move response (-move +get):\n%s", diff)
	}

	if status := c.do(http.MethodGet, "/game/missing", bob, nil, nil); status != http.StatusNotFound {
		t.Errorf("missing game status = %d, want 404", status)
	}
}

func TestLoadPositionReportsMate(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")

	var created struct {
		GameID string `json:"gameID"`
	}
	c.do(http.MethodPost, "/game", alice, map[string]string{"gameName": "puzzle"}, &created)
	boardPath := "/game/" + created.GameID + "/board"

	var state model.GameState
	if status := c.do(http.MethodPut, boardPath, alice, map[string]string{"fen": "k7/8/8/8/8/8/PP6/K6q w - - 0 1"}, &state); status != http.StatusOK {
		t.Fatalf("load status = %d", status)
	}
	if state.Resolve == nil || *state.Resolve != "checkmate" {
		t.Errorf("resolve = %v, want checkmate", state.Resolve)
	}
	want := chess.Status{InCheck: true, Checkmate: true}
	if diff := cmp.Diff(want, state.Status); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}

	if status := c.do(http.MethodPut, boardPath, alice, map[string]string{"fen": "8/8/8/8/8/8/8/K7 w - - 0 1"}, nil); status != http.StatusBadRequest {
		t.Errorf("kingless position status = %d, want 400", status)
	}
}

func TestClearDB(t *testing.T) {
	c := newClient(t)
	alice := c.register("alice")
	c.do(http.MethodPost, "/game", alice, map[string]string{"gameName": "g"}, nil)

	if status := c.do(http.MethodDelete, "/db", "", nil, nil); status != http.StatusOK {
		t.Fatalf("clear status = %d", status)
	}
	if status := c.do(http.MethodGet, "/game", alice, nil, nil); status != http.StatusUnauthorized {
		t.Errorf("token survived clear: status = %d", status)
	}
	if n := len(c.srv.GameService.ListGames()); n != 0 {
		t.Errorf("games after clear = %d", n)
	}
	c.register("alice")
}
