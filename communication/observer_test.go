package communication

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feud/engine"
	"feud/game"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func startObserver(t *testing.T, options ...ObserverOption) (*engine.Controller, *httptest.Server) {
	t.Helper()
	c := engine.NewController(nil)
	o := NewObserver(c, options...)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go c.Run(ctx)

	srv := httptest.NewServer(o.Handler())
	t.Cleanup(srv.Close)
	return c, srv
}

func postMove(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/move", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestObserverAPI(t *testing.T) {
	c, srv := startObserver(t)

	t.Run("ping", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/ping")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("board snapshot", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/board")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var snapshot game.Snapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
		require.Equal(t, "Black", snapshot.Turn)
		require.Equal(t, "SWAP", snapshot.Phase)
		require.Len(t, snapshot.Cells, game.Cells)
	})

	t.Run("invalid payload", func(t *testing.T) {
		resp := postMove(t, srv, "not json")
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("illegal move", func(t *testing.T) {
		resp := postMove(t, srv, `{"move": "a1 c1"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Contains(t, body["error"], "cannot be swapped")
	})

	t.Run("legal move", func(t *testing.T) {
		resp := postMove(t, srv, `{"move": "a1 b1"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var snapshot game.Snapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
		require.Equal(t, "ACTION", snapshot.Phase)
		require.Equal(t, game.ActionPhase, c.Board().Phase())
	})
}

func TestObserverReadOnly(t *testing.T) {
	c, srv := startObserver(t, ReadOnly())
	resp := postMove(t, srv, `{"move": "a1 b1"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, game.SwapPhase, c.Board().Phase())
}

func TestObserverWebsocket(t *testing.T) {
	_, srv := startObserver(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() wsMessage {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg))
		return msg
	}

	first := read()
	require.Equal(t, "board", first.Type)

	resp := postMove(t, srv, `{"move": "a1 b1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tiles []game.PieceView
	for {
		msg := read()
		if msg.Type == "tile" {
			var view game.PieceView
			require.NoError(t, json.Unmarshal(msg.Payload, &view))
			tiles = append(tiles, view)
			continue
		}
		require.Equal(t, "turn", msg.Type)
		var turn turnPayload
		require.NoError(t, json.Unmarshal(msg.Payload, &turn))
		if turn.Phase == "SWAP" {
			// Start-of-game announcement
			tiles = nil
			continue
		}
		require.Equal(t, turnPayload{Turn: "Black", Phase: "ACTION"}, turn)
		break
	}
	require.Len(t, tiles, 2)
	require.Equal(t, "a1", tiles[0].Pos)
	require.Equal(t, "King", tiles[0].Kind)
}
