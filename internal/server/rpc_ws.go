package server

import (
	"context"
	"errors"
	"net/http"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"
)

// wsChannel carries jrpc2 messages over one WebSocket connection, one
// message per text frame.
type wsChannel struct {
	conn *cws.Conn
	ctx  context.Context
}

func (c *wsChannel) Send(data []byte) error {
	return c.conn.Write(c.ctx, cws.MessageText, data)
}

func (c *wsChannel) Recv() ([]byte, error) {
	_, data, err := c.conn.Read(c.ctx)
	return data, err
}

func (c *wsChannel) Close() error {
	return c.conn.Close(cws.StatusNormalClosure, "")
}

// serveWS upgrades the request and runs a dedicated jrpc2 server over it
// until the peer disconnects.
func (rs *RPCServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		rs.log.Warning("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	ch := &wsChannel{conn: conn, ctx: r.Context()}
	srv := jrpc2.NewServer(rs.methods, nil).Start(ch)
	if err := srv.Wait(); err != nil && !closedNormally(err) {
		rs.log.Debug("websocket session %s ended: %v", r.RemoteAddr, err)
	}
}

func closedNormally(err error) bool {
	return cws.CloseStatus(err) == cws.StatusNormalClosure ||
		cws.CloseStatus(err) == cws.StatusGoingAway ||
		errors.Is(err, context.Canceled)
}
