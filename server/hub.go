package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/notargets/PlateFEM/fem"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

// Hub serves one websocket client. Requests are handled one at a time in
// arrival order, so a calculate always sees the mesh sent before it.
type Hub struct {
	id       uuid.UUID
	conn     *websocket.Conn
	srv      *Server
	log      log.FieldLogger
	analysis *fem.Analysis
	// request
	msg chan Msg
	// response
	reply chan Msg
}

func NewHub(srv *Server, conn *websocket.Conn) *Hub {
	id := uuid.New()
	return &Hub{
		id:    id,
		conn:  conn,
		srv:   srv,
		log:   srv.log.WithField("session", id.String()),
		msg:   make(chan Msg, 10),
		reply: make(chan Msg, 10),
	}
}

// handleResponse is the only writer on the connection
func (h *Hub) handleResponse(done chan<- struct{}) {
	defer close(done)
	for reply := range h.reply {
		_ = h.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := h.conn.WriteJSON(&reply); err != nil {
			h.log.WithError(err).Warn("write reply")
		}
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	if hello, err := newMsg(TypeSession, SessionContent{ID: h.id.String()}); err == nil {
		h.reply <- hello
	}
	for msg := range h.msg {
		h.reply <- h.dispatch(msg)
	}
}

func (h *Hub) dispatch(msg Msg) Msg {
	h.log.WithField("type", msg.Type).Debug("request")
	var (
		reply Msg
		err   error
	)
	switch msg.Type {
	case TypeMesh:
		reply, err = h.mesh(msg.Content)
	case TypeCalculate:
		reply, err = h.calculate()
	default:
		return errorMsg(KindProtocol, fmt.Errorf("no such type %q", msg.Type))
	}
	if err != nil {
		h.log.WithError(err).WithField("type", msg.Type).Info("request failed")
		return errorMsg(errorKind(err), err)
	}
	return reply
}

// mesh starts a new analysis. Fields missing from the content keep the
// server defaults. A failed request leaves the session without a mesh.
func (h *Hub) mesh(content json.RawMessage) (Msg, error) {
	h.analysis = nil
	cfg := h.srv.defaults
	if len(content) > 0 {
		if err := json.Unmarshal(content, &cfg); err != nil {
			return Msg{}, fmt.Errorf("mesh content: %v", err)
		}
	}
	a, err := fem.NewAnalysis(cfg, fem.WithFixedNodeRule(h.srv.rule), fem.WithLogger(h.log))
	if err != nil {
		return Msg{}, err
	}
	if err = a.CreateMesh(); err != nil {
		return Msg{}, err
	}
	h.analysis = a
	m, err := a.Mesh()
	if err != nil {
		return Msg{}, err
	}
	return newMsg(TypeMeshed, buildMeshed(m))
}

func (h *Hub) calculate() (Msg, error) {
	if h.analysis == nil {
		return Msg{}, fem.ErrNotMeshed
	}
	if err := h.analysis.Calculate(); err != nil {
		return Msg{}, err
	}
	out, err := buildCalculated(h.analysis)
	if err != nil {
		return Msg{}, err
	}
	return newMsg(TypeCalculated, out)
}
