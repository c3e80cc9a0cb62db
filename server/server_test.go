package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/notargets/PlateFEM/fem"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var singleElement = fem.PlateConfig{
	Width:         1000,
	Height:        1000,
	Thickness:     10,
	Pressure:      1,
	Young:         200000,
	Poisson:       0.3,
	HElementCount: 1,
	VElementCount: 1,
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	logger, _ := test.NewNullLogger()
	s := NewServer("", websocket.Upgrader{}, WithDefaults(singleElement), WithLogger(logger))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	var hello Msg
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, TypeSession, hello.Type)
	var session SessionContent
	require.NoError(t, json.Unmarshal(hello.Content, &session))
	_, err = uuid.Parse(session.ID)
	require.NoError(t, err)
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, typ string, content interface{}) Msg {
	t.Helper()
	req := Msg{Type: typ}
	if content != nil {
		data, err := json.Marshal(content)
		require.NoError(t, err)
		req.Content = data
	}
	require.NoError(t, conn.WriteJSON(&req))
	var reply Msg
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func requireError(t *testing.T, reply Msg, kind ErrorKind) {
	t.Helper()
	require.Equal(t, TypeError, reply.Type)
	var e ErrorContent
	require.NoError(t, json.Unmarshal(reply.Content, &e))
	assert.Equal(t, kind, e.Kind)
	assert.NotEmpty(t, e.Message)
}

func TestMeshThenCalculate(t *testing.T) {
	conn := dial(t)

	reply := roundTrip(t, conn, TypeMesh, singleElement)
	require.Equal(t, TypeMeshed, reply.Type)
	var meshed MeshedContent
	require.NoError(t, json.Unmarshal(reply.Content, &meshed))
	assert.Equal(t, 1000., meshed.Width)
	assert.Equal(t, "three-corners", meshed.Rule)
	require.Len(t, meshed.Nodes, 4)
	require.Len(t, meshed.Elements, 1)
	assert.Equal(t, [4]int{0, 1, 3, 2}, meshed.Elements[0].Nodes)
	assert.Len(t, meshed.Elements[0].X, 5)
	assert.False(t, meshed.Nodes[2].Fixed)

	reply = roundTrip(t, conn, TypeCalculate, nil)
	require.Equal(t, TypeCalculated, reply.Type)
	var calc CalculatedContent
	require.NoError(t, json.Unmarshal(reply.Content, &calc))
	require.Len(t, calc.Grid, 2)
	require.Len(t, calc.Grid[0], 2)
	assert.Greater(t, calc.Max, 0.)
	// node 2 sits at (W,0): x sample 1, y sample 0
	assert.Equal(t, calc.Max, calc.Grid[0][1])
	assert.Equal(t, 0., calc.Grid[0][0])
}

func TestEmptyMeshUsesDefaults(t *testing.T) {
	conn := dial(t)
	reply := roundTrip(t, conn, TypeMesh, map[string]int{"h_element_count": 2})
	require.Equal(t, TypeMeshed, reply.Type)
	var meshed MeshedContent
	require.NoError(t, json.Unmarshal(reply.Content, &meshed))
	assert.Equal(t, 3, meshed.HNodeCount)
	assert.Equal(t, 2, meshed.VNodeCount)
	assert.Len(t, meshed.Nodes, 6)
}

func TestCalculateBeforeMesh(t *testing.T) {
	conn := dial(t)
	requireError(t, roundTrip(t, conn, TypeCalculate, nil), KindSequence)
}

func TestInvalidConfig(t *testing.T) {
	conn := dial(t)
	bad := singleElement
	bad.HElementCount = 0
	requireError(t, roundTrip(t, conn, TypeMesh, bad), KindConfig)

	// the connection stays usable
	reply := roundTrip(t, conn, TypeMesh, singleElement)
	assert.Equal(t, TypeMeshed, reply.Type)
}

func TestFailedMeshDropsPreviousMesh(t *testing.T) {
	conn := dial(t)
	reply := roundTrip(t, conn, TypeMesh, map[string]int{"h_element_count": 2, "v_element_count": 2})
	require.Equal(t, TypeMeshed, reply.Type)

	requireError(t, roundTrip(t, conn, TypeMesh, map[string]int{"h_element_count": 0}), KindConfig)
	requireError(t, roundTrip(t, conn, TypeCalculate, nil), KindSequence)

	requireError(t, roundTrip(t, conn, TypeMesh, "not a plate"), KindProtocol)
	requireError(t, roundTrip(t, conn, TypeCalculate, nil), KindSequence)
}

func TestProtocolErrors(t *testing.T) {
	conn := dial(t)
	requireError(t, roundTrip(t, conn, "launch", nil), KindProtocol)
	requireError(t, roundTrip(t, conn, TypeMesh, "not a plate"), KindProtocol)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, KindConfig, errorKind(fem.ErrInvalidConfig))
	assert.Equal(t, KindNumerical, errorKind(fem.ErrSingularSystem))
	assert.Equal(t, KindSequence, errorKind(fem.ErrNotMeshed))
	assert.Equal(t, KindSequence, errorKind(fem.ErrNotCalculated))
	assert.Equal(t, KindProtocol, errorKind(assert.AnError))
}
