package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// remoteTimeout bounds every request round trip.
	remoteTimeout = 30 * time.Second
	// closeMessageCode identifies the message id for a close request
	closeMessageCode = 1000
)

// remoteRequest is the wire shape for save/load calls.
type remoteRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"` // "save" or "load"
	FileID string `json:"fileId"`
	Text   string `json:"text,omitempty"`
}

type remoteResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RemoteContentStore is a ContentStore backed by a websocket save
// endpoint. Requests are serialized over a single connection; the editor
// issues one lifecycle operation at a time so there is no pipelining.
type RemoteContentStore struct {
	conn     *websocket.Conn
	connLock sync.Mutex
	timeout  time.Duration
	nextID   uint64
	logger   zerolog.Logger
}

// ConnectRemote dials the remote endpoint and returns a ready store.
func ConnectRemote(url string, logger zerolog.Logger) (*RemoteContentStore, error) {
	dialer := websocket.DefaultDialer
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote store %s: %w", url, err)
	}
	return &RemoteContentStore{
		conn:    conn,
		timeout: remoteTimeout,
		logger:  logger,
	}, nil
}

// SetTimeout overrides the per-request deadline.
func (r *RemoteContentStore) SetTimeout(d time.Duration) {
	r.timeout = d
}

func (r *RemoteContentStore) Close() error {
	r.connLock.Lock()
	defer r.connLock.Unlock()
	return r.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(closeMessageCode, ""),
	)
}

func (r *RemoteContentStore) SaveText(fileID, text string) error {
	if fileID == "" {
		return fmt.Errorf("cannot save content without a file id")
	}
	resp, err := r.roundTrip(remoteRequest{Action: "save", FileID: fileID, Text: text})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("remote save of %s failed: %s", fileID, resp.Error)
	}
	return nil
}

func (r *RemoteContentStore) LoadText(fileID string) (string, error) {
	if fileID == "" {
		return "", nil
	}
	resp, err := r.roundTrip(remoteRequest{Action: "load", FileID: fileID})
	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", fmt.Errorf("remote load of %s failed: %s", fileID, resp.Error)
	}
	return resp.Text, nil
}

func (r *RemoteContentStore) roundTrip(req remoteRequest) (*remoteResponse, error) {
	r.connLock.Lock()
	defer r.connLock.Unlock()

	r.nextID++
	req.ID = strconv.FormatUint(r.nextID, 10)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode remote request: %w", err)
	}

	deadline := time.Now().Add(r.timeout)
	if err := r.conn.SetWriteDeadline(deadline); err != nil {
		return nil, err
	}
	if err := r.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return nil, fmt.Errorf("remote request failed: %w", err)
	}

	if err := r.conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	for {
		_, data, err := r.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("remote response failed: %w", err)
		}
		var resp remoteResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			r.logger.Warn().Err(err).Msg("discarding malformed remote message")
			continue
		}
		if resp.ID != req.ID {
			// Stale reply from an abandoned request; skip it.
			r.logger.Debug().Str("id", resp.ID).Msg("skipping unmatched remote response")
			continue
		}
		return &resp, nil
	}
}
