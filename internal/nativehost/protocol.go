// Package nativehost serves the browser extension over native messaging:
// each frame is a 4-byte little-endian length followed by a JSON payload.
package nativehost

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/crumbsapp/crumbs/common"
	"github.com/goccy/go-json"
)

// MaxMessageSize is the frame limit in both directions.
const MaxMessageSize = common.MaxMessageSize

// ErrResponseTooLarge is returned to the extension in place of a result that
// does not fit in one frame.
var ErrResponseTooLarge = errors.New("response too large")

// Request is a message from the extension. ID correlates the response.
type Request struct {
	ID      int             `json:"id"`
	Method  common.Method   `json:"method"`
	Message json.RawMessage `json:"message,omitempty"`
}

// Response answers the Request with the same ID.
type Response struct {
	ID     int    `json:"id"`
	Ok     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Result any    `json:"result,omitempty"`
}

// ReadMessage reads one frame from r. A clean EOF before the header is
// returned as io.EOF.
func ReadMessage(r io.Reader) ([]byte, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("truncated frame header: %w", err)
		}
		return nil, err
	}
	length := binary.LittleEndian.Uint32(header[:])
	if length > uint32(MaxMessageSize) {
		return nil, fmt.Errorf("message too large: %d bytes (max %d)", length, MaxMessageSize)
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("truncated frame body: %w", err)
	}
	return buf, nil
}

// WriteMessage writes msg to w as one frame in a single Write call.
func WriteMessage(w io.Writer, msg []byte) error {
	if len(msg) > MaxMessageSize {
		return fmt.Errorf("message too large: %d bytes (max %d)", len(msg), MaxMessageSize)
	}
	frame := make([]byte, 4+len(msg))
	binary.LittleEndian.PutUint32(frame, uint32(len(msg)))
	copy(frame[4:], msg)
	_, err := w.Write(frame)
	return err
}

// ParseRequest decodes a request frame.
func ParseRequest(b []byte) (*Request, error) {
	var r Request
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// MakeSuccessResponse encodes a successful response. A result that cannot
// be encoded yields an error response instead.
func MakeSuccessResponse(id int, result any) []byte {
	b, err := json.Marshal(Response{ID: id, Ok: true, Result: result})
	if err != nil {
		return MakeErrorResponse(id, fmt.Errorf("cannot encode result: %w", err))
	}
	return b
}

// MakeErrorResponse encodes a failed response carrying err's message.
func MakeErrorResponse(id int, err error) []byte {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	b, _ := json.Marshal(Response{ID: id, Ok: false, Error: msg})
	return b
}
