package nativehost

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestWriteReadMessage(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"id":1,"method":"version"}`)
	if err := WriteMessage(&buf, payload); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if got := binary.LittleEndian.Uint32(buf.Bytes()[:4]); got != uint32(len(payload)) {
		t.Fatalf("length prefix = %d, want %d", got, len(payload))
	}
	got, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestReadMessage_Errors(t *testing.T) {
	if _, err := ReadMessage(bytes.NewReader(nil)); err != io.EOF {
		t.Errorf("empty input: expected io.EOF, got %v", err)
	}

	var big bytes.Buffer
	binary.Write(&big, binary.LittleEndian, uint32(MaxMessageSize+1))
	if _, err := ReadMessage(&big); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("expected size error, got %v", err)
	}

	var short bytes.Buffer
	binary.Write(&short, binary.LittleEndian, uint32(10))
	short.WriteString("abc")
	if _, err := ReadMessage(&short); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}

	var headerOnly bytes.Buffer
	binary.Write(&headerOnly, binary.LittleEndian, uint32(4))
	if _, err := ReadMessage(&headerOnly); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("missing body: expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestWriteMessage_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMessage(&buf, make([]byte, MaxMessageSize+1)); err == nil {
		t.Fatal("expected error for oversized message")
	}
	if buf.Len() != 0 {
		t.Error("nothing must be written for an oversized message")
	}
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"id":7,"method":"rules.find","message":{"expression":"a.com"}}`))
	if err != nil {
		t.Fatalf("ParseRequest: %v", err)
	}
	if req.ID != 7 || req.Method != "rules.find" || !strings.Contains(string(req.Message), "a.com") {
		t.Errorf("unexpected request %+v", req)
	}
	if _, err := ParseRequest([]byte(`{`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

type unencodable struct{}

func (unencodable) MarshalJSON() ([]byte, error) { return nil, errors.New("nope") }

func TestResponses(t *testing.T) {
	var ok Response
	if err := json.Unmarshal(MakeSuccessResponse(3, map[string]int{"n": 1}), &ok); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if ok.ID != 3 || !ok.Ok || ok.Error != "" {
		t.Errorf("unexpected success response %+v", ok)
	}

	var fail Response
	if err := json.Unmarshal(MakeErrorResponse(4, errors.New("boom")), &fail); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if fail.ID != 4 || fail.Ok || fail.Error != "boom" {
		t.Errorf("unexpected error response %+v", fail)
	}

	if err := json.Unmarshal(MakeErrorResponse(5, nil), &fail); err != nil || fail.Error != "unknown error" {
		t.Errorf("nil error: %+v, %v", fail, err)
	}

	var bad Response
	if err := json.Unmarshal(MakeSuccessResponse(6, unencodable{}), &bad); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if bad.Ok || !strings.Contains(bad.Error, "cannot encode") {
		t.Errorf("unencodable result should produce an error response, got %+v", bad)
	}
}
