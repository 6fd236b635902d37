package message

import (
	"strings"

	"github.com/google/uuid"
)

// Message is a typed protocol message. Type satisfies the go-command message
// contract; Envelope exposes the decorators shared by every message.
type Message interface {
	Type() string
	Envelope() Header
}

type Thread struct {
	ThreadID       string `json:"thid,omitempty"`
	ParentThreadID string `json:"pthid,omitempty"`
}

// Header carries the envelope fields common to all messages.
type Header struct {
	MsgType string  `json:"@type"`
	ID      string  `json:"@id"`
	Thread  *Thread `json:"~thread,omitempty"`
}

func NewHeader(msgType string) Header {
	return Header{MsgType: msgType, ID: uuid.NewString()}
}

func (h Header) Envelope() Header { return h }

// ThreadID returns the thread the message belongs to; a message without a
// thread decorator starts its own thread.
func (h Header) ThreadID() string {
	if h.Thread != nil && strings.TrimSpace(h.Thread.ThreadID) != "" {
		return h.Thread.ThreadID
	}
	return h.ID
}

func (h Header) ParentThreadID() string {
	if h.Thread == nil {
		return ""
	}
	return h.Thread.ParentThreadID
}

// AssignThreadFrom correlates h with parent so replies land on the
// requester's thread.
func (h *Header) AssignThreadFrom(parent Message) {
	if h == nil || parent == nil {
		return
	}
	env := parent.Envelope()
	thid := env.ThreadID()
	pthid := env.ParentThreadID()
	if thid == "" && pthid == "" {
		return
	}
	h.Thread = &Thread{ThreadID: thid, ParentThreadID: pthid}
}

func (h *Header) ensureID() {
	if h != nil && strings.TrimSpace(h.ID) == "" {
		h.ID = uuid.NewString()
	}
}

// ProtocolOf returns the protocol URI portion of a message type.
func ProtocolOf(msgType string) string {
	idx := strings.LastIndex(msgType, "/")
	if idx <= 0 {
		return ""
	}
	return msgType[:idx]
}

// NameOf returns the message name portion of a message type.
func NameOf(msgType string) string {
	idx := strings.LastIndex(msgType, "/")
	if idx < 0 {
		return msgType
	}
	return msgType[idx+1:]
}

// Join builds a message type from a protocol URI and message name.
func Join(protocolURI string, name string) string {
	return strings.TrimSuffix(protocolURI, "/") + "/" + strings.TrimPrefix(name, "/")
}
