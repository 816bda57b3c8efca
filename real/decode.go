package real

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/opd-ai/steambridge/callbacks"
	"github.com/opd-ai/steambridge/dispatch"
	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/steamid"
)

// Callback ids handled outside the registry.
const (
	callbackSteamAPICallCompleted int32 = 703
)

// personaStateChangeSize is the packed size of PersonaStateChange_t:
// uint64 m_ulSteamID followed by int m_nChangeFlags.
const personaStateChangeSize = 12

var (
	// ErrShortPayload indicates a callback message smaller than its struct.
	ErrShortPayload = errors.New("callback payload too short")

	// ErrUnhandledCallback indicates a callback id with no decoder.
	ErrUnhandledCallback = errors.New("unhandled callback id")
)

// InitResult is ESteamAPIInitResult.
type InitResult int32

const (
	InitOK              InitResult = 0
	InitFailedGeneric   InitResult = 1
	InitNoSteamClient   InitResult = 2
	InitVersionMismatch InitResult = 3
)

func (r InitResult) String() string {
	switch r {
	case InitOK:
		return "ok"
	case InitFailedGeneric:
		return "failed"
	case InitNoSteamClient:
		return "no steam client"
	case InitVersionMismatch:
		return "version mismatch"
	default:
		return fmt.Sprintf("init result %d", int32(r))
	}
}

// decodeCallback turns one manual dispatch message into the payload
// delivered for its kind. Callback structs are little endian on every
// platform the SDK ships for.
func decodeCallback(id int32, data []byte) (dispatch.Kind, any, error) {
	kind := dispatch.Kind(id)
	switch kind {
	case dispatch.KindPersonaStateChange:
		p, err := decodePersonaStateChange(data)
		return kind, p, err
	case dispatch.KindSteamShutdown:
		return kind, &callbacks.SteamShutdown{}, nil
	default:
		return kind, nil, fmt.Errorf("%w: %d", ErrUnhandledCallback, id)
	}
}

func decodePersonaStateChange(data []byte) (*friend.PersonaStateChange, error) {
	if len(data) < personaStateChangeSize {
		return nil, fmt.Errorf("%w: PersonaStateChange_t has %d bytes, want %d",
			ErrShortPayload, len(data), personaStateChangeSize)
	}
	return &friend.PersonaStateChange{
		SteamID:     steamid.ID(binary.LittleEndian.Uint64(data[0:8])),
		ChangeFlags: friend.PersonaChange(binary.LittleEndian.Uint32(data[8:12])),
	}, nil
}
