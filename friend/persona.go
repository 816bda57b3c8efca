package friend

import (
	"strings"

	"github.com/opd-ai/steambridge/steamid"
)

// PersonaChange is the bit set describing what changed in a
// persona-state-change notification.
type PersonaChange uint32

const (
	PersonaChangeName                PersonaChange = 0x0001
	PersonaChangeStatus              PersonaChange = 0x0002
	PersonaChangeComeOnline          PersonaChange = 0x0004
	PersonaChangeGoneOffline         PersonaChange = 0x0008
	PersonaChangeGamePlayed          PersonaChange = 0x0010
	PersonaChangeGameServer          PersonaChange = 0x0020
	PersonaChangeAvatar              PersonaChange = 0x0040
	PersonaChangeJoinedSource        PersonaChange = 0x0080
	PersonaChangeLeftSource          PersonaChange = 0x0100
	PersonaChangeRelationshipChanged PersonaChange = 0x0200
	PersonaChangeNameFirstSet        PersonaChange = 0x0400
	PersonaChangeBroadcast           PersonaChange = 0x0800
	PersonaChangeNickname            PersonaChange = 0x1000
	PersonaChangeSteamLevel          PersonaChange = 0x2000
	PersonaChangeRichPresence        PersonaChange = 0x4000

	// PersonaChangeAll is the union of every flag defined above.
	PersonaChangeAll PersonaChange = 0x7fff
)

var personaChangeNames = []struct {
	flag PersonaChange
	name string
}{
	{PersonaChangeName, "name"},
	{PersonaChangeStatus, "status"},
	{PersonaChangeComeOnline, "come_online"},
	{PersonaChangeGoneOffline, "gone_offline"},
	{PersonaChangeGamePlayed, "game_played"},
	{PersonaChangeGameServer, "game_server"},
	{PersonaChangeAvatar, "avatar"},
	{PersonaChangeJoinedSource, "joined_source"},
	{PersonaChangeLeftSource, "left_source"},
	{PersonaChangeRelationshipChanged, "relationship_changed"},
	{PersonaChangeNameFirstSet, "name_first_set"},
	{PersonaChangeBroadcast, "broadcast"},
	{PersonaChangeNickname, "nickname"},
	{PersonaChangeSteamLevel, "steam_level"},
	{PersonaChangeRichPresence, "rich_presence"},
}

// Has reports whether every bit of flag is set.
func (p PersonaChange) Has(flag PersonaChange) bool {
	return p&flag == flag
}

// Known drops the bits that do not correspond to a defined flag.
func (p PersonaChange) Known() PersonaChange {
	return p & PersonaChangeAll
}

// String renders the set flags joined by '|', e.g. "name|status".
func (p PersonaChange) String() string {
	if p == 0 {
		return "none"
	}
	var parts []string
	for _, n := range personaChangeNames {
		if p.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if p&^PersonaChangeAll != 0 {
		parts = append(parts, "unknown")
	}
	return strings.Join(parts, "|")
}

// PersonaStateChange is the payload of a persona-state-change notification.
//
// The layout matches SteamBridgePersonaStateChange in capi/steambridge.h
// (uint64 followed by uint32) so the payload can cross the C boundary
// without conversion.
type PersonaStateChange struct {
	SteamID     steamid.ID
	ChangeFlags PersonaChange
}
