// Package friend holds the persona types delivered by the platform's friends
// facet.
//
// # Persona changes
//
// Whenever the platform learns something new about a user (name, online
// state, avatar, rich presence, ...) it emits a persona-state-change
// notification carrying the user's SteamID and a PersonaChange bit set:
//
//	func onPersona(change *friend.PersonaStateChange) {
//	    if change.ChangeFlags.Has(friend.PersonaChangeName) {
//	        fmt.Printf("%s renamed\n", change.SteamID)
//	    }
//	}
//
// The flags are passed through exactly as the platform delivers them. Use
// Known to discard bits newer SDK versions may add.
//
// # C Bindings
//
// PersonaStateChange is layout-compatible with the C struct of the same name
// in the capi header, and is handed to C callbacks by pointer.
package friend
