package steambridge

import (
	"context"

	"github.com/opd-ai/steambridge/friend"
	"github.com/opd-ai/steambridge/steamid"
	"github.com/sirupsen/logrus"
)

// PersonaName returns the display name of id, requesting it from the
// platform first when it is not cached. The wait ends when a
// persona-state-change carrying the Name flag for id is pumped, so another
// goroutine must be running Run or RunCallbacks.
func (c *Client) PersonaName(ctx context.Context, id steamid.ID) (string, error) {
	friends := c.platform.Friends()

	sub := c.OnPersonaStateChanged()
	defer sub.Close()

	if !friends.RequestUserInformation(id, true) {
		return friends.GetFriendPersonaName(id), nil
	}

	logrus.WithFields(logrus.Fields{
		"function": "Client.PersonaName",
		"instance": c.instanceID.String(),
		"steam_id": id,
	}).Debug("Waiting for persona name")

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case change, ok := <-sub.C():
			if !ok {
				return "", ErrClientClosed
			}
			if change.SteamID == id && change.ChangeFlags.Has(friend.PersonaChangeName) {
				return friends.GetFriendPersonaName(id), nil
			}
		}
	}
}
