package domain

// Identity names the owner of a cart: either an authenticated user or an
// anonymous browser session. Exactly one of the two is ever set.
type Identity struct {
	userID       string
	sessionToken string
}

func UserOwned(userID string) Identity {
	return Identity{userID: userID}
}

func SessionOwned(token string) Identity {
	return Identity{sessionToken: token}
}

func (i Identity) UserID() (string, bool) {
	return i.userID, i.userID != ""
}

func (i Identity) SessionToken() (string, bool) {
	return i.sessionToken, i.sessionToken != ""
}

func (i Identity) IsZero() bool {
	return i.userID == "" && i.sessionToken == ""
}

// Key returns a stable string form, used as the cart cache key.
func (i Identity) Key() string {
	if i.userID != "" {
		return "user:" + i.userID
	}
	return "session:" + i.sessionToken
}
