package models

import "errors"

// Intent selects which action a page's POST handler performs.
type Intent string

const (
	IntentCreate               Intent = "create"
	IntentUpdate               Intent = "update"
	IntentDelete               Intent = "delete"
	IntentChangeRole           Intent = "changeRole"
	IntentCreateNewInviteLink  Intent = "createNewInviteLink"
	IntentDeactivateInviteLink Intent = "deactivateInviteLink"
	IntentAcceptInvite         Intent = "acceptInvite"
)

// ErrInvalidIntent is returned for intent values outside the closed set.
var ErrInvalidIntent = errors.New("invalid intent")

var intents = map[Intent]struct{}{
	IntentCreate:               {},
	IntentUpdate:               {},
	IntentDelete:               {},
	IntentChangeRole:           {},
	IntentCreateNewInviteLink:  {},
	IntentDeactivateInviteLink: {},
	IntentAcceptInvite:         {},
}

// ParseIntent parses an intent string.
func ParseIntent(s string) (Intent, error) {
	i := Intent(s)
	if _, ok := intents[i]; !ok {
		return "", ErrInvalidIntent
	}
	return i, nil
}

func (i Intent) String() string {
	return string(i)
}
