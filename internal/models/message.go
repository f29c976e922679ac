package models

// Message is a text post authored by an account. TimePostedEpoch is
// client-supplied milliseconds since epoch.
type Message struct {
	MessageID       int    `db:"message_id" json:"message_id"`
	PostedBy        int    `db:"posted_by" json:"posted_by"`
	MessageText     string `db:"message_text" json:"message_text"`
	TimePostedEpoch int64  `db:"time_posted_epoch" json:"time_posted_epoch"`
}

// MessageEvent is broadcast through websockets to feed subscribers.
type MessageEvent struct {
	Type      string   `json:"type"`
	Message   *Message `json:"message,omitempty"`
	MessageID int      `json:"message_id,omitempty"`
}
