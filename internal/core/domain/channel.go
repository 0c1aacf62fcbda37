package domain

import "time"

// ChannelTypeEventDiscussion marks channels seeded for approved events.
const ChannelTypeEventDiscussion = "EVENT_DISCUSSION"

// Channel is a discussion space keyed 1:1 to an approved event. It is
// created by the lifecycle engine and otherwise managed elsewhere.
type Channel struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	EventID   string    `json:"event_id" bson:"event_id"`
	Name      string    `json:"name" bson:"name"`
	Type      string    `json:"type" bson:"type"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Post is a message inside a channel. The engine only ever writes the
// system-authored welcome post.
type Post struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ChannelID  string    `json:"channel_id" bson:"channel_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
