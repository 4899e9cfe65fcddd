package models

import (
	"time"
)

// ReplyNeedClarification is the reserved reply value that reclassifies a
// read into the "pending clarification" bucket. Compared literally.
const ReplyNeedClarification = "Need Clarification"

// ReadEvent is one append-only acknowledgement of a message by a user in
// the context of a group. Rows are never updated or deleted through the
// ledger path; a user may accumulate several events for the same message
// (revised replies), and "current status" is always the highest-id event
// per user. The user's membership in the group is checked by the caller at
// write time only, so events may outlive a membership.
type ReadEvent struct {
	ID uint `gorm:"primarykey" json:"id"`

	MessageID uint    `gorm:"not null;index:idx_read_msg_group" json:"message_id"`
	GroupID   uint    `gorm:"not null;index:idx_read_msg_group" json:"group_id"`
	UserID    uint    `gorm:"not null;index" json:"user_id"`
	Reply     *string `json:"reply"`
	Mode      string  `gorm:"size:40" json:"mode"`

	ReadAt time.Time `gorm:"autoCreateTime" json:"read_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// NeedsClarification reports whether the event's reply is the reserved
// clarification sentinel.
func (e *ReadEvent) NeedsClarification() bool {
	return e.Reply != nil && *e.Reply == ReplyNeedClarification
}

// ReadUserEntry is one reader in a read-status response, carrying the
// current (most recent) reply and mode.
type ReadUserEntry struct {
	ID     uint      `json:"id"`
	Avatar string    `json:"avatar"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Mode   string    `json:"mode"`
	Reply  *string   `json:"reply"`
	ReadAt time.Time `json:"read_at"`
}

// ReadStatus partitions a group's members (minus the requester) into those
// who have acknowledged the message and those who have not.
type ReadStatus struct {
	ReadUsers   []ReadUserEntry `json:"readUsers"`
	UnreadUsers []MemberEntry   `json:"unreadUsers"`
}

// UserReadHistory is the full trail of replied events for one user, newest
// first. Unlike ReadStatus it is not deduplicated: an admin reviewing a
// message sees every revision a worker submitted.
type UserReadHistory struct {
	UserID uint        `json:"userId"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Reads  []ReadEvent `json:"reads"`
}
