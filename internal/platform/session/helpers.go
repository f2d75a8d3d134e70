package session

import (
	"context"
)

const (
	messagesKey  = "_messages"
	bookmarksKey = "bookmarked_questions"
)

type MessageLevel string

const (
	LevelSuccess MessageLevel = "success"
	LevelInfo    MessageLevel = "info"
	LevelWarning MessageLevel = "warning"
	LevelError   MessageLevel = "error"
)

// Message is a flash message shown once on the next rendered page.
type Message struct {
	Level MessageLevel `json:"level"`
	Text  string       `json:"text"`
}

func AddMessage(ctx context.Context, s Store, sid string, level MessageLevel, text string) error {
	var msgs []Message
	if _, err := s.Get(ctx, sid, messagesKey, &msgs); err != nil {
		return err
	}
	msgs = append(msgs, Message{Level: level, Text: text})
	return s.Set(ctx, sid, messagesKey, msgs)
}

// PopMessages returns and clears the pending flash messages.
func PopMessages(ctx context.Context, s Store, sid string) ([]Message, error) {
	var msgs []Message
	found, err := s.Get(ctx, sid, messagesKey, &msgs)
	if err != nil || !found {
		return nil, err
	}
	if err := s.Delete(ctx, sid, messagesKey); err != nil {
		return nil, err
	}
	return msgs, nil
}

// Bookmarks returns the bookmarked question ids in insertion order.
func Bookmarks(ctx context.Context, s Store, sid string) ([]int64, error) {
	ids := []int64{}
	if _, err := s.Get(ctx, sid, bookmarksKey, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// ToggleBookmark adds questionID when absent and removes it when present. It
// returns whether the question is bookmarked afterwards.
func ToggleBookmark(ctx context.Context, s Store, sid string, questionID int64) (bool, error) {
	ids, err := Bookmarks(ctx, s, sid)
	if err != nil {
		return false, err
	}
	kept := ids[:0]
	removed := false
	for _, id := range ids {
		if id == questionID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		kept = append(kept, questionID)
	}
	if err := s.Set(ctx, sid, bookmarksKey, kept); err != nil {
		return false, err
	}
	return !removed, nil
}
