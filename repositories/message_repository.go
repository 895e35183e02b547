package repositories

import (
	"time"

	"PelicanChat/models"
)

type MessageRepository interface {
	Save(message *models.Message) error
	FindByID(messageID uint) (models.Message, error)
	Delete(messageID uint) error
	DeleteByScope(scopeType string, scopeID uint) error

	// ListScopePage returns up to limit messages of a scope strictly
	// after the (afterTime, afterID) position, ordered ascending by
	// (timestamp, id).
	ListScopePage(scopeType string, scopeID uint, afterTime time.Time, afterID uint, limit int) ([]models.Message, error)

	// Search returns the most recent limit messages of a scope whose
	// content matches term.
	Search(scopeType string, scopeID uint, term string, limit int) ([]models.Message, error)

	// RecentByScopeType returns the newest limit messages across all
	// scopes of one class, newest first. Feeds the notification
	// aggregator's bounded mention scan.
	RecentByScopeType(scopeType string, limit int) ([]models.Message, error)

	CountUnread(conversationID uint, userID uint, since time.Time) (int64, error)
}
