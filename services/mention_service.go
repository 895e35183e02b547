package services

import (
	"regexp"
	"strings"

	"PelicanChat/models"
)

// Mention tokens are "@" plus one or two word segments, so display
// names like "Ada Lovelace" round-trip through the composer. The same
// rule applies to conversation and channel scopes.
var mentionTokenRe = regexp.MustCompile(`@([A-Za-z]+(?: [A-Za-z]+)?)`)

type MentionService struct{}

func NewMentionService() *MentionService {
	return &MentionService{}
}

// Resolve scans content for @Name tokens and resolves them against the
// scope members, excluding the sender. For each token the two-segment
// candidate is tried first, then the first segment alone, so a member
// named "Ada Lovelace" wins over a member named "Ada" when both exist.
// Display-name comparison is case-insensitive and exact. Malformed or
// unknown tokens are skipped; the result is fixed at write time.
func (s *MentionService) Resolve(content string, members []models.User, senderID uint) []uint {
	matches := mentionTokenRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[uint]bool)
	var mentionIDs []uint
	for _, match := range matches {
		token := match[1]
		user, ok := matchMember(token, members, senderID)
		if !ok {
			// Retry with just the first segment: the second word may
			// be ordinary text following a single-word name.
			if idx := strings.IndexByte(token, ' '); idx > 0 {
				user, ok = matchMember(token[:idx], members, senderID)
			}
		}
		if ok && !seen[user.ID] {
			seen[user.ID] = true
			mentionIDs = append(mentionIDs, user.ID)
		}
	}
	return mentionIDs
}

func matchMember(name string, members []models.User, senderID uint) (models.User, bool) {
	for _, member := range members {
		if member.ID == senderID {
			continue
		}
		if strings.EqualFold(member.Name, name) {
			return member, true
		}
	}
	return models.User{}, false
}
