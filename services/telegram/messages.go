package telegram

import (
	"fmt"
	"strings"

	"tweetgram/models/entities"
)

func getMessageFromMessageType(messageType MessageType) string {
	switch messageType {
	case MessageTypeUnauthorized:
		return "You are not allowed to use this bot."
	case MessageTypeWelcome:
		return "Welcome! Follow a Twitter account with /follow <handle>, or send me a tweet link. Type /help for the full list of commands."
	case MessageTypeHelp:
		return strings.Join([]string{
			"/start - start fetching followed accounts",
			"/stop - stop fetching",
			"/follow <handle> - follow a Twitter account",
			"/unfollow <handle> - stop following a Twitter account",
			"/list - list followed accounts",
			"/replies on|off - include or exclude replies",
			"/caption - reply to a media message to remove its caption",
			"Any tweet link sent to the bot is published here.",
		}, "\n")
	case MessageTypeResuming:
		return "Fetching resumed."
	case MessageTypeStopped:
		return "Fetching stopped. Send /start to resume."
	case MessageTypeIncorrect:
		return "Incorrect input, type /help to see the commands."
	case MessageTypeNoAccount:
		return "No account followed yet. Use /follow <handle>."
	case MessageTypeUnknown:
		fallthrough
	default:
		return "Unknown command, type /help to see the commands."
	}
}

// ParseAuthorizedUsers reads a comma separated list of Telegram usernames.
func ParseAuthorizedUsers(raw string) map[string]struct{} {
	users := make(map[string]struct{})
	for _, user := range strings.Split(raw, ",") {
		user = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(user), "@"))
		if user != "" {
			users[user] = struct{}{}
		}
	}
	return users
}

func parseHandle(argument string) (string, bool) {
	handle := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(argument), "@"))
	return handle, handlePattern.MatchString(handle)
}

func commandArgument(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func formatAccounts(accounts []entities.FollowedAccount) string {
	if len(accounts) == 0 {
		return getMessageFromMessageType(MessageTypeNoAccount)
	}

	var sb strings.Builder
	sb.WriteString("Followed accounts:")
	for _, account := range accounts {
		sb.WriteString(fmt.Sprintf("\n- @%s", account.Handle))
	}
	return sb.String()
}
