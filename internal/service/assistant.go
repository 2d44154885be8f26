package service

import "strings"

const defaultReply = "Tell me more about your event."

var replies = map[string]string{
	"wedding":   "Premium or Luxury is best for weddings.",
	"birthday":  "Basic or Premium works great for birthdays.",
	"corporate": "Luxury is ideal for corporate events.",
}

// SuggestPackage answers the booking assistant with a canned
// recommendation for the event type in question.
func SuggestPackage(question string) string {
	if r, ok := replies[strings.ToLower(strings.TrimSpace(question))]; ok {
		return r
	}
	return defaultReply
}
