// Package telegram is the chat transport: a thin client over the Telegram
// Bot API for outbound messages and document uploads. Chat ids are carried
// as strings throughout the rest of the system and parsed at this boundary.
package telegram
