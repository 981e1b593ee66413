// Package bot implements the chat command surface: routing incoming
// Telegram commands to the order store, subscription registry, and report
// renderer, and formatting replies as Markdown.
package bot
