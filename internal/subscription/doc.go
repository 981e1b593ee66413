// Package subscription tracks which chats receive which notification
// categories, and each recipient's reminder lead time. Subscriptions are
// soft state: deactivation never deletes the row.
package subscription
