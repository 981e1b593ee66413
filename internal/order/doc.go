// Package order is the event store of the bot: persisted shipment orders,
// their lifecycle events, and the query surface used by the notification
// engine, the chat commands, and the sync importer.
package order
