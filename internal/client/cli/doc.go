// Package cli provides the interactive roomadmin command-line client.
//
// It wires configuration, the local SQLite store, the REST client, the
// upload backend and the services, then runs a REPL over them.
//
// Key features:
//   - Login / Logout
//   - Rooms: list, show, create with images, edit with image sync, delete,
//     door password
//   - Time slots, availability and bookings
//   - Amenities and schedule types
//
// Image sync progress and its summary are printed as they happen.
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
