// Package live streams committed render output to WebSocket clients.
//
// Hub implements fiber.Observer: after every commit it renders the
// current output tree, computes an xxhash checksum, and broadcasts a
// JSON frame with the sequence number, the commit stats, and the HTML
// snapshot when it changed since the previous frame. Routes exposes
// the /ws upgrade endpoint and a plain /snapshot endpoint for tooling.
package live
