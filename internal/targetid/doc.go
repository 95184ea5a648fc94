// internal/targetid/doc.go

/*
Package targetid parses and normalizes target identifiers.

A raw identifier as written by the frontend has the form
`<path>:<name>#<toolset>`, e.g. `/repo/net/net.gyp:http#target`. The portable
form used everywhere after ingest is `<relative-dir>/<filename>:<name>`, with
the toolset dropped and `/` as the only separator, e.g. `net/net.gyp:http`.

Normalization is idempotent: normalizing a portable id returns it unchanged.
*/
package targetid
