/*
Package session keeps one value per client session, typically a navigator or
the server wrapping one.

Values are created by a Factory on first use. Access to a session is
serialized by a per-session lock whose entry is reference counted, so a
session that failed to start leaves nothing behind and Sweep never removes a
session while a caller holds it.
*/
package session
