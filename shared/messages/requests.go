package messages

// The two bomb action requests are fire-and-forget: the client sends them
// once and never waits for or retries on a reply. The sender's identity
// comes from the connection, so they carry no payload. The server validates
// each against its own carry state and silently drops anything inconsistent
// (late arrivals, replays, requests from a player who no longer holds the
// bomb).

// SwapHandsRequest asks the authority to flip which hand carries the bomb.
type SwapHandsRequest struct{}

// ThrowRequest asks the authority to launch the carried bomb along the
// sender's current facing, using the carrying hand's throw profile.
type ThrowRequest struct{}
