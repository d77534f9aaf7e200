package messages

// PlayerInput is sent from client to server with the player's movement state.
// Used for server-side movement processing and client-side prediction
// reconciliation. Bomb actions are NOT part of this message; they travel as
// dedicated request messages (requests.go) so the authority can validate
// them against its own carry state.
type PlayerInput struct {
	Sequence  uint32  // Incrementing ID for reconciliation
	MoveX     float64 // Normalized ground-plane movement direction
	MoveZ     float64
	FacingX   float64 // Normalized aim heading
	FacingZ   float64
	Timestamp int64 // Client timestamp (Unix ms)
}
