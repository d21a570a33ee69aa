package game

// Dispatcher fans messages out to room members through the participant
// registry. A member without a live handle, or whose handle rejects the
// send, is skipped silently; cleaning up dead connections is the connection
// layer's job.
type Dispatcher struct {
	participants *ParticipantRegistry
}

func NewDispatcher(participants *ParticipantRegistry) *Dispatcher {
	return &Dispatcher{participants: participants}
}

// Broadcast delivers msg to every live member of the room. Call with the
// room locked; sends never block.
func (d *Dispatcher) Broadcast(room *Room, msg interface{}) {
	for id := range room.Members {
		d.Unicast(id, msg)
	}
}

// Unicast delivers msg to a single participant, used for rejections and
// private prompts such as capture candidates.
func (d *Dispatcher) Unicast(participantID string, msg interface{}) {
	conn := d.participants.HandleOf(participantID)
	if conn == nil {
		return
	}
	_ = conn.Send(msg)
}
