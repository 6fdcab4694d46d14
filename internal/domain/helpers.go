package domain

// LowestAvailableSeat returns the first free seat index (0-based), or -1 when full.
func LowestAvailableSeat(seats *[MaxPlayers]string) int {
	for i := 0; i < len(seats); i++ {
		if seats[i] == "" {
			return i
		}
	}
	return -1
}

// LabelPayload is the advertised match label.
type LabelPayload struct {
	Open    bool   `json:"open"`
	Game    string `json:"game"`
	Phase   string `json:"phase"`
	Players int    `json:"players"`
}

// ComputeLabel derives the advertised label from match state.
func ComputeLabel(s *MatchState) LabelPayload {
	open := s.Phase == PhaseLobby && len(s.Members) < MaxPlayers
	return LabelPayload{Open: open, Game: "adrenaline", Phase: string(s.Phase), Players: len(s.Members)}
}
