package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby indicates the match is waiting for players.
	PhaseLobby Phase = "lobby"
	// PhasePlaying indicates the match is actively in progress.
	PhasePlaying Phase = "playing"
	// PhaseEnded indicates the match has finished.
	PhaseEnded Phase = "ended"
)

// Member is a user seated in a match.
type Member struct {
	UserID    string
	Nickname  string
	Seat      int
	IsOwner   bool
	IsBot     bool
	Connected bool
}

// MatchState captures the lobby side of a single match instance.
type MatchState struct {
	Phase       Phase
	Members     map[string]*Member
	Seats       [MaxPlayers]string
	OwnerUserID string
}

// NewMatchState returns an empty lobby.
func NewMatchState() *MatchState {
	return &MatchState{Phase: PhaseLobby, Members: make(map[string]*Member)}
}

// Seated returns the members in seat order.
func (s *MatchState) Seated() []*Member {
	var out []*Member
	for _, userID := range s.Seats {
		if m, ok := s.Members[userID]; ok && userID != "" {
			out = append(out, m)
		}
	}
	return out
}

// SeatedNicknames returns nicknames in seat order, which is the turn order.
func (s *MatchState) SeatedNicknames() []string {
	members := s.Seated()
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Nickname
	}
	return out
}

// MemberByNickname finds the member playing under nickname.
func (s *MatchState) MemberByNickname(nickname string) (*Member, bool) {
	for _, m := range s.Members {
		if m.Nickname == nickname {
			return m, true
		}
	}
	return nil, false
}

// Seat places a user in the lowest free seat. It returns false when full.
func (s *MatchState) Seat(m *Member) bool {
	seat := LowestAvailableSeat(&s.Seats)
	if seat == -1 {
		return false
	}
	m.Seat = seat
	s.Seats[seat] = m.UserID
	s.Members[m.UserID] = m
	if s.OwnerUserID == "" {
		s.OwnerUserID = m.UserID
		m.IsOwner = true
	}
	return true
}

// Unseat frees a user's seat and hands ownership to the next seated member.
func (s *MatchState) Unseat(userID string) {
	m, ok := s.Members[userID]
	if !ok {
		return
	}
	s.Seats[m.Seat] = ""
	delete(s.Members, userID)
	if s.OwnerUserID != userID {
		return
	}
	s.OwnerUserID = ""
	for _, next := range s.Seated() {
		if !next.IsBot {
			s.OwnerUserID = next.UserID
			next.IsOwner = true
			return
		}
	}
}
