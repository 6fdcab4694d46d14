package domain

import (
	"reflect"
	"testing"
)

func TestMatchStateSeating(t *testing.T) {
	s := NewMatchState()
	for _, m := range []*Member{
		{UserID: "u1", Nickname: "anna"},
		{UserID: "u2", Nickname: "bruno"},
		{UserID: "u3", Nickname: "carla", IsBot: true},
	} {
		if !s.Seat(m) {
			t.Fatalf("Seat(%s) = false, want true", m.UserID)
		}
	}

	if s.OwnerUserID != "u1" || !s.Members["u1"].IsOwner {
		t.Fatalf("owner = %q, want u1", s.OwnerUserID)
	}
	if got, want := s.SeatedNicknames(), []string{"anna", "bruno", "carla"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SeatedNicknames() = %v, want %v", got, want)
	}

	s.Unseat("u1")
	if s.OwnerUserID != "u2" {
		t.Fatalf("owner after leave = %q, want u2", s.OwnerUserID)
	}
	if s.Seats[0] != "" {
		t.Fatalf("seat 0 should be free, got %q", s.Seats[0])
	}

	s.Seat(&Member{UserID: "u4", Nickname: "dario"})
	if got := s.Members["u4"].Seat; got != 0 {
		t.Fatalf("new member seat = %d, want 0", got)
	}
	if got, want := s.SeatedNicknames(), []string{"dario", "bruno", "carla"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SeatedNicknames() = %v, want %v", got, want)
	}

	if m, ok := s.MemberByNickname("carla"); !ok || m.UserID != "u3" {
		t.Fatalf("MemberByNickname(carla) = %+v, %v", m, ok)
	}
}

func TestMatchStateBotsNeverOwn(t *testing.T) {
	s := NewMatchState()
	s.Seat(&Member{UserID: "u1", Nickname: "anna"})
	s.Seat(&Member{UserID: "bot", Nickname: "bot", IsBot: true})
	s.Unseat("u1")
	if s.OwnerUserID != "" {
		t.Fatalf("owner = %q, want none", s.OwnerUserID)
	}
}
