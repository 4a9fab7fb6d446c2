package main

import (
	"testing"

	"gloomdelve/internal/player"
)

func TestEmergencySaveSuccessLeavesCharacterAlive(t *testing.T) {
	p := &player.Player{HP: 10, MaxHP: 10}
	if !emergencySave(p, func() bool { return true }) {
		t.Fatal("successful save reported as failed")
	}
	if p.Dead {
		t.Error("successful save killed the character")
	}
	if p.DiedFrom != "" {
		t.Errorf("cause of death set to %q on success", p.DiedFrom)
	}
}

func TestEmergencySaveFailureForcesDeath(t *testing.T) {
	p := &player.Player{HP: 10, MaxHP: 10}
	if emergencySave(p, func() bool { return false }) {
		t.Fatal("failed save reported as success")
	}
	if !p.Dead {
		t.Fatal("failed disconnect save must force death")
	}
	if p.DiedFrom != "panic: unexpected eof" {
		t.Errorf("cause of death = %q", p.DiedFrom)
	}
}
