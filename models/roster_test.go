package models

import (
	"encoding/json"
	"testing"
)

func TestRoster_AddAndContains(t *testing.T) {
	roster := NewRoster()

	if !roster.Add(PlatformLeetCode, "alice") {
		t.Error("Expected first add to succeed")
	}
	if roster.Add(PlatformLeetCode, "alice") {
		t.Error("Expected duplicate add to fail")
	}

	// 같은 사용자명이라도 플랫폼이 다르면 별개의 항목입니다
	if !roster.Add(PlatformCodeforces, "alice") {
		t.Error("Expected add on a different platform to succeed")
	}

	if !roster.Contains(PlatformLeetCode, "alice") {
		t.Error("Expected alice to be tracked on leetcode")
	}
	if roster.Contains(PlatformAtCoder, "alice") {
		t.Error("Expected alice to not be tracked on atcoder")
	}

	if roster.Total() != 2 {
		t.Errorf("Expected 2 tracked users, got %d", roster.Total())
	}
}

func TestRoster_Remove(t *testing.T) {
	roster := NewRoster()
	roster.Add(PlatformCodeforces, "tourist")
	roster.Add(PlatformCodeforces, "petr")

	if !roster.Remove(PlatformCodeforces, "tourist") {
		t.Error("Expected remove of tracked user to succeed")
	}
	if roster.Remove(PlatformCodeforces, "tourist") {
		t.Error("Expected remove of absent user to fail")
	}

	users := roster.Users(PlatformCodeforces)
	if len(users) != 1 || users[0] != "petr" {
		t.Errorf("Unexpected users after removal: %v", users)
	}
}

func TestRoster_Clone(t *testing.T) {
	roster := NewRoster()
	roster.Add(PlatformLeetCode, "alice")

	clone := roster.Clone()
	clone.Add(PlatformLeetCode, "bob")

	if roster.Contains(PlatformLeetCode, "bob") {
		t.Error("Expected clone mutation to not affect the original")
	}
	if !clone.Contains(PlatformLeetCode, "alice") {
		t.Error("Expected clone to carry existing users")
	}
}

func TestRoster_Normalize(t *testing.T) {
	roster := Roster{LeetCode: []string{"alice"}}
	roster.Normalize()

	if roster.AtCoder == nil || roster.Codeforces == nil {
		t.Error("Expected nil lists to be replaced with empty lists")
	}
	if len(roster.LeetCode) != 1 {
		t.Error("Expected existing list to be preserved")
	}
}

func TestRoster_JSONLayout(t *testing.T) {
	roster := NewRoster()
	roster.Add(PlatformLeetCode, "alice")
	roster.Add(PlatformCodeforces, "tourist")

	data, err := json.Marshal(roster)
	if err != nil {
		t.Fatalf("Failed to marshal roster: %v", err)
	}

	want := `{"leetcode":["alice"],"atcoder":[],"cf":["tourist"]}`
	if string(data) != want {
		t.Errorf("Unexpected document layout:\n got %s\nwant %s", data, want)
	}
}
