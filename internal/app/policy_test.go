package app

import (
	"testing"

	"github.com/dkeye/SwiftChat/internal/core"
)

func TestPolicyByName(t *testing.T) {
	cases := []struct {
		name    string
		want    Policy
		wantErr bool
	}{
		{name: "", want: DropPolicy{}},
		{name: "drop", want: DropPolicy{}},
		{name: "kick", want: KickPolicy{}},
		{name: "explode", wantErr: true},
	}
	for _, tc := range cases {
		got, err := PolicyByName(tc.name)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.name)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("%q: got %v, %v", tc.name, got, err)
		}
	}

	if a := (KickPolicy{}).OnBackPressure(conn("c1"), core.ErrBackpressure); a != KickMember {
		t.Errorf("kick policy on full buffer = %v", a)
	}
	if a := (KickPolicy{}).OnBackPressure(conn("c1"), core.ErrConnectionClosed); a != DropFrame {
		t.Errorf("kick policy on closed connection = %v", a)
	}
}
