package protocol

import (
	"testing"
)

func TestDecodeCommand_KnownTypes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want func(t *testing.T, cmd Command)
	}{
		{
			name: "join",
			raw:  `{"type":"join","name":"hero","wallet_address":"0xabc"}`,
			want: func(t *testing.T, cmd Command) {
				j, ok := cmd.(*JoinCmd)
				if !ok {
					t.Fatalf("got %T, want *JoinCmd", cmd)
				}
				if j.Name != "hero" || j.WalletAddress != "0xabc" {
					t.Fatalf("unexpected join: %+v", j)
				}
			},
		},
		{
			name: "move",
			raw:  `{"type":"move","dx":2.5,"dy":-4}`,
			want: func(t *testing.T, cmd Command) {
				m, ok := cmd.(*MoveCmd)
				if !ok {
					t.Fatalf("got %T, want *MoveCmd", cmd)
				}
				if m.DX != 2.5 || m.DY != -4 {
					t.Fatalf("unexpected move: %+v", m)
				}
			},
		},
		{
			name: "attack",
			raw:  `{"type":"attack","target_id":"p7"}`,
			want: func(t *testing.T, cmd Command) {
				a, ok := cmd.(*AttackCmd)
				if !ok {
					t.Fatalf("got %T, want *AttackCmd", cmd)
				}
				if a.TargetID != "p7" {
					t.Fatalf("unexpected attack: %+v", a)
				}
			},
		},
		{
			name: "useItem",
			raw:  `{"type":"useItem","item_id":"i1"}`,
			want: func(t *testing.T, cmd Command) {
				u, ok := cmd.(*UseItemCmd)
				if !ok {
					t.Fatalf("got %T, want *UseItemCmd", cmd)
				}
				if u.ItemID != "i1" {
					t.Fatalf("unexpected useItem: %+v", u)
				}
			},
		},
		{
			name: "equipItem",
			raw:  `{"type":"equipItem","item_id":"i1","slot":"MainHand"}`,
			want: func(t *testing.T, cmd Command) {
				e, ok := cmd.(*EquipItemCmd)
				if !ok {
					t.Fatalf("got %T, want *EquipItemCmd", cmd)
				}
				if e.ItemID != "i1" || e.Slot != "MainHand" {
					t.Fatalf("unexpected equipItem: %+v", e)
				}
			},
		},
		{
			name: "unequipItem",
			raw:  `{"type":"unequipItem","slot":"Chest"}`,
			want: func(t *testing.T, cmd Command) {
				if _, ok := cmd.(*UnequipItemCmd); !ok {
					t.Fatalf("got %T, want *UnequipItemCmd", cmd)
				}
			},
		},
		{
			name: "dropItem",
			raw:  `{"type":"dropItem","item_id":"i2"}`,
			want: func(t *testing.T, cmd Command) {
				if _, ok := cmd.(*DropItemCmd); !ok {
					t.Fatalf("got %T, want *DropItemCmd", cmd)
				}
			},
		},
		{
			name: "chat",
			raw:  `{"type":"chat","text":"hello"}`,
			want: func(t *testing.T, cmd Command) {
				c, ok := cmd.(*ChatCmd)
				if !ok {
					t.Fatalf("got %T, want *ChatCmd", cmd)
				}
				if c.Text != "hello" {
					t.Fatalf("unexpected chat: %+v", c)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := DecodeCommand([]byte(tc.raw))
			if err != nil {
				t.Fatalf("DecodeCommand: %v", err)
			}
			tc.want(t, cmd)
		})
	}
}

func TestDecodeCommand_Rejects(t *testing.T) {
	for _, raw := range []string{
		``,
		`not json`,
		`{}`,
		`{"type":"teleport"}`,
		`{"type":"move","dx":"east"}`,
	} {
		if _, err := DecodeCommand([]byte(raw)); err == nil {
			t.Fatalf("DecodeCommand(%q) should fail", raw)
		}
	}
}

func TestIsKnownCode(t *testing.T) {
	if !IsKnownCode(ErrInventoryFull) {
		t.Fatalf("ErrInventoryFull should be known")
	}
	if IsKnownCode("E_NOPE") {
		t.Fatalf("E_NOPE should be unknown")
	}
}
