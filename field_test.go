package headless5250

import "testing"

func TestNewScreenFieldDecodesFFW(t *testing.T) {
	tests := []struct {
		name      string
		ffw1      byte
		protected bool
		numeric   bool
	}{
		{"plain input", 0x40, false, false},
		{"bypass", 0x60, true, false},
		{"numeric shift", 0x43, false, true},
		{"signed numeric", 0x47, false, true},
		{"alpha shift", 0x41, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newScreenField(100, 10, tt.ffw1, 0x00, 0x20)
			if f.Protected != tt.protected {
				t.Errorf("expected protected=%v, got %v", tt.protected, f.Protected)
			}
			if f.NumericOnly != tt.numeric {
				t.Errorf("expected numeric=%v, got %v", tt.numeric, f.NumericOnly)
			}
			if f.Bypass != f.Protected {
				t.Error("bypass must track protected")
			}
		})
	}
}

func TestScreenFieldBounds(t *testing.T) {
	f := newScreenField(100, 10, 0x40, 0x00, 0x20)

	if f.StartPos != 100 || f.EndPos != 109 {
		t.Errorf("expected [100,109], got [%d,%d]", f.StartPos, f.EndPos)
	}
	if f.Length() != 10 {
		t.Errorf("expected length 10, got %d", f.Length())
	}
	if !f.Contains(100) || !f.Contains(109) {
		t.Error("field must contain both inclusive ends")
	}
	if f.Contains(99) || f.Contains(110) {
		t.Error("field must not contain adjacent positions")
	}
}

func TestFieldTableLookup(t *testing.T) {
	table := NewFieldTable()
	table.Add(newScreenField(10, 5, 0x40, 0x00, 0x20))
	table.Add(newScreenField(30, 5, 0x40, 0x00, 0x20))

	if table.Count() != 2 {
		t.Fatalf("expected 2 fields, got %d", table.Count())
	}
	if f := table.Field(1); f == nil || f.StartPos != 10 {
		t.Errorf("expected field 1 at 10, got %+v", f)
	}
	if f := table.Field(0); f != nil {
		t.Error("field numbers are 1-based, 0 must not resolve")
	}
	if f := table.Field(3); f != nil {
		t.Error("out-of-range field number must not resolve")
	}
	if f := table.FieldAt(32); f == nil || f.StartPos != 30 {
		t.Errorf("expected FieldAt(32) in second field, got %+v", f)
	}
	if f := table.FieldAt(20); f != nil {
		t.Error("expected no field between fields")
	}
}

func TestFieldTableReset(t *testing.T) {
	table := NewFieldTable()
	table.Add(newScreenField(10, 5, 0x40, 0x00, 0x20))
	table.SetCurrent(1)

	table.Reset()

	if table.Count() != 0 {
		t.Errorf("expected empty table, got %d", table.Count())
	}
	if table.Current() != nil {
		t.Error("expected no current field after reset")
	}
}

func TestNextUnprotectedAllBypass(t *testing.T) {
	table := NewFieldTable()
	table.Add(newScreenField(10, 5, 0x60, 0x00, 0x20))
	table.Add(newScreenField(30, 5, 0x60, 0x00, 0x20))

	if n := table.NextUnprotected(0); n != 0 {
		t.Errorf("expected 0 for all-bypass table, got %d", n)
	}
	if n := table.PrevUnprotected(50); n != 0 {
		t.Errorf("expected 0 for all-bypass table, got %d", n)
	}
}

func TestCurrentFieldTracking(t *testing.T) {
	table := NewFieldTable()
	table.Add(newScreenField(10, 5, 0x40, 0x00, 0x20))
	table.Add(newScreenField(30, 5, 0x40, 0x00, 0x20))

	// The first added field becomes current by default.
	if f := table.Current(); f == nil || f.StartPos != 10 {
		t.Errorf("expected first field current, got %+v", f)
	}

	table.SetCurrent(2)
	if f := table.Current(); f == nil || f.StartPos != 30 {
		t.Errorf("expected second field current, got %+v", f)
	}

	// Out-of-range updates are ignored.
	table.SetCurrent(5)
	if f := table.Current(); f == nil || f.StartPos != 30 {
		t.Errorf("expected current unchanged, got %+v", f)
	}
}
