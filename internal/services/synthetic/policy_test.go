package synthetic

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"AUTO", ModeAuto, false},
		{"live", ModeLive, false},
		{" synthetic ", ModeSynthetic, false},
		{"mock", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPolicy(t *testing.T) {
	tests := []struct {
		mode      Mode
		live      bool
		synthetic bool
	}{
		{ModeAuto, true, true},
		{ModeLive, true, false},
		{ModeSynthetic, false, true},
	}
	for _, tt := range tests {
		p := Policy{Mode: tt.mode}
		if p.AllowLive() != tt.live {
			t.Errorf("%s: AllowLive = %v, want %v", tt.mode, p.AllowLive(), tt.live)
		}
		if p.AllowSynthetic() != tt.synthetic {
			t.Errorf("%s: AllowSynthetic = %v, want %v", tt.mode, p.AllowSynthetic(), tt.synthetic)
		}
	}
}
