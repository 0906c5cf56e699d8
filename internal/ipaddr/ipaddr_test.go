package ipaddr

import "testing"

func TestParseAddrRoundTrip(t *testing.T) {
	cases := []string{"1.2.3.4", "0.0.0.0", "255.255.255.255", "10.0.0.1"}
	for _, s := range cases {
		a, err := ParseAddr(s)
		if err != nil {
			t.Fatalf("ParseAddr(%q): %v", s, err)
		}
		if got := a.String(); got != s {
			t.Errorf("ParseAddr(%q).String() = %q, want %q", s, got, s)
		}
	}
}

func TestParseAddrInvalid(t *testing.T) {
	if _, err := ParseAddr("not-an-ip"); err == nil {
		t.Error("expected error for malformed address")
	}
	if _, err := ParseAddr("::1"); err == nil {
		t.Error("expected error for non-IPv4 address")
	}
}

func TestParseAddrInt(t *testing.T) {
	a, err := ParseAddrInt("16909060") // 1.2.3.4
	if err != nil {
		t.Fatalf("ParseAddrInt: %v", err)
	}
	if got, want := a.String(), "1.2.3.4"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMaskAndContains(t *testing.T) {
	p := NewPrefix(mustAddr(t, "1.2.3.4"), 24)
	if got, want := p.String(), "1.2.3.0/24"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if !p.Contains(mustAddr(t, "1.2.3.255")) {
		t.Error("expected 1.2.3.0/24 to contain 1.2.3.255")
	}
	if p.Contains(mustAddr(t, "1.2.4.0")) {
		t.Error("expected 1.2.3.0/24 not to contain 1.2.4.0")
	}
}

func TestEnumerate24(t *testing.T) {
	p, err := ParsePrefix("1.2.0.0/22")
	if err != nil {
		t.Fatal(err)
	}
	subs := p.Enumerate24()
	if len(subs) != 4 {
		t.Fatalf("got %d /24s, want 4", len(subs))
	}
	want := []string{"1.2.0.0/24", "1.2.1.0/24", "1.2.2.0/24", "1.2.3.0/24"}
	for i, w := range want {
		if got := subs[i].String(); got != w {
			t.Errorf("subs[%d] = %q, want %q", i, got, w)
		}
	}
}

func TestEnumerate24DegenerateCoarserThan24(t *testing.T) {
	p, err := ParsePrefix("1.2.3.64/26")
	if err != nil {
		t.Fatal(err)
	}
	subs := p.Enumerate24()
	if len(subs) != 1 || subs[0].String() != "1.2.3.0/24" {
		t.Fatalf("got %v, want single 1.2.3.0/24", subs)
	}
}

func TestNetipBridge(t *testing.T) {
	p, err := ParsePrefix("10.0.0.0/8")
	if err != nil {
		t.Fatal(err)
	}
	np := p.Netip()
	if np.Bits() != 8 {
		t.Errorf("bits = %d, want 8", np.Bits())
	}
	if np.Addr().String() != "10.0.0.0" {
		t.Errorf("addr = %s, want 10.0.0.0", np.Addr())
	}
}

func mustAddr(t *testing.T, s string) Addr {
	t.Helper()
	a, err := ParseAddr(s)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", s, err)
	}
	return a
}
