package encode

import (
	"strings"
	"testing"
)

func TestConfigValidateRejectsBadBounds(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"version min zero", Config{VersionMin: 0, VersionMax: 40, Level: High, Mask: MaskAuto}},
		{"version max above range", Config{VersionMin: 1, VersionMax: 41, Level: High, Mask: MaskAuto}},
		{"inverted range", Config{VersionMin: 10, VersionMax: 9, Level: High, Mask: MaskAuto}},
		{"mask eight", Config{VersionMin: 1, VersionMax: 40, Level: High, Mask: 8}},
	}
	for _, tc := range cases {
		if err := tc.cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}
	ok := Config{VersionMin: 1, VersionMax: 40, Level: High, Mask: MaskAuto}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestEncodeSelectsStandardSize(t *testing.T) {
	enc := New(Config{VersionMin: 1, VersionMax: 40, Level: Low, Mask: MaskAuto})
	m, err := enc.Encode("https://example.com")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// Side length is 17 + 4*version; a short URL fits well below version 40.
	size := m.Size()
	if size < 21 || size > 177 || (size-17)%4 != 0 {
		t.Fatalf("size %d is not a standard side length", size)
	}
}

func TestEncodeCapacityBoundaryVersionOne(t *testing.T) {
	// Version 1 at Low holds exactly 17 bytes in byte mode.
	enc := New(Config{VersionMin: 1, VersionMax: 1, Level: Low, Mask: MaskAuto})

	fits := strings.Repeat("é", 8) + "x" // 17 UTF-8 bytes, forces byte mode
	m, err := enc.Encode(fits)
	if err != nil {
		t.Fatalf("payload at capacity failed: %v", err)
	}
	if m.Size() != 21 {
		t.Fatalf("version 1 side length = %d, want 21", m.Size())
	}

	if _, err := enc.Encode(fits + "x"); err == nil {
		t.Fatal("payload one byte over capacity succeeded")
	}
}

func TestEncodeFixedMask(t *testing.T) {
	auto := New(Config{VersionMin: 1, VersionMax: 10, Level: Medium, Mask: MaskAuto})
	fixed := New(Config{VersionMin: 1, VersionMax: 10, Level: Medium, Mask: 3})

	a, err := auto.Encode("PAYLOAD-1234")
	if err != nil {
		t.Fatalf("auto mask: %v", err)
	}
	f, err := fixed.Encode("PAYLOAD-1234")
	if err != nil {
		t.Fatalf("fixed mask: %v", err)
	}
	if a.Size() != f.Size() {
		t.Fatalf("mask choice changed version: %d vs %d", a.Size(), f.Size())
	}
}

func TestLevelString(t *testing.T) {
	for lvl, want := range map[Level]string{Low: "Low", Medium: "Medium", Quartile: "Quartile", High: "High"} {
		if got := lvl.String(); got != want {
			t.Fatalf("Level.String() = %q, want %q", got, want)
		}
	}
}
