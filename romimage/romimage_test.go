package romimage

import (
	"strings"
	"testing"
)

func TestLoadRawPadsWithFF(t *testing.T) {
	data, err := LoadRaw([]uint8{0x01, 0x02, 0x03}, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 16 {
		t.Fatalf("expected 16 bytes, got %d", len(data))
	}
	if data[0] != 0x01 || data[2] != 0x03 || data[3] != 0xFF || data[15] != 0xFF {
		t.Fatalf("unexpected padding: %v", data)
	}
}

func TestLoadRawRejectsEmpty(t *testing.T) {
	if _, err := LoadRaw(nil, 16); err == nil {
		t.Fatalf("expected error for empty ROM")
	}
}

func TestLoadRawRejectsOversize(t *testing.T) {
	if _, err := LoadRaw(make([]uint8, 17), 16); err == nil {
		t.Fatalf("expected error for oversized ROM")
	}
}

func TestLoadIntelHexDataRecord(t *testing.T) {
	// :02000000AABB99 -> 2 bytes at $0000: AA BB, checksum $99
	hex := ":02000000AABB99\n:00000001FF\n"
	data, err := LoadIntelHex(strings.NewReader(hex), 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data[0] != 0xAA || data[1] != 0xBB {
		t.Fatalf("expected AA BB at start, got %02X %02X", data[0], data[1])
	}
	if data[2] != 0xFF {
		t.Fatalf("expected unloaded bytes to stay 0xFF, got %02X", data[2])
	}
}

func TestLoadIntelHexBadChecksumErrors(t *testing.T) {
	hex := ":02000000AABB00\n"
	if _, err := LoadIntelHex(strings.NewReader(hex), 16); err == nil {
		t.Fatalf("expected checksum mismatch error")
	}
}

func TestLoadIntelHexRejectsMalformedLine(t *testing.T) {
	if _, err := LoadIntelHex(strings.NewReader("not hex\n"), 16); err == nil {
		t.Fatalf("expected invalid-format error")
	}
}

func TestMaxSizeBySystemType(t *testing.T) {
	if MaxSize(true) != 0x8000 {
		t.Fatalf("expected AppleIIc max size $8000, got $%X", MaxSize(true))
	}
	if MaxSize(false) != 0x10000 {
		t.Fatalf("expected Generic max size $10000, got $%X", MaxSize(false))
	}
}
