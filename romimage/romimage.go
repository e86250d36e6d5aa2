// Package romimage parses ROM images into byte slices CORE can load
// through Bus.LoadROM: a raw padded-blob format and Intel HEX. Reading the
// bytes from disk is deliberately left to a caller (cmd/iicdump) — this
// package only ever touches []uint8 and io.Reader, so CORE tests can build
// realistic images without reaching into os.
package romimage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// MaxSize caps how large a raw or Intel HEX image may be for the given
// system type, matching original_source/src/rom.rs's per-SystemType limit.
func MaxSize(isAppleIIc bool) int {
	if isAppleIIc {
		return 0x8000
	}
	return 0x10000
}

// LoadRaw pads bytes out to maxSize with 0xFF (the erased-EPROM value) and
// returns the result. It errors if bytes is empty or larger than maxSize.
func LoadRaw(bytes []uint8, maxSize int) ([]uint8, error) {
	if len(bytes) == 0 {
		return nil, errors.New("romimage: ROM is empty")
	}
	if len(bytes) > maxSize {
		return nil, fmt.Errorf("romimage: ROM too large: %d bytes (max allowed: %d bytes)", len(bytes), maxSize)
	}

	data := make([]uint8, maxSize)
	for i := range data {
		data[i] = 0xFF
	}
	copy(data, bytes)
	return data, nil
}

// LoadIntelHex parses an Intel HEX stream into a maxSize-byte image,
// 0xFF-filled outside the records present. Record types 0x00 (data), 0x01
// (end-of-file) and 0x02 (extended segment address) are handled; any other
// type is skipped. Grounded on original_source/src/rom.rs's
// load_from_intel.
func LoadIntelHex(r io.Reader, maxSize int) ([]uint8, error) {
	data := make([]uint8, maxSize)
	for i := range data {
		data[i] = 0xFF
	}

	var addressOffset uint32
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 11 || line[0] != ':' {
			return nil, errors.New("romimage: invalid Intel HEX format")
		}

		byteCount, err := hexByte(line, 1)
		if err != nil {
			return nil, err
		}
		address, err := hexWord(line, 3)
		if err != nil {
			return nil, err
		}
		recordType, err := hexByte(line, 7)
		if err != nil {
			return nil, err
		}

		var checksum uint8
		for i := 1; i < len(line)-2; i += 2 {
			b, err := hexByte(line, i)
			if err != nil {
				return nil, err
			}
			checksum += b
		}
		checksum = -checksum

		expected, err := hexByte(line, len(line)-2)
		if err != nil {
			return nil, err
		}
		if checksum != expected {
			return nil, errors.New("romimage: checksum mismatch")
		}

		switch recordType {
		case 0x00:
			addr := int(addressOffset) + int(address)
			if addr+int(byteCount) > maxSize {
				return nil, errors.New("romimage: HEX file exceeds ROM size")
			}
			for i := 0; i < int(byteCount); i++ {
				b, err := hexByte(line, 9+i*2)
				if err != nil {
					return nil, err
				}
				data[addr+i] = b
			}
		case 0x01:
			return data, nil
		case 0x02:
			seg, err := hexWord(line, 9)
			if err != nil {
				return nil, err
			}
			addressOffset = uint32(seg) * 16
		default:
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("romimage: %w", err)
	}

	return data, nil
}

func hexByte(line string, offset int) (uint8, error) {
	if offset+2 > len(line) {
		return 0, errors.New("romimage: truncated Intel HEX record")
	}
	v, err := strconv.ParseUint(line[offset:offset+2], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("romimage: %w", err)
	}
	return uint8(v), nil
}

func hexWord(line string, offset int) (uint16, error) {
	if offset+4 > len(line) {
		return 0, errors.New("romimage: truncated Intel HEX record")
	}
	v, err := strconv.ParseUint(line[offset:offset+4], 16, 16)
	if err != nil {
		return 0, fmt.Errorf("romimage: %w", err)
	}
	return uint16(v), nil
}
