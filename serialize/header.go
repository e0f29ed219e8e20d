// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serialize

import (
	"bytes"
	"fmt"
)

// header is the fixed-layout prefix common to both snapshot formats:
// [magic:u32][version:u32][tick:u64], all little-endian (spec.md §6).
type header struct {
	Magic   uint32
	Version uint32
	Tick    uint64
}

func writeHeader(buf *bytes.Buffer, h header) {
	var tmp [16]byte
	byteOrder.PutUint32(tmp[0:4], h.Magic)
	byteOrder.PutUint32(tmp[4:8], h.Version)
	byteOrder.PutUint64(tmp[8:16], h.Tick)
	buf.Write(tmp[:])
}

func readHeader(data []byte) (header, []byte, error) {
	if len(data) < 16 {
		return header{}, nil, &DecodeError{Reason: "short header", Err: fmt.Errorf("need 16 bytes, got %d", len(data))}
	}
	h := header{
		Magic:   byteOrder.Uint32(data[0:4]),
		Version: byteOrder.Uint32(data[4:8]),
		Tick:    byteOrder.Uint64(data[8:16]),
	}
	return h, data[16:], nil
}

// DetectFormat peeks at data's magic without fully decoding, reporting
// whether it is legacy, partitioned, or unrecognized.
func DetectFormat(data []byte) (magic uint32, ok bool) {
	if len(data) < 4 {
		return 0, false
	}
	return byteOrder.Uint32(data[0:4]), true
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	byteOrder.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	byteOrder.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func readU32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, &DecodeError{Reason: "short u32", Err: fmt.Errorf("need 4 bytes, got %d", len(data))}
	}
	return byteOrder.Uint32(data[0:4]), data[4:], nil
}

func readU16(data []byte) (uint16, []byte, error) {
	if len(data) < 2 {
		return 0, nil, &DecodeError{Reason: "short u16", Err: fmt.Errorf("need 2 bytes, got %d", len(data))}
	}
	return byteOrder.Uint16(data[0:2]), data[2:], nil
}

func readU8(data []byte) (uint8, []byte, error) {
	if len(data) < 1 {
		return 0, nil, &DecodeError{Reason: "short u8", Err: fmt.Errorf("need 1 byte, got %d", len(data))}
	}
	return data[0], data[1:], nil
}

func readBytes(data []byte, n int) ([]byte, []byte, error) {
	if len(data) < n {
		return nil, nil, &DecodeError{Reason: "short payload", Err: fmt.Errorf("need %d bytes, got %d", n, len(data))}
	}
	return data[:n], data[n:], nil
}
