// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package serialize

import (
	"bytes"
	"encoding/gob"
)

// encodeGob encodes v with the standard library's gob codec. gob is
// deterministic per Go version (unlike a hand-rolled map iteration)
// and needs no schema/codegen step, unlike protobuf or cbor, which the
// spec's "pin a codec per version" design does not call for.
func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
