// Package teststreaming builds synthetic caption carrying video payloads.
package teststreaming

// ServiceBlock returns a DTVCC service block header followed by data.
func ServiceBlock(service int, data ...byte) []byte {
	return append([]byte{byte(service<<5) | byte(len(data)&0x1f)}, data...)
}

// DTVCCPacket returns a 0x03 marked DTVCC packet wrapping blocks.
func DTVCCPacket(blocks ...[]byte) []byte {
	var payload []byte
	for _, b := range blocks {
		payload = append(payload, b...)
	}
	return append([]byte{0x03, byte(len(payload) & 0x3f)}, payload...)
}

// SEINAL returns an H.264 SEI NAL unit with a 4-byte start code carrying
// userData as a payload type 4 message.
func SEINAL(userData []byte) []byte {
	nal := []byte{0x00, 0x00, 0x00, 0x01, 0x06, 0x04}
	size := len(userData)
	for size >= 0xff {
		nal = append(nal, 0xff)
		size -= 0xff
	}
	nal = append(nal, byte(size))
	nal = append(nal, userData...)
	// rbsp_trailing_bits
	return append(nal, 0x80)
}

// MPEG2UserData returns an MPEG-2 user_data_start_code followed by userData.
func MPEG2UserData(userData []byte) []byte {
	return append([]byte{0x00, 0x00, 0x01, 0xb2}, userData...)
}

// SelectWindowText returns a block body selecting window 0 then the text.
func SelectWindowText(text string) []byte {
	return append([]byte{0x80}, []byte(text)...)
}

// Concat joins payload fragments.
func Concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
