package controllers

import (
	"bytes"

	"github.com/flavioribeiro/donut-cc/h264"
)

var (
	nalStartCode         = []byte{0x00, 0x00, 0x00, 0x01}
	mpeg2StartCodePrefix = []byte{0x00, 0x00, 0x01}
)

// ISO/IEC 13818-2 user_data_start_code
const mpeg2UserDataStartCode = 0xb2

// ScanResult is the caption user data found in one video payload.
type ScanResult struct {
	UserData []byte
	// Malformed counts embedded structures dropped while scanning.
	Malformed int
}

// ScanUserData collects the caption user data embedded in a video payload:
// H.264 SEI messages of payload type 4 behind a 00 00 00 01 start code and
// MPEG-2 user data behind a 00 00 01 B2 start code, in the order they appear.
func ScanUserData(payload []byte) ScanResult {
	result := ScanResult{}

	for i := 0; i+4 <= len(payload); i++ {
		switch {
		case bytes.Equal(payload[i:i+4], nalStartCode) && i+4 < len(payload):
			if h264.NALUnitTypeOf(payload[i+4]) != h264.SupplementalEnhancementInformation {
				continue
			}
			data, err := seiUserData(payload[i+5:])
			if err != nil {
				result.Malformed++
				continue
			}
			result.UserData = append(result.UserData, data...)
		case bytes.Equal(payload[i:i+3], mpeg2StartCodePrefix) && payload[i+3] == mpeg2UserDataStartCode:
			body := payload[i+4:]
			if end := bytes.Index(body, mpeg2StartCodePrefix); end >= 0 {
				// zero bytes before a start code are stuffing or the first byte
				// of a 4-byte start code
				body = bytes.TrimRight(body[:end], "\x00")
			}
			result.UserData = append(result.UserData, body...)
		}
	}

	return result
}

// seiUserData returns the user_data_registered_itu_t_t35 payload of a SEI NAL
// unit body, nil for other payload types.
func seiUserData(nal []byte) ([]byte, error) {
	if end := bytes.Index(nal, mpeg2StartCodePrefix); end >= 0 {
		nal = nal[:end]
	}
	sei, err := h264.ParseSEI(h264.UnescapeRBSP(nal))
	if err != nil {
		return nil, err
	}
	if sei.PayloadType != h264.SEIPayloadTypeUserDataRegistered {
		return nil, nil
	}
	return sei.Payload, nil
}
