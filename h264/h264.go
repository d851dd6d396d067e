package h264

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrForbiddenZeroBit = errors.New("forbidden_zero_bit is not 0")
var ErrTruncatedSEI = errors.New("truncated sei message")

var startCode = []byte{0x00, 0x00, 0x01}

// ParseNALUs splits an Annex-B byte stream into NAL units.
func ParseNALUs(data []byte) (NALUs, error) {
	var nalus NALUs

	rawNALUs := bytes.Split(data, startCode)

	for _, rawNALU := range rawNALUs[1:] {
		// a 4-byte start code leaves its leading zero at the end of the previous unit
		rawNALU = bytes.TrimRight(rawNALU, "\x00")
		if len(rawNALU) == 0 {
			continue
		}
		nal, err := ParseNAL(rawNALU)
		if err != nil {
			return NALUs{}, err
		}
		nalus.Units = append(nalus.Units, nal)
	}

	return nalus, nil
}

func ParseNAL(data []byte) (NAL, error) {
	n := NAL{}
	if len(data) == 0 {
		return NAL{}, fmt.Errorf("empty nal unit")
	}
	if data[0]>>7&0x01 != 0 {
		return NAL{}, ErrForbiddenZeroBit
	}
	n.RefIDC = (data[0] >> 5) & 0x03
	n.UnitType = NALUnitTypeOf(data[0])
	nalUnitHeaderBytes := 1
	n.HeaderBytes = data[:nalUnitHeaderBytes]
	n.RBSPByte = UnescapeRBSP(data[nalUnitHeaderBytes:])

	if err := n.ParseRBSP(); err != nil {
		return NAL{}, err
	}
	return n, nil
}

// UnescapeRBSP drops the emulation_prevention_three_byte of every 00 00 03 sequence.
func UnescapeRBSP(data []byte) []byte {
	rbsp := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if i+2 < len(data) && data[i] == 0x00 && data[i+1] == 0x00 && data[i+2] == 0x03 {
			rbsp = append(rbsp, data[i], data[i+1])
			i += 2
			continue
		}
		rbsp = append(rbsp, data[i])
	}
	return rbsp
}

func (n *NAL) ParseRBSP() error {
	switch n.UnitType {
	case SupplementalEnhancementInformation:
		sei, err := ParseSEI(n.RBSPByte)
		if err != nil {
			return err
		}
		n.SEI = sei
	}

	return nil
}

// ParseSEI decodes the payload type and size of the first sei_message in rbsp,
// both coded as a run of 0xFF bytes plus a last byte.
func ParseSEI(rbsp []byte) (SEI, error) {
	sei := SEI{}
	offset := 0

	payloadType, n, err := readSEIValue(rbsp[offset:])
	if err != nil {
		return SEI{}, err
	}
	sei.PayloadType = payloadType
	offset += n

	payloadSize, n, err := readSEIValue(rbsp[offset:])
	if err != nil {
		return SEI{}, err
	}
	sei.PayloadSize = payloadSize
	offset += n

	if offset+payloadSize > len(rbsp) {
		return sei, fmt.Errorf("%w: payload size %d, %d bytes left", ErrTruncatedSEI, payloadSize, len(rbsp)-offset)
	}
	sei.Payload = rbsp[offset : offset+payloadSize]
	return sei, nil
}

func readSEIValue(data []byte) (int, int, error) {
	value := 0
	for i, b := range data {
		value += int(b)
		if b != 0xff {
			return value, i + 1, nil
		}
	}
	return 0, 0, ErrTruncatedSEI
}
