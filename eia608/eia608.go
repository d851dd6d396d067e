package eia608

import (
	"github.com/flavioribeiro/donut-cc/h264"

	gocaption "github.com/szatmary/gocaption"
)

// EIA608Reader extracts CEA-608 field 1 captions carried next to the DTVCC
// data of SEI user data. It keeps the 608 frame state across calls.
type EIA608Reader struct {
	frame gocaption.EIA608Frame
}

func NewEIA608Reader() (r *EIA608Reader) {
	return &EIA608Reader{}
}

// Parse returns every caption completed by the access unit in data.
func (r *EIA608Reader) Parse(data []byte) ([]string, error) {
	nalus, err := h264.ParseNALUs(data)
	if err != nil {
		return nil, err
	}

	var captions []string
	for _, nal := range nalus.Units {
		// ANSI/SCTE 128-1 2020
		// Note that SEI payload is a SEI payloadType of 4 which contains the itu_t_t35_payload_byte for the terminal provider
		if nal.UnitType != h264.SupplementalEnhancementInformation || nal.SEI.PayloadType != h264.SEIPayloadTypeUserDataRegistered {
			continue
		}
		// ANSI/SCTE 128-1 2020
		// Caption, AFD and bar data shall be carried in the SEI raw byte sequence payload (RBSP)
		// syntax of the video Elementary Stream.
		ccData, err := gocaption.CEA708ToCCData(nal.SEI.Payload)
		if err != nil {
			return captions, err
		}
		for _, c := range ccData {
			ready, err := r.frame.Decode(c)
			if err != nil {
				return captions, err
			}
			if ready {
				captions = append(captions, r.frame.String())
			}
		}
	}
	return captions, nil
}
