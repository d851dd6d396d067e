package h264

type NALUs struct {
	Units []NAL
}

// Rec. ITU-T H.264 (08/2021) p.43
type NAL struct {
	RefIDC      byte
	UnitType    NALUnitType
	RBSPByte    []byte
	HeaderBytes []byte
	SEI
}

// SEI holds the first sei_message of a SEI RBSP.
// Rec. ITU-T H.264 (08/2021) 7.3.2.3.1
type SEI struct {
	PayloadType int
	PayloadSize int
	// Payload is bounded by PayloadSize and aliases RBSPByte.
	Payload []byte
}

type NALUnitType byte

const (
	// Rec. ITU-T H.264 (08/2021) p.65
	CodedSliceNonIDRPicture            = NALUnitType(1)  //	Coded slice of a non-IDR picture
	CodedSliceIDRPicture               = NALUnitType(5)  //	Coded slice of an IDR picture
	SupplementalEnhancementInformation = NALUnitType(6)  //	Supplemental enhancement information (SEI)
	SequenceParameterSet               = NALUnitType(7)  //	Sequence parameter set
	PictureParameterSet                = NALUnitType(8)  //	Picture parameter set
	AccessUnitDelimiter                = NALUnitType(9)  //	Access unit delimiter
	FillerData                         = NALUnitType(12) //	Filler data
)

const (
	// Rec. ITU-T H.264 (08/2021) Annex D
	// ANSI/SCTE 128-1 2020 carries captions in user_data_registered_itu_t_t35
	SEIPayloadTypeUserDataRegistered = 4
)

// NALUnitTypeOf extracts nal_unit_type from a NAL header byte.
func NALUnitTypeOf(header byte) NALUnitType {
	return NALUnitType(header & 0x1f)
}
