package entities

import (
	"errors"
	"fmt"
)

var ErrHTTPGetOnly = errors.New("you must use http GET verb")
var ErrHTTPPostOnly = errors.New("you must use http POST verb")
var ErrMissingService = errors.New("service must not be empty")

var ErrMissingInput = errors.New("input must not be empty")

// Caption decoder
var ErrInvalidService = errors.New("caption service must be between 1 and 6")
var ErrInvalidWindowOpacity = errors.New("window opacity must be between 0 and 1")
var ErrDecoderClosed = errors.New("caption decoder is closed")
var ErrDecoderFault = errors.New("caption decoder fault")

// DTVCC malformed structures
var ErrMalformedDTVCC = errors.New("malformed dtvcc")
var ErrPacketOverrun = fmt.Errorf("%w packet size overruns buffer", ErrMalformedDTVCC)
var ErrBlockOverrun = fmt.Errorf("%w service block size overruns packet", ErrMalformedDTVCC)
var ErrReservedService = fmt.Errorf("%w reserved service number", ErrMalformedDTVCC)
var ErrTruncatedCommand = fmt.Errorf("%w command parameters truncated", ErrMalformedDTVCC)
