package controllers

import (
	"fmt"
	"sync"

	"github.com/flavioribeiro/donut-cc/internal/entities"
	"go.uber.org/zap"
)

// CaptionDecoder decodes CEA-708 captions from video elementary stream
// payloads. Every call runs the whole pipeline synchronously:
// payload scan, DTVCC packets, service blocks, command interpretation.
//
// Processing is meant to be driven by a single demuxer goroutine; the mutex
// only serves readers (HTTP handlers, exports) running elsewhere.
type CaptionDecoder struct {
	l *zap.SugaredLogger

	mu          sync.Mutex
	state       entities.DecoderState
	config      entities.CaptionDecoderConfig
	callbacks   entities.CaptionCallbacks
	store       *CaptionStore
	interpreter *CommandInterpreter

	currentService      int
	packetsProcessed    uint64
	captionsDecoded     uint64
	errors              uint64
	malformedStructures uint64
}

func NewCaptionDecoder(l *zap.SugaredLogger) *CaptionDecoder {
	store := NewCaptionStore()
	return &CaptionDecoder{
		l:              l,
		state:          entities.DecoderUnconfigured,
		store:          store,
		interpreter:    NewCommandInterpreter(store, l),
		currentService: entities.MinService,
	}
}

// Initialize configures the decoder and registers its callbacks.
func (d *CaptionDecoder) Initialize(config entities.CaptionDecoderConfig, callbacks entities.CaptionCallbacks) error {
	service := config.PreferredService
	if service == 0 {
		service = entities.MinService
	}
	if !entities.ValidService(service) {
		return fmt.Errorf("%w: %d", entities.ErrInvalidService, service)
	}
	if o := config.WindowOpacity; o != nil && (*o < 0 || *o > 1) {
		return fmt.Errorf("%w: %v", entities.ErrInvalidWindowOpacity, *o)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == entities.DecoderClosed {
		return entities.ErrDecoderClosed
	}
	d.config = config
	d.callbacks = callbacks
	d.currentService = service
	if d.state == entities.DecoderUnconfigured {
		d.state = entities.DecoderConfigured
	}
	d.l.Infow("caption decoder configured",
		"service", service,
		"enabled", config.Enabled,
	)
	return nil
}

// ProcessVideoPayload decodes the captions embedded in one video access unit.
// pts is the 90 kHz presentation timestamp of the access unit, if known.
// It is a no-op until the decoder is initialized and after it is closed.
// Faults are counted and reported through the error callback, never returned.
func (d *CaptionDecoder) ProcessVideoPayload(payload []byte, pts *int64) {
	captions, err := d.process(payload, pts)
	if err != nil {
		d.fault(err)
	}
	for _, c := range captions {
		d.emit(c)
	}
}

func (d *CaptionDecoder) process(payload []byte, pts *int64) (captions []entities.DecodedCaption, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == entities.DecoderUnconfigured || d.state == entities.DecoderClosed {
		return nil, nil
	}
	d.packetsProcessed++

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", entities.ErrDecoderFault, r)
		}
	}()

	scan := ScanUserData(payload)
	if scan.Malformed > 0 {
		d.malformedStructures += uint64(scan.Malformed)
		d.l.Debugw("dropped malformed sei messages",
			"count", scan.Malformed,
		)
	}
	if len(scan.UserData) == 0 {
		return nil, nil
	}
	if d.state == entities.DecoderConfigured {
		d.state = entities.DecoderDecoding
	}

	packets, malformed := SplitDTVCCPackets(scan.UserData)
	d.contain(malformed...)

	for _, packet := range packets {
		blocks, perr := ParseServiceBlocks(packet)
		if perr != nil {
			d.contain(perr)
		}
		for _, block := range blocks {
			if c, ok := d.decodeBlock(block, pts); ok {
				captions = append(captions, c)
			}
		}
	}
	return captions, nil
}

// decodeBlock interprets a block and returns the service aggregate when the
// block belongs to the selected service and left text behind.
func (d *CaptionDecoder) decodeBlock(block ServiceBlock, pts *int64) (entities.DecodedCaption, bool) {
	d.store.Touch(block.Service, pts)
	if err := d.interpreter.Interpret(block); err != nil {
		d.contain(err)
	}

	if block.Service != d.currentService || !d.store.HasText(block.Service) {
		return entities.DecodedCaption{}, false
	}
	c, ok := d.store.Snapshot(block.Service)
	if ok {
		d.captionsDecoded++
	}
	return c, ok
}

// contain records malformed structures that were skipped.
func (d *CaptionDecoder) contain(errs ...error) {
	for _, err := range errs {
		d.malformedStructures++
		d.l.Debugw("contained malformed caption data",
			"error", err,
		)
	}
}

func (d *CaptionDecoder) emit(c entities.DecodedCaption) {
	d.mu.Lock()
	onCaption := d.callbacks.OnCaption
	d.mu.Unlock()
	if onCaption == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			d.fault(fmt.Errorf("%w: caption callback: %v", entities.ErrDecoderFault, r))
		}
	}()
	onCaption(c)
}

func (d *CaptionDecoder) fault(err error) {
	d.mu.Lock()
	d.errors++
	onError := d.callbacks.OnError
	d.mu.Unlock()

	if onError == nil {
		d.l.Errorw("caption decoder fault",
			"error", err,
		)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			d.l.Errorw("caption error callback failed",
				"error", err,
				"panic", r,
			)
		}
	}()
	onError(err)
}

// SetService selects the service whose captions reach the caption callback.
func (d *CaptionDecoder) SetService(service int) error {
	if !entities.ValidService(service) {
		return fmt.Errorf("%w: %d", entities.ErrInvalidService, service)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.currentService = service
	return nil
}

func (d *CaptionDecoder) CurrentService() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.currentService
}

// GetAvailableServices lists the services that received data, ascending.
func (d *CaptionDecoder) GetAvailableServices() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Services()
}

func (d *CaptionDecoder) GetServiceCaptions(service int) (entities.DecodedCaption, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Snapshot(service)
}

func (d *CaptionDecoder) ClearService(service int) error {
	if !entities.ValidService(service) {
		return fmt.Errorf("%w: %d", entities.ErrInvalidService, service)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.store.ClearService(service)
	return nil
}

func (d *CaptionDecoder) ClearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.store.ClearAll()
}

func (d *CaptionDecoder) GetMetrics() entities.Metrics {
	d.mu.Lock()
	defer d.mu.Unlock()
	return entities.Metrics{
		PacketsProcessed:    d.packetsProcessed,
		CaptionsDecoded:     d.captionsDecoded,
		Errors:              d.errors,
		MalformedStructures: d.malformedStructures,
		CurrentService:      d.currentService,
		Services:            d.store.Services(),
	}
}

func (d *CaptionDecoder) GetState() entities.DecoderState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Config returns the operator styling the decoder was initialized with.
func (d *CaptionDecoder) Config() entities.CaptionDecoderConfig {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.config
}

// Reset drops all decoded state and counters. The selected service is kept
// and a decoding decoder goes back to configured.
func (d *CaptionDecoder) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *CaptionDecoder) reset() {
	d.store.ClearAll()
	d.packetsProcessed = 0
	d.captionsDecoded = 0
	d.errors = 0
	d.malformedStructures = 0
	if d.state == entities.DecoderDecoding || d.state == entities.DecoderError {
		d.state = entities.DecoderConfigured
	}
}

// Close resets the decoder and releases its callbacks; later payloads are ignored.
func (d *CaptionDecoder) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
	d.state = entities.DecoderClosed
	d.callbacks = entities.CaptionCallbacks{}
	d.l.Infow("caption decoder closed")
}

// ExportAsText renders the given services as plain text, every service with
// data when none is given.
func (d *CaptionDecoder) ExportAsText(services ...int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(services) == 0 {
		services = d.store.Services()
	}
	return d.store.ExportText(services)
}

// ExportAsSRT renders the given services as SubRip, the selected service when
// none is given.
func (d *CaptionDecoder) ExportAsSRT(services ...int) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(services) == 0 {
		services = []int{d.currentService}
	}
	return d.store.ExportSRT(services)
}
