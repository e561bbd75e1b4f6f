package export

import (
	"fmt"

	"github.com/thomasgibson/dgviz/interp"
	"github.com/thomasgibson/dgviz/nodal"
)

// pipelineStage tracks progress through one export invocation. Any
// failure aborts the run before stageWriting; nothing is retried.
type pipelineStage uint8

const (
	stageIdle pipelineStage = iota
	stagePreparing
	stageResampling
	stageReshaping
	stageWriting
	stageDone
)

func (s pipelineStage) String() string {
	switch s {
	case stageIdle:
		return "idle"
	case stagePreparing:
		return "preparing"
	case stageResampling:
		return "resampling"
	case stageReshaping:
		return "reshaping"
	case stageWriting:
		return "writing"
	case stageDone:
		return "done"
	}
	return "unknown"
}

// Option adjusts a single export invocation
type Option func(*exportConfig)

type exportConfig struct {
	fieldNames    []string
	auxBuffer     []float64
	auxFieldNames []string
	sampleCount   int
	writer        MeshWriter
}

// WithFieldNames supplies display names for the state components,
// positionally. Length must match the component count.
func WithFieldNames(names []string) Option {
	return func(c *exportConfig) { c.fieldNames = names }
}

// WithAux adds auxiliary fields, emitted after the state fields. The
// buffer uses the same [node, component, element] layout as the state;
// names may be nil for "aux1..auxk" defaults.
func WithAux(buf []float64, names []string) Option {
	return func(c *exportConfig) {
		c.auxBuffer = buf
		c.auxFieldNames = names
	}
}

// WithSampleCount requests resampling onto m uniform points per axis.
// Zero (the default) keeps the native solution nodes and routes to the
// raw writer.
func WithSampleCount(m int) Option {
	return func(c *exportConfig) { c.sampleCount = m }
}

// WithWriter replaces the exporter's writer for this call only. Useful
// when one exporter serves several output targets.
func WithWriter(w MeshWriter) Option {
	return func(c *exportConfig) { c.writer = w }
}

// Exporter prepares per-rank nodal solution data and dispatches it to
// a mesh writer. It owns every intermediate array it allocates and
// never mutates caller buffers; interpolation operators are cached
// across invocations keyed by source nodes, sample count and
// dimensionality.
type Exporter struct {
	Writer MeshWriter

	cache *interp.OperatorCache
}

// NewExporter wires an exporter to its downstream mesh writer
func NewExporter(w MeshWriter) *Exporter {
	return &Exporter{
		Writer: w,
		cache:  interp.NewOperatorCache(),
	}
}

// Export writes one file set for the given state buffer. The buffer is
// laid out [node, component, element] with node varying fastest, the
// same convention as the grid's coordinate buffer; the component count
// is taken from the buffer length. A negative sample count is
// rejected; zero selects raw mode, positive selects high-order mode
// with that many samples per axis. Only owned (non-halo) elements
// reach the writer.
func (ex *Exporter) Export(prefix string, state []float64, grid GridProvider, opts ...Option) error {
	var cfg exportConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	run := exportRun{stage: stageIdle}

	// Preparing: resolve the output mode once, view the buffers,
	// assign names, filter to owned elements
	run.stage = stagePreparing

	if cfg.sampleCount < 0 {
		return run.abort(fmt.Errorf("%w: sampleCount %d", interp.ErrInvalidSampleCount, cfg.sampleCount))
	}
	nq := len(grid.RefNodes())
	d := grid.Dims().NumAxes()
	if pow(nq, d) != grid.Np() {
		return run.abort(fmt.Errorf("%w: %d reference nodes per axis does not give %d nodes per element over %d axes",
			nodal.ErrShapeMismatch, nq, grid.Np(), d))
	}

	var mode exportMode
	if cfg.sampleCount == 0 {
		mode = rawExport{nq: nq}
	} else {
		mode = highOrderExport{samples: cfg.sampleCount}
	}

	coords, err := nodal.GeometryFields(grid.Coordinates(), grid.Np(), grid.Dims(), grid.NumElements())
	if err != nil {
		return run.abort(err)
	}
	fields, err := ex.gatherFields(state, cfg, grid)
	if err != nil {
		return run.abort(err)
	}

	own := grid.Ownership()
	if err = own.Validate(); err != nil {
		return run.abort(fmt.Errorf("element ownership: %w", err))
	}
	if !own.Complete() {
		// halo elements drop out here, silently by contract
		for i := range coords {
			if coords[i], err = coords[i].SelectElements(own.RealElements); err != nil {
				return run.abort(err)
			}
		}
		for i := range fields {
			if fields[i], err = fields[i].SelectElements(own.RealElements); err != nil {
				return run.abort(err)
			}
		}
	}

	// Resampling: skipped entirely in raw mode
	if ho, ok := mode.(highOrderExport); ok {
		run.stage = stageResampling
		ni, err := ex.cache.Get(grid.RefNodes(), ho.samples, grid.Dims())
		if err != nil {
			return run.abort(err)
		}
		for i := range coords {
			coords[i] = ni.Resample(coords[i])
		}
		for i := range fields {
			fields[i] = ni.Resample(fields[i])
		}
	}

	// Reshaping: pure reinterpretation to (Nq,...,K) tensors, every
	// tensor at the node count the resolved mode promised the writer
	run.stage = stageReshaping
	coordTensors := make([]nodal.Tensor, len(coords))
	for i, c := range coords {
		if coordTensors[i], err = reshape(c, grid.Dims(), mode.nodesPerAxis()); err != nil {
			return run.abort(err)
		}
	}
	fieldTensors := make([]nodal.Tensor, len(fields))
	for i, f := range fields {
		if fieldTensors[i], err = reshape(f, grid.Dims(), mode.nodesPerAxis()); err != nil {
			return run.abort(err)
		}
	}

	run.stage = stageWriting
	writer := ex.Writer
	if cfg.writer != nil {
		writer = cfg.writer
	}
	if err = mode.write(writer, prefix, coordTensors, fieldTensors); err != nil {
		return run.abort(fmt.Errorf("%w: %v", ErrWriterFailure, err))
	}

	run.stage = stageDone
	return nil
}

// reshape reinterprets a field as a tensor and checks it against the
// per-axis node count of the selected mode
func reshape(f nodal.Field, dim nodal.Dimensionality, nodesPerAxis int) (t nodal.Tensor, err error) {
	if t, err = nodal.NewTensor(f, dim); err != nil {
		return
	}
	if t.Nq != nodesPerAxis {
		err = fmt.Errorf("%w: field %s reshaped to %d nodes per axis, mode expects %d",
			nodal.ErrShapeMismatch, f.Name, t.Nq, nodesPerAxis)
	}
	return
}

// exportRun is the per-invocation state machine
type exportRun struct {
	stage pipelineStage
}

// abort surfaces a failure tagged with the stage it occurred in
func (r *exportRun) abort(err error) error {
	return fmt.Errorf("export %s: %w", r.stage, err)
}

// gatherFields views the state and optional aux buffers and assigns
// display names, state fields first then aux
func (ex *Exporter) gatherFields(state []float64, cfg exportConfig, grid GridProvider) ([]nodal.Field, error) {
	fields, err := nodal.StateFields(state, grid.Np(), componentCount(state, grid), grid.NumElements())
	if err != nil {
		return nil, err
	}
	if fields, err = nameFields(fields, cfg.fieldNames, "Q"); err != nil {
		return nil, err
	}
	if cfg.auxBuffer == nil {
		return fields, nil
	}
	aux, err := nodal.StateFields(cfg.auxBuffer, grid.Np(), componentCount(cfg.auxBuffer, grid), grid.NumElements())
	if err != nil {
		return nil, err
	}
	if aux, err = nameFields(aux, cfg.auxFieldNames, "aux"); err != nil {
		return nil, err
	}
	return append(fields, aux...), nil
}

// componentCount infers the component count from the buffer length;
// StateFields re-checks the extent exactly
func componentCount(buf []float64, grid GridProvider) int {
	per := grid.Np() * grid.NumElements()
	if per == 0 {
		return 0
	}
	return len(buf) / per
}

func pow(base, exp int) (p int) {
	p = 1
	for i := 0; i < exp; i++ {
		p *= base
	}
	return
}
