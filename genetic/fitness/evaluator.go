package fitness

// Evaluator scores rendered buffers against a target fixed for the run
type Evaluator struct {
	target        []byte
	width, height int
	scale         float64
}

// NewEvaluator validates the target shape once
func NewEvaluator(target []byte, width, height int) (*Evaluator, error) {
	if err := CheckBuffer("target", target, width, height); err != nil {
		return nil, err
	}
	return &Evaluator{
		target: target,
		width:  width,
		height: height,
		scale:  1 / float64(maxChannelError*width*height),
	}, nil
}

// Score returns Diff(rendered, target); a wrongly shaped buffer is a ConfigurationError
func (e *Evaluator) Score(rendered []byte) (float64, error) {
	if err := CheckBuffer("rendered", rendered, e.width, e.height); err != nil {
		return 0, err
	}
	return 1 - float64(absError(rendered, e.target))*e.scale, nil
}

// Size returns the canvas dimensions the evaluator was built for
func (e *Evaluator) Size() (width, height int) {
	return e.width, e.height
}
