/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package indicator

import (
	"math"

	"prime-tsengine-go/streamnode"
)

// predictorWidth is fixed: prediction, structural error at prediction time,
// structural error at the predicted time, residual (actual - predicted),
// and a rolling standard deviation of the residual.
const predictorWidth = 5

// Predictor output columns.
const (
	PredictorColumnPrediction = iota
	PredictorColumnStructuralErrorAtPrediction
	PredictorColumnStructuralErrorAtTarget
	PredictorColumnResidual
	PredictorColumnResidualStdDev
)

// PredictorAlgorithm is the pluggable forecasting strategy a Predictor
// scaffolds around. TailSize is how many trailing samples it needs to
// produce a prediction (fewer yields NaN); Step is how many slots ahead of
// the input it predicts.
//
// Predict receives the tail window [x[i-TailSize+1], x[i]] and must return
// the predicted value at i+Step and the structural error of that
// prediction. No concrete algorithm ships with the scaffold: picking one is
// explicitly out of scope (see §4.7).
type PredictorAlgorithm interface {
	TailSize() int
	Step() int
	Predict(window []float64) (prediction, structuralError float64)
}

// residualStdDevWindow bounds how many trailing residuals the scaffold
// averages over for PredictorColumnResidualStdDev.
const residualStdDevWindow = 30

// Predictor wraps a FloatReader and a PredictorAlgorithm, validating inputs
// and owning the 5-column output buffer; it does not ship a concrete
// forecasting algorithm.
type Predictor struct {
	*Base
	parent    FloatReader
	algorithm PredictorAlgorithm
	residuals []float64
}

// NewPredictor builds a Predictor scaffold over parent (a *source.Source or
// a width-1 indicator) using algorithm.
func NewPredictor(parent any, algorithm PredictorAlgorithm) (*Predictor, error) {
	reader, err := resolveFloatParent(parent, 0, false)
	if err != nil {
		return nil, err
	}

	base, err := NewBase(predictorWidth)
	if err != nil {
		return nil, err
	}
	p := &Predictor{Base: base, parent: reader, algorithm: algorithm}
	if err := base.Attach([]streamnode.Node{reader}, p.update); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Predictor) update(start, end int) {
	tailSize := p.algorithm.TailSize()
	step := p.algorithm.Step()

	lo, hi := TailBounds(start, end, tailSize)
	values, err := p.parent.FloatSlice(lo, hi)
	if err != nil {
		return
	}

	for _, pos := range TailIterate(len(values), start, end, tailSize) {
		row := make([]float64, predictorWidth)
		if pos.Incomplete {
			for i := range row {
				row[i] = math.NaN()
			}
			_ = p.setRow(pos.GlobalIndex, row)
			continue
		}

		window := values[pos.LocalStart:pos.LocalEnd]
		prediction, structErr := p.algorithm.Predict(window)
		row[PredictorColumnPrediction] = prediction
		row[PredictorColumnStructuralErrorAtPrediction] = structErr

		targetIdx := pos.GlobalIndex + step
		actual, err := p.parent.FloatAt(targetIdx)
		if err != nil {
			row[PredictorColumnStructuralErrorAtTarget] = math.NaN()
			row[PredictorColumnResidual] = math.NaN()
		} else {
			row[PredictorColumnStructuralErrorAtTarget] = structErr
			residual := actual - prediction
			row[PredictorColumnResidual] = residual
			p.residuals = append(p.residuals, residual)
			if len(p.residuals) > residualStdDevWindow {
				p.residuals = p.residuals[len(p.residuals)-residualStdDevWindow:]
			}
		}
		row[PredictorColumnResidualStdDev] = residualStdDev(p.residuals)

		_ = p.setRow(pos.GlobalIndex, row)
	}
}

func residualStdDev(residuals []float64) float64 {
	n := len(residuals)
	if n == 0 {
		return math.NaN()
	}
	var mean float64
	for _, r := range residuals {
		mean += r
	}
	mean /= float64(n)
	var sumSq float64
	for _, r := range residuals {
		d := r - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(n))
}
