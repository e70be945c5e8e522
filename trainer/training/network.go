/*
 *     Copyright 2026 The Aquaforecast Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package training

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-7
)

// Network is a feed forward regressor trained with adam on mean squared error.
type Network struct {
	arch   Architecture
	layers []layer
	rng    *rand.Rand
	adam   *adam
}

// NewNetwork builds a freshly initialized network.
func NewNetwork(arch Architecture, seed int64) (*Network, error) {
	if err := arch.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	n := &Network{
		arch: arch,
		rng:  rng,
	}

	width := arch.InputDim
	for _, cfg := range arch.Layers {
		switch cfg.Type {
		case LayerTypeDense:
			n.layers = append(n.layers, newDense(width, cfg.Units, cfg.L2, cfg.Activation, rng))
			width = cfg.Units
		case LayerTypeLeakyReLU:
			alpha := cfg.Alpha
			if alpha == 0 {
				alpha = 0.3
			}
			n.layers = append(n.layers, &leakyReLU{alpha: alpha})
		case LayerTypeBatchNorm:
			momentum, epsilon := cfg.Momentum, cfg.Epsilon
			if momentum == 0 {
				momentum = 0.99
			}
			if epsilon == 0 {
				epsilon = 1e-3
			}
			n.layers = append(n.layers, newBatchNorm(width, momentum, epsilon))
		case LayerTypeDropout:
			n.layers = append(n.layers, &dropout{rate: cfg.Rate, rng: rng})
		}
	}

	n.Compile(DefaultLearningRate)
	return n, nil
}

// Architecture returns the layer stack of the network.
func (n *Network) Architecture() Architecture {
	return n.arch
}

// Compile resets the optimizer with the learning rate.
func (n *Network) Compile(learningRate float64) {
	n.adam = newAdam(learningRate, n.params())
}

// LearningRate returns the current optimizer learning rate.
func (n *Network) LearningRate() float64 {
	return n.adam.learningRate
}

// Predict runs inference on the rows of x.
func (n *Network) Predict(x *mat.Dense) *mat.Dense {
	return n.forward(x, false)
}

func (n *Network) forward(x *mat.Dense, training bool) *mat.Dense {
	out := x
	for _, l := range n.layers {
		out = l.forward(out, training)
	}

	return out
}

func (n *Network) params() []*param {
	var params []*param
	for _, l := range n.layers {
		params = append(params, l.params()...)
	}

	return params
}

// tensors returns every persisted tensor, trainable or not.
func (n *Network) tensors() []*mat.Dense {
	var tensors []*mat.Dense
	for _, l := range n.layers {
		tensors = append(tensors, l.tensors()...)
	}

	return tensors
}

func (n *Network) penalty() float64 {
	var sum float64
	for _, l := range n.layers {
		sum += l.penalty()
	}

	return sum
}

// snapshot deep copies the persisted tensors.
func (n *Network) snapshot() []*mat.Dense {
	tensors := n.tensors()
	snapshot := make([]*mat.Dense, len(tensors))
	for i, t := range tensors {
		snapshot[i] = mat.DenseCopyOf(t)
	}

	return snapshot
}

// restore copies tensors back into the network.
func (n *Network) restore(snapshot []*mat.Dense) error {
	tensors := n.tensors()
	if len(snapshot) != len(tensors) {
		return fmt.Errorf("network has %d tensors, got %d", len(tensors), len(snapshot))
	}

	for i, t := range tensors {
		r, c := t.Dims()
		sr, sc := snapshot[i].Dims()
		if r != sr || c != sc {
			return fmt.Errorf("tensor %d has shape %dx%d, got %dx%d", i, r, c, sr, sc)
		}

		t.Copy(snapshot[i])
	}

	return nil
}

// trainBatch runs one optimizer step and returns the loss and mean absolute error of the batch.
func (n *Network) trainBatch(x, y *mat.Dense) (float64, float64) {
	pred := n.forward(x, true)
	loss, mae, grad := meanSquaredError(pred, y)

	for i := len(n.layers) - 1; i >= 0; i-- {
		grad = n.layers[i].backward(grad)
	}

	n.adam.step()
	return loss + n.penalty(), mae
}

// evaluate returns the loss and mean absolute error in inference mode.
func (n *Network) evaluate(x, y *mat.Dense) (float64, float64) {
	loss, mae, _ := meanSquaredError(n.Predict(x), y)
	return loss + n.penalty(), mae
}

// meanSquaredError returns the mse over all elements, the mae and the gradient of the mse.
func meanSquaredError(pred, y *mat.Dense) (float64, float64, *mat.Dense) {
	rows, cols := pred.Dims()
	count := float64(rows * cols)
	grad := mat.NewDense(rows, cols, nil)

	var sse, sae float64
	for i := 0; i < rows; i++ {
		p := pred.RawRowView(i)
		t := y.RawRowView(i)
		g := grad.RawRowView(i)
		for j := range p {
			diff := p[j] - t[j]
			sse += diff * diff
			sae += math.Abs(diff)
			g[j] = 2 * diff / count
		}
	}

	return sse / count, sae / count, grad
}

type adam struct {
	learningRate float64
	params       []*param
	m            []*mat.Dense
	v            []*mat.Dense
	t            int
}

func newAdam(learningRate float64, params []*param) *adam {
	a := &adam{
		learningRate: learningRate,
		params:       params,
	}

	for _, p := range params {
		r, c := p.value.Dims()
		a.m = append(a.m, mat.NewDense(r, c, nil))
		a.v = append(a.v, mat.NewDense(r, c, nil))
	}

	return a
}

func (a *adam) step() {
	a.t++
	lr := a.learningRate * math.Sqrt(1-math.Pow(adamBeta2, float64(a.t))) / (1 - math.Pow(adamBeta1, float64(a.t)))
	for i, p := range a.params {
		if p.grad == nil {
			continue
		}

		value := p.value.RawMatrix().Data
		grad := p.grad.RawMatrix().Data
		m := a.m[i].RawMatrix().Data
		v := a.v[i].RawMatrix().Data
		for k := range value {
			m[k] = adamBeta1*m[k] + (1-adamBeta1)*grad[k]
			v[k] = adamBeta2*v[k] + (1-adamBeta2)*grad[k]*grad[k]
			value[k] -= lr * m[k] / (math.Sqrt(v[k]) + adamEpsilon)
		}
	}
}

// FitOptions configures a training loop.
type FitOptions struct {
	Epochs    int
	BatchSize int
}

// History is the per epoch record of a training loop.
type History struct {
	Loss         []float64 `json:"loss"`
	ValLoss      []float64 `json:"val_loss"`
	MAE          []float64 `json:"mae"`
	ValMAE       []float64 `json:"val_mae"`
	LearningRate []float64 `json:"lr"`
	EarlyStopped bool      `json:"early_stopped"`
}

// Epochs returns the number of finished epochs.
func (h *History) Epochs() int {
	return len(h.Loss)
}

// BestValLoss returns the lowest validation loss.
func (h *History) BestValLoss() float64 {
	best := math.Inf(1)
	for _, v := range h.ValLoss {
		if v < best {
			best = v
		}
	}

	return best
}

// EpochFunc is called after every finished epoch.
type EpochFunc func(epoch, epochs int)

// Fit trains on shuffled mini batches with early stopping on validation loss,
// restoring the best weights when it fires, and halves the learning rate when
// validation loss plateaus. The context is checked between epochs.
func (n *Network) Fit(ctx context.Context, xTrain, yTrain, xVal, yVal *mat.Dense, opts FitOptions, onEpoch EpochFunc) (*History, error) {
	if opts.Epochs <= 0 || opts.BatchSize <= 0 {
		return nil, errors.New("epochs and batch size must be positive")
	}

	rows, inputs := xTrain.Dims()
	_, outputs := yTrain.Dims()
	if rows == 0 {
		return nil, errors.New("no training rows")
	}

	history := &History{}
	bestLoss := math.Inf(1)
	var bestWeights []*mat.Dense
	var stopWait int

	plateauBest := math.Inf(1)
	var plateauWait int

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		learningRate := n.adam.learningRate
		var loss, mae float64
		perm := n.rng.Perm(rows)
		for start := 0; start < rows; start += opts.BatchSize {
			end := start + opts.BatchSize
			if end > rows {
				end = rows
			}

			x := mat.NewDense(end-start, inputs, nil)
			y := mat.NewDense(end-start, outputs, nil)
			for i, row := range perm[start:end] {
				x.SetRow(i, xTrain.RawRowView(row))
				y.SetRow(i, yTrain.RawRowView(row))
			}

			batchLoss, batchMAE := n.trainBatch(x, y)
			weight := float64(end-start) / float64(rows)
			loss += batchLoss * weight
			mae += batchMAE * weight
		}

		valLoss, valMAE := n.evaluate(xVal, yVal)
		history.Loss = append(history.Loss, loss)
		history.MAE = append(history.MAE, mae)
		history.ValLoss = append(history.ValLoss, valLoss)
		history.ValMAE = append(history.ValMAE, valMAE)
		history.LearningRate = append(history.LearningRate, learningRate)

		stop := false
		if valLoss < bestLoss {
			bestLoss = valLoss
			bestWeights = n.snapshot()
			stopWait = 0
		} else {
			stopWait++
			if stopWait >= EarlyStopPatience && epoch > 0 {
				stop = true
			}
		}

		if valLoss < plateauBest-ReduceLRMinDelta {
			plateauBest = valLoss
			plateauWait = 0
		} else {
			plateauWait++
			if plateauWait >= ReduceLRPatience {
				if n.adam.learningRate > MinLearningRate {
					n.adam.learningRate = math.Max(n.adam.learningRate*ReduceLRFactor, MinLearningRate)
				}
				plateauWait = 0
			}
		}

		if onEpoch != nil {
			onEpoch(epoch+1, opts.Epochs)
		}

		if stop {
			history.EarlyStopped = true
			if bestWeights != nil {
				if err := n.restore(bestWeights); err != nil {
					return nil, err
				}
			}
			break
		}
	}

	return history, nil
}
