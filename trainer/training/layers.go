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
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// param is a trainable tensor with the gradient of the last backward pass.
type param struct {
	value *mat.Dense
	grad  *mat.Dense
}

// layer is one stage of the regressor.
type layer interface {
	// forward returns the output of the batch, training enables dropout and batch statistics.
	forward(x *mat.Dense, training bool) *mat.Dense

	// backward takes the gradient of the output and returns the gradient of the input.
	backward(grad *mat.Dense) *mat.Dense

	// params returns the trainable tensors.
	params() []*param

	// tensors returns every persisted tensor in a stable order.
	tensors() []*mat.Dense

	// penalty returns the regularization loss.
	penalty() float64
}

type dense struct {
	kernel     *param
	bias       *param
	l2         float64
	activation string
	input      *mat.Dense
	preact     *mat.Dense
}

// newDense initializes the kernel with glorot uniform and the bias with zeros.
func newDense(in, out int, l2 float64, activation string, rng *rand.Rand) *dense {
	limit := math.Sqrt(6 / float64(in+out))
	data := make([]float64, in*out)
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * limit
	}

	return &dense{
		kernel:     &param{value: mat.NewDense(in, out, data)},
		bias:       &param{value: mat.NewDense(1, out, nil)},
		l2:         l2,
		activation: activation,
	}
}

func (d *dense) forward(x *mat.Dense, training bool) *mat.Dense {
	rows, _ := x.Dims()
	_, out := d.kernel.value.Dims()

	z := mat.NewDense(rows, out, nil)
	z.Mul(x, d.kernel.value)
	bias := d.bias.value.RawRowView(0)
	for i := 0; i < rows; i++ {
		row := z.RawRowView(i)
		for j := range row {
			row[j] += bias[j]
		}
	}

	d.input = x
	d.preact = z
	if d.activation != ActivationSoftplus {
		return z
	}

	y := mat.NewDense(rows, out, nil)
	y.Apply(func(_, _ int, v float64) float64 {
		return softplus(v)
	}, z)
	return y
}

func (d *dense) backward(grad *mat.Dense) *mat.Dense {
	rows, out := grad.Dims()
	g := grad
	if d.activation == ActivationSoftplus {
		g = mat.NewDense(rows, out, nil)
		g.Apply(func(i, j int, v float64) float64 {
			return v * sigmoid(d.preact.At(i, j))
		}, grad)
	}

	in, _ := d.kernel.value.Dims()
	gk := mat.NewDense(in, out, nil)
	gk.Mul(d.input.T(), g)
	if d.l2 > 0 {
		reg := mat.NewDense(in, out, nil)
		reg.Scale(2*d.l2, d.kernel.value)
		gk.Add(gk, reg)
	}
	d.kernel.grad = gk

	gb := mat.NewDense(1, out, nil)
	bias := gb.RawRowView(0)
	for i := 0; i < rows; i++ {
		for j, v := range g.RawRowView(i) {
			bias[j] += v
		}
	}
	d.bias.grad = gb

	dx := mat.NewDense(rows, in, nil)
	dx.Mul(g, d.kernel.value.T())
	return dx
}

func (d *dense) params() []*param {
	return []*param{d.kernel, d.bias}
}

func (d *dense) tensors() []*mat.Dense {
	return []*mat.Dense{d.kernel.value, d.bias.value}
}

func (d *dense) penalty() float64 {
	if d.l2 == 0 {
		return 0
	}

	var sum float64
	for _, v := range d.kernel.value.RawMatrix().Data {
		sum += v * v
	}

	return d.l2 * sum
}

type leakyReLU struct {
	alpha float64
	input *mat.Dense
}

func (l *leakyReLU) forward(x *mat.Dense, training bool) *mat.Dense {
	l.input = x
	rows, cols := x.Dims()
	y := mat.NewDense(rows, cols, nil)
	y.Apply(func(_, _ int, v float64) float64 {
		if v > 0 {
			return v
		}

		return l.alpha * v
	}, x)
	return y
}

func (l *leakyReLU) backward(grad *mat.Dense) *mat.Dense {
	rows, cols := grad.Dims()
	dx := mat.NewDense(rows, cols, nil)
	dx.Apply(func(i, j int, v float64) float64 {
		if l.input.At(i, j) > 0 {
			return v
		}

		return l.alpha * v
	}, grad)
	return dx
}

func (l *leakyReLU) params() []*param      { return nil }
func (l *leakyReLU) tensors() []*mat.Dense { return nil }
func (l *leakyReLU) penalty() float64      { return 0 }

type batchNorm struct {
	gamma      *param
	beta       *param
	movingMean *mat.Dense
	movingVar  *mat.Dense
	momentum   float64
	epsilon    float64
	xhat       *mat.Dense
	invStd     []float64
}

func newBatchNorm(units int, momentum, epsilon float64) *batchNorm {
	ones := make([]float64, units)
	for i := range ones {
		ones[i] = 1
	}

	return &batchNorm{
		gamma:      &param{value: mat.NewDense(1, units, ones)},
		beta:       &param{value: mat.NewDense(1, units, nil)},
		movingMean: mat.NewDense(1, units, nil),
		movingVar:  mat.NewDense(1, units, append([]float64{}, ones...)),
		momentum:   momentum,
		epsilon:    epsilon,
	}
}

func (b *batchNorm) forward(x *mat.Dense, training bool) *mat.Dense {
	rows, cols := x.Dims()
	gamma := b.gamma.value.RawRowView(0)
	beta := b.beta.value.RawRowView(0)
	movingMean := b.movingMean.RawRowView(0)
	movingVar := b.movingVar.RawRowView(0)

	mean := make([]float64, cols)
	variance := make([]float64, cols)
	if training {
		for i := 0; i < rows; i++ {
			for j, v := range x.RawRowView(i) {
				mean[j] += v
			}
		}
		for j := range mean {
			mean[j] /= float64(rows)
		}

		for i := 0; i < rows; i++ {
			for j, v := range x.RawRowView(i) {
				variance[j] += (v - mean[j]) * (v - mean[j])
			}
		}
		for j := range variance {
			variance[j] /= float64(rows)
			movingMean[j] = movingMean[j]*b.momentum + mean[j]*(1-b.momentum)
			movingVar[j] = movingVar[j]*b.momentum + variance[j]*(1-b.momentum)
		}
	} else {
		copy(mean, movingMean)
		copy(variance, movingVar)
	}

	b.invStd = make([]float64, cols)
	for j := range variance {
		b.invStd[j] = 1 / math.Sqrt(variance[j]+b.epsilon)
	}

	b.xhat = mat.NewDense(rows, cols, nil)
	y := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		in := x.RawRowView(i)
		xhat := b.xhat.RawRowView(i)
		out := y.RawRowView(i)
		for j := range in {
			xhat[j] = (in[j] - mean[j]) * b.invStd[j]
			out[j] = gamma[j]*xhat[j] + beta[j]
		}
	}

	return y
}

func (b *batchNorm) backward(grad *mat.Dense) *mat.Dense {
	rows, cols := grad.Dims()
	gamma := b.gamma.value.RawRowView(0)
	n := float64(rows)

	gg := mat.NewDense(1, cols, nil)
	gb := mat.NewDense(1, cols, nil)
	sumDxhat := make([]float64, cols)
	sumDxhatXhat := make([]float64, cols)
	for i := 0; i < rows; i++ {
		g := grad.RawRowView(i)
		xhat := b.xhat.RawRowView(i)
		for j := range g {
			gg.RawRowView(0)[j] += g[j] * xhat[j]
			gb.RawRowView(0)[j] += g[j]
			dxhat := g[j] * gamma[j]
			sumDxhat[j] += dxhat
			sumDxhatXhat[j] += dxhat * xhat[j]
		}
	}
	b.gamma.grad = gg
	b.beta.grad = gb

	dx := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		g := grad.RawRowView(i)
		xhat := b.xhat.RawRowView(i)
		out := dx.RawRowView(i)
		for j := range g {
			dxhat := g[j] * gamma[j]
			out[j] = b.invStd[j] / n * (n*dxhat - sumDxhat[j] - xhat[j]*sumDxhatXhat[j])
		}
	}

	return dx
}

func (b *batchNorm) params() []*param {
	return []*param{b.gamma, b.beta}
}

func (b *batchNorm) tensors() []*mat.Dense {
	return []*mat.Dense{b.gamma.value, b.beta.value, b.movingMean, b.movingVar}
}

func (b *batchNorm) penalty() float64 { return 0 }

type dropout struct {
	rate float64
	rng  *rand.Rand
	mask *mat.Dense
}

func (d *dropout) forward(x *mat.Dense, training bool) *mat.Dense {
	if !training || d.rate == 0 {
		d.mask = nil
		return x
	}

	rows, cols := x.Dims()
	keep := 1 - d.rate
	d.mask = mat.NewDense(rows, cols, nil)
	d.mask.Apply(func(_, _ int, _ float64) float64 {
		if d.rng.Float64() < keep {
			return 1 / keep
		}

		return 0
	}, d.mask)

	y := mat.NewDense(rows, cols, nil)
	y.MulElem(x, d.mask)
	return y
}

func (d *dropout) backward(grad *mat.Dense) *mat.Dense {
	if d.mask == nil {
		return grad
	}

	rows, cols := grad.Dims()
	dx := mat.NewDense(rows, cols, nil)
	dx.MulElem(grad, d.mask)
	return dx
}

func (d *dropout) params() []*param      { return nil }
func (d *dropout) tensors() []*mat.Dense { return nil }
func (d *dropout) penalty() float64      { return 0 }

// softplus is log(1 + e^x) without overflow.
func softplus(x float64) float64 {
	return math.Max(x, 0) + math.Log1p(math.Exp(-math.Abs(x)))
}

func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}

	e := math.Exp(x)
	return e / (1 + e)
}
