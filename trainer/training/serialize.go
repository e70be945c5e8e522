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
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/x448/float16"
	"gonum.org/v1/gonum/mat"
)

const (
	// ModelFormat names the full precision weights document.
	ModelFormat = "aquaforecast/regressor-v1"

	// mobileMagic starts every float16 weights file.
	mobileMagic = "AQFM"
)

var (
	// ErrInvalidMobileModel is returned for files without the float16 weights header.
	ErrInvalidMobileModel = errors.New("invalid mobile model")
)

type tensorDocument struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

type modelDocument struct {
	Format       string           `json:"format"`
	Architecture Architecture     `json:"architecture"`
	Tensors      []tensorDocument `json:"tensors"`
}

// MarshalModel returns the full precision weights document of the network.
func MarshalModel(n *Network) ([]byte, error) {
	doc := modelDocument{
		Format:       ModelFormat,
		Architecture: n.Architecture(),
	}

	for _, t := range n.tensors() {
		r, c := t.Dims()
		doc.Tensors = append(doc.Tensors, tensorDocument{
			Rows: r,
			Cols: c,
			Data: append([]float64{}, mat.DenseCopyOf(t).RawMatrix().Data...),
		})
	}

	return json.Marshal(doc)
}

// UnmarshalModel rebuilds a network from its full precision weights document.
func UnmarshalModel(data []byte) (*Network, error) {
	doc := modelDocument{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc.Format != ModelFormat {
		return nil, fmt.Errorf("unsupported model format %q", doc.Format)
	}

	n, err := NewNetwork(doc.Architecture, RandomSeed)
	if err != nil {
		return nil, err
	}

	tensors := make([]*mat.Dense, len(doc.Tensors))
	for i, t := range doc.Tensors {
		if t.Rows*t.Cols != len(t.Data) || len(t.Data) == 0 {
			return nil, fmt.Errorf("tensor %d has %d values for shape %dx%d", i, len(t.Data), t.Rows, t.Cols)
		}

		tensors[i] = mat.NewDense(t.Rows, t.Cols, t.Data)
	}

	if err := n.restore(tensors); err != nil {
		return nil, err
	}

	return n, nil
}

// MarshalMobile returns the float16 weights file of the network. The layout is
// the magic, the architecture json length and document, the tensor count and
// per tensor its rows, cols and little endian half precision values.
func MarshalMobile(n *Network) ([]byte, error) {
	arch, err := json.Marshal(n.Architecture())
	if err != nil {
		return nil, err
	}

	tensors := n.tensors()
	buf := &bytes.Buffer{}
	buf.WriteString(mobileMagic)
	if err := binary.Write(buf, binary.LittleEndian, uint32(len(arch))); err != nil {
		return nil, err
	}
	buf.Write(arch)

	if err := binary.Write(buf, binary.LittleEndian, uint32(len(tensors))); err != nil {
		return nil, err
	}

	for _, t := range tensors {
		r, c := t.Dims()
		if err := binary.Write(buf, binary.LittleEndian, [2]uint32{uint32(r), uint32(c)}); err != nil {
			return nil, err
		}

		bits := make([]uint16, 0, r*c)
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				bits = append(bits, float16.Fromfloat32(float32(t.At(i, j))).Bits())
			}
		}

		if err := binary.Write(buf, binary.LittleEndian, bits); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// UnmarshalMobile rebuilds a network from its float16 weights file.
func UnmarshalMobile(data []byte) (*Network, error) {
	r := bytes.NewReader(data)
	magic := make([]byte, len(mobileMagic))
	if _, err := io.ReadFull(r, magic); err != nil || string(magic) != mobileMagic {
		return nil, ErrInvalidMobileModel
	}

	var archLen uint32
	if err := binary.Read(r, binary.LittleEndian, &archLen); err != nil {
		return nil, err
	}

	if int64(archLen) > int64(r.Len()) {
		return nil, ErrInvalidMobileModel
	}

	archJSON := make([]byte, archLen)
	if _, err := io.ReadFull(r, archJSON); err != nil {
		return nil, err
	}

	var arch Architecture
	if err := json.Unmarshal(archJSON, &arch); err != nil {
		return nil, err
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}

	n, err := NewNetwork(arch, RandomSeed)
	if err != nil {
		return nil, err
	}

	if int(count) != len(n.tensors()) {
		return nil, fmt.Errorf("network has %d tensors, file has %d", len(n.tensors()), count)
	}

	tensors := make([]*mat.Dense, count)
	for i := range tensors {
		var shape [2]uint32
		if err := binary.Read(r, binary.LittleEndian, &shape); err != nil {
			return nil, err
		}

		size := int(shape[0]) * int(shape[1])
		if size == 0 || size*2 > r.Len() {
			return nil, ErrInvalidMobileModel
		}

		bits := make([]uint16, size)
		if err := binary.Read(r, binary.LittleEndian, bits); err != nil {
			return nil, err
		}

		values := make([]float64, size)
		for k, b := range bits {
			values[k] = float64(float16.Frombits(b).Float32())
		}

		tensors[i] = mat.NewDense(int(shape[0]), int(shape[1]), values)
	}

	if err := n.restore(tensors); err != nil {
		return nil, err
	}

	return n, nil
}
