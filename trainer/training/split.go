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
	"fmt"
	"math"
	"math/rand"
)

// Partitions holds the train, validation and test rows of a run.
type Partitions struct {
	Train      *Dataset
	Validation *Dataset
	Test       *Dataset
}

// Split shuffles rows with a fixed seed, holds out the test share and then
// the validation share of the remainder.
func Split(ds *Dataset, testSize, validationSize float64, seed int64) (*Partitions, error) {
	if testSize <= 0 || validationSize <= 0 || testSize+validationSize >= 1 {
		return nil, fmt.Errorf("invalid split sizes test %v validation %v", testSize, validationSize)
	}

	rest, test, err := splitOnce(ds, testSize, seed)
	if err != nil {
		return nil, err
	}

	train, validation, err := splitOnce(rest, validationSize/(1-testSize), seed)
	if err != nil {
		return nil, err
	}

	return &Partitions{
		Train:      train,
		Validation: validation,
		Test:       test,
	}, nil
}

// splitOnce holds out ceil(size * n) shuffled rows.
func splitOnce(ds *Dataset, size float64, seed int64) (*Dataset, *Dataset, error) {
	n := ds.Len()
	held := int(math.Ceil(size*float64(n) - 1e-9))
	if held < 1 || n-held < 1 {
		return nil, nil, fmt.Errorf("can not split %d rows with share %.4f", n, size)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	return ds.subset(perm[held:]), ds.subset(perm[:held]), nil
}
