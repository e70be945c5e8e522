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

package digest

import (
	"io"
	"os"

	godigest "github.com/opencontainers/go-digest"
)

// Algorithm of artifact digests.
const Algorithm = godigest.SHA256

// FromBytes returns the digest of data in the algorithm:encoded form.
func FromBytes(data []byte) string {
	return Algorithm.FromBytes(data).String()
}

// HashFile returns the digest of the file content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	d, err := Algorithm.FromReader(f)
	if err != nil {
		return "", err
	}

	return d.String(), nil
}

// Verify reports whether the content of r matches the digest.
func Verify(r io.Reader, digest string) (bool, error) {
	d, err := godigest.Parse(digest)
	if err != nil {
		return false, err
	}

	verifier := d.Verifier()
	if _, err := io.Copy(verifier, r); err != nil {
		return false, err
	}

	return verifier.Verified(), nil
}
