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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const mockDigest = "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func TestFromBytes(t *testing.T) {
	assert.Equal(t, mockDigest, FromBytes([]byte("hello")))
}

func TestHashFile(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "foo")
	if err := os.WriteFile(path, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}

	d, err := HashFile(path)
	assert.NoError(err)
	assert.Equal(mockDigest, d)

	_, err = HashFile(filepath.Join(t.TempDir(), "bar"))
	assert.Error(err)
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		content string
		digest  string
		expect  func(t *testing.T, ok bool, err error)
	}{
		{
			name:    "digest matches",
			content: "hello",
			digest:  mockDigest,
			expect: func(t *testing.T, ok bool, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.True(ok)
			},
		},
		{
			name:    "digest mismatches",
			content: "world",
			digest:  mockDigest,
			expect: func(t *testing.T, ok bool, err error) {
				assert := assert.New(t)
				assert.NoError(err)
				assert.False(ok)
			},
		},
		{
			name:    "invalid digest",
			content: "hello",
			digest:  "foo",
			expect: func(t *testing.T, ok bool, err error) {
				assert := assert.New(t)
				assert.Error(err)
				assert.False(ok)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := Verify(strings.NewReader(tc.content), tc.digest)
			tc.expect(t, ok, err)
		})
	}
}
