// Copyright 2025 The packetd Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package splitio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindCRLF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		start int
		want  int
	}{
		{name: "NoCRLF", input: "hello world", start: 0, want: -1},
		{name: "ImmediateCRLF", input: "\r\nrest", start: 0, want: 0},
		{name: "CRLFAfterText", input: "OK\r\n", start: 0, want: 2},
		{name: "BareCRSkipped", input: "bad\rtext\r\n", start: 0, want: 8},
		{name: "TrailingBareCR", input: "partial\r", start: 0, want: -1},
		{name: "MultipleBareCRs", input: "\r\r\r\r\n", start: 0, want: 3},
		{name: "StartOffset", input: "abc\r\ndef\r\n", start: 4, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCRLF([]byte(tt.input), tt.start)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindCRLFNoStackOverflowOnLongRunOfBareCR(t *testing.T) {
	input := strings.Repeat("\r", 1<<20) + "\r\n"
	got := FindCRLF([]byte(input), 0)
	assert.Equal(t, 1<<20, got)
}

func TestHasBareCRLF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "Clean", input: "OK", want: false},
		{name: "EmbeddedCR", input: "bad\rtext", want: true},
		{name: "EmbeddedLF", input: "bad\ntext", want: true},
		{name: "Empty", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasBareCRLF([]byte(tt.input)))
		})
	}
}
