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

package resp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeWireExamples(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"SimpleString", SimpleString("OK"), "+OK\r\n"},
		{"Error", Error("Error message"), "-Error message\r\n"},
		{"Integer", Integer(1000), ":1000\r\n"},
		{"NegativeInteger", Integer(-1234), ":-1234\r\n"},
		{"BulkString", BulkString([]byte("foobar")), "$6\r\nfoobar\r\n"},
		{"EmptyBulkString", BulkString([]byte{}), "$0\r\n\r\n"},
		{"NullBulkString", NullBulkString(), "$-1\r\n"},
		{"Array", Array([]Value{BulkString([]byte("foo")), BulkString([]byte("bar"))}), "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n"},
		{"EmptyArray", Array([]Value{}), "*0\r\n"},
		{"NullArray", NullArray(), "*-1\r\n"},
		{"Null", Null(), "_\r\n"},
		{"BooleanTrue", Boolean(true), "#t\r\n"},
		{"Double", Double(3.14), ",3.14\r\n"},
		{"DoubleNegInf", Double(math.Inf(-1)), ",-inf\r\n"},
		{"BigNumber", BigNumber([]byte("3492890328409238509324850943850943825024385")), "(3492890328409238509324850943850943825024385\r\n"},
		{"Map", Map([]Pair{{Key: SimpleString("k1"), Value: Integer(1)}, {Key: SimpleString("k2"), Value: Integer(2)}}), "%2\r\n+k1\r\n:1\r\n+k2\r\n:2\r\n"},
		{"Set", Set([]Value{SimpleString("a"), SimpleString("b")}), "~2\r\n+a\r\n+b\r\n"},
		{"Push", Push([]Value{SimpleString("message"), Integer(42)}), ">2\r\n+message\r\n:42\r\n"},
		{"NullBulkError", NullBulkError(), "!-1\r\n"},
		{"NullVerbatimString", NullVerbatimString(), "=-1\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []byte(tt.want), Encode(tt.v))
		})
	}
}

func TestEncodeToReusesBuffer(t *testing.T) {
	dst := make([]byte, 0, 128)
	dst = EncodeTo(dst, SimpleString("OK"))
	dst = EncodeTo(dst, Integer(7))
	assert.Equal(t, []byte("+OK\r\n:7\r\n"), dst)
}

