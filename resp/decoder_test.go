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
	"github.com/stretchr/testify/require"
)

func TestDecoderSimpleString(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte("+OK\r\n"))

	v, err := d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, KindSimpleString, v.Kind)
	text, err := v.Text()
	require.NoError(t, err)
	assert.Equal(t, "OK", text)
}

func TestDecoderBulkStringAcrossChunks(t *testing.T) {
	d := New(DefaultLimits())

	d.Feed([]byte("$5"))
	_, err := d.TryNext()
	assert.ErrorIs(t, err, ErrIncomplete)

	d.Feed([]byte("\r\nhello"))
	_, err = d.TryNext()
	assert.ErrorIs(t, err, ErrIncomplete)

	d.Feed([]byte("\r\n"))
	v, err := d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, KindBulkString, v.Kind)
	assert.Equal(t, []byte("hello"), v.Bytes())
}

func TestDecoderArrayAcrossChunks(t *testing.T) {
	d := New(DefaultLimits())

	d.Feed([]byte("*2"))
	_, err := d.TryNext()
	assert.ErrorIs(t, err, ErrIncomplete)

	d.Feed([]byte("\r\n:1"))
	_, err = d.TryNext()
	assert.ErrorIs(t, err, ErrIncomplete)

	d.Feed([]byte("\r\n"))
	_, err = d.TryNext()
	assert.ErrorIs(t, err, ErrIncomplete)

	d.Feed([]byte(":2\r\n"))
	v, err := d.TryNext()
	require.NoError(t, err)
	want := Array([]Value{Integer(1), Integer(2)})
	assert.True(t, want.Equal(v))
}

func TestDecoderTwoArraysBackToBackLastElementEmptyNotNull(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte("*3\r\n$3\r\nSET\r\n$4\r\nkey1\r\n$6\r\nvalue1\r\n" +
		"*3\r\n$3\r\nGET\r\n$4\r\nkey1\r\n$0\r\n\r\n"))

	first, err := d.TryNext()
	require.NoError(t, err)
	assert.True(t, Array([]Value{BulkString([]byte("SET")), BulkString([]byte("key1")), BulkString([]byte("value1"))}).Equal(first))

	second, err := d.TryNext()
	require.NoError(t, err)
	elems := second.Elements()
	require.Len(t, elems, 3)
	assert.Equal(t, KindBulkString, elems[2].Kind)
	assert.False(t, elems[2].IsNull())
	assert.Equal(t, []byte{}, elems[2].Bytes())
}

func TestDecoderNullVariantsAreDistinct(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte("*-1\r\n$-1\r\n_\r\n"))

	arr, err := d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, KindArray, arr.Kind)
	assert.True(t, arr.IsNull())

	bulk, err := d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, KindBulkString, bulk.Kind)
	assert.True(t, bulk.IsNull())

	null, err := d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, KindNull, null.Kind)

	assert.False(t, arr.Equal(bulk))
	assert.False(t, bulk.Equal(null))
}

func TestDecoderMapPreservesOrder(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte("%2\r\n+k1\r\n:1\r\n+k2\r\n$5\r\nvalue\r\n"))

	v, err := d.TryNext()
	require.NoError(t, err)
	require.Equal(t, KindMap, v.Kind)

	pairs := v.Pairs()
	require.Len(t, pairs, 2)

	k1, _ := pairs[0].Key.Text()
	assert.Equal(t, "k1", k1)
	assert.Equal(t, int64(1), pairs[0].Value.Int64())

	k2, _ := pairs[1].Key.Text()
	assert.Equal(t, "k2", k2)
	assert.Equal(t, []byte("value"), pairs[1].Value.Bytes())
}

func TestDecoderIntegerOverflow(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte(":99999999999999999999999999999999999999\r\n"))

	_, err := d.TryNext()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindOverflow, de.Kind)
	assert.False(t, de.Recoverable())
}

func TestDecoderIntegerBoundaries(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte(":9223372036854775807\r\n:-9223372036854775808\r\n"))

	v, err := d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v.Int64())

	v, err = d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), v.Int64())
}

func TestDecoderIntegerJustBeyondMinInt64Overflows(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte(":-9223372036854775809\r\n"))

	_, err := d.TryNext()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindOverflow, de.Kind)
}

func TestDecoderDepthExceeded(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxDepth = 1
	d := New(limits)
	d.Feed([]byte("*1\r\n*1\r\n+OK\r\n"))

	_, err := d.TryNext()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindDepthExceeded, de.Kind)
}

func TestDecoderEmbeddedCRInSimpleStringIsInvalid(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte("+bad\rtext\r\n"))

	_, err := d.TryNext()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindInvalidFormat, de.Kind)
}

func TestDecoderLengthExceeded(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxLength = 4
	d := New(limits)
	d.Feed([]byte("$5\r\nhello\r\n"))

	_, err := d.TryNext()
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindLengthExceeded, de.Kind)
}

func TestDecoderResumabilityIdempotence(t *testing.T) {
	d := New(DefaultLimits())
	d.Feed([]byte("$5\r\nhel"))

	_, err1 := d.TryNext()
	assert.ErrorIs(t, err1, ErrIncomplete)
	_, err2 := d.TryNext()
	assert.ErrorIs(t, err2, ErrIncomplete)

	d.Feed([]byte("lo\r\n"))
	v, err := d.TryNext()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), v.Bytes())
}

func TestDecoderChunkIndependence(t *testing.T) {
	whole := "*2\r\n$3\r\nfoo\r\n$3\r\nbar\r\n+OK\r\n"
	want := decodeAll(t, [][]byte{[]byte(whole)})

	splits := [][][]byte{
		{[]byte(whole)},
		splitEvery(whole, 1),
		splitEvery(whole, 3),
		splitEvery(whole, 7),
	}
	for _, chunks := range splits {
		got := decodeAll(t, chunks)
		require.Len(t, got, len(want))
		for i := range want {
			assert.True(t, want[i].Equal(got[i]))
		}
	}
}

func TestDecoderRoundTrip(t *testing.T) {
	values := []Value{
		SimpleString("OK"),
		Error("ERR broken"),
		Integer(-1234),
		BulkString([]byte("foobar")),
		BulkString([]byte{}),
		NullBulkString(),
		Array([]Value{Integer(1), Integer(2)}),
		Array([]Value{}),
		NullArray(),
		Null(),
		Boolean(true),
		Boolean(false),
		Double(3.14),
		BigNumber([]byte("3492890328409238509324850943850943825024385")),
		BulkError([]byte("SYNTAX invalid")),
		NullBulkError(),
		VerbatimString([]byte("txt:some text")),
		NullVerbatimString(),
		Map([]Pair{{Key: SimpleString("k1"), Value: Integer(1)}, {Key: SimpleString("k2"), Value: Integer(2)}}),
		NullMap(),
		Set([]Value{SimpleString("a"), SimpleString("b")}),
		NullSet(),
		Push([]Value{SimpleString("message"), Integer(42)}),
		NullPush(),
	}

	for _, v := range values {
		encoded := Encode(v)
		d := New(DefaultLimits())
		d.Feed(encoded)
		got, err := d.TryNext()
		require.NoError(t, err, "encoding: %q", encoded)
		assert.True(t, v.Equal(got), "round trip mismatch for %s: want %+v got %+v", v.Kind, v, got)
	}
}

func decodeAll(t *testing.T, chunks [][]byte) []Value {
	t.Helper()
	d := New(DefaultLimits())
	var values []Value
	for _, c := range chunks {
		d.Feed(c)
		for {
			v, err := d.TryNext()
			if err == ErrIncomplete {
				break
			}
			require.NoError(t, err)
			values = append(values, v)
		}
	}
	return values
}

func splitEvery(s string, n int) [][]byte {
	var out [][]byte
	b := []byte(s)
	for len(b) > 0 {
		if n > len(b) {
			n = len(b)
		}
		out = append(out, b[:n])
		b = b[n:]
	}
	return out
}
