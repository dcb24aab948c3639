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

package cmd

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/daydaydrunk/stream-resp/resp"
)

var encodeInputPath string

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode newline-delimited JSON values into a RESP byte stream",
	Long: "Reads one JSON object per line in the same shape produced by\n" +
		"'stream-resp decode' (from a file, or stdin when --input is omitted)\n" +
		"and writes the corresponding RESP bytes to stdout.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if encodeInputPath != "" {
			f, err := os.Open(encodeInputPath)
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		dec := json.NewDecoder(in)
		out := cmd.OutOrStdout()

		for {
			var obj map[string]any
			if err := dec.Decode(&obj); err != nil {
				if err == io.EOF {
					return nil
				}
				return err
			}

			v, err := jsonToValue(obj)
			if err != nil {
				return err
			}
			if _, err := out.Write(resp.Encode(v)); err != nil {
				return err
			}
		}
	},
}

func init() {
	encodeCmd.Flags().StringVar(&encodeInputPath, "input", "", "Input file path (defaults to stdin)")
	rootCmd.AddCommand(encodeCmd)
}

// jsonToValue 是 decode 命令 decodeValueToJSON 投影的逆操作 接受
// 同样形状的 map[string]any 重建出 resp.Value
func jsonToValue(m map[string]any) (resp.Value, error) {
	kind, _ := m["kind"].(string)
	isNull, _ := m["null"].(bool)

	switch kind {
	case "SimpleString":
		s, _ := m["value"].(string)
		return resp.SimpleString(s), nil
	case "Error":
		s, _ := m["value"].(string)
		return resp.Error(s), nil
	case "BigNumber":
		s, _ := m["value"].(string)
		return resp.BigNumber([]byte(s)), nil
	case "Integer":
		return resp.Integer(int64(asFloat(m["value"]))), nil
	case "Boolean":
		b, _ := m["value"].(bool)
		return resp.Boolean(b), nil
	case "Double":
		return resp.Double(asFloat(m["value"])), nil
	case "BulkString":
		if isNull {
			return resp.NullBulkString(), nil
		}
		b, err := bytesFromJSON(m)
		if err != nil {
			return resp.Value{}, err
		}
		return resp.BulkString(b), nil
	case "BulkError":
		if isNull {
			return resp.NullBulkError(), nil
		}
		b, err := bytesFromJSON(m)
		if err != nil {
			return resp.Value{}, err
		}
		return resp.BulkError(b), nil
	case "VerbatimString":
		if isNull {
			return resp.NullVerbatimString(), nil
		}
		b, err := bytesFromJSON(m)
		if err != nil {
			return resp.Value{}, err
		}
		return resp.VerbatimString(b), nil
	case "Array", "Set", "Push":
		if isNull {
			return nullAggregate(kind), nil
		}
		elems, err := elementsFromJSON(m["elements"])
		if err != nil {
			return resp.Value{}, err
		}
		switch kind {
		case "Set":
			return resp.Set(elems), nil
		case "Push":
			return resp.Push(elems), nil
		default:
			return resp.Array(elems), nil
		}
	case "Map":
		if isNull {
			return resp.NullMap(), nil
		}
		rawPairs, _ := m["pairs"].([]any)
		pairs := make([]resp.Pair, 0, len(rawPairs))
		for _, rp := range rawPairs {
			pm, ok := rp.(map[string]any)
			if !ok {
				return resp.Value{}, errors.New("stream-resp: malformed map pair")
			}
			keyMap, _ := pm["key"].(map[string]any)
			valMap, _ := pm["value"].(map[string]any)
			key, err := jsonToValue(keyMap)
			if err != nil {
				return resp.Value{}, err
			}
			val, err := jsonToValue(valMap)
			if err != nil {
				return resp.Value{}, err
			}
			pairs = append(pairs, resp.Pair{Key: key, Value: val})
		}
		return resp.Map(pairs), nil
	case "Null":
		return resp.Null(), nil
	default:
		return resp.Value{}, errors.Errorf("stream-resp: unknown value kind %q", kind)
	}
}

func nullAggregate(kind string) resp.Value {
	switch kind {
	case "Set":
		return resp.NullSet()
	case "Push":
		return resp.NullPush()
	default:
		return resp.NullArray()
	}
}

func elementsFromJSON(raw any) ([]resp.Value, error) {
	list, _ := raw.([]any)
	out := make([]resp.Value, 0, len(list))
	for _, e := range list {
		em, ok := e.(map[string]any)
		if !ok {
			return nil, errors.New("stream-resp: malformed element")
		}
		v, err := jsonToValue(em)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func bytesFromJSON(m map[string]any) ([]byte, error) {
	if s, ok := m["value"].(string); ok {
		return []byte(s), nil
	}
	if s, ok := m["bytesBase64"].(string); ok {
		return base64.StdEncoding.DecodeString(s)
	}
	return nil, nil
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}
