// Copyright 2025 Rizome Labs, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package utils

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// NotSerializable is substituted for any value that has no canonical JSON
// representation.
const NotSerializable = "<not serializable>"

// maxSerializeDepth bounds the recursive walk so that deeply nested or
// self-referential values cannot blow the stack.
const maxSerializeDepth = 64

// MakeJSONSerializable converts an arbitrary value into a form that
// json.Marshal is guaranteed to accept. Containers are walked recursively
// preserving their structure; leaves without a JSON representation become the
// NotSerializable placeholder. Cyclic references are detected and replaced
// rather than followed. This function never fails.
func MakeJSONSerializable(obj interface{}) interface{} {
	return makeSerializable(obj, 0, make(map[uintptr]bool))
}

func makeSerializable(obj interface{}, depth int, seen map[uintptr]bool) interface{} {
	if obj == nil {
		return nil
	}
	if depth > maxSerializeDepth {
		return NotSerializable
	}

	switch v := obj.(type) {
	case string:
		return v
	case bool:
		return v
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return v
	case float32:
		return sanitizeFloat(float64(v))
	case float64:
		return sanitizeFloat(v)
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case time.Duration:
		return v.Seconds()
	case error:
		return v.Error()
	}

	rv := reflect.ValueOf(obj)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		if rv.Kind() == reflect.Pointer {
			ptr := rv.Pointer()
			if seen[ptr] {
				return NotSerializable
			}
			seen[ptr] = true
			defer delete(seen, ptr)
		}
		return makeSerializable(rv.Elem().Interface(), depth+1, seen)

	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		ptr := rv.Pointer()
		if seen[ptr] {
			return NotSerializable
		}
		seen[ptr] = true
		defer delete(seen, ptr)

		result := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			result[key] = makeSerializable(iter.Value().Interface(), depth+1, seen)
		}
		return result

	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}
		ptr := rv.Pointer()
		if seen[ptr] {
			return NotSerializable
		}
		seen[ptr] = true
		defer delete(seen, ptr)

		result := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			result[i] = makeSerializable(rv.Index(i).Interface(), depth+1, seen)
		}
		return result

	case reflect.Array:
		result := make([]interface{}, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			result[i] = makeSerializable(rv.Index(i).Interface(), depth+1, seen)
		}
		return result

	case reflect.Struct:
		rt := rv.Type()
		result := make(map[string]interface{})
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			key, ok := fieldKey(field)
			if !ok {
				continue
			}
			result[key] = makeSerializable(rv.Field(i).Interface(), depth+1, seen)
		}
		return result

	default:
		// func, chan, complex, unsafe pointer and anything else reflect
		// cannot walk.
		return NotSerializable
	}
}

// sanitizeFloat guards the float leaves: json.Marshal rejects NaN and the
// infinities, so they become the placeholder.
func sanitizeFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NotSerializable
	}
	return f
}

// fieldKey resolves the JSON key for a struct field, honoring json tags.
// A `json:"-"` tag excludes the field, as encoding/json does.
func fieldKey(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if tag == "" {
		return field.Name, true
	}
	for i := 0; i < len(tag); i++ {
		if tag[i] == ',' {
			if i == 0 {
				return field.Name, true
			}
			return tag[:i], true
		}
	}
	return tag, true
}
