// Package phpserial decodes values stored in PHP's serialize() format, which is how
// WordPress keeps arrays in post and term meta.
package phpserial

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/elliotchance/phpserialize"
	"github.com/spf13/cast"
)

var (
	ErrObjectNotSupported = errors.New("serialized objects are not supported")
	ErrLengthOutOfRange   = errors.New("serialized length exceeds data")
)

var (
	arrayCount   = regexp.MustCompile(`a:(\d+):\{`)
	stringLength = regexp.MustCompile(`s:(\d+):"`)
)

// MaybeUnserialize decodes v if it is a serialized string and returns it as-is otherwise.
// A string that looks serialized but doesn't decode comes back as nil.
func MaybeUnserialize(v any) any {
	s, ok := v.(string)
	if !ok || !IsSerialized(s) {
		return v
	}
	decoded, err := Unserialize(s)
	if err != nil {
		return nil
	}
	return decoded
}

// IsSerialized follows the same loose checks WordPress does before unserializing meta.
func IsSerialized(s string) bool {
	s = strings.TrimSpace(s)
	if s == "N;" {
		return true
	}
	if len(s) < 4 || s[1] != ':' {
		return false
	}
	last := s[len(s)-1]
	if last != ';' && last != '}' {
		return false
	}
	switch s[0] {
	case 's':
		return s[len(s)-2] == '"'
	case 'a', 'O', 'C':
		return last == '}'
	case 'b', 'i', 'd':
		return last == ';'
	}
	return false
}

// Unserialize decodes a serialized scalar or array. Arrays with keys 0..n-1 come back
// as []any, other arrays as map[string]any.
func Unserialize(s string) (v any, err error) {
	data := []byte(strings.TrimSpace(s))
	if len(data) < 2 {
		return nil, errors.New("no serialized data")
	}
	if err := checkLengths(data); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, fmt.Errorf("malformed serialized data: %v", r)
		}
	}()

	switch data[0] {
	case 'N':
		if string(data) != "N;" {
			return nil, fmt.Errorf("invalid null %q", data)
		}
		return nil, nil
	case 'b':
		return phpserialize.UnmarshalBool(data)
	case 'i':
		return phpserialize.UnmarshalInt(data)
	case 'd':
		return phpserialize.UnmarshalFloat(data)
	case 's':
		return phpserialize.UnmarshalString(data)
	case 'a':
		array, err := phpserialize.UnmarshalAssociativeArray(data)
		if err != nil {
			return nil, err
		}
		return normalize(array)
	case 'O', 'C':
		return nil, ErrObjectNotSupported
	}
	return nil, fmt.Errorf("unknown type %q", data[0])
}

// checkLengths rejects declared counts that the data can't hold: every array entry
// takes at least 4 bytes ("i:0;") and a string can't be longer than the data.
func checkLengths(data []byte) error {
	for _, m := range arrayCount.FindAllSubmatch(data, -1) {
		n, err := strconv.Atoi(string(m[1]))
		if err != nil || n > len(data)/4 {
			return ErrLengthOutOfRange
		}
	}
	for _, m := range stringLength.FindAllSubmatch(data, -1) {
		n, err := strconv.Atoi(string(m[1]))
		if err != nil || n > len(data) {
			return ErrLengthOutOfRange
		}
	}
	return nil
}

func normalize(v any) (any, error) {
	switch v := v.(type) {
	case nil, bool, string, int64, float64:
		return v, nil
	case map[any]any:
		return normalizeArray(v)
	}
	return nil, ErrObjectNotSupported
}

func normalizeArray(array map[any]any) (any, error) {
	values := make(map[string]any, len(array))
	sequential := true
	for k, v := range array {
		var key string
		switch k := k.(type) {
		case string:
			key = k
			sequential = false
		default:
			i, err := cast.ToInt64E(k)
			if err != nil {
				return nil, fmt.Errorf("invalid array key %v", k)
			}
			key = strconv.FormatInt(i, 10)
			if i < 0 || i >= int64(len(array)) {
				sequential = false
			}
		}
		value, err := normalize(v)
		if err != nil {
			return nil, err
		}
		values[key] = value
	}
	if !sequential {
		return values, nil
	}

	// Integer keys, all in 0..n-1 and distinct since they came from a map
	keys := make([]int, 0, len(values))
	for key := range values {
		i, _ := strconv.Atoi(key)
		keys = append(keys, i)
	}
	sort.Ints(keys)
	items := make([]any, 0, len(keys))
	for _, i := range keys {
		items = append(items, values[strconv.Itoa(i)])
	}
	return items, nil
}
