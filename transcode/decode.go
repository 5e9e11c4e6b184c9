package transcode

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/truemediaorg/crosspostfields/model"
	"github.com/truemediaorg/crosspostfields/phpserial"
)

// Each decoder expects the shape its value format declares and reports false for
// anything else, which the strategies then treat as "nothing to resolve".

// decodeID reads a single positive object ID.
func decodeID(value any) (int64, bool) {
	switch v := phpserial.MaybeUnserialize(value).(type) {
	case nil, bool:
		return 0, false
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	default:
		id, err := cast.ToInt64E(v)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	}
}

// decodeRecord reads an {id, url} record.
func decodeRecord(value any) (model.Attachment, bool) {
	var record model.Attachment
	fields, ok := phpserial.MaybeUnserialize(value).(map[string]any)
	if !ok {
		return record, false
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &record,
	})
	if err != nil {
		return record, false
	}
	if err := decoder.Decode(fields); err != nil {
		return model.Attachment{}, false
	}
	return record, record.ID > 0
}

// decodeRecords reads a list of {id, url} records, skipping entries that aren't records.
func decodeRecords(value any) ([]model.Attachment, bool) {
	items, ok := decodeSequence(phpserial.MaybeUnserialize(value))
	if !ok {
		return nil, false
	}
	records := make([]model.Attachment, 0, len(items))
	for _, item := range items {
		record, ok := decodeRecord(item)
		if !ok {
			continue
		}
		records = append(records, record)
	}
	return records, true
}

// decodeIDList reads a comma-separated list of IDs such as "12, 15,18".
func decodeIDList(value any) []int64 {
	var raw string
	switch v := phpserial.MaybeUnserialize(value).(type) {
	case string:
		raw = v
	case nil, bool:
		return nil
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil
		}
		raw = s
	}
	var ids []int64
	for _, token := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(token), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// decodeSequence reports whether value is a list, returning its items in order.
// Every map counts as a list, the way PHP treats any array. Integer keys come first in
// numeric order (a PHP array with gaps looks like that once it has been through JSON),
// then the remaining keys in lexical order.
func decodeSequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case nil, string, []byte:
		return nil, false
	case []any:
		return v, true
	case map[string]any:
		return orderedValues(v), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func orderedValues(m map[string]any) []any {
	type entry struct {
		key     string
		index   int64
		numeric bool
	}
	entries := make([]entry, 0, len(m))
	for k := range m {
		i, err := strconv.ParseInt(k, 10, 64)
		entries = append(entries, entry{key: k, index: i, numeric: err == nil})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.numeric != b.numeric {
			return a.numeric
		}
		if a.numeric {
			return a.index < b.index
		}
		return a.key < b.key
	})
	items := make([]any, 0, len(entries))
	for _, e := range entries {
		items = append(items, m[e.key])
	}
	return items
}
