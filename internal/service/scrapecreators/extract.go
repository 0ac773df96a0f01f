package scrapecreators

import (
	"strconv"
	"time"

	"github.com/tidwall/gjson"
)

// Each strategy is a pure read of one candidate location in the raw document.
// Fields are resolved by trying their strategies in priority order.
type (
	stringStrategy func(doc gjson.Result) (string, bool)
	intStrategy    func(doc gjson.Result) (int64, bool)
	boolStrategy   func(doc gjson.Result) (bool, bool)
	timeStrategy   func(doc gjson.Result) (time.Time, bool)
)

// stringAt yields a non-empty string value at path.
func stringAt(path string) stringStrategy {
	return func(doc gjson.Result) (string, bool) {
		v := doc.Get(path)
		if v.Type != gjson.String || v.Str == "" {
			return "", false
		}
		return v.Str, true
	}
}

// intAt yields a numeric value at path. Numeric strings are accepted, fractions are truncated.
func intAt(path string) intStrategy {
	return func(doc gjson.Result) (int64, bool) {
		return toInt(doc.Get(path))
	}
}

// nonZero rejects a zero result from s.
func nonZero(s intStrategy) intStrategy {
	return func(doc gjson.Result) (int64, bool) {
		v, ok := s(doc)
		if !ok || v == 0 {
			return 0, false
		}
		return v, true
	}
}

// countIn yields container.count, or 0 when the container object exists without a count.
func countIn(container string) intStrategy {
	return func(doc gjson.Result) (int64, bool) {
		c := doc.Get(container)
		if !c.IsObject() {
			return 0, false
		}
		if v, ok := toInt(c.Get("count")); ok {
			return v, true
		}
		return 0, true
	}
}

// countInNonEmpty yields container.count only when the container is a non-empty object.
func countInNonEmpty(container string) intStrategy {
	return func(doc gjson.Result) (int64, bool) {
		c := doc.Get(container)
		if !c.IsObject() || len(c.Map()) == 0 {
			return 0, false
		}
		return toInt(c.Get("count"))
	}
}

func boolAt(path string) boolStrategy {
	return func(doc gjson.Result) (bool, bool) {
		v := doc.Get(path)
		if v.Type != gjson.True && v.Type != gjson.False {
			return false, false
		}
		return v.Type == gjson.True, true
	}
}

// unixTimeAt yields a UTC time from a non-zero epoch-seconds value at path.
func unixTimeAt(path string) timeStrategy {
	return func(doc gjson.Result) (time.Time, bool) {
		secs, ok := toInt(doc.Get(path))
		if !ok || secs == 0 {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true
	}
}

func toInt(v gjson.Result) (int64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Int(), true
	case gjson.String:
		n, err := strconv.ParseInt(v.Str, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func firstString(doc gjson.Result, strategies []stringStrategy) (string, bool) {
	for _, s := range strategies {
		if v, ok := s(doc); ok {
			return v, true
		}
	}
	return "", false
}

func stringOr(doc gjson.Result, strategies []stringStrategy, fallback string) string {
	if v, ok := firstString(doc, strategies); ok {
		return v
	}
	return fallback
}

func firstInt(doc gjson.Result, strategies []intStrategy) *int64 {
	for _, s := range strategies {
		if v, ok := s(doc); ok {
			return &v
		}
	}
	return nil
}

func firstBool(doc gjson.Result, strategies []boolStrategy) *bool {
	for _, s := range strategies {
		if v, ok := s(doc); ok {
			return &v
		}
	}
	return nil
}

func firstTime(doc gjson.Result, strategies []timeStrategy) *time.Time {
	for _, s := range strategies {
		if v, ok := s(doc); ok {
			return &v
		}
	}
	return nil
}
