package convert

import (
	"fmt"
	"net/netip"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// datetimeLayouts are tried in order by the datetime converter.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// registerBuiltins installs the built-in converters. Every name here
// can be shadowed by a later Register call with the same name.
func registerBuiltins(r *Registry) {
	r.Register("string", func(raw string) (any, error) {
		return raw, nil
	})

	r.Register("int", intConverter(0))
	r.Register("int8", intConverter(8))
	r.Register("int16", intConverter(16))
	r.Register("int32", intConverter(32))
	r.Register("int64", intConverter(64))

	r.Register("uint", uintConverter(0))
	r.Register("uint8", uintConverter(8))
	r.Register("uint16", uintConverter(16))
	r.Register("uint32", uintConverter(32))
	r.Register("uint64", uintConverter(64))

	r.Register("float32", func(raw string) (any, error) {
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid float: %s", raw)
		}
		return float32(f), nil
	})
	float64Conv := func(raw string) (any, error) {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float: %s", raw)
		}
		return f, nil
	}
	r.Register("float64", float64Conv)
	r.Register("double", float64Conv)

	r.Register("bool", func(raw string) (any, error) {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean: %s", raw)
		}
		return b, nil
	})

	r.Register("datetime", func(raw string) (any, error) {
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
		return nil, fmt.Errorf("invalid datetime: %s", raw)
	})

	r.Register("duration", func(raw string) (any, error) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid duration: %s", raw)
		}
		return d, nil
	})

	uuidConv := func(raw string) (any, error) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid UUID: %s", raw)
		}
		return id, nil
	}
	r.Register("uuid", uuidConv)
	r.Register("guid", uuidConv)

	uriConv := func(raw string) (any, error) {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid URI: %s", raw)
		}
		if u.Scheme == "" {
			return nil, fmt.Errorf("URI is missing a scheme: %s", raw)
		}
		return u, nil
	}
	r.Register("url", uriConv)
	r.Register("uri", uriConv)

	r.Register("ip", func(raw string) (any, error) {
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid IP address: %s", raw)
		}
		return addr, nil
	})
}

// intConverter parses signed integers of the given bit width and
// returns the matching Go type. bitSize 0 yields int.
func intConverter(bitSize int) Converter {
	return func(raw string) (any, error) {
		n, err := strconv.ParseInt(raw, 10, bitSize)
		if err != nil {
			return nil, fmt.Errorf("invalid integer: %s", raw)
		}
		switch bitSize {
		case 8:
			return int8(n), nil
		case 16:
			return int16(n), nil
		case 32:
			return int32(n), nil
		case 64:
			return n, nil
		default:
			return int(n), nil
		}
	}
}

// uintConverter parses unsigned integers of the given bit width.
func uintConverter(bitSize int) Converter {
	return func(raw string) (any, error) {
		n, err := strconv.ParseUint(raw, 10, bitSize)
		if err != nil {
			return nil, fmt.Errorf("invalid unsigned integer: %s", raw)
		}
		switch bitSize {
		case 8:
			return uint8(n), nil
		case 16:
			return uint16(n), nil
		case 32:
			return uint32(n), nil
		case 64:
			return n, nil
		default:
			return uint(n), nil
		}
	}
}
