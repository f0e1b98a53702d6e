package convert

import (
	"net/netip"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
)

func convertOK(t *testing.T, raw, typeName string) any {
	t.Helper()
	v, err := NewRegistry().Convert(raw, typeName)
	if err != nil {
		t.Fatalf("Convert(%q, %s): %v", raw, typeName, err)
	}
	return v
}

func convertFail(t *testing.T, raw, typeName string) {
	t.Helper()
	if _, err := NewRegistry().Convert(raw, typeName); err == nil {
		t.Errorf("Convert(%q, %s): expected an error", raw, typeName)
	}
}

func TestIntegerConverters(t *testing.T) {
	if v := convertOK(t, "42", "int"); v != 42 {
		t.Errorf("expected int 42, got %v (%T)", v, v)
	}
	if v := convertOK(t, "-7", "int64"); v != int64(-7) {
		t.Errorf("expected int64 -7, got %v (%T)", v, v)
	}
	if v := convertOK(t, "200", "uint8"); v != uint8(200) {
		t.Errorf("expected uint8 200, got %v (%T)", v, v)
	}

	// Width limits apply per type.
	convertFail(t, "300", "int8")
	convertFail(t, "-1", "uint")
	convertFail(t, "abc", "int")
	convertFail(t, "2.5", "int")
}

func TestFloatConverters(t *testing.T) {
	if v := convertOK(t, "2.5", "double"); v != 2.5 {
		t.Errorf("expected float64 2.5, got %v (%T)", v, v)
	}
	if v := convertOK(t, "2.5", "float64"); v != 2.5 {
		t.Errorf("expected float64 2.5, got %v (%T)", v, v)
	}
	if v := convertOK(t, "1.5", "float32"); v != float32(1.5) {
		t.Errorf("expected float32 1.5, got %v (%T)", v, v)
	}
	convertFail(t, "abc", "double")
}

func TestBoolConverter(t *testing.T) {
	if v := convertOK(t, "true", "bool"); v != true {
		t.Errorf("expected true, got %v", v)
	}
	if v := convertOK(t, "0", "bool"); v != false {
		t.Errorf("expected false, got %v", v)
	}
	convertFail(t, "yes", "bool")
}

func TestDatetimeConverter(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-08-27T10:30:00Z", time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)},
		{"2026-08-27 10:30:00", time.Date(2026, 8, 27, 10, 30, 0, 0, time.UTC)},
		{"2026-08-27", time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		v := convertOK(t, tt.raw, "datetime")
		got, ok := v.(time.Time)
		if !ok {
			t.Fatalf("%q: expected time.Time, got %T", tt.raw, v)
		}
		if !got.Equal(tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.raw, tt.want, got)
		}
	}
	convertFail(t, "yesterday", "datetime")
}

func TestDurationConverter(t *testing.T) {
	if v := convertOK(t, "1h30m", "duration"); v != 90*time.Minute {
		t.Errorf("expected 90m, got %v", v)
	}
	convertFail(t, "soon", "duration")
}

func TestUUIDConverter(t *testing.T) {
	const raw = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	v := convertOK(t, raw, "uuid")
	id, ok := v.(uuid.UUID)
	if !ok {
		t.Fatalf("expected uuid.UUID, got %T", v)
	}
	if id.String() != raw {
		t.Errorf("expected %s, got %s", raw, id)
	}

	// guid is an alias.
	if _, err := NewRegistry().Convert(raw, "guid"); err != nil {
		t.Errorf("expected guid alias to work: %v", err)
	}
	convertFail(t, "not-a-uuid", "uuid")
}

func TestURLConverter(t *testing.T) {
	v := convertOK(t, "https://example.com/path", "url")
	u, ok := v.(*url.URL)
	if !ok {
		t.Fatalf("expected *url.URL, got %T", v)
	}
	if u.Host != "example.com" {
		t.Errorf("expected host example.com, got %s", u.Host)
	}

	// A bare path has no scheme and is rejected.
	convertFail(t, "/just/a/path", "uri")
}

func TestIPConverter(t *testing.T) {
	v := convertOK(t, "192.168.1.1", "ip")
	addr, ok := v.(netip.Addr)
	if !ok {
		t.Fatalf("expected netip.Addr, got %T", v)
	}
	if !addr.Is4() {
		t.Error("expected an IPv4 address")
	}

	v = convertOK(t, "::1", "ip")
	if addr, ok = v.(netip.Addr); !ok || !addr.Is6() {
		t.Error("expected an IPv6 address")
	}
	convertFail(t, "999.0.0.1", "ip")
}

func TestStringConverterPassesThrough(t *testing.T) {
	if v := convertOK(t, "raw text", "string"); v != "raw text" {
		t.Errorf("expected passthrough, got %v", v)
	}
}
