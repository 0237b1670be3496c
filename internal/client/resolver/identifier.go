package resolver

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind classifies a raw identifier.
type Kind int

const (
	KindName Kind = iota
	KindNumeric
	KindOpaqueID
)

func (k Kind) String() string {
	switch k {
	case KindOpaqueID:
		return "management-id"
	case KindNumeric:
		return "numeric"
	default:
		return "name"
	}
}

// Identifier is a device identifier as the user typed it.
type Identifier struct {
	Raw string
}

func (i Identifier) Kind() Kind {
	return Classify(i.Raw)
}

// Classify reports a canonical 36 character UUID as an opaque management ID
// and an integer as numeric. Anything else is a name.
func Classify(raw string) Kind {
	if len(raw) == 36 {
		if _, err := uuid.Parse(raw); err == nil {
			return KindOpaqueID
		}
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return KindNumeric
	}
	return KindName
}

// DeviceRef is a resolved device. Only the resolver produces it for names and
// numbers; FromOpaque covers identifiers that already are management IDs.
type DeviceRef struct {
	ManagementID string
	Name         string
}

// FromOpaque wraps a management ID without a lookup. The name stays empty.
func FromOpaque(id Identifier) (DeviceRef, bool) {
	if id.Kind() != KindOpaqueID {
		return DeviceRef{}, false
	}
	return DeviceRef{ManagementID: id.Raw}, true
}

var nameFields = []string{
	"general.name",
	"general.assetTag",
	"general.barcode1",
	"general.barcode2",
	"hardware.serialNumber",
}

// Filter builds the inventory filter for a name or numeric identifier. A
// numeric identifier also matches the surrogate ID.
func Filter(id Identifier) string {
	v := quote(id.Raw)

	terms := make([]string, 0, len(nameFields)+1)
	if id.Kind() == KindNumeric {
		terms = append(terms, "id=="+v)
	}
	for _, f := range nameFields {
		terms = append(terms, f+"=="+v)
	}
	return strings.Join(terms, ",")
}

func quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
