package roster

import "strings"

// Field names a canonical roster column the classifier understands.
type Field string

const (
	FieldVehicle            Field = "vehicle"
	FieldCurrentMileage     Field = "current_mileage"
	FieldLastServiceMileage Field = "last_service_mileage"
	FieldServiceInterval    Field = "service_interval"
	FieldServiceDueAt       Field = "service_due_at"
	FieldMilesToService     Field = "miles_to_service"
	FieldLastMOTDate        Field = "last_mot_date"
	FieldMOTExpiry          Field = "mot_expiry"
	FieldRecipient          Field = "recipient"
)

// fieldAliases maps each canonical field to the header spellings accepted for
// it, in priority order. The first alias that matches any header wins; later
// aliases never override an earlier match. New spreadsheet conventions are
// added here, not in code.
var fieldAliases = map[Field][]string{
	FieldVehicle:            {"reg", "registration", "vehicle", "vrm"},
	FieldCurrentMileage:     {"current mileage", "mileage", "odometer"},
	FieldLastServiceMileage: {"last service mileage", "service last mileage", "last_service_mileage"},
	FieldServiceInterval:    {"service interval (miles)", "service interval"},
	FieldServiceDueAt:       {"service mileage due at", "service_due_at", "service due at"},
	FieldMilesToService:     {"miles_to_service", "miles to service"},
	FieldLastMOTDate:        {"last mot date", "last mot", "last_mot_date"},
	FieldMOTExpiry:          {"mot expiry", "mot date required", "mot due", "mot_due_date"},
	FieldRecipient:          {"email", "manager email", "contact email", "recipient"},
}

// FieldMap records, for each canonical field, the actual header it resolved
// to. Fields without a matching header are absent from the map. A FieldMap is
// computed once per roster and never mutated afterwards.
type FieldMap map[Field]string

// ResolveColumns matches the roster headers against the alias table. Matching
// is case-insensitive and ignores surrounding whitespace. Missing fields are
// not an error; the classifier decides per rule path whether absence matters.
func ResolveColumns(headers []string) FieldMap {
	index := make(map[string]string, len(headers))
	for _, h := range headers {
		key := normalizeHeader(h)
		if _, ok := index[key]; !ok {
			index[key] = h
		}
	}
	fm := make(FieldMap)
	for field, aliases := range fieldAliases {
		for _, alias := range aliases {
			if header, ok := index[alias]; ok {
				fm[field] = header
				break
			}
		}
	}
	return fm
}

// Lookup returns the raw cell for the field, or ok=false when the field did
// not resolve or the row has no usable value for it.
func (m FieldMap) Lookup(r Row, f Field) (any, bool) {
	header, ok := m[f]
	if !ok {
		return nil, false
	}
	v, ok := r[header]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
