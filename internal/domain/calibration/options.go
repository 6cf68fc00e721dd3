package calibration

import "github.com/okian/wingspan/internal/domain/pose"

// Option applies a configuration option to the Model.
type Option func(*Model)

// WithSchema overrides the landmark schema subjects must carry. Defaults
// are SchemaBody for known-reference and SchemaHand for fixed-distance.
func WithSchema(schema pose.Schema) Option {
	return func(m *Model) {
		if schema.Size() > 0 {
			m.schema = schema
		}
	}
}
