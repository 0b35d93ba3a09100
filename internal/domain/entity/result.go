package entity

// Source tells which upstream answered a call.
type Source string

const (
	SourcePrimary   Source = "primary"
	SourceSecondary Source = "secondary"
	// SourceNone marks a default value returned because every upstream failed.
	SourceNone Source = "none"
)

// Result carries the data of one aggregator call together with its origin.
type Result[T any] struct {
	Data     T      `json:"data"`
	Source   Source `json:"source"`
	Degraded bool   `json:"degraded"`
}
