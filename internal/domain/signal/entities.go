package signal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Name identifies a signal series. The set is closed so payloads can be
// validated as a tagged union instead of an opaque blob.
type Name string

const (
	NamePressureMetric Name = "PRESSURE_METRIC"
	NameGlobalUrgency  Name = "GLOBAL_URGENCY"
)

// Signal is a named, timestamped metric snapshot. Purely additive: rows are
// never updated or deleted by normal operation.
type Signal struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Name      Name      `gorm:"column:name;size:64;not null;index:idx_signals_name" json:"name"`
	Payload   string    `gorm:"column:payload;type:text;not null" json:"payload"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_signals_created" json:"created_at"`
}

func (Signal) TableName() string { return "system_signals" }

// PressurePayload backs PRESSURE_METRIC snapshots.
type PressurePayload struct {
	FrequencyPattern  string  `json:"frequency_pattern"`
	AbuseLikelihood   float64 `json:"abuse_likelihood"`
	StressCalibration float64 `json:"stress_calibration"`
}

// UrgencyPayload backs GLOBAL_URGENCY snapshots.
type UrgencyPayload struct {
	ActiveEmergencies int    `json:"active_emergencies"`
	SystemLoadLevel   string `json:"system_load_level"`
}

var loadLevels = map[string]bool{"low": true, "normal": true, "elevated": true, "high": true}

// ValidatePayload checks a raw payload against the schema for its series.
// Unknown fields and out-of-range values are rejected at the boundary.
func ValidatePayload(name Name, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	switch name {
	case NamePressureMetric:
		var p PressurePayload
		if err := dec.Decode(&p); err != nil {
			return fmt.Errorf("pressure payload: %w", err)
		}
		if p.AbuseLikelihood < 0 || p.AbuseLikelihood > 1 {
			return fmt.Errorf("pressure payload: abuse_likelihood %v out of [0,1]", p.AbuseLikelihood)
		}
		if p.StressCalibration < 0 || p.StressCalibration > 1 {
			return fmt.Errorf("pressure payload: stress_calibration %v out of [0,1]", p.StressCalibration)
		}
		return nil
	case NameGlobalUrgency:
		var u UrgencyPayload
		if err := dec.Decode(&u); err != nil {
			return fmt.Errorf("urgency payload: %w", err)
		}
		if u.ActiveEmergencies < 0 {
			return fmt.Errorf("urgency payload: active_emergencies %d negative", u.ActiveEmergencies)
		}
		if !loadLevels[u.SystemLoadLevel] {
			return fmt.Errorf("urgency payload: unknown system_load_level %q", u.SystemLoadLevel)
		}
		return nil
	}
	return fmt.Errorf("unknown signal name %q", name)
}

type Repository interface {
	Create(ctx context.Context, s *Signal) error
	ListRecent(ctx context.Context, name Name, limit int) ([]Signal, error)
}
