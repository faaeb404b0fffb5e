package models

import (
	"testing"
	"time"
)

func TestAlertLevels(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   DocumentAlertLevel
	}{
		{"expired yesterday", now.Add(-24 * time.Hour), DocumentAlertExpired},
		{"expires this instant", now, DocumentAlertExpired},
		{"expires in an hour", now.Add(time.Hour), DocumentAlertExpiring},
		{"expires in 29 days", now.Add(29 * 24 * time.Hour), DocumentAlertExpiring},
		{"expires in exactly 30 days", now.Add(DocumentExpiryWarning), DocumentAlertOK},
		{"expires next year", now.Add(365 * 24 * time.Hour), DocumentAlertOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alertLevel(tt.expiry, now); got != tt.want {
				t.Errorf("alertLevel(%v) = %s, want %s", tt.expiry, got, tt.want)
			}
		})
	}
}

func TestVehicleAlerts(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	v := &Vehicle{
		TechnicalInspectionExpiry: now.Add(-time.Hour),
		CirculationPermitExpiry:   now.Add(10 * 24 * time.Hour),
		InsuranceExpiry:           now.Add(90 * 24 * time.Hour),
	}

	alerts := v.Alerts(now)
	if alerts.TechnicalInspection != DocumentAlertExpired {
		t.Errorf("technical inspection = %s, want vencido", alerts.TechnicalInspection)
	}
	if alerts.CirculationPermit != DocumentAlertExpiring {
		t.Errorf("circulation permit = %s, want por_vencer", alerts.CirculationPermit)
	}
	if alerts.Insurance != DocumentAlertOK {
		t.Errorf("insurance = %s, want vigente", alerts.Insurance)
	}
}
