package adaptive

import (
	"testing"

	"github.com/smartpractice/backend/internal/models"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestValidateSettingsUpdate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpdateSettingsRequest
		wantErr bool
	}{
		{"empty update", models.UpdateSettingsRequest{}, false},
		{"level in range", models.UpdateSettingsRequest{AdaptivityLevel: intp(5)}, false},
		{"level at bounds", models.UpdateSettingsRequest{AdaptivityLevel: intp(1)}, false},
		{"level too low", models.UpdateSettingsRequest{AdaptivityLevel: intp(0)}, true},
		{"level too high", models.UpdateSettingsRequest{AdaptivityLevel: intp(11)}, true},
		{"valid preference", models.UpdateSettingsRequest{DifficultyPreference: strp("challenging")}, false},
		{"unknown preference", models.UpdateSettingsRequest{DifficultyPreference: strp("brutal")}, true},
		{"empty preference", models.UpdateSettingsRequest{DifficultyPreference: strp("")}, true},
	}

	for _, tt := range tests {
		err := ValidateSettingsUpdate(tt.req)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateSettingsUpdate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
