package geocoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		link    string
		wantLat float64
		wantLng float64
		wantOK  bool
	}{
		{
			name:    "at-pair in maps URL",
			link:    "https://maps.google.com/@-1.286389,36.817223,15z",
			wantLat: -1.286389,
			wantLng: 36.817223,
			wantOK:  true,
		},
		{
			name:    "bare pair",
			link:    "https://maps.google.com/?q=-1.292066,36.821945",
			wantLat: -1.292066,
			wantLng: 36.821945,
			wantOK:  true,
		},
		{
			name:    "at-pair preferred over other pairs",
			link:    "https://maps.google.com/@-1.30,36.80/data=4.5,5.5",
			wantLat: -1.30,
			wantLng: 36.80,
			wantOK:  true,
		},
		{
			name:   "no coordinates",
			link:   "https://maps.google.com/place/Nairobi",
			wantOK: false,
		},
		{
			name:   "empty link",
			link:   "",
			wantOK: false,
		},
		{
			name:    "positive coordinates",
			link:    "https://maps.google.com/@1.046600,37.648300,12z",
			wantLat: 1.0466,
			wantLng: 37.6483,
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, ok := ExtractCoordinates(tt.link)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.wantLat, lat, 1e-9)
				assert.InDelta(t, tt.wantLng, lng, 1e-9)
			}
		})
	}
}
