package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "dedup",
			objectType:  "question",
			identifier:  "abc123",
			paramsKey:   nil,
			expectedKey: "questgenius:dedup:question:abc123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "dedup",
			objectType:  "question",
			identifier:  "abc123",
			paramsKey:   []string{},
			expectedKey: "questgenius:dedup:question:abc123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "dedup",
			objectType:  "question",
			identifier:  "abc123",
			paramsKey:   []string{"user-9"},
			expectedKey: "questgenius:dedup:question:abc123:user-9",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "catalog",
			objectType:  "edital",
			identifier:  "TJSP",
			paramsKey:   []string{"2024", "fgv"},
			expectedKey: "questgenius:catalog:edital:TJSP:2024_fgv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if got != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %q, want %q", got, tt.expectedKey)
			}
		})
	}
}
